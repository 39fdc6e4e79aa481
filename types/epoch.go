package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EpochRecord is one unit of work for the proving service: the aggregate
// signature of an epoch's validators over (message, extra_data), together
// with their aggregate public key.
//
// AggregateSig carries the compressed signature encoding (48 bytes, sign bit
// in the top bit of the last byte). AggregatePubkey carries the G2 point in
// gnark-crypto's serialization.
type EpochRecord struct {
	Epoch           uint64        `json:"epoch"`
	Message         hexutil.Bytes `json:"message"`
	ExtraData       hexutil.Bytes `json:"extra_data"`
	AggregateSig    hexutil.Bytes `json:"aggregate_sig"`
	AggregatePubkey hexutil.Bytes `json:"aggregate_pubkey"`
}

// ProofData is the serialized proof for one epoch: the groth16 proof over
// BW6-761 plus the public inputs (the two compression sign bits).
type ProofData struct {
	Epoch   uint64        `json:"epoch"`
	Proof   hexutil.Bytes `json:"proof"`
	SigYBit uint8         `json:"sig_y_bit"`
	ApkYBit uint8         `json:"apk_y_bit"`
}
