package bls

import (
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
)

// Domain separation tags for message signing and proofs of possession.
var (
	SigDomain = []byte("ULforprf")
	PopDomain = []byte("ULforpop")
)

// HashToG1 maps a (domain, message, extra_data) triple to a point in G1.
// The domain is treated as opaque bytes; implementations are expected to be
// domain-separated.
type HashToG1 interface {
	Hash(domain, message, extraData []byte) (bls12377.G1Jac, error)
}

// XMDHasher hashes messages to G1 using gnark-crypto's RFC 9380 SSWU suite
// with the domain as DST. The message and extra data are concatenated before
// hashing.
type XMDHasher struct{}

func (XMDHasher) Hash(domain, message, extraData []byte) (bls12377.G1Jac, error) {
	var jac bls12377.G1Jac

	input := make([]byte, 0, len(message)+len(extraData))
	input = append(input, message...)
	input = append(input, extraData...)

	aff, err := bls12377.HashToG1(input, domain)
	if err != nil {
		return jac, err
	}

	jac.FromAffine(&aff)
	return jac, nil
}
