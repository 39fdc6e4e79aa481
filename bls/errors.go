package bls

import (
	"errors"
	"fmt"
)

var (
	// ErrVerificationFailed is returned when the pairing product does not
	// equal one. It is deliberately opaque: there is no meaningful way to
	// point at the pair that broke the product.
	ErrVerificationFailed = errors.New("bls: signature verification failed")

	// ErrNoSquareRoot is returned by signature decoding when the encoded x
	// coordinate does not correspond to a point on the curve.
	ErrNoSquareRoot = errors.New("bls: no square root for x coordinate")

	// ErrShortRead is returned when the byte stream ends before a full
	// encoded signature could be read.
	ErrShortRead = errors.New("bls: short read while decoding signature")
)

// HashToCurveError reports the message that the hash-to-G1 oracle failed on,
// so callers can locate the offending entry in a batch.
type HashToCurveError struct {
	Message   []byte
	ExtraData []byte
}

func (e *HashToCurveError) Error() string {
	return fmt.Sprintf("bls: hash to curve failed for message 0x%x (extra data 0x%x)", e.Message, e.ExtraData)
}
