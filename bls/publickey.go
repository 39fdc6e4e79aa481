package bls

import (
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
)

// PublicKey is a point on G2.
type PublicKey struct {
	pk bls12377.G2Jac
}

// NewPublicKey wraps a G2 point as a public key.
func NewPublicKey(pk bls12377.G2Jac) *PublicKey {
	return &PublicKey{pk: pk}
}

// Pk returns the underlying G2 point.
func (p *PublicKey) Pk() bls12377.G2Jac {
	return p.pk
}

// Affine returns the public key in affine coordinates.
func (p *PublicKey) Affine() bls12377.G2Affine {
	var aff bls12377.G2Affine
	aff.FromJacobian(&p.pk)
	return aff
}

// AggregatePublicKeys sums the provided public keys. The empty aggregate is
// the G2 identity.
func AggregatePublicKeys(pubkeys []*PublicKey) *PublicKey {
	var apk bls12377.G2Jac
	for _, pk := range pubkeys {
		apk.AddAssign(&pk.pk)
	}
	return &PublicKey{pk: apk}
}
