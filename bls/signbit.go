package bls

import (
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
)

// The compression sign bit marks which of the two roots ±y a serialized point
// carried. The threshold is HALF = (p-1)/2: an Fp element is "big" when it is
// strictly greater than HALF, which is exactly what
// fp.Element.LexicographicallyLargest reports.
//
// These predicates are the single source of truth shared by the signature
// encoder, the proving service and the tests; the circuit gadgets in the
// circuits package reimplement them in constraints and must agree on every
// input.

// SignBitG1 reports the compression sign bit of a G1 point: y > HALF.
func SignBitG1(p *bls12377.G1Affine) bool {
	return p.Y.LexicographicallyLargest()
}

// SignBitG2 reports the compression sign bit of a G2 point with y = c0+c1*u,
// ordered lexicographically on (c1, c0):
//
//	bit = c1 > HALF or (c1 == 0 and c0 > HALF)
func SignBitG2(p *bls12377.G2Affine) bool {
	if !p.Y.A1.IsZero() {
		return p.Y.A1.LexicographicallyLargest()
	}
	return p.Y.A0.LexicographicallyLargest()
}
