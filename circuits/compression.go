package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/sw_bls12377"
)

// CompressionCircuit proves that the published sign bits of an epoch's
// aggregate signature (a G1 point) and aggregate public key (a G2 point)
// match the point compression convention of the signature encoder. The
// points stay private; only the two bits are public, so an on-chain verifier
// can check off-chain compression without seeing the points.
//
// The circuit is compiled over the BW6-761 scalar field, which equals the
// BLS12-377 base field, so the coordinates are native field elements.
type CompressionCircuit struct {
	// Aggregate signature and aggregate public key (private inputs)
	Sig sw_bls12377.G1Affine
	Apk sw_bls12377.G2Affine

	// Public inputs - the compression sign bits to verify
	SigYBit frontend.Variable `gnark:",public"`
	ApkYBit frontend.Variable `gnark:",public"`
}

// Define implements the circuit constraints
func (c *CompressionCircuit) Define(api frontend.API) error {
	sigBit, err := YToBitG1(api, &c.Sig)
	if err != nil {
		return fmt.Errorf("signature y to bit: %w", err)
	}
	api.AssertIsEqual(sigBit, c.SigYBit)

	apkBit, err := YToBitG2(api, &c.Apk)
	if err != nil {
		return fmt.Errorf("public key y to bit: %w", err)
	}
	api.AssertIsEqual(apkBit, c.ApkYBit)

	return nil
}

// G1CompressionCircuit binds a single G1 point to its compression sign bit.
type G1CompressionCircuit struct {
	P    sw_bls12377.G1Affine
	YBit frontend.Variable `gnark:",public"`
}

func (c *G1CompressionCircuit) Define(api frontend.API) error {
	bit, err := YToBitG1(api, &c.P)
	if err != nil {
		return fmt.Errorf("y to bit: %w", err)
	}
	api.AssertIsEqual(bit, c.YBit)
	return nil
}

// G2CompressionCircuit binds a single G2 point to its compression sign bit.
type G2CompressionCircuit struct {
	P    sw_bls12377.G2Affine
	YBit frontend.Variable `gnark:",public"`
}

func (c *G2CompressionCircuit) Define(api frontend.API) error {
	bit, err := YToBitG2(api, &c.P)
	if err != nil {
		return fmt.Errorf("y to bit: %w", err)
	}
	api.AssertIsEqual(bit, c.YBit)
	return nil
}
