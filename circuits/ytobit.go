package circuit

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/sw_bls12377"
)

// This file provides the in-circuit counterpart of the point compression sign
// bit (bls.SignBitG1 / bls.SignBitG2). Given half = (p-1)/2, any element
// greater than half (i.e. in [half+1, p-1]) can be normalized by subtracting
// half, landing in [1, half]. Checking that the adjusted element is <= half
// then enforces that the original was > half exactly when the bit is set.
// For points in G2 the lexicographical ordering on (c1, c0) is applied on
// top of that.

func init() {
	solver.RegisterHint(normalizeHint, isZeroHint, g2SignBitHint)
}

// fieldHalf returns (p-1)/2 for the circuit's field. The circuits here are
// compiled over the BW6-761 scalar field, which is the BLS12-377 base field.
func fieldHalf(api frontend.API) *big.Int {
	half := new(big.Int).Sub(api.Compiler().Field(), big.NewInt(1))
	return half.Rsh(half, 1)
}

// YToBitG1 allocates a boolean equal to the compression sign bit of the
// point's y coordinate: 1 iff y > (p-1)/2.
func YToBitG1(api frontend.API, pk *sw_bls12377.G1Affine) (frontend.Variable, error) {
	return normalize(api, pk.Y)
}

// YToBitG2 allocates a boolean equal to the compression sign bit of a G2
// y coordinate y = c0 + c1*u:
//
//	bit = c1 > half or (c1 == 0 and c0 > half)
//
// The three cases are bound by a single degree-2 constraint
//
//	(1 - c1_bit) * (c1_zero * c0_bit) == bit - c1_bit
//
// If c1_bit is 1 the right side forces bit = 1. Otherwise bit equals
// c1_zero * c0_bit, which is c0_bit when c1 == 0 and 0 when c1 is a nonzero
// element <= half.
func YToBitG2(api frontend.API, pk *sw_bls12377.G2Affine) (frontend.Variable, error) {
	c0 := pk.P.Y.A0
	c1 := pk.P.Y.A1

	res, err := api.Compiler().NewHint(g2SignBitHint, 1, c0, c1)
	if err != nil {
		return nil, fmt.Errorf("g2 sign bit hint: %w", err)
	}
	bit := res[0]
	api.AssertIsBoolean(bit)

	c0Bit, err := normalize(api, c0)
	if err != nil {
		return nil, fmt.Errorf("normalize c0: %w", err)
	}
	c1Bit, err := normalize(api, c1)
	if err != nil {
		return nil, fmt.Errorf("normalize c1: %w", err)
	}
	c1Zero, err := isEqZero(api, c1)
	if err != nil {
		return nil, fmt.Errorf("c1 == 0: %w", err)
	}

	bc := api.Mul(c1Zero, c0Bit)
	api.AssertIsEqual(
		api.Mul(api.Sub(1, c1Bit), bc),
		api.Sub(bit, c1Bit),
	)

	return bit, nil
}

// normalize allocates a boolean bit = (el > half) together with an adjusted
// element el - half*bit, and constrains adjusted <= half and, when bit = 1,
// adjusted != 0. If el < half, bit = 1 would underflow adjusted to
// el + (p - half) > half; if el == half, bit = 1 would give adjusted = 0; if
// el > half, bit = 0 leaves adjusted = el > half. Either way the constraints
// pin the bit to its unique value.
func normalize(api frontend.API, el frontend.Variable) (frontend.Variable, error) {
	res, err := api.Compiler().NewHint(normalizeHint, 2, el)
	if err != nil {
		return nil, fmt.Errorf("normalize hint: %w", err)
	}
	bit, adjusted := res[0], res[1]
	api.AssertIsBoolean(bit)

	half := fieldHalf(api)
	api.AssertIsEqual(adjusted, api.Sub(el, api.Mul(bit, half)))
	api.AssertIsLessOrEqual(adjusted, half)
	api.AssertIsEqual(api.Mul(bit, api.IsZero(adjusted)), 0)

	return bit, nil
}

// isEqZero allocates a boolean bit = (el == 0). The witness inv is el^-1 for
// nonzero el and 0 otherwise (its value does not matter in that case, it only
// has to let the solver pass). Both constraints are required: el*inv == 1-bit
// alone admits bit = 1 for nonzero el (with inv = 0), and el*bit == 0 alone
// admits bit = 0 for el == 0.
func isEqZero(api frontend.API, el frontend.Variable) (frontend.Variable, error) {
	res, err := api.Compiler().NewHint(isZeroHint, 2, el)
	if err != nil {
		return nil, fmt.Errorf("is zero hint: %w", err)
	}
	bit, inv := res[0], res[1]
	api.AssertIsBoolean(bit)

	api.AssertIsEqual(api.Mul(el, inv), api.Sub(1, bit))
	api.AssertIsEqual(api.Mul(el, bit), 0)

	return bit, nil
}

func normalizeHint(mod *big.Int, inputs, outputs []*big.Int) error {
	half := new(big.Int).Sub(mod, big.NewInt(1))
	half.Rsh(half, 1)

	el := inputs[0]
	if el.Cmp(half) > 0 {
		outputs[0].SetUint64(1)
		outputs[1].Sub(el, half)
	} else {
		outputs[0].SetUint64(0)
		outputs[1].Set(el)
	}
	return nil
}

func isZeroHint(mod *big.Int, inputs, outputs []*big.Int) error {
	if inputs[0].Sign() == 0 {
		outputs[0].SetUint64(1)
		outputs[1].SetUint64(0)
	} else {
		outputs[0].SetUint64(0)
		outputs[1].ModInverse(inputs[0], mod)
	}
	return nil
}

func g2SignBitHint(mod *big.Int, inputs, outputs []*big.Int) error {
	half := new(big.Int).Sub(mod, big.NewInt(1))
	half.Rsh(half, 1)

	c0, c1 := inputs[0], inputs[1]
	if c1.Cmp(half) > 0 || (c1.Sign() == 0 && c0.Cmp(half) > 0) {
		outputs[0].SetUint64(1)
	} else {
		outputs[0].SetUint64(0)
	}
	return nil
}
