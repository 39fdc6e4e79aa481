package bls

import (
	"crypto/rand"
	"math/big"
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/require"
)

var g1GenJac, g2GenJac, _, _ = bls12377.Generators()

// genKeyPair generates a random scalar and the matching G2 public key
func genKeyPair(t *testing.T) (fr.Element, *PublicKey) {
	t.Helper()

	var sk fr.Element
	_, err := sk.SetRandom()
	require.NoError(t, err)

	var skBig big.Int
	sk.BigInt(&skBig)

	var pk bls12377.G2Jac
	pk.ScalarMultiplication(&g2GenJac, &skBig)
	return sk, &PublicKey{pk: pk}
}

// signHash signs an already-hashed message: sig = hash^sk
func signHash(sk fr.Element, hash bls12377.G1Jac) *Signature {
	var skBig big.Int
	sk.BigInt(&skBig)

	var sig bls12377.G1Jac
	sig.ScalarMultiplication(&hash, &skBig)
	return &Signature{sig: sig}
}

// signMessage hashes the message with the default oracle and signs it
func signMessage(t *testing.T, sk fr.Element, domain, message, extra []byte) *Signature {
	t.Helper()

	h, err := XMDHasher{}.Hash(domain, message, extra)
	require.NoError(t, err)
	return signHash(sk, h)
}

// randomG1Jac returns a random point in the prime-order subgroup of G1
func randomG1Jac(t *testing.T) bls12377.G1Jac {
	t.Helper()

	var sc fr.Element
	_, err := sc.SetRandom()
	require.NoError(t, err)

	var b big.Int
	sc.BigInt(&b)

	var p bls12377.G1Jac
	p.ScalarMultiplication(&g1GenJac, &b)
	return p
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()

	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}
