package bls

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/stretchr/testify/require"
)

// verifyOne checks a single (pubkey, message) pair through the batch path,
// which is also the definition of single-signer verification.
func verifyOne(sig *Signature, pk *PublicKey, message, extra []byte) error {
	return sig.BatchVerify([]*PublicKey{pk}, SigDomain, []Message{{Data: message, Extra: extra}}, XMDHasher{})
}

func TestAggregatedSig(t *testing.T) {
	message := []byte("hello")

	sk1, pk1 := genKeyPair(t)
	sk2, pk2 := genKeyPair(t)

	sig1 := signMessage(t, sk1, SigDomain, message, nil)
	sig2 := signMessage(t, sk2, SigDomain, message, nil)

	apk := AggregatePublicKeys([]*PublicKey{pk1, pk2})
	asig := AggregateSignatures([]*Signature{sig1, sig2})

	require.NoError(t, verifyOne(asig, apk, message, nil))
	require.Error(t, verifyOne(sig1, apk, message, nil))
	require.Error(t, verifyOne(asig, pk1, message, nil))

	message2 := []byte("goodbye")
	require.Error(t, verifyOne(asig, apk, message2, nil))

	apk2 := AggregatePublicKeys([]*PublicKey{pk1})
	require.Error(t, verifyOne(asig, apk2, message, nil))
	require.NoError(t, verifyOne(sig1, apk2, message, nil))

	// Aggregation of the same keys in the other order accepts the same
	// aggregate signature
	apk3 := AggregatePublicKeys([]*PublicKey{pk2, pk1})
	require.NoError(t, verifyOne(asig, apk3, message, nil))
	require.Error(t, verifyOne(sig1, apk3, message, nil))
}

func TestAggregatePermutationInvariance(t *testing.T) {
	const n = 8

	sigs := make([]*Signature, n)
	for i := range sigs {
		sigs[i] = &Signature{sig: randomG1Jac(t)}
	}

	asig := AggregateSignatures(sigs)

	for trial := 0; trial < 5; trial++ {
		shuffled := make([]*Signature, n)
		copy(shuffled, sigs)
		rand.Shuffle(n, func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		require.True(t, asig.Equal(AggregateSignatures(shuffled)))
	}
}

func TestAggregateEmptyIsIdentity(t *testing.T) {
	asig := AggregateSignatures(nil)
	require.True(t, asig.Equal(&Signature{}))
}

func TestBatchVerify(t *testing.T) {
	const (
		numEpochs     = 10
		numValidators = 7
	)

	// generate some msgs and extra data
	messages := make([]Message, numEpochs)
	for i := range messages {
		messages[i] = Message{
			Data:  randomBytes(t, 32),
			Extra: randomBytes(t, 32),
		}
	}

	// get each signed by a committee on the same domain and collect the
	// aggregate sig and aggregate pubkey of each epoch
	var epochSigs []*Signature
	var pubkeys []*PublicKey
	for i := 0; i < numEpochs; i++ {
		var sigs []*Signature
		var pks []*PublicKey
		for v := 0; v < numValidators; v++ {
			sk, pk := genKeyPair(t)
			sigs = append(sigs, signMessage(t, sk, SigDomain, messages[i].Data, messages[i].Extra))
			pks = append(pks, pk)
		}
		epochSigs = append(epochSigs, AggregateSignatures(sigs))
		pubkeys = append(pubkeys, AggregatePublicKeys(pks))
	}

	asig := AggregateSignatures(epochSigs)

	require.NoError(t, asig.BatchVerify(pubkeys, SigDomain, messages, XMDHasher{}))

	// tampering with any single message breaks the whole batch
	tampered := make([]Message, numEpochs)
	copy(tampered, messages)
	tampered[3] = Message{Data: randomBytes(t, 32), Extra: tampered[3].Extra}
	err := asig.BatchVerify(pubkeys, SigDomain, tampered, XMDHasher{})
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestBatchVerifyHashes(t *testing.T) {
	// generate 5 (aggregate sig, message hash) pairs and verify them all in
	// one call
	const (
		batchSize = 5
		numKeys   = 7
	)

	hashes := make([]bls12377.G1Jac, batchSize)
	for i := range hashes {
		hashes[i] = randomG1Jac(t)
	}

	var asigs []*Signature
	var pubkeys []*PublicKey
	for i := 0; i < batchSize; i++ {
		var sigs []*Signature
		var pks []*PublicKey
		for k := 0; k < numKeys; k++ {
			sk, pk := genKeyPair(t)
			sigs = append(sigs, signHash(sk, hashes[i]))
			pks = append(pks, pk)
		}
		asigs = append(asigs, AggregateSignatures(sigs))
		pubkeys = append(pubkeys, AggregatePublicKeys(pks))
	}

	asig := AggregateSignatures(asigs)

	require.NoError(t, asig.BatchVerifyHashes(pubkeys, hashes))
}

func TestBatchVerifyEmpty(t *testing.T) {
	// the empty batch reduces to e(sig, -g2) == 1, accepted only by the
	// identity signature
	identity := &Signature{}
	require.NoError(t, identity.BatchVerifyHashes(nil, nil))

	nonIdentity := &Signature{sig: randomG1Jac(t)}
	err := nonIdentity.BatchVerifyHashes(nil, nil)
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestBatchVerifyHashToCurveError(t *testing.T) {
	sk, pk := genKeyPair(t)
	good := []byte("good message")
	bad := []byte("bad message")

	sig := signMessage(t, sk, SigDomain, good, nil)

	hasher := failingHasher{fail: bad}
	err := sig.BatchVerify(
		[]*PublicKey{pk, pk},
		SigDomain,
		[]Message{{Data: good}, {Data: bad, Extra: []byte{0x01}}},
		hasher,
	)

	var hashErr *HashToCurveError
	require.True(t, errors.As(err, &hashErr))
	require.Equal(t, bad, hashErr.Message)
	require.Equal(t, []byte{0x01}, hashErr.ExtraData)
}

type failingHasher struct {
	fail []byte
}

func (f failingHasher) Hash(domain, message, extraData []byte) (bls12377.G1Jac, error) {
	if bytes.Equal(message, f.fail) {
		return bls12377.G1Jac{}, errors.New("unmappable message")
	}
	return XMDHasher{}.Hash(domain, message, extraData)
}

func TestEncodeRoundTrip(t *testing.T) {
	for i := 0; i < 10; i++ {
		sig := &Signature{sig: randomG1Jac(t)}

		var buf bytes.Buffer
		n, err := sig.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(EncodedSize), n)

		var decoded Signature
		m, err := decoded.ReadFrom(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(EncodedSize), m)

		require.True(t, sig.Equal(&decoded))
	}
}

func TestEncodedSignBitMatchesPredicate(t *testing.T) {
	for i := 0; i < 10; i++ {
		sig := &Signature{sig: randomG1Jac(t)}
		aff := sig.Affine()

		encoded := sig.Bytes()
		encodedBit := encoded[EncodedSize-1]&signMask == signMask
		require.Equal(t, SignBitG1(&aff), encodedBit)
	}
}

func TestDecodeFlippedSignBit(t *testing.T) {
	sk, pk := genKeyPair(t)
	message := []byte("sign me")
	sig := signMessage(t, sk, SigDomain, message, nil)

	encoded := sig.Bytes()
	encoded[EncodedSize-1] ^= signMask

	var decoded Signature
	require.NoError(t, decoded.SetBytes(encoded[:]))

	// flipping the sign bit decodes to the negated point
	var neg bls12377.G1Jac
	orig := sig.Sig()
	neg.Neg(&orig)
	require.True(t, decoded.Equal(&Signature{sig: neg}))

	// which no longer verifies against the original message
	require.Error(t, verifyOne(&decoded, pk, message, nil))
}

func TestDecodeNoSquareRoot(t *testing.T) {
	sig := &Signature{sig: randomG1Jac(t)}
	encoded := sig.Bytes()

	// flip low bits of x until it lands outside the curve
	found := false
	for bit := 0; bit < 8*(EncodedSize-1) && !found; bit++ {
		corrupted := encoded
		corrupted[bit/8] ^= 1 << (bit % 8)

		var decoded Signature
		err := decoded.SetBytes(corrupted[:])
		if errors.Is(err, ErrNoSquareRoot) {
			found = true
		}
	}
	require.True(t, found, "expected some corrupted x to be a non-residue")
}

func TestDecodeShortRead(t *testing.T) {
	var decoded Signature
	err := decoded.SetBytes(make([]byte, 10))
	require.ErrorIs(t, err, ErrShortRead)

	err = decoded.SetBytes(nil)
	require.ErrorIs(t, err, ErrShortRead)
}
