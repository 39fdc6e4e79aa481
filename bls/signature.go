package bls

import (
	"bytes"
	"fmt"
	"io"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fp"
)

// EncodedSize is the byte length of a compressed signature: the fixed width
// of a base field element, with the sign bit packed into the top bit of the
// last byte.
const EncodedSize = fp.Bytes

// signMask is the bit of the last encoded byte that carries the sign of y.
const signMask = 0x80

var (
	g2GenNeg bls12377.G2Affine

	// bCurveCoeff is the constant term of the G1 curve equation
	// y^2 = x^3 + b (a = 0 on BLS12-377).
	bCurveCoeff fp.Element
)

func init() {
	_, _, _, g2Gen := bls12377.Generators()
	g2GenNeg.Neg(&g2Gen)
	bCurveCoeff.SetOne()
}

// Message is one entry of a verification batch: the signed bytes plus an
// optional extra data field (empty otherwise).
type Message struct {
	Data  []byte
	Extra []byte
}

// Signature is a point in G1, stored projectively. The zero value is the
// identity, which is also the aggregate of an empty batch.
type Signature struct {
	sig bls12377.G1Jac
}

// NewSignature wraps a G1 point as a signature.
func NewSignature(sig bls12377.G1Jac) *Signature {
	return &Signature{sig: sig}
}

// Sig returns the underlying G1 point.
func (s *Signature) Sig() bls12377.G1Jac {
	return s.sig
}

// Affine returns the signature in affine coordinates.
func (s *Signature) Affine() bls12377.G1Affine {
	var aff bls12377.G1Affine
	aff.FromJacobian(&s.sig)
	return aff
}

// Equal reports whether two signatures are the same group element.
func (s *Signature) Equal(other *Signature) bool {
	return s.sig.Equal(&other.sig)
}

// AggregateSignatures sums the provided signatures to produce the aggregate
// signature. The empty aggregate is the G1 identity.
func AggregateSignatures(signatures []*Signature) *Signature {
	var asig bls12377.G1Jac
	for _, sig := range signatures {
		asig.AddAssign(&sig.sig)
	}
	return &Signature{sig: asig}
}

// BatchVerify verifies the signature against a batch of pubkey & message
// pairs, for the provided message domain. Each message is hashed to G1 with
// the provided oracle; a hash failure is reported per message so the caller
// can locate it. pubkeys and messages are expected to be parallel sequences;
// trailing entries without a counterpart are ignored.
//
// The verification equation can be found in pg.11 from
// https://eprint.iacr.org/2018/483.pdf: "Batch verification".
func (s *Signature) BatchVerify(pubkeys []*PublicKey, domain []byte, messages []Message, hashToG1 HashToG1) error {
	hashes := make([]bls12377.G1Jac, len(messages))
	for i, m := range messages {
		h, err := hashToG1.Hash(domain, m.Data, m.Extra)
		if err != nil {
			return &HashToCurveError{Message: m.Data, ExtraData: m.Extra}
		}
		hashes[i] = h
	}

	return s.BatchVerifyHashes(pubkeys, hashes)
}

// BatchVerifyHashes verifies the signature against a batch of pubkey &
// message hash pairs. This is a lower level method; if you prefer hashing to
// be done internally, consider using BatchVerify.
//
// The check is the single product of pairings
//
//	e(sig, -g2) * prod_i e(h_i, pk_i) == 1
//
// evaluated with one shared final exponentiation, which is what makes
// verifying a batch cheaper than verifying its members one by one.
func (s *Signature) BatchVerifyHashes(pubkeys []*PublicKey, hashes []bls12377.G1Jac) error {
	n := len(hashes)
	if len(pubkeys) < n {
		n = len(pubkeys)
	}

	g1Points := make([]bls12377.G1Affine, 0, n+1)
	g2Points := make([]bls12377.G2Affine, 0, n+1)

	var sigAff bls12377.G1Affine
	sigAff.FromJacobian(&s.sig)
	g1Points = append(g1Points, sigAff)
	g2Points = append(g2Points, g2GenNeg)

	for i := 0; i < n; i++ {
		var h bls12377.G1Affine
		h.FromJacobian(&hashes[i])
		var pk bls12377.G2Affine
		pk.FromJacobian(&pubkeys[i].pk)
		g1Points = append(g1Points, h)
		g2Points = append(g2Points, pk)
	}

	ok, err := bls12377.PairingCheck(g1Points, g2Points)
	if err != nil {
		return fmt.Errorf("pairing check: %w", err)
	}
	if !ok {
		return ErrVerificationFailed
	}
	return nil
}

// WriteTo serializes the signature as the fixed-width little-endian x
// coordinate, with the top bit of the last byte set when y > (p-1)/2.
// It implements io.WriterTo.
func (s *Signature) WriteTo(w io.Writer) (int64, error) {
	var aff bls12377.G1Affine
	aff.FromJacobian(&s.sig)

	var buf [EncodedSize]byte
	fp.LittleEndian.PutElement(&buf, aff.X)
	if SignBitG1(&aff) {
		buf[EncodedSize-1] |= signMask
	}

	n, err := w.Write(buf[:])
	return int64(n), err
}

// ReadFrom decodes a signature from exactly EncodedSize bytes: the sign bit
// is stripped from the last byte, x is decoded as a canonical little-endian
// field element, and y is recovered as the square root of x^3 + b selected by
// the sign bit. It implements io.ReaderFrom.
//
// The decoded point is on the curve but is not checked for membership in the
// prime-order subgroup; callers that need the subgroup check must do it
// themselves.
func (s *Signature) ReadFrom(r io.Reader) (int64, error) {
	var buf [EncodedSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrShortRead
		}
		return int64(n), err
	}

	yOverHalf := buf[EncodedSize-1]&signMask == signMask
	buf[EncodedSize-1] &^= signMask

	x, err := fp.LittleEndian.Element(&buf)
	if err != nil {
		return int64(n), fmt.Errorf("bls: decode x coordinate: %w", err)
	}

	var t fp.Element
	t.Square(&x).Mul(&t, &x).Add(&t, &bCurveCoeff)

	var y fp.Element
	if y.Sqrt(&t) == nil {
		return int64(n), ErrNoSquareRoot
	}

	// Sqrt returns one of the two roots; pick y itself when "y is the small
	// root" XOR "the stored bit asks for the big one", the negation
	// otherwise.
	small := !y.LexicographicallyLargest()
	if small == yOverHalf {
		y.Neg(&y)
	}

	aff := bls12377.G1Affine{X: x, Y: y}
	s.sig.FromAffine(&aff)
	return int64(n), nil
}

// Bytes returns the compressed encoding of the signature.
func (s *Signature) Bytes() [EncodedSize]byte {
	var aff bls12377.G1Affine
	aff.FromJacobian(&s.sig)

	var buf [EncodedSize]byte
	fp.LittleEndian.PutElement(&buf, aff.X)
	if SignBitG1(&aff) {
		buf[EncodedSize-1] |= signMask
	}
	return buf
}

// SetBytes decodes the signature from its compressed encoding.
func (s *Signature) SetBytes(data []byte) error {
	_, err := s.ReadFrom(bytes.NewReader(data))
	return err
}
