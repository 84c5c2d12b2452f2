package curve

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// Secp256k1 is the secp256k1 curve with scalars modulo the group order N.
type Secp256k1 struct{}

const secp256k1ScalarSize = 32

var secp256k1Order = saferith.ModulusFromBytes(secp256k1.S256().N.Bytes())

func (Secp256k1) NewScalar() Scalar {
	return &Secp256k1Scalar{}
}

func (Secp256k1) NewPoint() Point {
	return &Secp256k1Point{}
}

func (Secp256k1) NewBasePoint() Point {
	p := &Secp256k1Point{}
	one := new(secp256k1.ModNScalar)
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &p.p)
	return p
}

func (Secp256k1) Name() string {
	return "secp256k1"
}

func (Secp256k1) ScalarBits() int {
	return 256
}

func (Secp256k1) SafeScalarBytes() int {
	return secp256k1ScalarSize + 16
}

func (Secp256k1) Order() *saferith.Modulus {
	return secp256k1Order
}

// HashToPoint maps data to a curve point by hashing with an incrementing
// counter until the digest is a valid compressed point encoding.
func (c Secp256k1) HashToPoint(data []byte) Point {
	var counter uint32
	candidate := make([]byte, 33)
	candidate[0] = secp256k1.PubKeyFormatCompressedEven
	suffix := make([]byte, 4)
	for {
		binary.BigEndian.PutUint32(suffix, counter)
		digest := blake3.Sum256(append(append([]byte{}, data...), suffix...))
		copy(candidate[1:], digest[:])
		pk, err := secp256k1.ParsePubKey(candidate)
		if err == nil {
			p := &Secp256k1Point{}
			pk.AsJacobian(&p.p)
			return p
		}
		counter++
	}
}

// Secp256k1Scalar is an integer modulo the order of the secp256k1 group.
type Secp256k1Scalar struct {
	s secp256k1.ModNScalar
}

func (s *Secp256k1Scalar) Curve() Curve {
	return Secp256k1{}
}

func (s *Secp256k1Scalar) Add(v Scalar) Scalar {
	o := secp256k1CastScalar(v)
	s.s.Add(&o.s)
	return s
}

func (s *Secp256k1Scalar) Sub(v Scalar) Scalar {
	o := secp256k1CastScalar(v)
	neg := o.s
	neg.Negate()
	s.s.Add(&neg)
	return s
}

func (s *Secp256k1Scalar) Mul(v Scalar) Scalar {
	o := secp256k1CastScalar(v)
	s.s.Mul(&o.s)
	return s
}

func (s *Secp256k1Scalar) Invert() Scalar {
	// Identifiers and Lagrange denominators are public values, so a
	// variable-time inverse does not leak secret material.
	s.s.InverseValNonConst(&s.s)
	return s
}

func (s *Secp256k1Scalar) Negate() Scalar {
	s.s.Negate()
	return s
}

func (s *Secp256k1Scalar) Set(v Scalar) Scalar {
	o := secp256k1CastScalar(v)
	s.s = o.s
	return s
}

func (s *Secp256k1Scalar) SetNat(n *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(n, secp256k1Order)
	buf := make([]byte, secp256k1ScalarSize)
	fillBigEndian(buf, reduced.Bytes())
	s.s.SetByteSlice(buf)
	return s
}

func (s *Secp256k1Scalar) SetUInt32(v uint32) Scalar {
	s.s.SetInt(v)
	return s
}

func (s *Secp256k1Scalar) Equal(v Scalar) bool {
	o := secp256k1CastScalar(v)
	a := s.s.Bytes()
	b := o.s.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

func (s *Secp256k1Scalar) IsZero() bool {
	return s.s.IsZero()
}

func (s *Secp256k1Scalar) Act(p Point) Point {
	o := secp256k1CastPoint(p)
	result := &Secp256k1Point{}
	secp256k1.ScalarMultNonConst(&s.s, &o.p, &result.p)
	return result
}

func (s *Secp256k1Scalar) ActOnBase() Point {
	result := &Secp256k1Point{}
	secp256k1.ScalarBaseMultNonConst(&s.s, &result.p)
	return result
}

func (s *Secp256k1Scalar) Zero() Scalar {
	s.s.Zero()
	return s
}

func (s *Secp256k1Scalar) MarshalBinary() ([]byte, error) {
	b := s.s.Bytes()
	return b[:], nil
}

func (s *Secp256k1Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != secp256k1ScalarSize {
		return errors.Errorf("secp256k1: scalar encoding must be %d bytes", secp256k1ScalarSize)
	}
	var buf [secp256k1ScalarSize]byte
	copy(buf[:], data)
	if overflow := s.s.SetBytes(&buf); overflow != 0 {
		return errors.New("secp256k1: scalar encoding overflows the group order")
	}
	return nil
}

// Secp256k1Point is a point on the secp256k1 curve, including the identity.
type Secp256k1Point struct {
	p secp256k1.JacobianPoint
}

func (p *Secp256k1Point) Curve() Curve {
	return Secp256k1{}
}

func (p *Secp256k1Point) Add(v Point) Point {
	o := secp256k1CastPoint(v)
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &o.p, &result)
	p.p = result
	return p
}

func (p *Secp256k1Point) Sub(v Point) Point {
	o := secp256k1CastPoint(v)
	neg := o.p
	neg.Y.Normalize()
	neg.Y.Negate(1)
	neg.Y.Normalize()
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &neg, &result)
	p.p = result
	return p
}

func (p *Secp256k1Point) Negate() Point {
	p.p.Y.Normalize()
	p.p.Y.Negate(1)
	p.p.Y.Normalize()
	return p
}

func (p *Secp256k1Point) Set(v Point) Point {
	o := secp256k1CastPoint(v)
	p.p = o.p
	return p
}

func (p *Secp256k1Point) Equal(v Point) bool {
	o := secp256k1CastPoint(v)
	a, err1 := p.MarshalBinary()
	b, err2 := o.MarshalBinary()
	if err1 != nil || err2 != nil {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

func (p *Secp256k1Point) IsIdentity() bool {
	x, y, z := p.p.X, p.p.Y, p.p.Z
	return (x.Normalize().IsZero() && y.Normalize().IsZero()) || z.Normalize().IsZero()
}

func (p *Secp256k1Point) MarshalBinary() ([]byte, error) {
	if p.IsIdentity() {
		return make([]byte, 33), nil
	}
	affine := p.p
	affine.ToAffine()
	pk := secp256k1.NewPublicKey(&affine.X, &affine.Y)
	return pk.SerializeCompressed(), nil
}

func (p *Secp256k1Point) UnmarshalBinary(data []byte) error {
	if len(data) != 33 {
		return errors.New("secp256k1: point encoding must be 33 bytes")
	}
	allZero := true
	for _, b := range data {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		p.p = secp256k1.JacobianPoint{}
		return nil
	}
	pk, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return errors.WithMessage(err, "secp256k1: invalid point encoding")
	}
	pk.AsJacobian(&p.p)
	return nil
}

func secp256k1CastScalar(v Scalar) *Secp256k1Scalar {
	o, ok := v.(*Secp256k1Scalar)
	if !ok {
		panic("curve: expected a secp256k1 scalar")
	}
	return o
}

func secp256k1CastPoint(v Point) *Secp256k1Point {
	o, ok := v.(*Secp256k1Point)
	if !ok {
		panic("curve: expected a secp256k1 point")
	}
	return o
}

// fillBigEndian right-aligns src in dst, zeroing any leading bytes.
func fillBigEndian(dst, src []byte) {
	for i := range dst {
		dst[i] = 0
	}
	if len(src) > len(dst) {
		src = src[len(src)-len(dst):]
	}
	copy(dst[len(dst)-len(src):], src)
}
