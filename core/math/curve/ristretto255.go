package curve

import (
	"crypto/subtle"
	"math/big"

	"github.com/bwesterb/go-ristretto"
	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// Ristretto255 is the prime-order group built on top of Curve25519 via the
// ristretto encoding. Unlike Edwards25519 there is no cofactor to account
// for, which makes it the preferred group for Pedersen commitments.
type Ristretto255 struct{}

const ristretto255ScalarSize = 32

func (Ristretto255) NewScalar() Scalar {
	s := &Ristretto255Scalar{}
	s.s.SetZero()
	return s
}

func (Ristretto255) NewPoint() Point {
	p := &Ristretto255Point{}
	p.p.SetZero()
	return p
}

func (Ristretto255) NewBasePoint() Point {
	p := &Ristretto255Point{}
	p.p.SetBase()
	return p
}

func (Ristretto255) Name() string {
	return "ristretto255"
}

func (Ristretto255) ScalarBits() int {
	return 253
}

func (Ristretto255) SafeScalarBytes() int {
	return ristretto255ScalarSize + 16
}

func (Ristretto255) Order() *saferith.Modulus {
	return edwards25519Order
}

// HashToPoint maps data to a group element using the Elligator-based
// derivation of the ristretto group.
func (Ristretto255) HashToPoint(data []byte) Point {
	p := &Ristretto255Point{}
	p.p.Derive(data)
	return p
}

// Ristretto255Scalar is an integer modulo the prime order of the ristretto group.
type Ristretto255Scalar struct {
	s ristretto.Scalar
}

func (s *Ristretto255Scalar) Curve() Curve {
	return Ristretto255{}
}

func (s *Ristretto255Scalar) Add(v Scalar) Scalar {
	o := ristretto255CastScalar(v)
	s.s.Add(&s.s, &o.s)
	return s
}

func (s *Ristretto255Scalar) Sub(v Scalar) Scalar {
	o := ristretto255CastScalar(v)
	s.s.Sub(&s.s, &o.s)
	return s
}

func (s *Ristretto255Scalar) Mul(v Scalar) Scalar {
	o := ristretto255CastScalar(v)
	s.s.Mul(&s.s, &o.s)
	return s
}

func (s *Ristretto255Scalar) Invert() Scalar {
	s.s.Inverse(&s.s)
	return s
}

func (s *Ristretto255Scalar) Negate() Scalar {
	s.s.Neg(&s.s)
	return s
}

func (s *Ristretto255Scalar) Set(v Scalar) Scalar {
	o := ristretto255CastScalar(v)
	s.s.Set(&o.s)
	return s
}

func (s *Ristretto255Scalar) SetNat(n *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(n, edwards25519Order)
	s.s.SetBigInt(new(big.Int).SetBytes(reduced.Bytes()))
	return s
}

func (s *Ristretto255Scalar) SetUInt32(v uint32) Scalar {
	s.s.SetBigInt(new(big.Int).SetUint64(uint64(v)))
	return s
}

func (s *Ristretto255Scalar) Equal(v Scalar) bool {
	o := ristretto255CastScalar(v)
	var a, b [32]byte
	s.s.BytesInto(&a)
	o.s.BytesInto(&b)
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

func (s *Ristretto255Scalar) IsZero() bool {
	var zero ristretto.Scalar
	zero.SetZero()
	var a, b [32]byte
	s.s.BytesInto(&a)
	zero.BytesInto(&b)
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

func (s *Ristretto255Scalar) Act(p Point) Point {
	o := ristretto255CastPoint(p)
	result := &Ristretto255Point{}
	result.p.ScalarMult(&o.p, &s.s)
	return result
}

func (s *Ristretto255Scalar) ActOnBase() Point {
	result := &Ristretto255Point{}
	result.p.ScalarMultBase(&s.s)
	return result
}

func (s *Ristretto255Scalar) Zero() Scalar {
	s.s.SetZero()
	return s
}

func (s *Ristretto255Scalar) MarshalBinary() ([]byte, error) {
	var buf [32]byte
	s.s.BytesInto(&buf)
	return buf[:], nil
}

func (s *Ristretto255Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != ristretto255ScalarSize {
		return errors.Errorf("ristretto255: scalar encoding must be %d bytes", ristretto255ScalarSize)
	}
	// Reject non-canonical encodings by round-tripping.
	var buf [32]byte
	copy(buf[:], data)
	s.s.SetBytes(&buf)
	var check [32]byte
	s.s.BytesInto(&check)
	if subtle.ConstantTimeCompare(check[:], data) != 1 {
		return errors.New("ristretto255: non-canonical scalar encoding")
	}
	return nil
}

// Ristretto255Point is an element of the ristretto group.
type Ristretto255Point struct {
	p ristretto.Point
}

func (p *Ristretto255Point) Curve() Curve {
	return Ristretto255{}
}

func (p *Ristretto255Point) Add(v Point) Point {
	o := ristretto255CastPoint(v)
	p.p.Add(&p.p, &o.p)
	return p
}

func (p *Ristretto255Point) Sub(v Point) Point {
	o := ristretto255CastPoint(v)
	p.p.Sub(&p.p, &o.p)
	return p
}

func (p *Ristretto255Point) Negate() Point {
	p.p.Neg(&p.p)
	return p
}

func (p *Ristretto255Point) Set(v Point) Point {
	o := ristretto255CastPoint(v)
	p.p.Set(&o.p)
	return p
}

func (p *Ristretto255Point) Equal(v Point) bool {
	o := ristretto255CastPoint(v)
	return p.p.Equals(&o.p)
}

func (p *Ristretto255Point) IsIdentity() bool {
	var identity ristretto.Point
	identity.SetZero()
	return p.p.Equals(&identity)
}

func (p *Ristretto255Point) MarshalBinary() ([]byte, error) {
	var buf [32]byte
	p.p.BytesInto(&buf)
	return buf[:], nil
}

func (p *Ristretto255Point) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return errors.New("ristretto255: point encoding must be 32 bytes")
	}
	var buf [32]byte
	copy(buf[:], data)
	if ok := p.p.SetBytes(&buf); !ok {
		return errors.New("ristretto255: invalid point encoding")
	}
	return nil
}

func ristretto255CastScalar(v Scalar) *Ristretto255Scalar {
	o, ok := v.(*Ristretto255Scalar)
	if !ok {
		panic("curve: expected a ristretto255 scalar")
	}
	return o
}

func ristretto255CastPoint(v Point) *Ristretto255Point {
	o, ok := v.(*Ristretto255Point)
	if !ok {
		panic("curve: expected a ristretto255 point")
	}
	return o
}
