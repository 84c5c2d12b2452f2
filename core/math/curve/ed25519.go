package curve

import (
	"encoding/binary"

	ed "filippo.io/edwards25519"
	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// Edwards25519 is the twisted Edwards form of Curve25519. Scalars live in the
// ring of integers modulo the prime order l of the base point subgroup, so
// the scalar type presents field semantics even though the full curve group
// has a cofactor. Inversion of nonzero identifier differences always succeeds
// because l is prime.
type Edwards25519 struct{}

const edwards25519ScalarSize = 32

// l = 2^252 + 27742317777372353535851937790883648493, big-endian.
var edwards25519OrderBytes = []byte{
	0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x14, 0xde, 0xf9, 0xde, 0xa2, 0xf7, 0x9c, 0xd6,
	0x58, 0x12, 0x63, 0x1a, 0x5c, 0xf5, 0xd3, 0xed,
}

var edwards25519Order = saferith.ModulusFromBytes(edwards25519OrderBytes)

func (Edwards25519) NewScalar() Scalar {
	return &Edwards25519Scalar{}
}

func (Edwards25519) NewPoint() Point {
	p := &Edwards25519Point{}
	p.p.Set(ed.NewIdentityPoint())
	return p
}

func (Edwards25519) NewBasePoint() Point {
	p := &Edwards25519Point{}
	p.p.Set(ed.NewGeneratorPoint())
	return p
}

func (Edwards25519) Name() string {
	return "edwards25519"
}

func (Edwards25519) ScalarBits() int {
	return 253
}

func (Edwards25519) SafeScalarBytes() int {
	return edwards25519ScalarSize + 16
}

func (Edwards25519) Order() *saferith.Modulus {
	return edwards25519Order
}

// HashToPoint maps data to a point in the prime-order subgroup by hashing
// with an incrementing counter until a valid encoding is found, then
// clearing the cofactor.
func (c Edwards25519) HashToPoint(data []byte) Point {
	var counter uint32
	suffix := make([]byte, 4)
	for {
		binary.BigEndian.PutUint32(suffix, counter)
		digest := blake3.Sum256(append(append([]byte{}, data...), suffix...))
		candidate, err := new(ed.Point).SetBytes(digest[:])
		if err == nil {
			candidate.MultByCofactor(candidate)
			if candidate.Equal(ed.NewIdentityPoint()) != 1 {
				p := &Edwards25519Point{}
				p.p.Set(candidate)
				return p
			}
		}
		counter++
	}
}

// Edwards25519Scalar is an integer modulo the prime order of the base point
// subgroup of Curve25519.
type Edwards25519Scalar struct {
	s ed.Scalar
}

func (s *Edwards25519Scalar) Curve() Curve {
	return Edwards25519{}
}

func (s *Edwards25519Scalar) Add(v Scalar) Scalar {
	o := edwards25519CastScalar(v)
	s.s.Add(&s.s, &o.s)
	return s
}

func (s *Edwards25519Scalar) Sub(v Scalar) Scalar {
	o := edwards25519CastScalar(v)
	s.s.Subtract(&s.s, &o.s)
	return s
}

func (s *Edwards25519Scalar) Mul(v Scalar) Scalar {
	o := edwards25519CastScalar(v)
	s.s.Multiply(&s.s, &o.s)
	return s
}

func (s *Edwards25519Scalar) Invert() Scalar {
	s.s.Invert(&s.s)
	return s
}

func (s *Edwards25519Scalar) Negate() Scalar {
	s.s.Negate(&s.s)
	return s
}

func (s *Edwards25519Scalar) Set(v Scalar) Scalar {
	o := edwards25519CastScalar(v)
	s.s.Set(&o.s)
	return s
}

func (s *Edwards25519Scalar) SetNat(n *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(n, edwards25519Order)
	buf := make([]byte, edwards25519ScalarSize)
	fillBigEndian(buf, reduced.Bytes())
	reverseBytes(buf)
	if _, err := s.s.SetCanonicalBytes(buf); err != nil {
		// A value reduced modulo l is always canonical.
		panic("edwards25519: reduced scalar is not canonical")
	}
	return s
}

func (s *Edwards25519Scalar) SetUInt32(v uint32) Scalar {
	buf := make([]byte, edwards25519ScalarSize)
	binary.LittleEndian.PutUint32(buf, v)
	if _, err := s.s.SetCanonicalBytes(buf); err != nil {
		panic("edwards25519: small scalar is not canonical")
	}
	return s
}

func (s *Edwards25519Scalar) Equal(v Scalar) bool {
	o := edwards25519CastScalar(v)
	return s.s.Equal(&o.s) == 1
}

func (s *Edwards25519Scalar) IsZero() bool {
	return s.s.Equal(ed.NewScalar()) == 1
}

func (s *Edwards25519Scalar) Act(p Point) Point {
	o := edwards25519CastPoint(p)
	result := &Edwards25519Point{}
	result.p.ScalarMult(&s.s, &o.p)
	return result
}

func (s *Edwards25519Scalar) ActOnBase() Point {
	result := &Edwards25519Point{}
	result.p.ScalarBaseMult(&s.s)
	return result
}

func (s *Edwards25519Scalar) Zero() Scalar {
	s.s.Set(ed.NewScalar())
	return s
}

func (s *Edwards25519Scalar) MarshalBinary() ([]byte, error) {
	return s.s.Bytes(), nil
}

func (s *Edwards25519Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != edwards25519ScalarSize {
		return errors.Errorf("edwards25519: scalar encoding must be %d bytes", edwards25519ScalarSize)
	}
	if _, err := s.s.SetCanonicalBytes(data); err != nil {
		return errors.WithMessage(err, "edwards25519: invalid scalar encoding")
	}
	return nil
}

// Edwards25519Point is a point on the edwards25519 curve.
type Edwards25519Point struct {
	p ed.Point
}

func (p *Edwards25519Point) Curve() Curve {
	return Edwards25519{}
}

func (p *Edwards25519Point) Add(v Point) Point {
	o := edwards25519CastPoint(v)
	p.p.Add(&p.p, &o.p)
	return p
}

func (p *Edwards25519Point) Sub(v Point) Point {
	o := edwards25519CastPoint(v)
	p.p.Subtract(&p.p, &o.p)
	return p
}

func (p *Edwards25519Point) Negate() Point {
	p.p.Negate(&p.p)
	return p
}

func (p *Edwards25519Point) Set(v Point) Point {
	o := edwards25519CastPoint(v)
	p.p.Set(&o.p)
	return p
}

func (p *Edwards25519Point) Equal(v Point) bool {
	o := edwards25519CastPoint(v)
	return p.p.Equal(&o.p) == 1
}

func (p *Edwards25519Point) IsIdentity() bool {
	return p.p.Equal(ed.NewIdentityPoint()) == 1
}

func (p *Edwards25519Point) MarshalBinary() ([]byte, error) {
	return p.p.Bytes(), nil
}

func (p *Edwards25519Point) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return errors.New("edwards25519: point encoding must be 32 bytes")
	}
	if _, err := p.p.SetBytes(data); err != nil {
		return errors.WithMessage(err, "edwards25519: invalid point encoding")
	}
	return nil
}

func edwards25519CastScalar(v Scalar) *Edwards25519Scalar {
	o, ok := v.(*Edwards25519Scalar)
	if !ok {
		panic("curve: expected an edwards25519 scalar")
	}
	return o
}

func edwards25519CastPoint(v Point) *Edwards25519Point {
	o, ok := v.(*Edwards25519Point)
	if !ok {
		panic("curve: expected an edwards25519 point")
	}
	return o
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
