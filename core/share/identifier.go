package share

import (
	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
)

// Identifier is the nonzero x-coordinate labelling a share. Zero is reserved
// for the secret, so constructors reject it.
type Identifier struct {
	scalar curve.Scalar
}

// NewIdentifier wraps a scalar as an identifier, rejecting zero.
func NewIdentifier(scalar curve.Scalar) (Identifier, error) {
	if scalar == nil || scalar.IsZero() {
		return Identifier{}, errors.WithMessage(ErrZeroIdentifier, "share: identifier constructor")
	}
	group := scalar.Curve()
	return Identifier{scalar: group.NewScalar().Set(scalar)}, nil
}

// IdentifierFromUint32 lifts a small integer into the scalar field.
func IdentifierFromUint32(group curve.Curve, value uint32) (Identifier, error) {
	return NewIdentifier(group.NewScalar().SetUInt32(value))
}

// IdentifierFromBuffer parses an identifier from its canonical byte encoding.
func IdentifierFromBuffer(group curve.Curve, buf []byte) (Identifier, error) {
	scalar := group.NewScalar()
	if err := scalar.UnmarshalBinary(buf); err != nil {
		return Identifier{}, errors.WithMessage(ErrSerialization, err.Error())
	}
	return NewIdentifier(scalar)
}

// Scalar returns a copy of the identifier as a field element.
func (i Identifier) Scalar() curve.Scalar {
	group := i.scalar.Curve()
	return group.NewScalar().Set(i.scalar)
}

// Curve returns the curve the identifier belongs to.
func (i Identifier) Curve() curve.Curve {
	return i.scalar.Curve()
}

// Width returns the fixed byte width of the identifier encoding.
func (i Identifier) Width() int {
	b, _ := i.scalar.MarshalBinary()
	return len(b)
}

// Bytes returns the canonical byte encoding of the identifier.
func (i Identifier) Bytes() ([]byte, error) {
	b, err := i.scalar.MarshalBinary()
	if err != nil {
		return nil, errors.WithMessage(ErrSerialization, err.Error())
	}
	return b, nil
}

// ToBuffer writes the canonical encoding into dst, which must be exactly
// Width bytes long.
func (i Identifier) ToBuffer(dst []byte) error {
	b, err := i.Bytes()
	if err != nil {
		return err
	}
	if len(dst) != len(b) {
		return errors.WithMessagef(ErrSerialization, "share: identifier buffer needs %d bytes", len(b))
	}
	copy(dst, b)
	return nil
}

// Byte projects the identifier onto a single byte for the compact share
// layout. It succeeds only when the scalar value fits in one byte, which is
// detected on the canonical encoding regardless of its endianness.
func (i Identifier) Byte() (byte, error) {
	b, err := i.Bytes()
	if err != nil {
		return 0, err
	}
	fits := func(c byte) bool {
		return i.scalar.Curve().NewScalar().SetUInt32(uint32(c)).Equal(i.scalar)
	}
	if allZero(b[1:]) && fits(b[0]) {
		return b[0], nil
	}
	if allZero(b[:len(b)-1]) && fits(b[len(b)-1]) {
		return b[len(b)-1], nil
	}
	return 0, errors.WithMessage(ErrSerialization, "share: identifier does not fit in one byte")
}

// Equal compares two identifiers in constant time.
func (i Identifier) Equal(other Identifier) bool {
	return i.scalar.Equal(other.scalar)
}

// IsZero reports whether the identifier is the zero element. A correctly
// constructed identifier is never zero.
func (i Identifier) IsZero() bool {
	return i.scalar == nil || i.scalar.IsZero()
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
