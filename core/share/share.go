package share

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
)

// Share is a point (x, y) on a secret polynomial. The value holds the
// canonical byte encoding of y, either a field scalar or a group element
// depending on the scheme that produced it.
type Share struct {
	ID    Identifier
	Value []byte
}

type rawShare struct {
	Curve string `cbor:"curve"`
	ID    []byte `cbor:"id"`
	Value []byte `cbor:"value"`
}

// FromFieldElement builds a share whose value is a field scalar.
func FromFieldElement(id Identifier, y curve.Scalar) (*Share, error) {
	value, err := y.MarshalBinary()
	if err != nil {
		return nil, errors.WithMessage(ErrSerialization, err.Error())
	}
	return &Share{ID: id, Value: value}, nil
}

// FromGroupElement builds a share whose value is a group element.
func FromGroupElement(id Identifier, y curve.Point) (*Share, error) {
	value, err := y.MarshalBinary()
	if err != nil {
		return nil, errors.WithMessage(ErrSerialization, err.Error())
	}
	return &Share{ID: id, Value: value}, nil
}

// FieldElement parses the share value as a scalar of the given curve.
func (s *Share) FieldElement(group curve.Curve) (curve.Scalar, error) {
	y := group.NewScalar()
	if err := y.UnmarshalBinary(s.Value); err != nil {
		return nil, errors.WithMessage(ErrInvalidShare, err.Error())
	}
	return y, nil
}

// GroupElement parses the share value as a point of the given curve.
func (s *Share) GroupElement(group curve.Curve) (curve.Point, error) {
	y := group.NewPoint()
	if err := y.UnmarshalBinary(s.Value); err != nil {
		return nil, errors.WithMessage(ErrInvalidShare, err.Error())
	}
	return y, nil
}

// MarshalBinary encodes the share as a CBOR pair of identifier and value
// bytes, tagged with the curve name.
func (s *Share) MarshalBinary() ([]byte, error) {
	idBytes, err := s.ID.Bytes()
	if err != nil {
		return nil, err
	}
	raw := rawShare{
		Curve: s.ID.Curve().Name(),
		ID:    idBytes,
		Value: s.Value,
	}
	data, err := cbor.Marshal(raw)
	if err != nil {
		return nil, errors.WithMessage(ErrSerialization, err.Error())
	}
	return data, nil
}

// UnmarshalBinary decodes a share produced by MarshalBinary.
func (s *Share) UnmarshalBinary(data []byte) error {
	var raw rawShare
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(ErrSerialization, err.Error())
	}
	group, err := curve.FromName(raw.Curve)
	if err != nil {
		return errors.WithMessage(ErrSerialization, err.Error())
	}
	id, err := IdentifierFromBuffer(group, raw.ID)
	if err != nil {
		return err
	}
	s.ID = id
	s.Value = raw.Value
	return nil
}

// Compact encodes the share in the legacy one-byte-identifier layout
// [identifier | value...]. It fails when the identifier does not fit in a
// single byte.
func (s *Share) Compact() ([]byte, error) {
	idByte, err := s.ID.Byte()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 1+len(s.Value))
	out[0] = idByte
	copy(out[1:], s.Value)
	return out, nil
}

// FromCompact parses the legacy one-byte-identifier layout.
func FromCompact(group curve.Curve, data []byte) (*Share, error) {
	if len(data) < 2 {
		return nil, errors.WithMessage(ErrInvalidShare, "share: compact encoding too short")
	}
	id, err := IdentifierFromUint32(group, uint32(data[0]))
	if err != nil {
		return nil, err
	}
	value := make([]byte, len(data)-1)
	copy(value, data[1:])
	return &Share{ID: id, Value: value}, nil
}
