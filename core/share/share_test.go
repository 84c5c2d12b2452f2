package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
)

func TestNewIdentifierRejectsZero(t *testing.T) {
	group := curve.Secp256k1{}

	_, err := NewIdentifier(group.NewScalar())
	assert.ErrorIs(t, err, ErrZeroIdentifier)

	_, err = NewIdentifier(nil)
	assert.ErrorIs(t, err, ErrZeroIdentifier)

	_, err = IdentifierFromUint32(group, 0)
	assert.ErrorIs(t, err, ErrZeroIdentifier)
}

func TestIdentifierBufferRoundTrip(t *testing.T) {
	for _, group := range []curve.Curve{curve.Secp256k1{}, curve.Edwards25519{}, curve.Ristretto255{}} {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			id, err := IdentifierFromUint32(group, 0x01020304)
			require.NoError(t, err)

			buf := make([]byte, id.Width())
			require.NoError(t, id.ToBuffer(buf))

			back, err := IdentifierFromBuffer(group, buf)
			require.NoError(t, err)
			assert.True(t, id.Equal(back))
		})
	}
}

func TestIdentifierToBufferWrongLength(t *testing.T) {
	group := curve.Secp256k1{}
	id, err := IdentifierFromUint32(group, 7)
	require.NoError(t, err)

	assert.ErrorIs(t, id.ToBuffer(make([]byte, id.Width()-1)), ErrSerialization)
}

func TestIdentifierByteProjection(t *testing.T) {
	for _, group := range []curve.Curve{curve.Secp256k1{}, curve.Edwards25519{}} {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			id, err := IdentifierFromUint32(group, 200)
			require.NoError(t, err)

			b, err := id.Byte()
			require.NoError(t, err)
			assert.Equal(t, byte(200), b)

			big, err := IdentifierFromUint32(group, 256)
			require.NoError(t, err)
			_, err = big.Byte()
			assert.ErrorIs(t, err, ErrSerialization)
		})
	}
}

func TestShareFieldElementRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	id, err := IdentifierFromUint32(group, 3)
	require.NoError(t, err)

	y := group.NewScalar().SetUInt32(12345)
	s, err := FromFieldElement(id, y)
	require.NoError(t, err)

	back, err := s.FieldElement(group)
	require.NoError(t, err)
	assert.True(t, y.Equal(back))
}

func TestShareGroupElementRoundTrip(t *testing.T) {
	group := curve.Ristretto255{}
	id, err := IdentifierFromUint32(group, 3)
	require.NoError(t, err)

	y := group.NewScalar().SetUInt32(77).ActOnBase()
	s, err := FromGroupElement(id, y)
	require.NoError(t, err)

	back, err := s.GroupElement(group)
	require.NoError(t, err)
	assert.True(t, y.Equal(back))
}

func TestShareFieldElementRejectsGarbage(t *testing.T) {
	group := curve.Secp256k1{}
	id, err := IdentifierFromUint32(group, 3)
	require.NoError(t, err)

	s := &Share{ID: id, Value: []byte{1, 2, 3}}
	_, err = s.FieldElement(group)
	assert.ErrorIs(t, err, ErrInvalidShare)
}

func TestShareMarshalRoundTrip(t *testing.T) {
	group := curve.Edwards25519{}
	id, err := IdentifierFromUint32(group, 9)
	require.NoError(t, err)

	y := group.NewScalar().SetUInt32(4242)
	s, err := FromFieldElement(id, y)
	require.NoError(t, err)

	data, err := s.MarshalBinary()
	require.NoError(t, err)

	restored := &Share{}
	require.NoError(t, restored.UnmarshalBinary(data))

	assert.True(t, s.ID.Equal(restored.ID))
	assert.Equal(t, s.Value, restored.Value)
}

func TestShareCompactRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	id, err := IdentifierFromUint32(group, 5)
	require.NoError(t, err)

	y := group.NewScalar().SetUInt32(999)
	s, err := FromFieldElement(id, y)
	require.NoError(t, err)

	data, err := s.Compact()
	require.NoError(t, err)
	assert.Equal(t, byte(5), data[0])
	assert.Len(t, data, 1+len(s.Value))

	restored, err := FromCompact(group, data)
	require.NoError(t, err)
	assert.True(t, s.ID.Equal(restored.ID))
	assert.Equal(t, s.Value, restored.Value)
}

func TestFromCompactRejectsZeroIdentifier(t *testing.T) {
	group := curve.Secp256k1{}
	_, err := FromCompact(group, []byte{0, 1, 2, 3})
	assert.ErrorIs(t, err, ErrZeroIdentifier)
}

func TestFromCompactRejectsShortInput(t *testing.T) {
	group := curve.Secp256k1{}
	_, err := FromCompact(group, []byte{1})
	assert.ErrorIs(t, err, ErrInvalidShare)
}
