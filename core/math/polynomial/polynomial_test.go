package polynomial

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/math/sample"
	"github.com/mr-shifu/vsss-lib/core/share"
)

func TestNewPolynomialThresholdTooSmall(t *testing.T) {
	group := curve.Secp256k1{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	for _, threshold := range []int{-1, 0, 1} {
		_, err := NewPolynomial(group, threshold, secret, rand.Reader)
		assert.ErrorIs(t, err, share.ErrInvalidParameters)
	}
}

func TestNewPolynomialConstantTerm(t *testing.T) {
	group := curve.Edwards25519{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	poly, err := NewPolynomial(group, 4, secret, rand.Reader)
	require.NoError(t, err)
	defer poly.Zeroize()

	assert.True(t, poly.Constant().Equal(secret))
	assert.Equal(t, 4, poly.Threshold())
}

func TestNewPolynomialNilConstantIsZero(t *testing.T) {
	group := curve.Secp256k1{}
	poly, err := NewPolynomial(group, 3, nil, rand.Reader)
	require.NoError(t, err)
	defer poly.Zeroize()

	assert.True(t, poly.Constant().IsZero())
}

func TestNewPolynomialLeadingCoefficientNonZero(t *testing.T) {
	group := curve.Secp256k1{}
	for i := 0; i < 32; i++ {
		poly, err := NewPolynomial(group, 2, nil, rand.Reader)
		require.NoError(t, err)
		coefficients := poly.Coefficients()
		assert.False(t, coefficients[len(coefficients)-1].IsZero())
		poly.Zeroize()
	}
}

func TestEvaluateAtZeroRejected(t *testing.T) {
	group := curve.Secp256k1{}
	poly, err := NewPolynomial(group, 3, nil, rand.Reader)
	require.NoError(t, err)
	defer poly.Zeroize()

	_, err = poly.Evaluate(group.NewScalar())
	assert.ErrorIs(t, err, share.ErrZeroIdentifier)

	_, err = poly.Evaluate(nil)
	assert.ErrorIs(t, err, share.ErrZeroIdentifier)
}

func TestEvaluateMatchesDirectSum(t *testing.T) {
	group := curve.Ristretto255{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	poly, err := NewPolynomial(group, 5, secret, rand.Reader)
	require.NoError(t, err)
	defer poly.Zeroize()

	x, err := sample.ScalarNonZero(rand.Reader, group)
	require.NoError(t, err)

	got, err := poly.Evaluate(x)
	require.NoError(t, err)

	// Σ cᵢ·xⁱ computed term by term.
	expected := group.NewScalar()
	power := group.NewScalar().SetUInt32(1)
	for _, c := range poly.Coefficients() {
		expected.Add(group.NewScalar().Set(c).Mul(power))
		power.Mul(x)
	}
	assert.True(t, got.Equal(expected))
}

func TestZeroizeWipesCoefficients(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUInt32(11)
	poly, err := NewPolynomial(group, 3, secret, rand.Reader)
	require.NoError(t, err)

	poly.Zeroize()
	for _, c := range poly.Coefficients() {
		assert.True(t, c.IsZero())
	}
}

func TestExponentEvaluateMatchesScalarEvaluation(t *testing.T) {
	group := curve.Edwards25519{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	poly, err := NewPolynomial(group, 3, secret, rand.Reader)
	require.NoError(t, err)
	defer poly.Zeroize()

	exponent := NewExponent(nil, poly)

	x, err := sample.ScalarNonZero(rand.Reader, group)
	require.NoError(t, err)

	y, err := poly.Evaluate(x)
	require.NoError(t, err)

	committed, err := exponent.Evaluate(x)
	require.NoError(t, err)
	assert.True(t, committed.Equal(y.ActOnBase()))
}

func TestExponentCustomGenerator(t *testing.T) {
	group := curve.Ristretto255{}
	generator := group.HashToPoint([]byte("alternate generator"))

	poly, err := NewPolynomial(group, 2, group.NewScalar().SetUInt32(9), rand.Reader)
	require.NoError(t, err)
	defer poly.Zeroize()

	exponent := NewExponent(generator, poly)

	x := group.NewScalar().SetUInt32(3)
	y, err := poly.Evaluate(x)
	require.NoError(t, err)

	committed, err := exponent.Evaluate(x)
	require.NoError(t, err)
	assert.True(t, committed.Equal(y.Act(generator)))
}

func TestExponentMarshalRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	poly, err := NewPolynomial(group, 3, group.NewScalar().SetUInt32(5), rand.Reader)
	require.NoError(t, err)
	defer poly.Zeroize()

	exponent := NewExponent(nil, poly)
	data, err := exponent.MarshalBinary()
	require.NoError(t, err)

	restored := &Exponent{}
	require.NoError(t, restored.UnmarshalBinary(data))

	x := group.NewScalar().SetUInt32(7)
	want, err := exponent.Evaluate(x)
	require.NoError(t, err)
	got, err := restored.Evaluate(x)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}
