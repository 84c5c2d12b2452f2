package pedersen

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/math/sample"
	"github.com/mr-shifu/vsss-lib/core/numbering"
	"github.com/mr-shifu/vsss-lib/core/shamir"
	"github.com/mr-shifu/vsss-lib/core/share"
)

func TestSplitVerifyBothShareSets(t *testing.T) {
	for _, group := range []curve.Curve{curve.Secp256k1{}, curve.Edwards25519{}, curve.Ristretto255{}} {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			secret, err := sample.Scalar(rand.Reader, group)
			require.NoError(t, err)

			result, err := Split(group, 2, 4, secret, nil, nil, rand.Reader)
			require.NoError(t, err)

			require.Len(t, result.SecretShares, 4)
			require.Len(t, result.BlindingShares, 4)
			require.Equal(t, 2, result.PedersenVerifier.Threshold())
			require.Equal(t, 2, result.FeldmanVerifier.Threshold())

			for i := range result.SecretShares {
				assert.NoError(t, result.PedersenVerifier.Verify(result.SecretShares[i], result.BlindingShares[i]))
				assert.NoError(t, result.FeldmanVerifier.Verify(result.SecretShares[i]))
			}
		})
	}
}

func TestSecretAndBlindingRecoverable(t *testing.T) {
	group := curve.Ristretto255{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	result, err := Split(group, 2, 4, secret, nil, nil, rand.Reader)
	require.NoError(t, err)

	gotSecret, err := shamir.Combine(group, result.SecretShares[:2])
	require.NoError(t, err)
	assert.True(t, gotSecret.Equal(secret))

	// Recovering the blinder takes threshold many blinding shares.
	gotBlinding, err := shamir.Combine(group, result.BlindingShares[1:3])
	require.NoError(t, err)
	assert.True(t, gotBlinding.Equal(result.Blinding))
}

func TestTamperedSharePairFailsVerification(t *testing.T) {
	group := curve.Ristretto255{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	result, err := Split(group, 3, 5, secret, nil, nil, rand.Reader)
	require.NoError(t, err)

	wrongY, err := sample.ScalarNonZero(rand.Reader, group)
	require.NoError(t, err)
	tampered, err := share.FromFieldElement(result.SecretShares[1].ID, wrongY)
	require.NoError(t, err)

	assert.ErrorIs(t,
		result.PedersenVerifier.Verify(tampered, result.BlindingShares[1]),
		share.ErrVerificationFailed)
}

func TestMismatchedIdentifiersRejected(t *testing.T) {
	group := curve.Secp256k1{}
	result, err := Split(group, 2, 3, group.NewScalar().SetUInt32(9), nil, nil, rand.Reader)
	require.NoError(t, err)

	assert.ErrorIs(t,
		result.PedersenVerifier.Verify(result.SecretShares[0], result.BlindingShares[1]),
		share.ErrInvalidShare)
}

func TestBlinderGeneratorDerivation(t *testing.T) {
	group := curve.Ristretto255{}
	base := group.NewBasePoint()

	h1, err := DeriveBlinderGenerator(group, base)
	require.NoError(t, err)
	h2, err := DeriveBlinderGenerator(group, base)
	require.NoError(t, err)

	assert.True(t, h1.Equal(h2))
	assert.False(t, h1.IsIdentity())
	assert.False(t, h1.Equal(base))

	other := group.HashToPoint([]byte("another generator"))
	h3, err := DeriveBlinderGenerator(group, other)
	require.NoError(t, err)
	assert.False(t, h1.Equal(h3))
}

func TestSplitUsesDerivedBlinderGenerator(t *testing.T) {
	group := curve.Edwards25519{}
	result, err := Split(group, 2, 3, group.NewScalar().SetUInt32(5), nil, nil, rand.Reader)
	require.NoError(t, err)

	expected, err := DeriveBlinderGenerator(group, group.NewBasePoint())
	require.NoError(t, err)
	assert.True(t, result.PedersenVerifier.BlinderGenerator().Equal(expected))
}

func TestGeneratorValidation(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUInt32(1)
	base := group.NewBasePoint()

	_, err := Split(group, 2, 3, secret, nil, base, rand.Reader)
	assert.ErrorIs(t, err, share.ErrInvalidParameters, "h == g must be rejected")

	_, err = Split(group, 2, 3, secret, nil, group.NewPoint(), rand.Reader)
	assert.ErrorIs(t, err, share.ErrInvalidParameters, "identity h must be rejected")

	_, err = Split(group, 2, 3, secret, group.NewPoint(), nil, rand.Reader)
	assert.ErrorIs(t, err, share.ErrInvalidParameters, "identity g must be rejected")
}

func TestParamValidation(t *testing.T) {
	group := curve.Secp256k1{}
	secret := group.NewScalar().SetUInt32(1)

	_, err := Split(group, 1, 3, secret, nil, nil, rand.Reader)
	assert.ErrorIs(t, err, share.ErrInvalidParameters)

	_, err = Split(group, 4, 3, secret, nil, nil, rand.Reader)
	assert.ErrorIs(t, err, share.ErrInvalidParameters)
}

func TestFeldmanViewDerivableFromPedersenVerifier(t *testing.T) {
	group := curve.Ristretto255{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	result, err := Split(group, 3, 5, secret, nil, nil, rand.Reader)
	require.NoError(t, err)

	embedded := result.PedersenVerifier.Feldman()
	require.NotNil(t, embedded)
	assert.Equal(t, result.FeldmanVerifier.SKI(), embedded.SKI())

	for _, s := range result.SecretShares {
		assert.NoError(t, embedded.Verify(s))
	}
}

func TestZeroSecretSplit(t *testing.T) {
	group := curve.Edwards25519{}
	result, err := Split(group, 2, 4, group.NewScalar(), nil, nil, rand.Reader)
	require.NoError(t, err)

	for i := range result.SecretShares {
		assert.NoError(t, result.PedersenVerifier.Verify(result.SecretShares[i], result.BlindingShares[i]))
	}

	got, err := shamir.Combine(group, result.SecretShares[:2])
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSplitWithSharedNumbering(t *testing.T) {
	group := curve.Secp256k1{}
	gen, err := numbering.NewRandomParticipantNumberGenerator(group, []byte("pedersen"), []byte("seed"), 4)
	require.NoError(t, err)

	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	result, err := SplitWith(group, 2, 4, secret, nil, nil, rand.Reader, gen)
	require.NoError(t, err)

	// Secret and blinding shares must carry the same identifiers index by index.
	for i := range result.SecretShares {
		assert.True(t, result.SecretShares[i].ID.Equal(result.BlindingShares[i].ID))
	}
}

func TestVerifierMarshalRoundTrip(t *testing.T) {
	group := curve.Ristretto255{}
	secret, err := sample.Scalar(rand.Reader, group)
	require.NoError(t, err)

	result, err := Split(group, 2, 3, secret, nil, nil, rand.Reader)
	require.NoError(t, err)

	data, err := result.PedersenVerifier.MarshalBinary()
	require.NoError(t, err)

	restored := &Verifier{}
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, result.PedersenVerifier.SKI(), restored.SKI())

	for i := range result.SecretShares {
		assert.NoError(t, restored.Verify(result.SecretShares[i], result.BlindingShares[i]))
		assert.NoError(t, restored.Feldman().Verify(result.SecretShares[i]))
	}
}

func TestBlindingIsNonZero(t *testing.T) {
	group := curve.Secp256k1{}
	for i := 0; i < 8; i++ {
		result, err := Split(group, 2, 3, group.NewScalar().SetUInt32(uint32(i+1)), nil, nil, rand.Reader)
		require.NoError(t, err)
		assert.False(t, result.Blinding.IsZero())
	}
}
