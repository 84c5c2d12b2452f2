package sample

import (
	cryptorand "crypto/rand"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
)

// maxIterations bounds rejection sampling loops; the probability of hitting
// it with a working random source is negligible.
const maxIterations = 255

// Scalar returns a scalar sampled uniformly from the scalar field of the
// given curve. The bias introduced by the modular reduction is negligible
// because SafeScalarBytes bytes are reduced.
func Scalar(rand io.Reader, group curve.Curve) (curve.Scalar, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	buf := make([]byte, group.SafeScalarBytes())
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, errors.WithMessage(err, "sample: failed to read randomness")
	}
	n := new(saferith.Nat).SetBytes(buf)
	return group.NewScalar().SetNat(n), nil
}

// ScalarNonZero samples scalars until a nonzero one is found.
func ScalarNonZero(rand io.Reader, group curve.Curve) (curve.Scalar, error) {
	for i := 0; i < maxIterations; i++ {
		s, err := Scalar(rand, group)
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
	return nil, errors.New("sample: random source keeps producing zero scalars")
}
