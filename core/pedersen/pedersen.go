// Package pedersen implements Pedersen's verifiable secret sharing scheme,
// see https://www.cs.cornell.edu/courses/cs754/2001fa/129.PDF.
//
// A split commits to the secret polynomial blinded by a second polynomial
// under an independent generator, so the commitments reveal nothing about
// the secret. The result also carries the Feldman view of the secret
// polynomial for protocols, such as Gennaro's DKG, that publish it after
// discarding the blinding.
package pedersen

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/mr-shifu/vsss-lib/core/feldman"
	"github.com/mr-shifu/vsss-lib/core/hash"
	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/math/sample"
	"github.com/mr-shifu/vsss-lib/core/numbering"
	"github.com/mr-shifu/vsss-lib/core/share"
	"github.com/mr-shifu/vsss-lib/core/shamir"
)

const blinderGeneratorDST = "vsss-pedersen-blinder-generator"

// Result bundles everything a Pedersen split produces.
type Result struct {
	// Blinding is the constant term of the blinding polynomial.
	Blinding curve.Scalar

	// SecretShares are the shares of the secret polynomial.
	SecretShares []*share.Share

	// BlindingShares are the shares of the blinding polynomial, issued to
	// the same identifiers as the secret shares.
	BlindingShares []*share.Share

	// FeldmanVerifier commits to the secret polynomial alone. Publishing it
	// forfeits the information-theoretic hiding of the Pedersen commitments.
	FeldmanVerifier *feldman.Verifier

	// PedersenVerifier commits to the blinded polynomial.
	PedersenVerifier *Verifier
}

// Verifier holds the blinded commitments {cᵢ·g + c'ᵢ·h} together with both
// generators and the embedded Feldman verifier.
type Verifier struct {
	group            curve.Curve
	generator        curve.Point
	blinderGenerator curve.Point
	commitments      []curve.Point
	feldman          *feldman.Verifier
}

// DeriveBlinderGenerator deterministically derives the second generator h
// from g by hashing its encoding to a group element. The derivation is
// reproducible: every party computes the same h for the same g.
func DeriveBlinderGenerator(group curve.Curve, generator curve.Point) (curve.Point, error) {
	h := hash.New(blinderGeneratorDST)
	if err := h.WriteAny(generator); err != nil {
		return nil, err
	}
	digest := make([]byte, 64)
	if _, err := io.ReadFull(h.Digest(), digest); err != nil {
		return nil, errors.WithMessage(err, "pedersen: digest read failed")
	}
	return group.HashToPoint(digest), nil
}

// Split shares the secret with blinded commitments. Nil generators default
// to the curve base point for g and to DeriveBlinderGenerator(g) for h;
// h must differ from g and from the identity.
func Split(group curve.Curve, threshold, limit int, secret curve.Scalar, generator, blinderGenerator curve.Point, rand io.Reader) (*Result, error) {
	return SplitWith(group, threshold, limit, secret, generator, blinderGenerator, rand, nil)
}

// SplitWith is Split with a caller-chosen participant number generator.
// Both polynomials are evaluated at the same identifiers, so each
// participant receives a matching (secret, blinding) share pair.
func SplitWith(group curve.Curve, threshold, limit int, secret curve.Scalar, generator, blinderGenerator curve.Point, rand io.Reader, gen numbering.ParticipantNumberGenerator) (*Result, error) {
	if err := shamir.CheckParams(threshold, limit); err != nil {
		return nil, err
	}
	if generator == nil {
		generator = group.NewBasePoint()
	}
	if generator.IsIdentity() {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "pedersen: generator is the identity")
	}
	if blinderGenerator == nil {
		derived, err := DeriveBlinderGenerator(group, generator)
		if err != nil {
			return nil, err
		}
		blinderGenerator = derived
	}
	if blinderGenerator.IsIdentity() {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "pedersen: blinder generator is the identity")
	}
	if blinderGenerator.Equal(generator) {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "pedersen: blinder generator equals the share generator")
	}
	if gen == nil {
		var err error
		gen, err = numbering.NewSequentialParticipantNumberGenerator(group, nil, nil, limit)
		if err != nil {
			return nil, err
		}
	}

	blinding, err := sample.ScalarNonZero(rand, group)
	if err != nil {
		return nil, err
	}

	secretShares, secretPoly, err := shamir.SplitReturnPolynomial(group, threshold, limit, secret, rand, gen)
	if err != nil {
		return nil, err
	}
	defer secretPoly.Zeroize()

	blindingShares, blindingPoly, err := shamir.SplitReturnPolynomial(group, threshold, limit, blinding, rand, gen)
	if err != nil {
		return nil, err
	}
	defer blindingPoly.Zeroize()

	secretCoefficients := secretPoly.Coefficients()
	blindingCoefficients := blindingPoly.Coefficients()

	feldmanCommitments := make([]curve.Point, threshold)
	pedersenCommitments := make([]curve.Point, threshold)
	for i := 0; i < threshold; i++ {
		gi := secretCoefficients[i].Act(generator)
		hi := blindingCoefficients[i].Act(blinderGenerator)
		feldmanCommitments[i] = gi
		pedersenCommitments[i] = group.NewPoint().Set(gi).Add(hi)
	}

	feldmanVerifier, err := feldman.NewVerifier(group, generator, feldmanCommitments)
	if err != nil {
		return nil, err
	}

	return &Result{
		Blinding:        blinding,
		SecretShares:    secretShares,
		BlindingShares:  blindingShares,
		FeldmanVerifier: feldmanVerifier,
		PedersenVerifier: &Verifier{
			group:            group,
			generator:        group.NewPoint().Set(generator),
			blinderGenerator: group.NewPoint().Set(blinderGenerator),
			commitments:      pedersenCommitments,
			feldman:          feldmanVerifier,
		},
	}, nil
}

// Verify checks a matching pair of secret and blinding shares against the
// blinded commitments:
//
//	y·g + y'·h == Σ xⁱ·Pᵢ
//
// Both sides are computed fully before the constant-time comparison.
func (v *Verifier) Verify(secretShare, blindingShare *share.Share) error {
	if secretShare == nil || blindingShare == nil {
		return errors.WithMessage(share.ErrInvalidShare, "pedersen: missing share")
	}
	if secretShare.ID.IsZero() || blindingShare.ID.IsZero() {
		return errors.WithMessage(share.ErrZeroIdentifier, "pedersen: share with zero identifier")
	}
	if !secretShare.ID.Equal(blindingShare.ID) {
		return errors.WithMessage(share.ErrInvalidShare, "pedersen: share pair identifiers differ")
	}

	y, err := secretShare.FieldElement(v.group)
	if err != nil {
		return err
	}
	yBlind, err := blindingShare.FieldElement(v.group)
	if err != nil {
		return err
	}
	x := secretShare.ID.Scalar()

	rhs := v.group.NewPoint().Set(v.commitments[len(v.commitments)-1])
	for i := len(v.commitments) - 2; i >= 0; i-- {
		rhs = x.Act(rhs)
		rhs.Add(v.commitments[i])
	}

	lhs := y.Act(v.generator)
	lhs.Add(yBlind.Act(v.blinderGenerator))

	if !lhs.Equal(rhs) {
		return errors.WithMessage(share.ErrVerificationFailed, "pedersen: share pair does not match commitments")
	}
	return nil
}

// Feldman returns the embedded Feldman view of the secret polynomial.
func (v *Verifier) Feldman() *feldman.Verifier {
	return v.feldman
}

// Generator returns a copy of the share generator g.
func (v *Verifier) Generator() curve.Point {
	return v.group.NewPoint().Set(v.generator)
}

// BlinderGenerator returns a copy of the blinding generator h.
func (v *Verifier) BlinderGenerator() curve.Point {
	return v.group.NewPoint().Set(v.blinderGenerator)
}

// Commitments returns copies of the blinded commitments.
func (v *Verifier) Commitments() []curve.Point {
	out := make([]curve.Point, len(v.commitments))
	for i, c := range v.commitments {
		out[i] = v.group.NewPoint().Set(c)
	}
	return out
}

// Threshold returns the number of commitments.
func (v *Verifier) Threshold() int {
	return len(v.commitments)
}

// Curve returns the curve the commitments belong to.
func (v *Verifier) Curve() curve.Curve {
	return v.group
}

// SKI returns a stable identifier for the verifier set.
func (v *Verifier) SKI() []byte {
	h := hash.New("vsss-pedersen-verifier")
	_ = h.WriteAny(v.generator, v.blinderGenerator)
	for _, c := range v.commitments {
		_ = h.WriteAny(c)
	}
	return h.Sum()
}

type rawVerifier struct {
	Curve            string   `cbor:"curve"`
	Generator        []byte   `cbor:"generator"`
	BlinderGenerator []byte   `cbor:"blinder_generator"`
	Commitments      [][]byte `cbor:"commitments"`
	Feldman          []byte   `cbor:"feldman"`
}

func (v *Verifier) MarshalBinary() ([]byte, error) {
	raw := rawVerifier{
		Curve:       v.group.Name(),
		Commitments: make([][]byte, len(v.commitments)),
	}
	var err error
	if raw.Generator, err = v.generator.MarshalBinary(); err != nil {
		return nil, errors.WithMessage(share.ErrSerialization, err.Error())
	}
	if raw.BlinderGenerator, err = v.blinderGenerator.MarshalBinary(); err != nil {
		return nil, errors.WithMessage(share.ErrSerialization, err.Error())
	}
	for i, c := range v.commitments {
		if raw.Commitments[i], err = c.MarshalBinary(); err != nil {
			return nil, errors.WithMessage(share.ErrSerialization, err.Error())
		}
	}
	if raw.Feldman, err = v.feldman.MarshalBinary(); err != nil {
		return nil, err
	}
	data, err := cbor.Marshal(raw)
	if err != nil {
		return nil, errors.WithMessage(share.ErrSerialization, err.Error())
	}
	return data, nil
}

func (v *Verifier) UnmarshalBinary(data []byte) error {
	var raw rawVerifier
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(share.ErrSerialization, err.Error())
	}
	group, err := curve.FromName(raw.Curve)
	if err != nil {
		return errors.WithMessage(share.ErrSerialization, err.Error())
	}
	generator := group.NewPoint()
	if err := generator.UnmarshalBinary(raw.Generator); err != nil {
		return errors.WithMessage(share.ErrSerialization, err.Error())
	}
	blinderGenerator := group.NewPoint()
	if err := blinderGenerator.UnmarshalBinary(raw.BlinderGenerator); err != nil {
		return errors.WithMessage(share.ErrSerialization, err.Error())
	}
	if len(raw.Commitments) < 2 {
		return errors.WithMessage(share.ErrInvalidVerifierSet, "pedersen: need at least 2 commitments")
	}
	commitments := make([]curve.Point, len(raw.Commitments))
	for i, cb := range raw.Commitments {
		c := group.NewPoint()
		if err := c.UnmarshalBinary(cb); err != nil {
			return errors.WithMessage(share.ErrSerialization, err.Error())
		}
		commitments[i] = c
	}
	feldmanVerifier := &feldman.Verifier{}
	if err := feldmanVerifier.UnmarshalBinary(raw.Feldman); err != nil {
		return err
	}
	v.group = group
	v.generator = generator
	v.blinderGenerator = blinderGenerator
	v.commitments = commitments
	v.feldman = feldmanVerifier
	return nil
}
