// Package numbering produces the participant identifiers used as share
// x-coordinates. Every generator materializes and validates its full run at
// construction time, so a split that cannot be satisfied fails before any
// share is emitted.
package numbering

import (
	"encoding/binary"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/mr-shifu/vsss-lib/core/math/curve"
	"github.com/mr-shifu/vsss-lib/core/share"
)

// maxSqueezeAttempts bounds the XOF rejection loop per identifier.
const maxSqueezeAttempts = 255

// ParticipantNumberGenerator yields the identifier for each share index.
// Get is a pure function of the index and the generator's construction
// parameters, so two generators built with the same inputs agree on every
// index.
type ParticipantNumberGenerator interface {
	// Get returns the identifier for the given index in [0, Limit).
	Get(index int) (curve.Scalar, error)

	// Limit returns the number of identifiers this generator can produce.
	Limit() int
}

type fixedGenerator struct {
	group curve.Curve
	ids   []curve.Scalar
}

func (g *fixedGenerator) Get(index int) (curve.Scalar, error) {
	if index < 0 || index >= len(g.ids) {
		return nil, errors.WithMessagef(share.ErrGeneratorExhausted, "numbering: index %d out of range", index)
	}
	return g.group.NewScalar().Set(g.ids[index]), nil
}

func (g *fixedGenerator) Limit() int {
	return len(g.ids)
}

// NewSequentialParticipantNumberGenerator yields start + increment·index.
// Nil start or increment default to 1. Construction fails if any produced
// identifier is zero or repeats.
func NewSequentialParticipantNumberGenerator(group curve.Curve, start, increment curve.Scalar, count int) (ParticipantNumberGenerator, error) {
	if count < 1 {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "numbering: count must be positive")
	}
	if start == nil {
		start = group.NewScalar().SetUInt32(1)
	}
	if increment == nil {
		increment = group.NewScalar().SetUInt32(1)
	}
	if increment.IsZero() {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "numbering: increment must be nonzero")
	}

	ids := make([]curve.Scalar, count)
	seen := make(map[string]struct{}, count)
	cursor := group.NewScalar().Set(start)
	for i := 0; i < count; i++ {
		if cursor.IsZero() {
			return nil, errors.WithMessagef(share.ErrZeroIdentifier, "numbering: sequence hits zero at index %d", i)
		}
		if err := remember(seen, cursor); err != nil {
			return nil, err
		}
		ids[i] = group.NewScalar().Set(cursor)
		cursor.Add(increment)
	}
	return &fixedGenerator{group: group, ids: ids}, nil
}

// NewRandomParticipantNumberGenerator derives each identifier from a
// SHAKE-256 XOF over dst ‖ seed ‖ index. On a zero or duplicate candidate it
// keeps squeezing the same XOF, so the sequence is a deterministic function
// of (dst, seed).
func NewRandomParticipantNumberGenerator(group curve.Curve, dst, seed []byte, count int) (ParticipantNumberGenerator, error) {
	if count < 1 {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "numbering: count must be positive")
	}
	ids := make([]curve.Scalar, count)
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := squeezeIdentifier(group, dst, seed, uint32(i), seen)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return &fixedGenerator{group: group, ids: ids}, nil
}

// NewListParticipantNumberGenerator replays a caller-provided identifier
// list. Construction fails on zero or duplicate entries.
func NewListParticipantNumberGenerator(group curve.Curve, list []curve.Scalar) (ParticipantNumberGenerator, error) {
	if len(list) == 0 {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "numbering: empty identifier list")
	}
	ids := make([]curve.Scalar, len(list))
	seen := make(map[string]struct{}, len(list))
	for i, id := range list {
		if id == nil || id.IsZero() {
			return nil, errors.WithMessagef(share.ErrZeroIdentifier, "numbering: zero identifier at index %d", i)
		}
		if err := remember(seen, id); err != nil {
			return nil, err
		}
		ids[i] = group.NewScalar().Set(id)
	}
	return &fixedGenerator{group: group, ids: ids}, nil
}

// NewListAndRandomParticipantNumberGenerator uses the list for the first
// len(list) indices and fills the remainder from the random generator,
// keeping uniqueness across both segments.
func NewListAndRandomParticipantNumberGenerator(group curve.Curve, list []curve.Scalar, dst, seed []byte, count int) (ParticipantNumberGenerator, error) {
	if count < 1 {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "numbering: count must be positive")
	}
	ids, seen, err := validatedPrefix(group, list, count)
	if err != nil {
		return nil, err
	}
	for i := len(ids); i < count; i++ {
		id, err := squeezeIdentifier(group, dst, seed, uint32(i), seen)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return &fixedGenerator{group: group, ids: ids}, nil
}

// NewListAndSequentialParticipantNumberGenerator uses the list for the first
// len(list) indices and continues sequentially from start, keeping
// uniqueness across both segments.
func NewListAndSequentialParticipantNumberGenerator(group curve.Curve, list []curve.Scalar, start, increment curve.Scalar, count int) (ParticipantNumberGenerator, error) {
	if count < 1 {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "numbering: count must be positive")
	}
	ids, seen, err := validatedPrefix(group, list, count)
	if err != nil {
		return nil, err
	}
	if start == nil {
		start = group.NewScalar().SetUInt32(1)
	}
	if increment == nil {
		increment = group.NewScalar().SetUInt32(1)
	}
	if increment.IsZero() {
		return nil, errors.WithMessage(share.ErrInvalidParameters, "numbering: increment must be nonzero")
	}
	cursor := group.NewScalar().Set(start)
	for i := len(ids); i < count; i++ {
		if cursor.IsZero() {
			return nil, errors.WithMessagef(share.ErrZeroIdentifier, "numbering: sequence hits zero at index %d", i)
		}
		if err := remember(seen, cursor); err != nil {
			return nil, err
		}
		ids = append(ids, group.NewScalar().Set(cursor))
		cursor.Add(increment)
	}
	return &fixedGenerator{group: group, ids: ids}, nil
}

func validatedPrefix(group curve.Curve, list []curve.Scalar, count int) ([]curve.Scalar, map[string]struct{}, error) {
	prefix := list
	if len(prefix) > count {
		prefix = prefix[:count]
	}
	ids := make([]curve.Scalar, 0, count)
	seen := make(map[string]struct{}, count)
	for i, id := range prefix {
		if id == nil || id.IsZero() {
			return nil, nil, errors.WithMessagef(share.ErrZeroIdentifier, "numbering: zero identifier at index %d", i)
		}
		if err := remember(seen, id); err != nil {
			return nil, nil, err
		}
		ids = append(ids, group.NewScalar().Set(id))
	}
	return ids, seen, nil
}

func squeezeIdentifier(group curve.Curve, dst, seed []byte, index uint32, seen map[string]struct{}) (curve.Scalar, error) {
	xof := sha3.NewShake256()
	_, _ = xof.Write(dst)
	_, _ = xof.Write(seed)
	var indexBytes [4]byte
	binary.BigEndian.PutUint32(indexBytes[:], index)
	_, _ = xof.Write(indexBytes[:])

	buf := make([]byte, group.SafeScalarBytes())
	for attempt := 0; attempt < maxSqueezeAttempts; attempt++ {
		if _, err := xof.Read(buf); err != nil {
			return nil, errors.WithMessage(err, "numbering: xof read failed")
		}
		candidate := group.NewScalar().SetNat(new(saferith.Nat).SetBytes(buf))
		if candidate.IsZero() {
			continue
		}
		key, err := scalarKey(candidate)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		return candidate, nil
	}
	return nil, errors.WithMessagef(share.ErrGeneratorExhausted, "numbering: no fresh identifier for index %d", index)
}

func remember(seen map[string]struct{}, id curve.Scalar) error {
	key, err := scalarKey(id)
	if err != nil {
		return err
	}
	if _, dup := seen[key]; dup {
		return errors.WithMessage(share.ErrDuplicateIdentifier, "numbering: repeated identifier")
	}
	seen[key] = struct{}{}
	return nil
}

func scalarKey(s curve.Scalar) (string, error) {
	b, err := s.MarshalBinary()
	if err != nil {
		return "", errors.WithMessage(share.ErrSerialization, err.Error())
	}
	return string(b), nil
}
