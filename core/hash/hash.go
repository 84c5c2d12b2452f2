package hash

import (
	"encoding"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// Hash is a domain-separated BLAKE3 hash. Every written value is framed with
// its length so that distinct sequences of writes cannot collide.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash with the given domain separation tag.
func New(dst string) *Hash {
	h := &Hash{h: blake3.New()}
	_ = h.writeFramed([]byte(dst))
	return h
}

// WriteAny absorbs the given values. Supported types are []byte, string,
// uint32 and any encoding.BinaryMarshaler.
func (h *Hash) WriteAny(vs ...interface{}) error {
	for _, v := range vs {
		switch t := v.(type) {
		case []byte:
			if err := h.writeFramed(t); err != nil {
				return err
			}
		case string:
			if err := h.writeFramed([]byte(t)); err != nil {
				return err
			}
		case uint32:
			var buf [4]byte
			binary.BigEndian.PutUint32(buf[:], t)
			if err := h.writeFramed(buf[:]); err != nil {
				return err
			}
		case encoding.BinaryMarshaler:
			data, err := t.MarshalBinary()
			if err != nil {
				return errors.WithMessage(err, "hash: failed to marshal value")
			}
			if err := h.writeFramed(data); err != nil {
				return err
			}
		default:
			return errors.Errorf("hash: unsupported type %T", v)
		}
	}
	return nil
}

// Sum returns the current 32-byte digest without consuming the state.
func (h *Hash) Sum() []byte {
	return h.h.Sum(nil)
}

// Digest returns an unbounded reader of output bytes for the current state.
func (h *Hash) Digest() io.Reader {
	return h.h.Clone().Digest()
}

// Clone returns a copy of the hash in its current state.
func (h *Hash) Clone() *Hash {
	return &Hash{h: h.h.Clone()}
}

func (h *Hash) writeFramed(data []byte) error {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(data)))
	if _, err := h.h.Write(length[:]); err != nil {
		return errors.WithMessage(err, "hash: write failed")
	}
	if _, err := h.h.Write(data); err != nil {
		return errors.WithMessage(err, "hash: write failed")
	}
	return nil
}
