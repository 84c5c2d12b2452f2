package hash

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumDeterministic(t *testing.T) {
	h1 := New("test")
	require.NoError(t, h1.WriteAny([]byte{1, 2, 3}, uint32(7)))

	h2 := New("test")
	require.NoError(t, h2.WriteAny([]byte{1, 2, 3}, uint32(7)))

	assert.Equal(t, h1.Sum(), h2.Sum())
}

func TestDomainSeparation(t *testing.T) {
	h1 := New("domain-a")
	h2 := New("domain-b")
	require.NoError(t, h1.WriteAny([]byte("payload")))
	require.NoError(t, h2.WriteAny([]byte("payload")))

	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestFramingPreventsCollision(t *testing.T) {
	h1 := New("test")
	require.NoError(t, h1.WriteAny([]byte("ab"), []byte("c")))

	h2 := New("test")
	require.NoError(t, h2.WriteAny([]byte("a"), []byte("bc")))

	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestClone(t *testing.T) {
	h := New("test")
	require.NoError(t, h.WriteAny([]byte("prefix")))

	h1 := h.Clone()
	h2 := h.Clone()
	require.NoError(t, h1.WriteAny([]byte("left")))
	require.NoError(t, h2.WriteAny([]byte("left")))

	assert.Equal(t, h1.Sum(), h2.Sum())

	require.NoError(t, h2.WriteAny([]byte("more")))
	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestDigestDoesNotConsumeState(t *testing.T) {
	h := New("test")
	require.NoError(t, h.WriteAny([]byte("payload")))

	buf1 := make([]byte, 64)
	_, err := io.ReadFull(h.Digest(), buf1)
	require.NoError(t, err)

	buf2 := make([]byte, 64)
	_, err = io.ReadFull(h.Digest(), buf2)
	require.NoError(t, err)

	assert.Equal(t, buf1, buf2)
	assert.Equal(t, h.Sum(), buf1[:32])
}

func TestWriteAnyRejectsUnsupported(t *testing.T) {
	h := New("test")
	assert.Error(t, h.WriteAny(struct{}{}))
}
