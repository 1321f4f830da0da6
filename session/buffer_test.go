package session

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioBuffer_AppendAndFlush(t *testing.T) {
	t.Parallel()

	buf := NewAudioBuffer(1024)
	require.True(t, buf.IsEmpty())

	require.NoError(t, buf.Append([]byte("abc")))
	require.NoError(t, buf.Append([]byte("def")))

	assert.Equal(t, 6, buf.Size())
	assert.Equal(t, 2, buf.ChunkCount())

	data := buf.Flush()
	assert.True(t, bytes.Equal([]byte("abcdef"), data))

	// Flush clears the buffer
	assert.True(t, buf.IsEmpty())
	assert.Equal(t, 0, buf.Size())
	assert.Nil(t, buf.Flush())
}

func TestAudioBuffer_Full(t *testing.T) {
	t.Parallel()

	buf := NewAudioBuffer(4)
	require.NoError(t, buf.Append([]byte("abcd")))

	err := buf.Append([]byte("e"))
	require.ErrorIs(t, err, ErrBufferFull)

	// The rejected chunk must not be partially recorded
	assert.Equal(t, 4, buf.Size())
	assert.Equal(t, 1, buf.ChunkCount())
}

func TestAudioBuffer_Clear(t *testing.T) {
	t.Parallel()

	buf := NewAudioBuffer(64)
	require.NoError(t, buf.Append([]byte("abc")))
	buf.Clear()

	assert.True(t, buf.IsEmpty())
	assert.Equal(t, 0, buf.Size())
	assert.Equal(t, 64, buf.MaxSize())
}
