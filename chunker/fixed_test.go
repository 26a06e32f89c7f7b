package chunker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

func TestFixedValidation(t *testing.T) {
	_, err := NewFixedChunker(0)
	assert.True(t, errors.Is(err, internal.ErrParamInconsistent))
}

func TestFixedExactDivision(t *testing.T) {
	c, err := NewFixedChunker(1024)
	require.NoError(t, err)

	data := randomBytes(t, 17, 8192)
	chunks := chunkWith(t, c, MD5, data, 1<<20)

	require.Len(t, chunks, 8)
	for _, chunk := range chunks {
		assert.Equal(t, 1024, len(chunk.Data))
	}
	assert.Equal(t, data, concatChunks(chunks))
}

func TestFixedRemainderTail(t *testing.T) {
	c, err := NewFixedChunker(1000)
	require.NoError(t, err)

	data := randomBytes(t, 19, 2500)
	chunks := chunkWith(t, c, MD5, data, 1<<20)

	require.Equal(t, []int{1000, 1000, 500}, chunkLengths(chunks))
	assert.Equal(t, data, concatChunks(chunks))
}

func TestFixedChunkLargerThanRefill(t *testing.T) {
	c, err := NewFixedChunker(4096)
	require.NoError(t, err)

	data := randomBytes(t, 21, 10000)
	// refills far smaller than the chunk size force staging carry-over
	chunks := chunkWith(t, c, MD5, data, 512)

	require.Equal(t, []int{4096, 4096, 1808}, chunkLengths(chunks))
	assert.Equal(t, data, concatChunks(chunks))
}

func TestFixedSingleByte(t *testing.T) {
	c, err := NewFixedChunker(4096)
	require.NoError(t, err)

	chunks := chunkWith(t, c, MD5, []byte{0xAB}, 1<<20)
	require.Len(t, chunks, 1)
	assert.Equal(t, []byte{0xAB}, chunks[0].Data)
}
