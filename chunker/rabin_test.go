package chunker

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

func TestRabinValidation(t *testing.T) {
	testCases := []struct {
		name                       string
		window, min, avg, max      int
		expectError                bool
	}{
		{"Valid", 48, 512, 1024, 4096, false},
		{"Window zero", 0, 512, 1024, 4096, true},
		{"Min zero", 48, 0, 1024, 4096, true},
		{"Min above avg", 48, 2048, 1024, 4096, true},
		{"Avg above max", 48, 512, 8192, 4096, true},
		{"Degenerate but consistent", 1, 1, 1, 1, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRabinChunker(tc.window, tc.min, tc.avg, tc.max)
			if tc.expectError {
				assert.True(t, errors.Is(err, internal.ErrParamInconsistent))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRabinEmptyInput(t *testing.T) {
	c, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)

	chunks := chunkWith(t, c, SHA256, nil, 1<<20)
	assert.Empty(t, chunks)
}

func TestRabinSingleByte(t *testing.T) {
	c, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)

	chunks := chunkWith(t, c, SHA256, []byte{0xAB}, 1<<20)
	require.Len(t, chunks, 1)
	assert.Equal(t, []byte{0xAB}, chunks[0].Data)
}

// An all-zero stream zeroes the rolling digest as soon as the reset sentinel
// leaves the window, so the masked digest matches at every position and each
// cut fires exactly at the minimum length.
func TestRabinAllZeroInput(t *testing.T) {
	c, err := NewRabinChunker(64, 2048, 4096, 8192)
	require.NoError(t, err)

	data := make([]byte, 1<<20)
	chunks := chunkWith(t, c, SHA256, data, 1<<22)

	require.Len(t, chunks, (1<<20)/2048)
	for _, chunk := range chunks {
		assert.Equal(t, 2048, len(chunk.Data))
	}
	assert.Equal(t, data, concatChunks(chunks))
}

func TestRabinConcatenationLaw(t *testing.T) {
	c, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)

	data := randomBytes(t, 42, 1<<20)
	chunks := chunkWith(t, c, SHA256, data, 1<<22)
	assert.Greater(t, len(chunks), 1)
	assert.Equal(t, data, concatChunks(chunks))
}

func TestRabinLengthBounds(t *testing.T) {
	c, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)

	data := randomBytes(t, 7, 1<<20)
	chunks := chunkWith(t, c, SHA256, data, 1<<22)

	for i, chunk := range chunks {
		if i < len(chunks)-1 {
			assert.GreaterOrEqual(t, len(chunk.Data), 512)
		}
		assert.LessOrEqual(t, len(chunk.Data), 4096)
	}
}

func TestRabinDeterminism(t *testing.T) {
	data := randomBytes(t, 11, 1<<20)

	c1, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)
	first := chunkWith(t, c1, SHA256, data, 1<<22)

	c2, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)
	second := chunkWith(t, c2, SHA256, data, 1<<22)

	require.Equal(t, chunkLengths(first), chunkLengths(second))
	for i := range first {
		assert.Equal(t, first[i].Hash().Digest, second[i].Hash().Digest)
	}
}

// A chunker instance is reusable: chunking the concatenation of the chunks
// of S must reproduce the chunks of S.
func TestRabinIdempotence(t *testing.T) {
	c, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)

	data := randomBytes(t, 23, 1<<19)
	first := chunkWith(t, c, SHA256, data, 1<<22)
	second := chunkWith(t, c, SHA256, concatChunks(first), 1<<22)
	assert.Equal(t, chunkLengths(first), chunkLengths(second))
}

// Cut points are a function of local content: prepending a block must leave
// shifted boundaries in common once the chunking resynchronizes.
func TestRabinPrefixShift(t *testing.T) {
	const prefixLen = 1024
	base := randomBytes(t, 31, 1<<20)
	prefixed := append(randomBytes(t, 37, prefixLen), base...)

	c, err := NewRabinChunker(48, 256, 1024, 8192)
	require.NoError(t, err)
	baseChunks := chunkWith(t, c, SHA256, base, 1<<22)
	prefixedChunks := chunkWith(t, c, SHA256, prefixed, 1<<22)

	baseCuts := make(map[int]bool)
	offset := 0
	for _, chunk := range baseChunks[:len(baseChunks)-1] {
		offset += len(chunk.Data)
		baseCuts[offset] = true
	}

	matches := 0
	offset = 0
	for _, chunk := range prefixedChunks[:len(prefixedChunks)-1] {
		offset += len(chunk.Data)
		if offset > prefixLen && baseCuts[offset-prefixLen] {
			matches++
		}
	}
	assert.Greater(t, matches, 0, "no cut points survived the prefix shift")
}

// On periodic input the window contents repeat with the input period, so the
// interior chunk lengths can take at most one value per phase.
func TestRabinPeriodicInput(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), (1<<20)/8)

	c, err := NewRabinChunker(64, 2048, 4096, 8192)
	require.NoError(t, err)
	chunks := chunkWith(t, c, SHA256, data, 1<<22)

	distinct := make(map[int]bool)
	for _, chunk := range chunks[:len(chunks)-1] {
		distinct[len(chunk.Data)] = true
	}
	assert.LessOrEqual(t, len(distinct), 8)
	assert.Equal(t, data, concatChunks(chunks))
}

// The reported fingerprint is the digest at the cut byte and must survive a
// Reset round trip.
func TestRabinCutFingerprint(t *testing.T) {
	data := randomBytes(t, 53, 1<<16)

	c, err := NewRabinChunker(48, 512, 1024, 4096)
	require.NoError(t, err)

	collect := func() []uint64 {
		c.Reset()
		var fps []uint64
		rem := data
		for len(rem) > 0 {
			n, cut := c.NextChunk(rem)
			if cut != nil {
				fps = append(fps, cut.Fingerprint)
			}
			rem = rem[n:]
		}
		if tail := c.Finalize(); tail != nil {
			fps = append(fps, tail.Fingerprint)
		}
		return fps
	}

	first := collect()
	second := collect()
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}
