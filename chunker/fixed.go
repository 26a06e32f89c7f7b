package chunker

import (
	"fmt"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

// FixedChunker cuts the stream into constant-size blocks. It exists for
// baseline comparisons against the content-defined algorithms.
type FixedChunker struct {
	size  int
	count int
	pos   uint64
	start uint64
}

func NewFixedChunker(size int) (*FixedChunker, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: fixed chunk size %d", internal.ErrParamInconsistent, size)
	}
	return &FixedChunker{size: size}, nil
}

// Reset implements Chunker.
func (c *FixedChunker) Reset() {
	c.count = 0
	c.pos = 0
	c.start = 0
}

// NextChunk implements Chunker.
func (c *FixedChunker) NextChunk(buf []byte) (int, *Cut) {
	need := c.size - c.count
	if len(buf) < need {
		c.count += len(buf)
		c.pos += uint64(len(buf))
		return len(buf), nil
	}

	c.pos += uint64(need)
	cut := &Cut{Start: c.start, Length: uint64(c.size)}
	c.start = c.pos
	c.count = 0
	return need, cut
}

// Finalize implements Chunker.
func (c *FixedChunker) Finalize() *Cut {
	if c.count == 0 {
		return nil
	}
	cut := &Cut{Start: c.start, Length: uint64(c.count)}
	c.start = c.pos
	c.count = 0
	return cut
}
