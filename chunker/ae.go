package chunker

import (
	"fmt"
	"math"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

// aeWindowRatio is e-1. The AE paper (Zhang et al., "AE: An Asymmetric
// Extremum Content Defined Chunking Algorithm", INFOCOM 2015) derives the
// expected chunk size of a window-W scan as W·(e-1), so the window for a
// target average is avg/(e-1).
const aeWindowRatio = 1.7183

// AEMode selects which extremum ends a chunk.
type AEMode int

const (
	// AEMax cuts after a byte that strictly dominates everything before it
	// in the chunk and survives a full window of lookahead without being
	// exceeded.
	AEMax AEMode = iota
	// AEMin is the symmetric mode on strictly smaller bytes.
	AEMin
)

// AEChunker detects cut points by byte-value comparison alone: no rolling
// hash and no min/max bounds. The candidate extremum closes its chunk once
// window bytes pass without displacing it; those lookahead bytes then open the
// next chunk, so the chunker replays them from a small carry ring after every
// cut.
//
// The configured average only sets the window; chunk sizes are not held to
// it. Only a strictly greater (MAX) or smaller (MIN) byte displaces the
// candidate, so a chunk ends no later than its first byte of value 255 (MAX)
// or 0 (MIN). On random input the mean chunk size therefore stays at or below
// about 256 bytes however large the configured average is.
type AEChunker struct {
	window int
	mode   AEMode

	pos   uint64
	start uint64
	count int

	haveExtreme bool
	extreme     byte
	extremeOff  int
	lookahead   []byte
}

// NewAEChunker derives the scan window from the target average chunk size.
func NewAEChunker(avgSize int, mode AEMode) (*AEChunker, error) {
	if avgSize < 2 {
		return nil, fmt.Errorf("%w: ae average block size %d", internal.ErrParamInconsistent, avgSize)
	}
	window := int(math.Round(float64(avgSize) / aeWindowRatio))
	if window < 1 {
		window = 1
	}
	c := &AEChunker{
		window:    window,
		mode:      mode,
		lookahead: make([]byte, 0, window),
	}
	c.Reset()
	return c, nil
}

// WindowSize exposes the derived lookahead window, mainly for tests and
// diagnostics.
func (c *AEChunker) WindowSize() int {
	return c.window
}

// Reset implements Chunker.
func (c *AEChunker) Reset() {
	c.pos = 0
	c.start = 0
	c.resetScan()
}

func (c *AEChunker) resetScan() {
	c.count = 0
	c.haveExtreme = false
	c.extreme = 0
	c.extremeOff = 0
	c.lookahead = c.lookahead[:0]
}

func (c *AEChunker) beyond(b byte) bool {
	if c.mode == AEMax {
		return b > c.extreme
	}
	return b < c.extreme
}

// step advances the scan by one byte and returns a cut when the lookahead
// counter reaches the window.
func (c *AEChunker) step(b byte) *Cut {
	if !c.haveExtreme || c.beyond(b) {
		c.haveExtreme = true
		c.extreme = b
		c.extremeOff = c.count
		c.lookahead = c.lookahead[:0]
		c.count++
		return nil
	}

	c.lookahead = append(c.lookahead, b)
	c.count++
	if len(c.lookahead) < c.window {
		return nil
	}

	// The candidate byte closes the chunk; everything scanned after it
	// belongs to the next one.
	length := uint64(c.extremeOff + 1)
	cut := &Cut{Start: c.start, Length: length}
	c.start += length

	// Replay the window bytes as the opening of the next chunk. A fresh
	// scan over exactly window bytes cannot reach a full lookahead again,
	// so the replay never cuts.
	replay := append([]byte(nil), c.lookahead...)
	c.resetScan()
	for _, rb := range replay {
		c.step(rb)
	}
	return cut
}

// NextChunk implements Chunker. Consumed bytes past the returned cut are the
// next chunk's prefix; the driver keeps them staged.
func (c *AEChunker) NextChunk(buf []byte) (int, *Cut) {
	for i, b := range buf {
		c.pos++
		if cut := c.step(b); cut != nil {
			return i + 1, cut
		}
	}
	return len(buf), nil
}

// Finalize implements Chunker.
func (c *AEChunker) Finalize() *Cut {
	if c.count == 0 {
		return nil
	}
	cut := &Cut{Start: c.start, Length: uint64(c.count)}
	c.start += uint64(c.count)
	c.resetScan()
	return cut
}
