package chunker

import (
	"fmt"
	"math/bits"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

// Irreducible polynomial of degree 53 over GF(2), the same one the restic
// chunker ships as its default.
const rabinPolynomial uint64 = 0x3DA3358B4DC173

// polShift positions the top 8 digest bits above the polynomial degree for
// the mod-table lookup.
const polShift = 53 - 8

// RabinChunker detects cut points with a Rabin fingerprint: bytes are
// coefficients of a polynomial over GF(2) and the digest is its remainder
// modulo rabinPolynomial. A cut is taken when the masked digest is zero and
// at least minSize bytes have accumulated, or unconditionally at maxSize.
type RabinChunker struct {
	minSize int
	maxSize int
	mask    uint64

	window []byte
	wpos   int
	digest uint64
	count  int
	pos    uint64
	start  uint64

	// outTable cancels the byte leaving the window, modTable folds the top
	// 8 digest bits after the shift. Both depend only on the polynomial and
	// the window size, so they are filled once at construction.
	outTable [256]uint64
	modTable [256]uint64
}

// NewRabinChunker validates the parameters and precomputes the sliding
// tables. avgSize drives the cut mask through its highest set bit, i.e. a
// non-power-of-two average behaves like the next power of two below it.
func NewRabinChunker(windowSize, minSize, avgSize, maxSize int) (*RabinChunker, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: window size %d", internal.ErrParamInconsistent, windowSize)
	}
	if minSize < 1 || avgSize < minSize || maxSize < avgSize {
		return nil, fmt.Errorf("%w: min=%d avg=%d max=%d", internal.ErrParamInconsistent,
			minSize, avgSize, maxSize)
	}

	c := &RabinChunker{
		minSize: minSize,
		maxSize: maxSize,
		mask:    uint64(1)<<(bits.Len32(uint32(avgSize))-1) - 1,
		window:  make([]byte, windowSize),
	}
	c.calcTables()
	c.Reset()
	return c, nil
}

// deg returns the degree of polynomial p, or -1 for the zero polynomial.
func deg(p uint64) int {
	return bits.Len64(p) - 1
}

// mod returns the remainder of polynomial division of x by p over GF(2).
func mod(x, p uint64) uint64 {
	for deg(x) >= deg(p) {
		shift := deg(x) - deg(p)
		x ^= p << shift
	}
	return x
}

func appendByte(hash uint64, b byte, pol uint64) uint64 {
	hash <<= 8
	hash |= uint64(b)
	return mod(hash, pol)
}

func (c *RabinChunker) calcTables() {
	// outTable[b] = Hash(b || 0 || ... || 0) with windowSize-1 zero bytes.
	// XORing it into the digest cancels the contribution of byte b sliding
	// out of the window.
	for b := 0; b < 256; b++ {
		hash := appendByte(0, byte(b), rabinPolynomial)
		for i := 0; i < len(c.window)-1; i++ {
			hash = appendByte(hash, 0, rabinPolynomial)
		}
		c.outTable[b] = hash
	}

	// modTable[b] = (b·x^k mod P) | b·x^k with k = deg(P). The high half
	// cancels the 8 bits above the degree, the low half is their remainder,
	// so one XOR reduces the shifted digest modulo P.
	k := deg(rabinPolynomial)
	for b := 0; b < 256; b++ {
		p := uint64(b) << k
		c.modTable[b] = mod(p, rabinPolynomial) | p
	}
}

func (c *RabinChunker) append(b byte) {
	index := byte(c.digest >> polShift)
	c.digest <<= 8
	c.digest |= uint64(b)
	c.digest ^= c.modTable[index]
}

func (c *RabinChunker) slide(b byte) {
	out := c.window[c.wpos]
	c.window[c.wpos] = b
	c.digest ^= c.outTable[out]
	c.wpos = (c.wpos + 1) % len(c.window)
	c.append(b)
}

// resetRoll clears the rolling state between chunks. Sliding in a sentinel
// byte keeps the initial digest non-trivial.
func (c *RabinChunker) resetRoll() {
	for i := range c.window {
		c.window[i] = 0
	}
	c.wpos = 0
	c.count = 0
	c.digest = 0
	c.slide(1)
}

// Reset implements Chunker.
func (c *RabinChunker) Reset() {
	c.resetRoll()
	c.pos = 0
	c.start = 0
}

// NextChunk implements Chunker. The byte that triggers a cut is the last
// byte of the closed chunk.
func (c *RabinChunker) NextChunk(buf []byte) (int, *Cut) {
	for i, b := range buf {
		c.slide(b)
		c.count++
		c.pos++

		if (c.count >= c.minSize && c.digest&c.mask == 0) || c.count >= c.maxSize {
			cut := &Cut{
				Start:       c.start,
				Length:      uint64(c.count),
				Fingerprint: c.digest,
			}
			c.resetRoll()
			c.start = c.pos
			return i + 1, cut
		}
	}
	return len(buf), nil
}

// Finalize implements Chunker. The tail may be shorter than minSize; it is
// the only chunk allowed to be.
func (c *RabinChunker) Finalize() *Cut {
	if c.count == 0 {
		return nil
	}
	cut := &Cut{
		Start:       c.start,
		Length:      uint64(c.count),
		Fingerprint: c.digest,
	}
	c.resetRoll()
	c.start = c.pos
	return cut
}
