package chunker

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

// Chunk is one contiguous piece of the input stream. Its Data is an owned
// copy, never a view into a scanning buffer, so it stays valid after the
// chunker refills.
type Chunk struct {
	Data []byte
	hash *Hash
}

// Hash is a chunk digest together with the algorithm that produced it.
type Hash struct {
	Algo   HashAlgo
	Digest []byte
}

// Hex renders the digest as a lowercase hex string.
func (h *Hash) Hex() string {
	return internal.BytesToHex(h.Digest)
}

// NewChunk allocates a chunk with room for size bytes.
func NewChunk(size uint64) Chunk {
	return Chunk{Data: make([]byte, size)}
}

// Size returns the chunk length in bytes.
func (c *Chunk) Size() uint64 {
	return uint64(len(c.Data))
}

// SetHash attaches a digest to the chunk.
func (c *Chunk) SetHash(algo HashAlgo, digest []byte) {
	c.hash = &Hash{Algo: algo, Digest: digest}
}

// Hash returns the attached hash, or nil when none was computed.
func (c *Chunk) Hash() *Hash {
	return c.hash
}

// Clone deep-copies the chunk, data and hash included.
func (c *Chunk) Clone() Chunk {
	clone := NewChunk(c.Size())
	copy(clone.Data, c.Data)
	if c.hash != nil {
		digest := make([]byte, len(c.hash.Digest))
		copy(digest, c.hash.Digest)
		clone.hash = &Hash{Algo: c.hash.Algo, Digest: digest}
	}
	return clone
}

// String renders the chunk as "<digest_hex>,<length>" for the chunk record
// output. A chunk without a hash renders as a sentinel instead.
func (c Chunk) String() string {
	if c.hash == nil {
		return "INVALID HASH"
	}
	return c.hash.Hex() + "," + strconv.FormatUint(c.Size(), 10)
}

// Dump writes length, hash and raw bytes to w. Debug only, not used on the
// chunking path.
func (c *Chunk) Dump(w io.Writer) {
	fmt.Fprintf(w, "\tChunk Size: %d\n", c.Size())
	if c.hash != nil {
		fmt.Fprintf(w, "\tChunk Hash: %s\n", internal.BytesToHex(c.hash.Digest))
	}
	fmt.Fprintf(w, "\tChunk Data: %s\n", c.Data)
}
