package chunker

import (
	"fmt"
	"io"
	"os"

	"github.com/zhengshuai-xiao/ChunkerS/config"
)

// streamBufferSize is the scratch buffer for one ChunkStream invocation. A
// large buffer keeps refills rare so most chunks are copied out of a single
// read.
const streamBufferSize = 40 * 1024 * 1024

// Driver pulls buffers from a source, runs a Chunker over them and emits
// hashed chunks. Chunk bytes are always copied at emission; an open chunk
// that spans a refill survives in the staging buffer, so chunks of any size
// are handled on any input.
type Driver struct {
	chunker Chunker
	hash    HashAlgo
	bufSize int
	staging []byte
}

// NewDriver builds the driver, chunker and hash the configuration asks for.
func NewDriver(cfg *config.Config) (*Driver, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	hash, err := HashAlgoFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewDriverFor(c, hash), nil
}

// NewDriverFor wires a driver around an explicit chunker and hash choice.
func NewDriverFor(c Chunker, hash HashAlgo) *Driver {
	return &Driver{
		chunker: c,
		hash:    hash,
		bufSize: streamBufferSize,
	}
}

// ChunkStream consumes r until exhaustion and returns the chunks in stream
// order. On a read error the chunks already emitted are returned alongside
// the error.
func (d *Driver) ChunkStream(r io.Reader) ([]Chunk, error) {
	d.chunker.Reset()
	d.staging = d.staging[:0]

	var chunks []Chunk
	buf := make([]byte, d.bufSize)

	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			chunks = d.scan(chunks, buf[:n])
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return chunks, fmt.Errorf("failed to read source: %w", err)
		}
	}

	if tail := d.chunker.Finalize(); tail != nil {
		chunks = append(chunks, d.emit(tail, nil))
	}
	logger.Debugf("chunked stream into %d chunks", len(chunks))
	return chunks, nil
}

// scan runs the chunker over one filled buffer, emitting every chunk that
// closes inside it and staging the open remainder.
func (d *Driver) scan(chunks []Chunk, block []byte) []Chunk {
	rem := block
	for {
		n, cut := d.chunker.NextChunk(rem)
		if cut == nil {
			d.staging = append(d.staging, rem...)
			return chunks
		}
		chunks = append(chunks, d.emit(cut, rem[:n]))
		rem = rem[n:]
	}
}

// emit copies the closed chunk out of staging plus the consumed segment of
// the live buffer, keeps any scanned lookahead beyond the cut staged for the
// next chunk, and attaches the digest.
func (d *Driver) emit(cut *Cut, seg []byte) Chunk {
	length := int(cut.Length)
	combined := append(d.staging, seg...)

	chunk := NewChunk(cut.Length)
	copy(chunk.Data, combined[:length])
	d.staging = append(combined[:0], combined[length:]...)

	chunk.SetHash(d.hash, d.hash.Sum(chunk.Data))
	logger.Tracef("emit chunk start=%d len=%d fp=%x", cut.Start, cut.Length, cut.Fingerprint)
	return chunk
}

// ChunkFile opens path and chunks its contents.
func (d *Driver) ChunkFile(path string) ([]Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return d.ChunkStream(file)
}

// ChunkStreamInto appends the chunks of r to *sink, preserving chunks that
// were appended before a read failure.
func (d *Driver) ChunkStreamInto(sink *[]Chunk, r io.Reader) error {
	chunks, err := d.ChunkStream(r)
	*sink = append(*sink, chunks...)
	return err
}

// ChunkAll is the library entry: chunk r with the configured algorithm and
// hash, returning the chunks in stream order.
func ChunkAll(cfg *config.Config, r io.Reader) ([]Chunk, error) {
	driver, err := NewDriver(cfg)
	if err != nil {
		return nil, err
	}
	return driver.ChunkStream(r)
}
