// Package chunker partitions byte streams into variable-length chunks whose
// boundaries are determined by the content itself, so identical substrings
// produce identical chunks wherever they appear. Two content-defined
// algorithms are provided, Rabin fingerprint chunking and AE (asymmetric
// extremum) chunking, plus a fixed-size chunker, all behind one scanning
// contract driven by the streaming Driver.
package chunker

import (
	"fmt"

	"github.com/zhengshuai-xiao/ChunkerS/config"
	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

var logger = internal.GetLogger("chunker")

// Cut records one detected cut point. Start is the absolute stream offset of
// the closed chunk, Length its size, Fingerprint the rolling digest at the
// cut for algorithms that have one.
type Cut struct {
	Start       uint64
	Length      uint64
	Fingerprint uint64
}

// Chunker is the scanning contract every algorithm implements. The Driver
// feeds it buffers and owns the chunk bytes; a Chunker only decides where
// chunks end.
type Chunker interface {
	// Reset clears all per-stream state. Called at the top of each stream,
	// after which the instance is reusable.
	Reset()

	// NextChunk scans buf for the next cut point. It returns the number of
	// bytes consumed from buf and, when a cut was found, its record. A nil
	// cut means buf was exhausted (fully consumed) without one. The scanned
	// bytes of a chunk may exceed its length: lookahead past the cut stays
	// with the caller and opens the next chunk.
	NextChunk(buf []byte) (int, *Cut)

	// Finalize flushes pending bytes as a final short chunk, or returns nil
	// when the stream ended exactly on a cut.
	Finalize() *Cut
}

// New builds the configured chunking algorithm.
func New(cfg *config.Config) (Chunker, error) {
	tech, err := cfg.ChunkingAlgo()
	if err != nil {
		return nil, err
	}

	switch tech {
	case config.ChunkingFixed:
		size, err := cfg.FCSize()
		if err != nil {
			return nil, err
		}
		return NewFixedChunker(size)

	case config.ChunkingRabins:
		window, err := cfg.RabincWindowSize()
		if err != nil {
			return nil, err
		}
		minSize, err := cfg.RabincMinBlockSize()
		if err != nil {
			return nil, err
		}
		avgSize, err := cfg.RabincAvgBlockSize()
		if err != nil {
			return nil, err
		}
		maxSize, err := cfg.RabincMaxBlockSize()
		if err != nil {
			return nil, err
		}
		return NewRabinChunker(window, minSize, avgSize, maxSize)

	case config.ChunkingAE:
		avgSize, err := cfg.AEAvgBlockSize()
		if err != nil {
			return nil, err
		}
		mode, err := cfg.AEExtremeMode()
		if err != nil {
			return nil, err
		}
		aeMode := AEMax
		if mode == config.AEModeMin {
			aeMode = AEMin
		}
		return NewAEChunker(avgSize, aeMode)
	}

	return nil, fmt.Errorf("%w: unhandled chunking technique %d", internal.ErrConfigInvalid, tech)
}
