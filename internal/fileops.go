package internal

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadFileToBuffer reads the file at path and replicates its contents
// `multiplier` times into a single in-RAM buffer. The buffer is sized for all
// copies up front and each pass reads the file straight into it, so only the
// assembled buffer is ever held whole.
func ReadFileToBuffer(path string, multiplier int) ([]byte, error) {
	if multiplier < 1 {
		return nil, fmt.Errorf("multiplier must be >= 1, got %d", multiplier)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	var out bytes.Buffer
	out.Grow(int(info.Size()) * multiplier)

	block := make([]byte, 1<<20)
	for i := 0; i < multiplier; i++ {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind file: %w", err)
		}
		if _, err := io.CopyBuffer(&out, file, block); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	return out.Bytes(), nil
}

// WriteAll writes buf to file, retrying short writes.
func WriteAll(file *os.File, buf []byte) (int, error) {
	total := 0
	remaining := len(buf)
	for remaining > 0 {
		n, err := file.Write(buf[total:])
		if err != nil {
			return total, fmt.Errorf("failed to write file: %w", err)
		}

		total += n
		remaining -= n
	}

	return total, nil
}
