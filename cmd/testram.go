package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

// testram replicates a file N times in memory and measures the latency of
// touching the far end of the buffer, exercising paging the way a huge
// chunking run would.
func cmdTestRAM() *cli.Command {
	return &cli.Command{
		Name:      "testram",
		Usage:     "Replicate a file in memory and measure paging latency",
		ArgsUsage: "<file-path> <multiplier>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("Usage: chunkers testram <file-path> <multiplier>", 1)
			}
			multiplier, err := strconv.Atoi(c.Args().Get(1))
			if err != nil || multiplier < 1 {
				return cli.Exit("Usage: chunkers testram <file-path> <multiplier>", 1)
			}

			buf, err := internal.ReadFileToBuffer(c.Args().Get(0), multiplier)
			if err != nil {
				return fmt.Errorf("error reading file: %w", err)
			}
			fmt.Printf("Replicated file %d times into a buffer of %s\n",
				multiplier, humanize.Bytes(uint64(len(buf))))

			// Touch the first byte to page in the head of the buffer and push
			// the tail towards eviction.
			reader := bytes.NewReader(buf)
			var b [1]byte
			if _, err := reader.Read(b[:]); err != nil {
				return fmt.Errorf("error reading first byte: %w", err)
			}
			fmt.Printf("First byte (hex value): %02x\n", b[0])

			begin := time.Now()
			if _, err := reader.Seek(-1, io.SeekEnd); err != nil {
				return fmt.Errorf("error seeking to last byte: %w", err)
			}
			if _, err := reader.Read(b[:]); err != nil {
				return fmt.Errorf("error reading last byte: %w", err)
			}
			elapsed := time.Since(begin)

			fmt.Printf("Last byte (hex value): %02x\n", b[0])
			fmt.Printf("Time taken (microseconds): %.3f\n", float64(elapsed.Nanoseconds())/1000.0)
			return nil
		},
	}
}
