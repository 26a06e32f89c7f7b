package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/zhengshuai-xiao/ChunkerS/chunker"
	"github.com/zhengshuai-xiao/ChunkerS/config"
)

func cmdChunk() *cli.Command {
	return &cli.Command{
		Name:  "chunk",
		Usage: "Chunk a local file with the configured algorithm and print one <hash>,<length> record per chunk",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Required: true, Usage: "Path to the chunking configuration file"},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Path to the file to chunk"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Suppress per-chunk records, print the summary only"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.New(c.String("config"))
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			driver, err := chunker.NewDriver(cfg)
			if err != nil {
				return fmt.Errorf("error creating chunker: %w", err)
			}

			begin := time.Now()
			chunks, err := driver.ChunkFile(c.String("file"))
			if err != nil {
				return fmt.Errorf("error chunking file: %w", err)
			}
			elapsed := time.Since(begin)

			var totalSize uint64
			for _, chunk := range chunks {
				totalSize += chunk.Size()
			}

			if !c.Bool("quiet") {
				for _, chunk := range chunks {
					fmt.Println(chunk)
				}
			}
			fmt.Printf("Chunked %s into %d chunks in %v\n",
				humanize.IBytes(totalSize), len(chunks), elapsed)
			return nil
		},
	}
}
