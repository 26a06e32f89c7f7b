package cmd

import (
	"path"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

var logger = internal.GetLogger("chunkers_cmd")

// Main runs the chunkers command line application.
func Main(args []string) error {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print version only",
	}
	app := &cli.App{
		Name:            "chunkers",
		Usage:           "Content-defined chunking engine for data deduplication.",
		Copyright:       "Apache License 2.0",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "loglevel",
				Usage: "log level: trace/debug/info/warn/error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "logdir",
				Usage: "write logs to a rotating file under this directory instead of stderr",
			},
		},
		Before: func(c *cli.Context) error {
			internal.SetLogLevel(internal.ParseLogLevel(c.String("loglevel")))
			internal.SetLogID(uuid.NewString()[:8])
			if dir := c.String("logdir"); dir != "" {
				if err := internal.SetOutFile(path.Join(dir, "chunkers.log")); err != nil {
					return err
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdChunk(),
			cmdTestRAM(),
		},
	}

	return app.Run(args)
}
