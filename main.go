package main

import (
	"os"

	"github.com/zhengshuai-xiao/ChunkerS/cmd"
	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

var logger = internal.GetLogger("chunkers_main")

func main() {
	if err := cmd.Main(os.Args); err != nil {
		logger.Fatal(err)
	}
}
