package main

import (
	"fmt"
	"os"

	"github.com/dargueta/bwtz/fileio"
	"github.com/dargueta/bwtz/internal/logging"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(
			os.Stderr,
			"Decompress a file created by bwtz.\nUsage: %s input-file output-file\n",
			os.Args[0])
		os.Exit(1)
	}

	sourceFilePath := os.Args[1]
	outputFilePath := os.Args[2]

	logger, closer, err := logging.New(logging.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %s\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	nWritten, err := fileio.DecompressFile(sourceFilePath, outputFilePath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error expanding file: %s\n", err)
		closer.Close()
		os.Exit(2)
	}

	fmt.Printf("Decompressed input file to %d bytes.\n", nWritten)
}
