package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "bwtz",
		Usage: "Compress files with a block-sorting transform",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "also append log output to `PATH`",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "read default settings from the YAML file at `PATH`",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "compress",
				Usage:  "Compress a file",
				Action: compressFile,
				Flags: []cli.Flag{
					inputFlag(),
					outputFlag(),
					&cli.BoolFlag{
						Name:  "check",
						Usage: "decode the new file and compare it with the input",
					},
					hashFlag(),
				},
			},
			{
				Name:   "decompress",
				Usage:  "Decompress a file, optionally checking it against the original",
				Action: decompressFile,
				Flags: []cli.Flag{
					inputFlag(),
					outputFlag(),
					&cli.StringFlag{
						Name:  "verify",
						Usage: "compare the decompressed output with the original file at `PATH`",
					},
					hashFlag(),
				},
			},
			{
				Name:      "verify",
				Usage:     "Check that two files have the same contents",
				Action:    verifyFiles,
				ArgsUsage: "ORIGINAL_FILE  DECODED_FILE",
				Flags:     []cli.Flag{hashFlag()},
			},
			{
				Name:      "stats",
				Usage:     "Report how well each file compresses",
				Action:    reportStats,
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "write the report as CSV instead of a table",
					},
					&cli.BoolFlag{
						Name:  "baselines",
						Usage: "also compress each file with gzip, zstd, LZ4 and xz",
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "read from `PATH`",
		Required: true,
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "write to `PATH`",
		Required: true,
	}
}

func hashFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "hash",
		Usage: "digest used for integrity checks: sha256 or blake3",
	}
}
