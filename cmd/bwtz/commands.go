package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dargueta/bwtz"
	"github.com/dargueta/bwtz/config"
	"github.com/dargueta/bwtz/fileio"
	"github.com/dargueta/bwtz/internal/logging"
	"github.com/dargueta/bwtz/stats"
	"github.com/urfave/cli/v2"
)

// loadSettings merges the configuration file with the command line and builds
// the logger. The caller must close the returned closer.
func loadSettings(context *cli.Context) (config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(context.String("config"))
	if err != nil {
		return cfg, nil, nil, err
	}

	if context.IsSet("verbose") {
		cfg.Verbose = context.Bool("verbose")
	}
	if context.IsSet("log-file") {
		cfg.LogFile = context.String("log-file")
	}
	if context.IsSet("check") {
		cfg.Verify = context.Bool("check")
	}
	if context.IsSet("hash") {
		cfg.Hash, err = config.ParseHashAlgorithm(context.String("hash"))
		if err != nil {
			return cfg, nil, nil, err
		}
	}

	logger, closer, err := logging.New(
		logging.Options{Verbose: cfg.Verbose, LogFile: cfg.LogFile})
	if err != nil {
		return cfg, nil, nil, err
	}
	logger.Debug("loaded settings", "config", context.String("config"), "settings", cfg)
	return cfg, logger, closer, nil
}

func compressFile(context *cli.Context) error {
	cfg, logger, closer, err := loadSettings(context)
	if err != nil {
		return err
	}
	defer closer.Close()

	inputPath := context.String("input")
	outputPath := context.String("output")
	info, err := fileio.CompressFile(inputPath, outputPath, logger)
	if err != nil {
		return err
	}
	fmt.Printf(
		"Compressed %d bytes to %d bytes (%.2f%%, %s).\n",
		info.OriginalSize,
		info.EncodedSize,
		info.Ratio()*100,
		info.Mode,
	)

	if !cfg.Verify {
		return nil
	}
	result, err := fileio.VerifyContainer(inputPath, outputPath, cfg.Hash, logger)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", result.OriginalDigest, inputPath)
	fmt.Println("Container decodes to the original.")
	return nil
}

func decompressFile(context *cli.Context) error {
	cfg, logger, closer, err := loadSettings(context)
	if err != nil {
		return err
	}
	defer closer.Close()

	outputPath := context.String("output")
	size, err := fileio.DecompressFile(context.String("input"), outputPath, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Decompressed file to %d bytes.\n", size)

	originalPath := context.String("verify")
	if originalPath == "" {
		return nil
	}
	return runVerification(originalPath, outputPath, cfg.Hash, logger)
}

func verifyFiles(context *cli.Context) error {
	if context.NArg() != 2 {
		return bwtz.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("expected 2 files, got %d", context.NArg()))
	}

	cfg, logger, closer, err := loadSettings(context)
	if err != nil {
		return err
	}
	defer closer.Close()

	return runVerification(context.Args().Get(0), context.Args().Get(1), cfg.Hash, logger)
}

func runVerification(
	originalPath, decodedPath string, algorithm config.HashAlgorithm, logger *slog.Logger,
) error {
	result, err := fileio.Verify(originalPath, decodedPath, algorithm, logger)
	if result.OriginalDigest != "" && result.DecodedDigest != "" {
		fmt.Printf("%s  %s\n", result.OriginalDigest, originalPath)
		fmt.Printf("%s  %s\n", result.DecodedDigest, decodedPath)
	}
	if err != nil {
		return err
	}
	fmt.Println("Files match.")
	return nil
}

func reportStats(context *cli.Context) error {
	if context.NArg() == 0 {
		return bwtz.ErrInvalidArgument.WithMessage("no files given")
	}

	_, logger, closer, err := loadSettings(context)
	if err != nil {
		return err
	}
	defer closer.Close()

	withBaselines := context.Bool("baselines")
	reports := make([]stats.Report, 0, context.NArg())
	for _, path := range context.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return bwtz.ErrIOFailed.Wrap(err)
		}
		logger.Debug("analyzing file", "path", path, "size", len(data))

		report, err := stats.Analyze(path, data, withBaselines)
		if err != nil {
			logger.Error("analysis failed", "path", path, "error", err)
			return err
		}
		reports = append(reports, report)
	}

	if context.Bool("csv") {
		return stats.WriteCSV(os.Stdout, reports)
	}
	return stats.WriteTable(os.Stdout, reports, withBaselines)
}
