// Package fileio compresses and decompresses whole files.
//
// Output is written to a temporary file next to the destination and renamed
// into place only once it is complete, so a failed run never leaves a partial
// output file behind.
package fileio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dargueta/bwtz"
	"github.com/dargueta/bwtz/container"
	"github.com/hashicorp/go-multierror"
)

// CompressFile packs the file at inputPath into a container written to
// outputPath.
func CompressFile(inputPath, outputPath string, logger *slog.Logger) (container.Info, error) {
	logger = logger.With("input", inputPath, "output", outputPath)

	data, err := readInput(inputPath)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return container.Info{}, err
	}
	logger.Info("compressing file", "size", len(data))

	if len(data) < bwtz.StoreThreshold {
		logger.Warn(
			"file too small to benefit from compression, storing it as-is",
			"threshold", bwtz.StoreThreshold,
		)
	}

	packed, info := container.EncodeInfo(data)
	logger.Info(
		"encoded file",
		"mode", info.Mode,
		"primary_index", info.PrimaryIndex,
		"encoded_size", info.EncodedSize,
		"ratio", fmt.Sprintf("%.2f%%", info.Ratio()*100),
	)
	if info.Mode == bwtz.ModeStored && len(data) >= bwtz.StoreThreshold {
		logger.Warn("compression didn't reduce the size, stored the original instead")
	}

	if err := writeAtomically(outputPath, packed); err != nil {
		logger.Error("failed to write output", "error", err)
		return info, err
	}
	logger.Debug("output written")
	return info, nil
}

// DecompressFile unpacks the container at inputPath and writes the original
// data to outputPath. It returns the size of the decoded data.
func DecompressFile(inputPath, outputPath string, logger *slog.Logger) (int, error) {
	logger = logger.With("input", inputPath, "output", outputPath)

	packed, err := readInput(inputPath)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return 0, err
	}

	header, err := container.ParseHeader(packed)
	if err != nil {
		logger.Error("invalid container", "error", err)
		return 0, err
	}
	logger.Info(
		"decompressing file",
		"size", len(packed),
		"mode", header.Mode,
		"primary_index", header.PrimaryIndex,
	)

	data, err := container.Decode(packed)
	if err != nil {
		logger.Error("failed to decode container", "error", err)
		return 0, err
	}

	if err := writeAtomically(outputPath, data); err != nil {
		logger.Error("failed to write output", "error", err)
		return 0, err
	}
	logger.Info("decompressed file", "decoded_size", len(data))
	return len(data), nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, bwtz.ErrNotFound.WithMessage(path)
	}
	return nil, bwtz.ErrIOFailed.Wrap(err)
}

// writeAtomically writes data to a temporary file in the same directory as
// path, then renames it over path. On failure the temporary file is removed and
// path is left untouched.
func writeAtomically(path string, data []byte) error {
	directory, name := filepath.Split(path)
	if directory == "" {
		directory = "."
	}

	tempFile, err := os.CreateTemp(directory, "."+name+".*.partial")
	if err != nil {
		return bwtz.ErrIOFailed.Wrap(err)
	}
	tempPath := tempFile.Name()

	// CreateTemp makes the file private; outputs get ordinary permissions.
	chmodErr := tempFile.Chmod(0o644)
	_, writeErr := tempFile.Write(data)
	closeErr := tempFile.Close()

	var result *multierror.Error
	if chmodErr != nil {
		result = multierror.Append(result, chmodErr)
	}
	if writeErr != nil {
		result = multierror.Append(result, writeErr)
	}
	if closeErr != nil {
		result = multierror.Append(result, closeErr)
	}
	if result == nil {
		if err := os.Rename(tempPath, path); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result != nil {
		if err := os.Remove(tempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			result = multierror.Append(result, err)
		}
		return bwtz.ErrIOFailed.Wrap(result.ErrorOrNil())
	}
	return nil
}
