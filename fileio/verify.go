package fileio

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"

	"github.com/dargueta/bwtz"
	"github.com/dargueta/bwtz/config"
	"github.com/dargueta/bwtz/container"
	"github.com/zeebo/blake3"
)

// Verification is the outcome of comparing two files by digest.
type Verification struct {
	Algorithm      config.HashAlgorithm
	OriginalDigest string
	DecodedDigest  string
	Match          bool
}

// NewHash returns a fresh hasher for algorithm.
func NewHash(algorithm config.HashAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case config.HashSHA256:
		return sha256.New(), nil
	case config.HashBLAKE3:
		return blake3.New(), nil
	default:
		_, err := config.ParseHashAlgorithm(string(algorithm))
		return nil, err
	}
}

// FileDigest returns the hex-encoded digest of the file at path.
func FileDigest(path string, algorithm config.HashAlgorithm) (string, error) {
	hasher, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", bwtz.ErrNotFound.WithMessage(path)
		}
		return "", bwtz.ErrIOFailed.Wrap(err)
	}
	defer file.Close()

	if _, err := io.Copy(hasher, file); err != nil {
		return "", bwtz.ErrIOFailed.Wrap(err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Verify compares the file at originalPath with the file at decodedPath. The
// check is informational: neither file is modified. If the digests differ, the
// returned error wraps [bwtz.ErrVerificationFailed] and the [Verification] is
// still filled in.
func Verify(
	originalPath, decodedPath string, algorithm config.HashAlgorithm, logger *slog.Logger,
) (Verification, error) {
	result := Verification{Algorithm: algorithm}
	logger.Info("verifying file integrity", "original", originalPath, "decoded", decodedPath)

	var err error
	result.OriginalDigest, err = FileDigest(originalPath, algorithm)
	if err != nil {
		logger.Error("failed to hash original file", "error", err)
		return result, err
	}
	result.DecodedDigest, err = FileDigest(decodedPath, algorithm)
	if err != nil {
		logger.Error("failed to hash decoded file", "error", err)
		return result, err
	}
	logger.Debug(
		"computed digests",
		"algorithm", algorithm,
		"original", result.OriginalDigest,
		"decoded", result.DecodedDigest,
	)

	result.Match = result.OriginalDigest == result.DecodedDigest
	if !result.Match {
		logger.Error("verification failed: digests differ")
		return result, bwtz.ErrVerificationFailed.WithMessage(
			fmt.Sprintf(
				"%s digest %s != %s", algorithm, result.OriginalDigest, result.DecodedDigest))
	}
	logger.Info("verification succeeded: digests match", "algorithm", algorithm)
	return result, nil
}

// VerifyContainer decodes the container at containerPath in memory and compares
// the result with the file at originalPath. Like [Verify], a mismatch returns
// the filled-in [Verification] along with [bwtz.ErrVerificationFailed]. A
// container that fails to decode returns the decoding error.
func VerifyContainer(
	originalPath, containerPath string, algorithm config.HashAlgorithm, logger *slog.Logger,
) (Verification, error) {
	result := Verification{Algorithm: algorithm}
	logger.Info("verifying container", "original", originalPath, "container", containerPath)

	hasher, err := NewHash(algorithm)
	if err != nil {
		return result, err
	}

	packed, err := readInput(containerPath)
	if err != nil {
		logger.Error("failed to read container", "error", err)
		return result, err
	}
	decoded, err := container.Decode(packed)
	if err != nil {
		logger.Error("container doesn't decode", "error", err)
		return result, err
	}
	hasher.Write(decoded)
	result.DecodedDigest = hex.EncodeToString(hasher.Sum(nil))

	result.OriginalDigest, err = FileDigest(originalPath, algorithm)
	if err != nil {
		logger.Error("failed to hash original file", "error", err)
		return result, err
	}

	result.Match = result.OriginalDigest == result.DecodedDigest
	if !result.Match {
		logger.Error("verification failed: container doesn't decode to the original")
		return result, bwtz.ErrVerificationFailed.WithMessage(
			fmt.Sprintf(
				"%s digest %s != %s", algorithm, result.OriginalDigest, result.DecodedDigest))
	}
	logger.Info("verification succeeded: container decodes to the original", "algorithm", algorithm)
	return result, nil
}
