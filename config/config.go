// Package config loads defaults for the command-line tools from a YAML file.
//
// The file is optional. Values given on the command line always win over the
// file, and the file wins over the built-in defaults. `verify` only applies to
// compression: it makes `compress` check that the container it wrote decodes
// back to the input (the `--check` flag). Decompression is checked only when
// the original file is named with `--verify`.
//
//	verbose: true
//	log_file: logs/bwtz.log
//	verify: true
//	hash: blake3
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dargueta/bwtz"
	"gopkg.in/yaml.v3"
)

// HashAlgorithm names a digest used for integrity checks.
type HashAlgorithm string

const (
	HashSHA256 HashAlgorithm = "sha256"
	HashBLAKE3 HashAlgorithm = "blake3"
)

// ParseHashAlgorithm validates an algorithm name.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch HashAlgorithm(name) {
	case HashSHA256, HashBLAKE3:
		return HashAlgorithm(name), nil
	default:
		return "", bwtz.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown hash algorithm %q, expected %q or %q", name, HashSHA256, HashBLAKE3))
	}
}

// Config holds the settings shared by every subcommand.
type Config struct {
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
	// LogFile, if not empty, receives a copy of all log output.
	LogFile string `yaml:"log_file"`
	// Verify makes `compress` decode the container it just wrote and compare
	// it with the input file. `decompress` only checks its output when given
	// the original file explicitly, so this setting doesn't affect it.
	Verify bool `yaml:"verify"`
	// Hash is the digest used for integrity checks.
	Hash HashAlgorithm `yaml:"hash"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Hash: HashSHA256}
}

// Load reads the configuration at path on top of [Default]. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, bwtz.ErrNotFound.WithMessage(path)
		}
		return cfg, bwtz.ErrIOFailed.Wrap(err)
	}
	return Parse(raw)
}

// Parse decodes YAML configuration on top of [Default].
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), bwtz.ErrInvalidArgument.Wrap(err)
	}
	if cfg.Hash == "" {
		cfg.Hash = HashSHA256
	}
	if _, err := ParseHashAlgorithm(string(cfg.Hash)); err != nil {
		return Default(), err
	}
	return cfg, nil
}
