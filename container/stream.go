package container

import (
	"io"

	"github.com/dargueta/bwtz"
)

// EncodeStream reads all of input, packs it into a container and writes the
// container to output.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used.
func EncodeStream(input io.Reader, output io.Writer) (int64, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return 0, bwtz.ErrIOFailed.Wrap(err)
	}
	return writeAll(output, Encode(data))
}

// DecodeStream reads a whole container from input and writes the original data
// to output.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decoded size of the data). If an error occurred, the value is undefined and
// should not be used.
func DecodeStream(input io.Reader, output io.Writer) (int64, error) {
	data, err := DecodeToBytes(input)
	if err != nil {
		return 0, err
	}
	return writeAll(output, data)
}

// DecodeToBytes reads a whole container from input and returns the original
// data.
func DecodeToBytes(input io.Reader) ([]byte, error) {
	packed, err := io.ReadAll(input)
	if err != nil {
		return nil, bwtz.ErrIOFailed.Wrap(err)
	}
	return Decode(packed)
}

func writeAll(output io.Writer, data []byte) (int64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	n, err := output.Write(data)
	if err != nil {
		return int64(n), bwtz.ErrIOFailed.Wrap(err)
	}
	if n != len(data) {
		return int64(n), bwtz.ErrIOFailed.Wrap(io.ErrShortWrite)
	}
	return int64(n), nil
}
