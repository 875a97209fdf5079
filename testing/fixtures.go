package testing

import (
	"bytes"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/bwtz/container"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// CreateRandomData returns size random bytes. It is guaranteed to either return
// a valid slice or fail the test and abort.
func CreateRandomData(size int, t *testing.T) []byte {
	data := make([]byte, size)

	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to initialize %d random bytes", size)
	return data
}

// CreateLowEntropyData returns size random bytes drawn from only the first
// `symbols` byte values. Such data is usually compressible.
func CreateLowEntropyData(size int, symbols byte, t *testing.T) []byte {
	data := CreateRandomData(size, t)
	for i := range data {
		data[i] %= symbols
	}
	return data
}

// CreateTextData returns size bytes of repetitive English text.
func CreateTextData(size int) []byte {
	const sentence = "It was the best of times, it was the worst of times, it was the age of " +
		"wisdom, it was the age of foolishness, it was the epoch of belief. "
	return bytes.Repeat([]byte(sentence), size/len(sentence)+1)[:size]
}

// WriteFile writes data to a new file called name in a temporary directory
// owned by the test, and returns the file's path.
func WriteFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoErrorf(t, os.WriteFile(path, data, 0o644), "failed to write %s", path)
	return path
}

// LoadContainer takes a packed container and returns a stream to access the
// decoded data.
//
//   - Writes to the stream do not affect `packed`.
//   - While the stream can be written to, its size is fixed to the decoded
//     size. Attempting to write past the end of this buffer will trigger an
//     error.
func LoadContainer(t *testing.T, packed []byte) io.ReadWriteSeeker {
	require.GreaterOrEqual(t, len(packed), 4, "container is too short")

	data, err := container.DecodeToBytes(bytes.NewReader(packed))
	require.NoError(t, err)
	return bytesextra.NewReadWriteSeeker(data)
}
