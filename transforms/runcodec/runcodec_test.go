package runcodec_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/dargueta/bwtz"
	rc "github.com/dargueta/bwtz/transforms/runcodec"
	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RunCodecTestCase struct {
	Input          []byte
	ExpectedOutput []byte
	Name           string
}

func sequence(start, count int) []byte {
	output := make([]byte, count)
	for i := range output {
		output[i] = byte(start + i)
	}
	return output
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestEncode__Basic(t *testing.T) {
	tests := []RunCodecTestCase{
		{[]byte{}, []byte{}, "empty"},
		{[]byte{5}, []byte{1, 5}, "single value"},
		{[]byte{4, 4}, []byte{2, 4, 4}, "run with two only"},
		{[]byte{0, 0, 0}, []byte{0x83, 0}, "run with three"},
		{[]byte{0, 1, 2, 3, 4}, []byte{5, 0, 1, 2, 3, 4}, "no runs"},
		{[]byte{6, 1, 0, 0, 0}, []byte{2, 6, 1, 0x83, 0}, "three at end"},
		{[]byte{6, 1, 3, 0, 0}, []byte{5, 6, 1, 3, 0, 0}, "two at end"},
		{[]byte{9, 5, 5, 5, 5, 5, 3, 7}, []byte{1, 9, 0x85, 5, 2, 3, 7}, "short run"},
		{[]byte{1, 2, 2, 3, 3, 3}, []byte{3, 1, 2, 2, 0x83, 3}, "pair inside raw record"},
		{
			[]byte{9, 5, 5, 5, 5, 5, 5, 3, 3, 3, 3, 7, 2, 6},
			[]byte{1, 9, 0x86, 5, 0x84, 3, 3, 7, 2, 6},
			"adjacent runs",
		},
		{make([]byte, 127), []byte{0xFF, 0}, "127"},
		{make([]byte, 128), []byte{0xFF, 0, 1, 0}, "128"},
		{make([]byte, 129), []byte{0xFF, 0, 2, 0, 0}, "129"},
		{make([]byte, 130), []byte{0xFF, 0, 0x83, 0}, "130"},
		{
			make([]byte, 600),
			[]byte{0xFF, 0, 0xFF, 0, 0xFF, 0, 0xFF, 0, 0xDC, 0},
			"single long run",
		},
		{
			sequence(0, 200),
			concat([]byte{127}, sequence(0, 127), []byte{73}, sequence(127, 73)),
			"raw record split at 127",
		},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				runEncodeTestCase(t, test)
			},
		)
	}
}

func TestEncodeTo__FixedBuffer(t *testing.T) {
	input := []byte{9, 5, 5, 5, 5, 5, 3, 7}
	expected := []byte{1, 9, 0x85, 5, 2, 3, 7}

	outputBuffer := make([]byte, len(expected)*2)
	n, err := rc.EncodeTo(bytewriter.New(outputBuffer), input)
	require.NoError(t, err)
	assert.EqualValues(t, len(expected), n, "bytes written is wrong")
	assert.Equal(t, expected, outputBuffer[:n])
}

func TestRoundTrip__CompletelyRandom(t *testing.T) {
	originalData := make([]byte, 1852)
	_, err := rand.Read(originalData)
	require.NoError(t, err)
	runRoundTripTestCase(t, originalData)
}

func TestRoundTrip__EntirelyNulls(t *testing.T) {
	runRoundTripTestCase(t, make([]byte, 571))
}

func TestRoundTrip__MixedRuns(t *testing.T) {
	var data []byte
	for i := 0; i < 300; i++ {
		data = append(data, bytes.Repeat([]byte{byte(i)}, i%7)...)
	}
	runRoundTripTestCase(t, data)
}

func TestRoundTrip__Empty(t *testing.T) {
	runRoundTripTestCase(t, []byte{})
}

func TestDecode__AcceptsForeignStreams(t *testing.T) {
	// Zero-length records and short repeat records are never produced by the
	// encoder but are still valid.
	packed := []byte{0x00, 0x80, 7, 0x81, 4, 0x82, 5, 1, 9}
	decoded, err := rc.Decode(packed)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 5, 9}, decoded)
}

func TestDecode__Truncated(t *testing.T) {
	tests := map[string][]byte{
		"missing repeat value":          {0x85},
		"missing repeat value at end":   {1, 9, 0x83},
		"raw record short":              {3, 1, 2},
		"raw record header only":        {0x7F},
		"valid records then truncation": {0x83, 0, 2, 1},
	}

	for name, packed := range tests {
		t.Run(
			name,
			func(t *testing.T) {
				decoded, err := rc.Decode(packed)
				assert.ErrorIs(t, err, bwtz.ErrTruncatedData)
				assert.Nil(t, decoded)
			},
		)
	}
}

func TestRecords(t *testing.T) {
	records, err := rc.Records([]byte{1, 9, 0x85, 5, 2, 3, 7})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, rc.Record{Length: 1, Literals: []byte{9}}, records[0])
	assert.Equal(t, rc.Record{Repeat: true, Length: 5, Value: 5}, records[1])
	assert.Equal(t, rc.Record{Length: 2, Literals: []byte{3, 7}}, records[2])

	assert.Equal(t, 2, records[0].EncodedSize())
	assert.Equal(t, 2, records[1].EncodedSize())
	assert.Equal(t, 3, records[2].EncodedSize())
}

func TestRecords__Truncated(t *testing.T) {
	_, err := rc.Records([]byte{0x90})
	assert.ErrorIs(t, err, bwtz.ErrTruncatedData)
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

func runEncodeTestCase(t *testing.T, test RunCodecTestCase) {
	output := rc.Encode(test.Input)
	if len(test.ExpectedOutput) == 0 {
		assert.Empty(t, output)
	} else {
		assert.Equal(t, test.ExpectedOutput, output, "encoded data is wrong")
	}

	decoded, err := rc.Decode(output)
	require.NoError(t, err, "unexpected error while decoding")
	assert.Equal(t, len(test.Input), len(decoded), "decoded data has wrong size")
	assert.True(t, bytes.Equal(test.Input, decoded), "decoded data is wrong")
}

func runRoundTripTestCase(t *testing.T, originalData []byte) {
	encoded := rc.Encode(originalData)
	t.Logf("encoded %d to %d", len(originalData), len(encoded))

	decoded, err := rc.Decode(encoded)
	require.NoError(t, err, "unexpected error while decoding")
	assert.True(t, bytes.Equal(originalData, decoded), "decoded data doesn't match original data")
}
