// Package runcodec implements the run-length codec applied to rank streams.
//
// An encoded stream is a sequence of records, each starting with one header
// byte:
//
//	1LLLLLLL V          repeat record: value V occurs L times
//	0LLLLLLL B1 .. BL   raw record: the next L bytes are copied verbatim
//
// so a single record describes at most 127 bytes.
//
// The encoder is greedy. At each position it measures the run of identical
// values there, capped at 127. A run of three or more becomes a repeat record.
// Anything shorter starts a raw record, which keeps collecting bytes until it
// holds 127 of them or the next three unconsumed values are identical, in which
// case those are left for a repeat record.
//
// The decoder doesn't depend on this policy. It accepts any stream that follows
// the header convention, including zero-length records.
package runcodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dargueta/bwtz"
)

// minRepeatLength is the shortest run the encoder emits as a repeat record.
const minRepeatLength = 3

// Record is a single decoded record header along with its data.
type Record struct {
	// Repeat is true for repeat records and false for raw records.
	Repeat bool
	// Length is the number of output bytes the record expands to.
	Length int
	// Value is the repeated byte. Only meaningful for repeat records.
	Value byte
	// Literals holds the bytes of a raw record. It aliases the encoded stream.
	Literals []byte
}

// EncodedSize returns the number of bytes the record occupies in a stream.
func (r Record) EncodedSize() int {
	if r.Repeat {
		return 2
	}
	return 1 + len(r.Literals)
}

// EncodeTo writes the run-length encoding of values to output. The return
// value is the number of bytes written, only valid if no error occurred.
func EncodeTo(output io.Writer, values []byte) (int64, error) {
	grouper := NewRunLengthGrouper(values, bwtz.MaxRunLength)

	totalBytesWritten := int64(0)
	for !grouper.Done() {
		var record []byte

		if grouper.PeekRun().RunLength >= minRepeatLength {
			// The grouper isn't done, so there's always a next run.
			run, _ := grouper.GetNextRun()
			record = []byte{bwtz.RepeatFlag | byte(run.RunLength), run.Byte}
		} else {
			literals := grouper.TakeLiterals(bwtz.MaxRunLength, minRepeatLength)
			record = make([]byte, 0, len(literals)+1)
			record = append(record, byte(len(literals)))
			record = append(record, literals...)
		}

		n, err := output.Write(record)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, err
		}
	}
	return totalBytesWritten, nil
}

// Encode returns the run-length encoding of values.
func Encode(values []byte) []byte {
	var buffer bytes.Buffer
	// Writes to a bytes.Buffer can't fail.
	_, _ = EncodeTo(&buffer, values)
	return buffer.Bytes()
}

// Decode expands a run-length encoded stream. If the stream ends in the middle
// of a record it returns [bwtz.ErrTruncatedData] and no output.
func Decode(packed []byte) ([]byte, error) {
	output := make([]byte, 0, len(packed))
	for position := 0; position < len(packed); {
		record, next, err := readRecord(packed, position)
		if err != nil {
			return nil, err
		}

		if record.Repeat {
			output = append(output, bytes.Repeat([]byte{record.Value}, record.Length)...)
		} else {
			output = append(output, record.Literals...)
		}
		position = next
	}
	return output, nil
}

// Records parses an encoded stream into its records without expanding them.
func Records(packed []byte) ([]Record, error) {
	var records []Record
	for position := 0; position < len(packed); {
		record, next, err := readRecord(packed, position)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		position = next
	}
	return records, nil
}

// readRecord parses the record whose header is at packed[position] and returns
// it along with the offset of the next header.
func readRecord(packed []byte, position int) (Record, int, error) {
	header := packed[position]
	position++

	if header&bwtz.RepeatFlag != 0 {
		if position >= len(packed) {
			return Record{}, 0, bwtz.ErrTruncatedData.WithMessage(
				fmt.Sprintf(
					"missing value byte after repeat header %#02x at offset %d",
					header,
					position-1,
				),
			)
		}
		record := Record{
			Repeat: true,
			Length: int(header & bwtz.MaxRunLength),
			Value:  packed[position],
		}
		return record, position + 1, nil
	}

	rawLength := int(header)
	if position+rawLength > len(packed) {
		return Record{}, 0, bwtz.ErrTruncatedData.WithMessage(
			fmt.Sprintf(
				"raw record at offset %d needs %d bytes, only %d remain",
				position-1,
				rawLength,
				len(packed)-position,
			),
		)
	}
	record := Record{
		Length:   rawLength,
		Literals: packed[position : position+rawLength],
	}
	return record, position + rawLength, nil
}
