package runcodec

import (
	"io"
)

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates the end of the data was reached.
	RunLength int
}

// InvalidRun is returned by [RunLengthGrouper] once the data is exhausted.
var InvalidRun = ByteRun{Byte: 0, RunLength: 0}

// RunLengthGrouper splits a byte slice into runs of identical values, none
// longer than a fixed maximum.
type RunLengthGrouper struct {
	data         []byte
	position     int
	maxRunLength int
}

func NewRunLengthGrouper(data []byte, maxRunLength int) *RunLengthGrouper {
	return &RunLengthGrouper{data: data, maxRunLength: maxRunLength}
}

// Position returns the offset of the first unconsumed byte.
func (grouper *RunLengthGrouper) Position() int {
	return grouper.position
}

// Done returns true once every byte has been consumed.
func (grouper *RunLengthGrouper) Done() bool {
	return grouper.position >= len(grouper.data)
}

// PeekRun returns the run starting at the current position without consuming
// it. At the end of the data it returns [InvalidRun].
func (grouper *RunLengthGrouper) PeekRun() ByteRun {
	return grouper.runAt(grouper.position)
}

// GetNextRun returns a [ByteRun] for the next byte or run of byte values and
// consumes it. At the end of the data it returns [InvalidRun] and [io.EOF].
func (grouper *RunLengthGrouper) GetNextRun() (ByteRun, error) {
	run := grouper.PeekRun()
	if run.RunLength == 0 {
		return InvalidRun, io.EOF
	}
	grouper.position += run.RunLength
	return run, nil
}

// TakeLiterals consumes and returns up to maxCount bytes, stopping early just
// before the first position where at least minRunLength identical bytes begin.
// It always consumes at least one byte unless the data is exhausted.
func (grouper *RunLengthGrouper) TakeLiterals(maxCount, minRunLength int) []byte {
	start := grouper.position
	end := start
	for end < len(grouper.data) && end-start < maxCount {
		if end > start && grouper.runStartsAt(end, minRunLength) {
			break
		}
		end++
	}
	grouper.position = end
	return grouper.data[start:end]
}

func (grouper *RunLengthGrouper) runAt(start int) ByteRun {
	if start >= len(grouper.data) {
		return InvalidRun
	}

	firstByte := grouper.data[start]
	runLength := 1
	for start+runLength < len(grouper.data) &&
		runLength < grouper.maxRunLength &&
		grouper.data[start+runLength] == firstByte {
		runLength++
	}
	return ByteRun{Byte: firstByte, RunLength: runLength}
}

// runStartsAt is true if the minRunLength bytes beginning at start exist and
// are all the same.
func (grouper *RunLengthGrouper) runStartsAt(start, minRunLength int) bool {
	if start+minRunLength > len(grouper.data) {
		return false
	}
	for i := 1; i < minRunLength; i++ {
		if grouper.data[start+i] != grouper.data[start] {
			return false
		}
	}
	return true
}
