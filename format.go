package bwtz

import "fmt"

// HeaderSize is the size of the container header, in bytes.
const HeaderSize = 4

// StoreThreshold is the input size below which the container always stores
// data verbatim.
const StoreThreshold = 512

// MaxRunLength is the longest run or literal segment a single run-codec record
// can describe.
const MaxRunLength = 0x7F

// RepeatFlag is set in the header byte of a run-codec repeat record.
const RepeatFlag = 0x80

// AlphabetSize is the number of distinct symbols in a byte stream.
const AlphabetSize = 256

// Mode identifies how a container payload is represented.
type Mode uint8

const (
	// ModeStored means the payload is the original bytes.
	ModeStored Mode = iota
	// ModeCompressed means the payload is a run-coded rank stream.
	ModeCompressed
)

func (m Mode) String() string {
	switch m {
	case ModeStored:
		return "stored"
	case ModeCompressed:
		return "compressed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}
