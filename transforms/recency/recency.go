// Package recency implements the move-to-front (recency-rank) transform.
//
// Each byte is replaced by its position in a list of all 256 byte values, and
// then moved to the front of that list. Recently seen bytes get small ranks, so
// the clustered output of the block-sorting transform turns into a stream
// dominated by zeros and other small values. The list always starts out in
// ascending order and is never shared between calls.
package recency

import (
	"fmt"

	"github.com/dargueta/bwtz"
)

// Rank is any integer type a rank stream can be stored in.
type Rank interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type alphabet [bwtz.AlphabetSize]byte

func newAlphabet() alphabet {
	var a alphabet
	for i := range a {
		a[i] = byte(i)
	}
	return a
}

// indexOf returns the current position of value. Every byte value is always
// present, so this can't fail.
func (a *alphabet) indexOf(value byte) int {
	for i, symbol := range a {
		if symbol == value {
			return i
		}
	}
	panic(fmt.Sprintf("byte %#02x missing from alphabet", value))
}

func (a *alphabet) moveToFront(index int) {
	value := a[index]
	copy(a[1:index+1], a[:index])
	a[0] = value
}

// Encode returns the rank of each byte of data. The output has the same length
// as the input.
func Encode(data []byte) []byte {
	symbols := newAlphabet()
	ranks := make([]byte, len(data))

	for i, value := range data {
		index := symbols.indexOf(value)
		ranks[i] = byte(index)
		if index != 0 {
			symbols.moveToFront(index)
		}
	}
	return ranks
}

// Decode undoes [Encode]. It returns [bwtz.ErrInvalidIndex] if any rank is
// outside [0, 255]; nothing is decoded in that case.
func Decode[T Rank](ranks []T) ([]byte, error) {
	for position, rank := range ranks {
		// Negative ranks wrap around to huge unsigned values.
		if uint64(rank) >= bwtz.AlphabetSize {
			return nil, bwtz.ErrInvalidIndex.WithMessage(
				fmt.Sprintf("rank %v at position %d not in range [0, %d)",
					rank, position, bwtz.AlphabetSize))
		}
	}

	symbols := newAlphabet()
	output := make([]byte, len(ranks))
	for i, rank := range ranks {
		index := int(rank)
		output[i] = symbols[index]
		if index != 0 {
			symbols.moveToFront(index)
		}
	}
	return output, nil
}
