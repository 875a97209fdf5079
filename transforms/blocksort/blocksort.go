package blocksort

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dargueta/bwtz"
)

// Transform applies the forward block-sorting transform to data. It returns the
// transformed bytes (always the same length as the input) and the primary
// index. For empty input the primary index is 0.
//
// The input is not modified.
func Transform(data []byte) ([]byte, int) {
	n := len(data)
	if n == 0 {
		return []byte{}, 0
	}

	order := SortRotations(data)
	output := make([]byte, n)
	primaryIndex := 0

	for position, rotation := range order {
		if rotation == 0 {
			primaryIndex = position
			output[position] = data[n-1]
		} else {
			output[position] = data[rotation-1]
		}
	}
	return output, primaryIndex
}

// SortRotations returns the starting offsets of every cyclic rotation of data,
// in ascending lexicographic order. Equal rotations are ordered by offset.
//
// Rotations are ranked by prefix doubling: after the pass with step k, two
// rotations share a rank iff their first 2k bytes (read cyclically) are equal.
// Once 2k >= len(data), equal ranks mean equal rotations.
func SortRotations(data []byte) []int {
	n := len(data)
	order := make([]int, n)
	rank := make([]int, n)
	nextRank := make([]int, n)

	for i := range order {
		order[i] = i
		rank[i] = int(data[i])
	}
	if n < 2 {
		return order
	}

	for step := 1; ; step *= 2 {
		second := func(i int) int {
			return rank[(i+step)%n]
		}

		slices.SortFunc(order, func(a, b int) int {
			if c := cmp.Compare(rank[a], rank[b]); c != 0 {
				return c
			}
			if c := cmp.Compare(second(a), second(b)); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})

		nextRank[order[0]] = 0
		for p := 1; p < n; p++ {
			previous, current := order[p-1], order[p]
			nextRank[current] = nextRank[previous]
			if rank[previous] != rank[current] || second(previous) != second(current) {
				nextRank[current]++
			}
		}
		copy(rank, nextRank)

		// Every rotation is in its own class, or we've compared entire rotations.
		if rank[order[n-1]] == n-1 || 2*step >= n {
			return order
		}
	}
}

// CompareRotations compares the rotations of data starting at offsets a and b,
// byte by byte, wrapping around the end of the buffer. It returns a negative
// number if rotation a sorts first, a positive number if rotation b does, and 0
// if the two rotations are identical.
func CompareRotations(data []byte, a, b int) int {
	n := len(data)
	for i := 0; i < n; i++ {
		diff := int(data[(a+i)%n]) - int(data[(b+i)%n])
		if diff != 0 {
			return diff
		}
	}
	return 0
}

// Inverse undoes [Transform], given the transformed bytes and the primary index
// returned with them.
//
// It returns [bwtz.ErrInvalidIndex] if primaryIndex isn't in [0, len(transformed)),
// or if transformed is empty and primaryIndex isn't 0.
func Inverse(transformed []byte, primaryIndex int) ([]byte, error) {
	n := len(transformed)
	if n == 0 {
		if primaryIndex != 0 {
			return nil, bwtz.ErrInvalidIndex.WithMessage(
				fmt.Sprintf("primary index %d given for empty buffer", primaryIndex))
		}
		return []byte{}, nil
	}
	if primaryIndex < 0 || primaryIndex >= n {
		return nil, bwtz.ErrInvalidIndex.WithMessage(
			fmt.Sprintf("primary index %d not in range [0, %d)", primaryIndex, n))
	}

	// startOffsets[v] is the number of bytes in the buffer smaller than v, i.e.
	// where the rotations beginning with v start in the sorted order.
	var startOffsets [bwtz.AlphabetSize]int
	for _, value := range transformed {
		startOffsets[value]++
	}
	total := 0
	for value, count := range startOffsets {
		startOffsets[value] = total
		total += count
	}

	var seen [bwtz.AlphabetSize]int
	mapping := make([]int, n)
	for i, value := range transformed {
		mapping[i] = startOffsets[value] + seen[value]
		seen[value]++
	}

	output := make([]byte, n)
	current := primaryIndex
	for i := n - 1; i >= 0; i-- {
		output[i] = transformed[current]
		current = mapping[current]
	}
	return output, nil
}
