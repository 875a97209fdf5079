// Package blocksort implements the block-sorting transform, better known as
// the Burrows-Wheeler transform.
//
// The transform sorts every cyclic rotation of the input and emits the byte
// that precedes each rotation, in sorted order. Bytes that are followed by
// similar contexts end up next to each other, so the output tends to contain
// long runs of the same value even when the input doesn't. For example:
//
//	banana   ->   nnbaaa   (primary index 3)
//
// The primary index is the position of the unrotated input in the sorted
// order. It is the only extra information needed to undo the transform.
//
// Rotations that compare equal (only possible when the input is periodic, like
// "abab") are ordered by their starting offset so the output is deterministic.
package blocksort
