// Package container frames the output of the transform pipeline.
//
// A container is a 4-byte big-endian header followed by a payload:
//
//	+--------+---------------------------------------------+
//	| header | payload                                     |
//	+--------+---------------------------------------------+
//	 4 bytes   rest of the container
//
// A header of zero means the payload is the original data, stored verbatim.
// Any other header means the payload is the run-coded rank stream of the
// block-sorted data, and the header holds the block-sort primary index plus
// one. Shifting the index keeps a compressed container whose primary index is
// zero distinguishable from a stored one.
//
// Inputs shorter than [bwtz.StoreThreshold] bytes are always stored, as is any
// input the pipeline doesn't make smaller. An encoded container is therefore
// never more than [bwtz.HeaderSize] bytes larger than its input.
package container
