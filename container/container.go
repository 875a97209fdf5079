package container

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dargueta/bwtz"
	"github.com/dargueta/bwtz/transforms/blocksort"
	"github.com/dargueta/bwtz/transforms/recency"
	"github.com/dargueta/bwtz/transforms/runcodec"
)

// Header is the decoded form of a container header.
type Header struct {
	Mode bwtz.Mode
	// PrimaryIndex is the block-sort primary index. Always 0 for stored
	// containers.
	PrimaryIndex int
}

// Encode returns the 4-byte on-disk form of the header.
func (h Header) Encode() [bwtz.HeaderSize]byte {
	var raw [bwtz.HeaderSize]byte
	if h.Mode == bwtz.ModeCompressed {
		binary.BigEndian.PutUint32(raw[:], uint32(h.PrimaryIndex)+1)
	}
	return raw
}

// ParseHeader decodes the header at the start of a container. It returns
// [bwtz.ErrTruncatedData] if packed is shorter than [bwtz.HeaderSize].
func ParseHeader(packed []byte) (Header, error) {
	if len(packed) < bwtz.HeaderSize {
		return Header{}, bwtz.ErrTruncatedData.WithMessage(
			fmt.Sprintf(
				"container is %d bytes, header needs %d", len(packed), bwtz.HeaderSize))
	}

	value := binary.BigEndian.Uint32(packed[:bwtz.HeaderSize])
	if value == 0 {
		return Header{Mode: bwtz.ModeStored}, nil
	}
	return Header{Mode: bwtz.ModeCompressed, PrimaryIndex: int(value - 1)}, nil
}

// Info describes how a container was produced.
type Info struct {
	Header
	// OriginalSize is the size of the input, in bytes.
	OriginalSize int
	// EncodedSize is the size of the container, header included.
	EncodedSize int
}

// Ratio returns the encoded size as a fraction of the original size. It
// returns 0 for empty input.
func (info Info) Ratio() float64 {
	if info.OriginalSize == 0 {
		return 0
	}
	return float64(info.EncodedSize) / float64(info.OriginalSize)
}

// Encode packs data into a container. It never fails, and the output is never
// more than [bwtz.HeaderSize] bytes longer than data.
func Encode(data []byte) []byte {
	packed, _ := EncodeInfo(data)
	return packed
}

// EncodeInfo is like [Encode] but also reports which representation was
// chosen.
func EncodeInfo(data []byte) ([]byte, Info) {
	if !compressible(len(data)) {
		return Frame(data, nil, 0)
	}
	transformed, primaryIndex := blocksort.Transform(data)
	payload := runcodec.Encode(recency.Encode(transformed))
	return Frame(data, payload, primaryIndex)
}

// Frame builds the container for data given the output of the transform
// pipeline: payload is the run-coded rank stream and primaryIndex the
// block-sort primary index. The compressed form is used only if data is eligible
// for it and the result is smaller than data; otherwise data is stored.
func Frame(data, payload []byte, primaryIndex int) ([]byte, Info) {
	info := Info{OriginalSize: len(data)}

	var packed []byte
	if compressible(len(data)) && len(payload)+bwtz.HeaderSize < len(data) {
		info.Header = Header{Mode: bwtz.ModeCompressed, PrimaryIndex: primaryIndex}
		packed = frame(info.Header, payload)
	} else {
		info.Header = Header{Mode: bwtz.ModeStored}
		packed = frame(info.Header, data)
	}
	info.EncodedSize = len(packed)
	return packed, info
}

// compressible is true if data of the given size may use the compressed form.
// Besides the size threshold, the shifted primary index must fit in the header.
func compressible(size int) bool {
	return size >= bwtz.StoreThreshold && uint64(size) <= math.MaxUint32
}

func frame(header Header, payload []byte) []byte {
	raw := header.Encode()
	packed := make([]byte, 0, len(raw)+len(payload))
	packed = append(packed, raw[:]...)
	return append(packed, payload...)
}

// Decode unpacks a container produced by [Encode].
//
// Errors:
//
//   - [bwtz.ErrTruncatedData]: the container is shorter than its header, or
//     the payload ends in the middle of a run-codec record.
//   - [bwtz.ErrInvalidIndex]: the primary index in the header doesn't fit the
//     decoded payload.
func Decode(packed []byte) ([]byte, error) {
	header, err := ParseHeader(packed)
	if err != nil {
		return nil, err
	}

	payload := packed[bwtz.HeaderSize:]
	if header.Mode == bwtz.ModeStored {
		output := make([]byte, len(payload))
		copy(output, payload)
		return output, nil
	}

	ranks, err := runcodec.Decode(payload)
	if err != nil {
		return nil, err
	}
	transformed, err := recency.Decode(ranks)
	if err != nil {
		return nil, err
	}
	return blocksort.Inverse(transformed, header.PrimaryIndex)
}
