// Package stats measures how well the transform pipeline does on a given input,
// stage by stage, and optionally how general-purpose compressors do on the same
// data.
package stats

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/bwtz"
	"github.com/dargueta/bwtz/container"
	"github.com/dargueta/bwtz/transforms/blocksort"
	"github.com/dargueta/bwtz/transforms/recency"
	"github.com/dargueta/bwtz/transforms/runcodec"
	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Report describes one input.
type Report struct {
	Name         string `csv:"name"`
	OriginalSize int    `csv:"original_size"`
	// DistinctSymbols is the number of different byte values in the input.
	DistinctSymbols int    `csv:"distinct_symbols"`
	Mode            string `csv:"mode"`
	PrimaryIndex    int    `csv:"primary_index"`
	// ZeroRanks is the fraction of the rank stream that is zero, i.e. how
	// clustered the block-sorted data is.
	ZeroRanks     float64 `csv:"zero_ranks"`
	RepeatRecords int     `csv:"repeat_records"`
	RawRecords    int     `csv:"raw_records"`
	// PipelineSize is the size a compressed container would have, whether or
	// not it was chosen.
	PipelineSize  int `csv:"pipeline_size"`
	ContainerSize int `csv:"container_size"`

	// Baseline sizes are only filled in when requested. An LZ4 size of 0 means
	// LZ4 found the data incompressible.
	GzipSize int `csv:"gzip_size"`
	ZstdSize int `csv:"zstd_size"`
	LZ4Size  int `csv:"lz4_size"`
	XZSize   int `csv:"xz_size"`
}

// Ratio returns the container size as a fraction of the original size.
func (r Report) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.ContainerSize) / float64(r.OriginalSize)
}

// Analyze runs every stage of the pipeline over data and fills in a [Report].
// If withBaselines is true, data is also compressed with gzip, zstd, LZ4 and xz
// for comparison.
func Analyze(name string, data []byte, withBaselines bool) (Report, error) {
	transformed, primaryIndex := blocksort.Transform(data)
	ranks := recency.Encode(transformed)
	payload := runcodec.Encode(ranks)
	_, info := container.Frame(data, payload, primaryIndex)

	report := Report{
		Name:            name,
		OriginalSize:    len(data),
		DistinctSymbols: CountDistinctSymbols(data),
		Mode:            info.Mode.String(),
		PrimaryIndex:    primaryIndex,
		PipelineSize:    len(payload) + bwtz.HeaderSize,
		ContainerSize:   info.EncodedSize,
	}

	zeros := 0
	for _, rank := range ranks {
		if rank == 0 {
			zeros++
		}
	}
	if len(ranks) > 0 {
		report.ZeroRanks = float64(zeros) / float64(len(ranks))
	}

	records, err := runcodec.Records(payload)
	if err != nil {
		return report, err
	}
	for _, record := range records {
		if record.Repeat {
			report.RepeatRecords++
		} else {
			report.RawRecords++
		}
	}

	if withBaselines {
		if err := fillBaselines(&report, data); err != nil {
			return report, err
		}
	}
	return report, nil
}

// CountDistinctSymbols returns the number of different byte values in data.
func CountDistinctSymbols(data []byte) int {
	seen := bitmap.New(bwtz.AlphabetSize)
	for _, value := range data {
		seen.Set(int(value), true)
	}

	count := 0
	for i := 0; i < bwtz.AlphabetSize; i++ {
		if seen.Get(i) {
			count++
		}
	}
	return count
}

func fillBaselines(report *Report, data []byte) error {
	var err error
	if report.GzipSize, err = gzipSize(data); err != nil {
		return bwtz.ErrIOFailed.Wrap(fmt.Errorf("gzip: %w", err))
	}
	if report.ZstdSize, err = zstdSize(data); err != nil {
		return bwtz.ErrIOFailed.Wrap(fmt.Errorf("zstd: %w", err))
	}
	if report.LZ4Size, err = lz4Size(data); err != nil {
		return bwtz.ErrIOFailed.Wrap(fmt.Errorf("lz4: %w", err))
	}
	if report.XZSize, err = xzSize(data); err != nil {
		return bwtz.ErrIOFailed.Wrap(fmt.Errorf("xz: %w", err))
	}
	return nil
}

func gzipSize(data []byte) (int, error) {
	var buffer bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buffer, gzip.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := writer.Write(data); err != nil {
		return 0, err
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}
	return buffer.Len(), nil
}

func zstdSize(data []byte) (int, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, err
	}
	defer encoder.Close()
	return len(encoder.EncodeAll(data, nil)), nil
}

func lz4Size(data []byte) (int, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	return lz4.CompressBlock(data, destination, nil)
}

func xzSize(data []byte) (int, error) {
	var buffer bytes.Buffer
	writer, err := xz.NewWriter(&buffer)
	if err != nil {
		return 0, err
	}
	if _, err := writer.Write(data); err != nil {
		return 0, err
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}
	return buffer.Len(), nil
}

// WriteCSV writes reports to output as CSV, with a header row.
func WriteCSV(output io.Writer, reports []Report) error {
	if err := gocsv.Marshal(reports, output); err != nil {
		return bwtz.ErrIOFailed.Wrap(err)
	}
	return nil
}

// WriteTable writes reports to output as an aligned, human-readable table.
// Baseline columns are included only if withBaselines is true.
func WriteTable(output io.Writer, reports []Report, withBaselines bool) error {
	table := tabwriter.NewWriter(output, 0, 4, 2, ' ', tabwriter.AlignRight)

	header := "name\tsize\tsymbols\tmode\tindex\tzero ranks\tpipeline\tcontainer\tratio\t"
	if withBaselines {
		header += "gzip\tzstd\tlz4\txz\t"
	}
	fmt.Fprintln(table, header)

	for _, r := range reports {
		fmt.Fprintf(
			table,
			"%s\t%d\t%d\t%s\t%d\t%.1f%%\t%d\t%d\t%.2f%%\t",
			r.Name,
			r.OriginalSize,
			r.DistinctSymbols,
			r.Mode,
			r.PrimaryIndex,
			r.ZeroRanks*100,
			r.PipelineSize,
			r.ContainerSize,
			r.Ratio()*100,
		)
		if withBaselines {
			fmt.Fprintf(table, "%d\t%d\t%d\t%d\t", r.GzipSize, r.ZstdSize, r.LZ4Size, r.XZSize)
		}
		fmt.Fprintln(table)
	}

	if err := table.Flush(); err != nil {
		return bwtz.ErrIOFailed.Wrap(err)
	}
	return nil
}
