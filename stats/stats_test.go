package stats_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dargueta/bwtz"
	"github.com/dargueta/bwtz/container"
	"github.com/dargueta/bwtz/stats"
	bwtztesting "github.com/dargueta/bwtz/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze__Text(t *testing.T) {
	data := bwtztesting.CreateTextData(8000)

	report, err := stats.Analyze("text", data, false)
	require.NoError(t, err)

	packed, info := container.EncodeInfo(data)
	assert.Equal(t, "text", report.Name)
	assert.Equal(t, len(data), report.OriginalSize)
	assert.Equal(t, bwtz.ModeCompressed.String(), report.Mode)
	assert.Equal(t, info.PrimaryIndex, report.PrimaryIndex)
	assert.Equal(t, len(packed), report.ContainerSize)
	assert.Equal(t, report.ContainerSize, report.PipelineSize)
	assert.Greater(t, report.ZeroRanks, 0.5)
	assert.Greater(t, report.RepeatRecords, 0)
	assert.Less(t, report.Ratio(), 1.0)

	assert.Zero(t, report.GzipSize, "baselines should be skipped")
	assert.Zero(t, report.XZSize, "baselines should be skipped")
}

func TestAnalyze__RandomIsStored(t *testing.T) {
	data := bwtztesting.CreateRandomData(4096, t)

	report, err := stats.Analyze("random", data, false)
	require.NoError(t, err)

	assert.Equal(t, bwtz.ModeStored.String(), report.Mode)
	assert.Equal(t, len(data)+bwtz.HeaderSize, report.ContainerSize)
	assert.Greater(t, report.PipelineSize, report.ContainerSize)
}

func TestAnalyze__Empty(t *testing.T) {
	report, err := stats.Analyze("empty", []byte{}, true)
	require.NoError(t, err)

	assert.Equal(t, bwtz.ModeStored.String(), report.Mode)
	assert.Equal(t, bwtz.HeaderSize, report.ContainerSize)
	assert.Zero(t, report.ZeroRanks)
	assert.Zero(t, report.Ratio())
	assert.Zero(t, report.DistinctSymbols)
}

func TestAnalyze__Baselines(t *testing.T) {
	data := bwtztesting.CreateTextData(8000)

	report, err := stats.Analyze("text", data, true)
	require.NoError(t, err)

	assert.Greater(t, report.GzipSize, 0)
	assert.Greater(t, report.ZstdSize, 0)
	assert.Greater(t, report.LZ4Size, 0)
	assert.Greater(t, report.XZSize, 0)
	assert.Less(t, report.GzipSize, len(data))
}

func TestCountDistinctSymbols(t *testing.T) {
	tests := map[string]struct {
		Data     []byte
		Expected int
	}{
		"empty":  {[]byte{}, 0},
		"one":    {[]byte("aaaa"), 1},
		"banana": {[]byte("banana"), 3},
		"edges":  {[]byte{0, 255, 0, 255}, 2},
	}

	for name, test := range tests {
		t.Run(
			name,
			func(t *testing.T) {
				assert.Equal(t, test.Expected, stats.CountDistinctSymbols(test.Data))
			},
		)
	}

	all := make([]byte, bwtz.AlphabetSize)
	for i := range all {
		all[i] = byte(i)
	}
	assert.Equal(t, bwtz.AlphabetSize, stats.CountDistinctSymbols(all))

	lowEntropy := bwtztesting.CreateLowEntropyData(1000, 4, t)
	assert.LessOrEqual(t, stats.CountDistinctSymbols(lowEntropy), 4)
}

func TestWriteCSV(t *testing.T) {
	reports := []stats.Report{
		{Name: "a.txt", OriginalSize: 10, Mode: "stored", ContainerSize: 14},
		{Name: "b.txt", OriginalSize: 600, Mode: "compressed", PrimaryIndex: 7, ContainerSize: 16},
	}

	var output bytes.Buffer
	require.NoError(t, stats.WriteCSV(&output, reports))

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(
		t,
		strings.HasPrefix(lines[0], "name,original_size,distinct_symbols,mode,primary_index"),
		"unexpected header: %q",
		lines[0],
	)
	assert.True(t, strings.HasPrefix(lines[1], "a.txt,10,0,stored,0"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "b.txt,600,0,compressed,7"), lines[2])
}

func TestWriteTable(t *testing.T) {
	reports := []stats.Report{
		{Name: "sample", OriginalSize: 600, Mode: "compressed", ContainerSize: 16},
	}

	var plain bytes.Buffer
	require.NoError(t, stats.WriteTable(&plain, reports, false))
	assert.Contains(t, plain.String(), "sample")
	assert.Contains(t, plain.String(), "compressed")
	assert.NotContains(t, plain.String(), "gzip")

	var withBaselines bytes.Buffer
	require.NoError(t, stats.WriteTable(&withBaselines, reports, true))
	assert.Contains(t, withBaselines.String(), "gzip")
	assert.Contains(t, withBaselines.String(), "xz")
}
