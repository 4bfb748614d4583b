package backend

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~whereswaldon/cichart/chart"
	"github.com/gocarina/gocsv"
)

// binRow is one histogram bin boundary.
type binRow struct {
	Value string `csv:"value"`
}

// IntervalRow is one confidence interval as stored in a CSV file. Values are
// kept as text so that they reach the chart exactly as written.
type IntervalRow struct {
	Left  string `csv:"left"`
	Mean  string `csv:"mean"`
	Right string `csv:"right"`
}

func newCSVReader(r io.Reader) *csv.Reader {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	return csvReader
}

// LoadHistogram reads bin boundaries from a CSV file with a "value" column.
func LoadHistogram(r io.Reader) (chart.Bins, error) {
	var rows []binRow
	if err := gocsv.UnmarshalCSV(newCSVReader(r), &rows); err != nil {
		return nil, fmt.Errorf("failed decoding histogram csv: %w", err)
	}
	bins := make(chart.Bins, len(rows))
	for i, row := range rows {
		bins[i] = strings.TrimSpace(row.Value)
	}
	return bins, nil
}

// LoadIntervals reads confidence intervals from a CSV file with "left",
// "mean" and "right" columns and flattens them in file order.
func LoadIntervals(r io.Reader) ([]string, error) {
	var rows []IntervalRow
	if err := gocsv.UnmarshalCSV(newCSVReader(r), &rows); err != nil {
		return nil, fmt.Errorf("failed decoding interval csv: %w", err)
	}
	out := make([]string, 0, len(rows)*3)
	for _, row := range rows {
		out = append(out, row.flat()...)
	}
	return out, nil
}

// LoadHistogramFile is LoadHistogram for the file at path.
func LoadHistogramFile(path string) (chart.Bins, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening histogram: %w", err)
	}
	defer f.Close()
	return LoadHistogram(f)
}

// LoadIntervalsFile is LoadIntervals for the file at path.
func LoadIntervalsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening intervals: %w", err)
	}
	defer f.Close()
	return LoadIntervals(f)
}

func (r IntervalRow) flat() []string {
	return []string{strings.TrimSpace(r.Left), strings.TrimSpace(r.Mean), strings.TrimSpace(r.Right)}
}

func intervalRows(intervals []chart.Interval) []IntervalRow {
	flat := chart.Flatten(intervals)
	rows := make([]IntervalRow, 0, len(intervals))
	for i := 0; i+2 < len(flat); i += 3 {
		rows = append(rows, IntervalRow{Left: flat[i], Mean: flat[i+1], Right: flat[i+2]})
	}
	return rows
}

// WriteIntervals encodes intervals as CSV with a header row. No intervals
// yields just the header.
func WriteIntervals(w io.Writer, intervals []chart.Interval) error {
	if err := gocsv.Marshal(intervalRows(intervals), w); err != nil {
		return fmt.Errorf("failed encoding interval csv: %w", err)
	}
	return nil
}

// AppendIntervals encodes intervals as CSV rows without a header, for
// extending a file started by WriteIntervals.
func AppendIntervals(w io.Writer, intervals []chart.Interval) error {
	if err := gocsv.MarshalWithoutHeaders(intervalRows(intervals), w); err != nil {
		return fmt.Errorf("failed encoding interval csv: %w", err)
	}
	return nil
}
