package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.sr.ht/~whereswaldon/cichart/chart"
	"github.com/fsnotify/fsnotify"
)

// Batch is the set of intervals a chart should currently display.
type Batch struct {
	// Samples holds flat (left, mean, right) triples, oldest first.
	Samples []string
	Err     error
}

// Datasource follows CSV files of confidence intervals.
type Datasource struct {
	// maxRows bounds how many of the most recent intervals each batch
	// carries.
	maxRows int
}

func NewDatasource(maxRows int) *Datasource {
	return &Datasource{maxRows: max(maxRows, 1)}
}

// TailIntervals reads the interval file at path and keeps following it as
// rows are appended. A batch is emitted for every complete row. Rows that are
// short or hold a value that is not a finite number are logged and skipped.
// When the file is truncated or replaced an empty batch is emitted and
// reading starts again from the top of the new file. The channel is closed
// when ctx is cancelled or the file can no longer be read, in which case the
// final batch carries the error.
func (d *Datasource) TailIntervals(ctx context.Context, path string) <-chan Batch {
	out := make(chan Batch, 1)
	go func() {
		defer close(out)
		emit := func(b Batch) bool {
			select {
			case out <- b:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if err := d.tail(ctx, path, emit); err != nil {
			emit(Batch{Err: err})
		}
	}()
	return out
}

// errReplaced reports that the followed file was truncated, removed or
// replaced, so reading must start over from a fresh handle.
var errReplaced = errors.New("interval file replaced")

func (d *Datasource) tail(ctx context.Context, path string, emit func(Batch) bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed creating file watcher: %w", err)
	}
	defer watcher.Close()
	// The directory is watched so that the file can be followed across
	// removal and recreation.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed watching %q: %w", path, err)
	}
	for {
		err := d.follow(ctx, path, watcher, emit)
		if !errors.Is(err, errReplaced) {
			return err
		}
		log.Printf("interval file %q was truncated or replaced, reading it again", path)
		if !emit(Batch{}) {
			return nil
		}
	}
}

// follow reads one incarnation of the file at path until ctx is done or the
// file is replaced.
func (d *Datasource) follow(ctx context.Context, path string, watcher *fsnotify.Watcher, emit func(Batch) bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed opening interval file: %w", err)
	}
	defer file.Close()
	opened, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed reading interval file info: %w", err)
	}
	name := filepath.Clean(path)
	waitForChange := func() bool {
		for {
			select {
			case <-ctx.Done():
				return false
			case ev, ok := <-watcher.Events:
				if !ok {
					return false
				}
				if filepath.Clean(ev.Name) == name {
					return true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return false
				}
				log.Printf("file watch error on %q: %v", path, err)
			}
		}
	}
	// replaced reports whether the path no longer holds the data read so
	// far. It must only be called once the handle is at EOF.
	replaced := func() bool {
		current, err := os.Stat(path)
		if err != nil {
			// Removed; wait for it to come back before starting over.
			return false
		}
		if !os.SameFile(opened, current) {
			return true
		}
		pos, err := file.Seek(0, io.SeekCurrent)
		return err == nil && current.Size() < pos
	}

	csvReader := csv.NewReader(NewLineReader(file))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var (
		columns []int
		window  []string
	)
	limit := d.maxRows * 3
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			if replaced() {
				return errReplaced
			}
			if !waitForChange() {
				return nil
			}
			continue
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Printf("skipping malformed interval row: %v", err)
			continue
		} else if err != nil {
			return fmt.Errorf("failed reading interval file: %w", err)
		}
		if columns == nil {
			columns, err = intervalColumns(rec)
			if err != nil {
				return err
			}
			continue
		}
		row, ok := intervalRow(rec, columns)
		if !ok {
			log.Printf("skipping malformed interval row %q", rec)
			continue
		}
		window = append(window, row...)
		if len(window) > limit {
			window = window[len(window)-limit:]
		}
		if !emit(Batch{Samples: slices.Clone(window)}) {
			return nil
		}
	}
}

// intervalRow extracts the left, mean and right fields of a record. It fails
// for short records and for fields the chart cannot draw.
func intervalRow(rec []string, columns []int) ([]string, bool) {
	if len(rec) <= slices.Max(columns) {
		return nil, false
	}
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = strings.TrimSpace(rec[col])
		if _, ok := chart.ParseValue(row[i]); !ok {
			return nil, false
		}
	}
	return row, true
}

// intervalColumns locates the left, mean and right columns in a header row.
func intervalColumns(headings []string) ([]int, error) {
	columns := []int{-1, -1, -1}
	for i, heading := range headings {
		switch strings.ToLower(strings.TrimSpace(heading)) {
		case "left":
			columns[0] = i
		case "mean":
			columns[1] = i
		case "right":
			columns[2] = i
		}
	}
	if slices.Contains(columns, -1) {
		return nil, fmt.Errorf("interval header %q lacks left, mean or right column", headings)
	}
	return columns, nil
}
