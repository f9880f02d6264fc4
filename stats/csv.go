package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

// CSVHeader is the first row written by a CSVSink.
var CSVHeader = []string{
	"Run", "Algorithm", "Label", "Start", "Target", "Found",
	"Search Time (s)", "Allocated (bytes)", "Expanded Nodes", "Nodes Passed", "Path Weight",
}

// CSVSink writes one row per sample.
type CSVSink struct {
	mu     sync.Mutex
	w      *csv.Writer
	c      io.Closer
	header bool
}

// NewCSVSink writes the header and then samples to w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w), header: true}
}

// AppendCSV opens path for appending, creating it if needed. The header is
// written only to a new or empty file.
func AppendCSV(path string) (*CSVSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &CSVSink{w: csv.NewWriter(f), c: f, header: info.Size() == 0}, nil
}

// Record writes s and flushes.
func (c *CSVSink) Record(s Sample) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.header {
		if err := c.w.Write(CSVHeader); err != nil {
			return err
		}
		c.header = false
	}
	found := "No"
	if s.Found {
		found = "Yes"
	}
	row := []string{
		s.RunID.String(),
		s.Algorithm,
		s.Label,
		s.Start,
		s.Target,
		found,
		strconv.FormatFloat(s.Duration.Seconds(), 'f', 6, 64),
		strconv.FormatUint(s.AllocBytes, 10),
		strconv.Itoa(s.Expanded),
		strconv.Itoa(s.PathLength),
		strconv.Itoa(s.PathWeight),
	}
	if err := c.w.Write(row); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// Close flushes and closes the file opened by AppendCSV.
func (c *CSVSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.Flush()
	if c.c == nil {
		return c.w.Error()
	}
	return c.c.Close()
}
