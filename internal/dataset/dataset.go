package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
)

// Point is one labeled observation, e.g. a year and a population estimate.
type Point struct {
	Label string
	Value float64
}

// Series is an ordered set of (label, value) pairs handed to the display
// routines. The labels carry no structure here; ordering is file order.
type Series struct {
	Name   string
	Points []Point
}

// ReadCSV loads a two-column CSV of label,value rows. If the first row's
// second column does not parse as a number it is treated as a header and its
// text names the series.
func ReadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

func Read(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: empty input")
	}

	s := &Series{Name: "value"}
	start := 0
	if len(records[0]) >= 2 {
		if _, err := strconv.ParseFloat(records[0][1], 64); err != nil {
			s.Name = records[0][1]
			start = 1
		}
	}

	for i, rec := range records[start:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("dataset: row %d has %d columns, want 2", start+i+1, len(rec))
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", start+i+1, err)
		}
		s.Points = append(s.Points, Point{Label: rec[0], Value: v})
	}

	if len(s.Points) == 0 {
		return nil, fmt.Errorf("dataset: no data rows")
	}
	return s, nil
}

// Values extracts the numeric column, for plotting.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Render writes the series as an aligned two-column table.
func (s *Series) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "LABEL\t%s\n", s.Name)
	for _, p := range s.Points {
		fmt.Fprintf(tw, "%s\t%g\n", p.Label, p.Value)
	}
	return tw.Flush()
}
