package dataset

import (
	"strings"
	"testing"
)

const populationCSV = `year,census
1950,2557628654
1960,3043001508
1970,3712697742
1980,4451362735
`

func TestRead_WithHeader(t *testing.T) {
	s, err := Read(strings.NewReader(populationCSV))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if s.Name != "census" {
		t.Errorf("expected series name 'census', got %q", s.Name)
	}
	if len(s.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(s.Points))
	}
	if s.Points[0].Label != "1950" {
		t.Errorf("expected first label '1950', got %q", s.Points[0].Label)
	}
	if s.Points[3].Value != 4451362735 {
		t.Errorf("expected 4451362735, got %f", s.Points[3].Value)
	}
}

func TestRead_NoHeader(t *testing.T) {
	s, err := Read(strings.NewReader("a,1\nb,2\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if s.Name != "value" {
		t.Errorf("expected default series name, got %q", s.Name)
	}
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(s.Points))
	}
}

func TestRead_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "year,census\n"},
		{"bad number", "year,census\n1950,abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValues(t *testing.T) {
	s, err := Read(strings.NewReader("a,1\nb,2\nc,3\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	v := s.Values()
	if len(v) != 3 || v[0] != 1 || v[2] != 3 {
		t.Errorf("Values() = %v", v)
	}
}

func TestRender(t *testing.T) {
	s, err := Read(strings.NewReader(populationCSV))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var buf strings.Builder
	if err := s.Render(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "census") {
		t.Error("rendered table should carry the series name")
	}
	if !strings.Contains(out, "1950") {
		t.Error("rendered table should carry the labels")
	}
}
