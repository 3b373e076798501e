package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sivchari/carfilter/internal/car"
)

func testSummary() *Summary {
	cars := []car.Car{
		{Manufacturer: car.Fiat, Price: 100, Year: 1980},
		{Manufacturer: car.Polonez, Price: 200, Year: 1975},
	}

	return &Summary{
		RunID:     "run-1",
		Criterion: "oldest",
		Mode:      "R",
		Cars:      cars,
		Matches:   cars[1:],
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "text", "json"} {
		if _, err := New(format, &bytes.Buffer{}); err != nil {
			t.Errorf("New(%q) failed: %v", format, err)
		}
	}

	if _, err := New("html", &bytes.Buffer{}); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer

	generator, err := New("text", &buf)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	if err := generator.Generate(testSummary()); err != nil {
		t.Fatalf("Failed to generate report: %v", err)
	}

	expected := `Cars created:
  Car{manufacturer=FIAT, price=100, year=1980}
  Car{manufacturer=POLONEZ, price=200, year=1975}

Found cars (oldest, mode R):
  Car{manufacturer=POLONEZ, price=200, year=1975}

Matched 1 of 2 (50.0%)
`
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Text report mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_TextEmpty(t *testing.T) {
	var buf bytes.Buffer

	generator, err := New("text", &buf)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	summary := &Summary{Criterion: "youngest", Mode: "W"}
	if err := generator.Generate(summary); err != nil {
		t.Fatalf("Failed to generate report: %v", err)
	}

	expected := `Cars created:
  (none)

Found cars (youngest, mode W):
  (none)

Matched 0 of 0 (0.0%)
`
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Text report mismatch (-want +got):\n%s", diff)
	}

	if summary.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestGenerate_TextOmitCars(t *testing.T) {
	var buf bytes.Buffer

	generator, err := New("text", &buf)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	summary := testSummary()
	summary.OmitCars = true

	if err := generator.Generate(summary); err != nil {
		t.Fatalf("Failed to generate report: %v", err)
	}

	expected := `Found cars (oldest, mode R):
  Car{manufacturer=POLONEZ, price=200, year=1975}

Matched 1 of 2 (50.0%)
`
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Text report mismatch (-want +got):\n%s", diff)
	}
}

func TestListing(t *testing.T) {
	var buf bytes.Buffer

	generator, err := New("text", &buf)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	if err := generator.Listing("Cars created:", testSummary().Cars); err != nil {
		t.Fatalf("Failed to write listing: %v", err)
	}

	expected := `Cars created:
  Car{manufacturer=FIAT, price=100, year=1980}
  Car{manufacturer=POLONEZ, price=200, year=1975}
`
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("Listing mismatch (-want +got):\n%s", diff)
	}

	var jsonBuf bytes.Buffer

	jsonGenerator, err := New("json", &jsonBuf)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	if err := jsonGenerator.Listing("Cars created:", testSummary().Cars); err != nil {
		t.Fatalf("Failed to write listing: %v", err)
	}

	if jsonBuf.Len() != 0 {
		t.Errorf("Expected no listing for json format, got %q", jsonBuf.String())
	}
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer

	generator, err := New("json", &buf)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	if err := generator.Generate(testSummary()); err != nil {
		t.Fatalf("Failed to generate report: %v", err)
	}

	var decoded Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode JSON report: %v", err)
	}

	if decoded.RunID != "run-1" {
		t.Errorf("Expected run id 'run-1', got %s", decoded.RunID)
	}

	if diff := cmp.Diff(testSummary().Matches, decoded.Matches); diff != "" {
		t.Errorf("Matches mismatch (-want +got):\n%s", diff)
	}

	stats := decoded.Statistics
	if stats.Total != 2 || stats.Matched != 1 {
		t.Errorf("Expected total 2 and matched 1, got %+v", stats)
	}

	if stats.MinYear == nil || *stats.MinYear != 1975 || stats.MaxYear == nil || *stats.MaxYear != 1980 {
		t.Errorf("Unexpected year range %v-%v", stats.MinYear, stats.MaxYear)
	}
}

func TestCalculateStatistics_Empty(t *testing.T) {
	stats := calculateStatistics(nil, nil)

	if stats.MinYear != nil || stats.MaxYear != nil {
		t.Error("Expected no year range for empty input")
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total int
		expected    float64
	}{
		{1, 2, 50},
		{0, 0, 0},
		{3, 3, 100},
	}

	for _, tt := range tests {
		if got := percentage(tt.part, tt.total); got != tt.expected {
			t.Errorf("percentage(%d, %d) = %v, expected %v", tt.part, tt.total, got, tt.expected)
		}
	}
}
