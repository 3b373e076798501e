// Package report provides report generation functionality.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/template"
	"time"

	"github.com/sivchari/carfilter/internal/car"
)

// Generator handles report generation.
type Generator struct {
	format string
	out    io.Writer
}

// Summary contains the complete results of a filter run.
type Summary struct {
	RunID      string     `json:"runId"`
	Criterion  string     `json:"criterion"`
	Mode       string     `json:"mode"`
	Cars       []car.Car  `json:"cars"`
	Matches    []car.Car  `json:"matches"`
	Statistics Statistics `json:"statistics"`
	Timestamp  time.Time  `json:"timestamp"`
	// OmitCars leaves the generated cars out of the text report when they
	// were already listed.
	OmitCars bool `json:"-"`
}

// Statistics contains aggregated figures over the generated cars.
type Statistics struct {
	Total   int `json:"total"`
	Matched int `json:"matched"`
	// Years are nil when there are no cars.
	MinYear *int `json:"minYear,omitempty"`
	MaxYear *int `json:"maxYear,omitempty"`
}

// New creates a new report generator for the text or json format.
func New(format string, out io.Writer) (*Generator, error) {
	switch format {
	case "", "text":
		format = "text"
	case "json":
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}

	return &Generator{
		format: format,
		out:    out,
	}, nil
}

// Generate fills in statistics and writes the report.
func (g *Generator) Generate(summary *Summary) error {
	summary.Statistics = calculateStatistics(summary.Cars, summary.Matches)
	if summary.Timestamp.IsZero() {
		summary.Timestamp = time.Now()
	}

	switch g.format {
	case "json":
		return g.generateJSON(summary)
	default:
		return g.generateText(summary)
	}
}

func calculateStatistics(cars, matches []car.Car) Statistics {
	stats := Statistics{
		Total:   len(cars),
		Matched: len(matches),
	}

	if len(cars) > 0 {
		years := car.Years(cars)
		minYear, maxYear := slices.Min(years), slices.Max(years)
		stats.MinYear = &minYear
		stats.MaxYear = &maxYear
	}

	return stats
}

func (g *Generator) generateJSON(summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if _, err := fmt.Fprintln(g.out, string(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func (g *Generator) generateText(summary *Summary) error {
	return g.execute(textTemplate, summary)
}

// Listing writes a titled car listing in text format. It writes nothing for
// the json format, whose summary already carries the cars.
func (g *Generator) Listing(title string, cars []car.Car) error {
	if g.format == "json" {
		return nil
	}

	return g.execute(`{{template "listing" .}}`, listing(title, cars))
}

func (g *Generator) execute(text string, data any) error {
	funcMap := template.FuncMap{
		"percentage": percentage,
		"listing":    listing,
	}

	tmpl, err := template.New("text_report").Funcs(funcMap).Parse(listingTemplate + text)
	if err != nil {
		return fmt.Errorf("failed to parse text template: %w", err)
	}

	if err := tmpl.Execute(g.out, data); err != nil {
		return fmt.Errorf("failed to execute text template: %w", err)
	}

	return nil
}

type listingData struct {
	Title string
	Cars  []car.Car
}

func listing(title string, cars []car.Car) listingData {
	return listingData{Title: title, Cars: cars}
}

const listingTemplate = `{{define "listing"}}{{.Title}}
{{- range .Cars}}
  {{.}}
{{- else}}
  (none)
{{- end}}
{{end}}`

// textTemplate lists the generated cars, then the matched cars.
const textTemplate = `
{{- if not .OmitCars}}{{template "listing" (listing "Cars created:" .Cars)}}
{{end -}}
{{template "listing" (listing (printf "Found cars (%s, mode %s):" .Criterion .Mode) .Matches)}}
Matched {{.Statistics.Matched}} of {{.Statistics.Total}} ({{printf "%.1f" (percentage .Statistics.Matched .Statistics.Total)}}%)
`

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) / float64(total) * 100
}
