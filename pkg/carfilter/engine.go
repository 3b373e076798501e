// Package carfilter provides the main API for generating and filtering cars.
package carfilter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/sivchari/carfilter/internal/car"
	"github.com/sivchari/carfilter/internal/config"
	"github.com/sivchari/carfilter/internal/filter"
	"github.com/sivchari/carfilter/internal/generator"
	"github.com/sivchari/carfilter/internal/logger"
	"github.com/sivchari/carfilter/internal/report"
)

// Engine runs the generate, filter and report steps.
type Engine struct {
	config    *config.Config
	generator *generator.Generator
	reporter  *report.Generator
}

// Request describes a single filter run.
type Request struct {
	// Source supplies the cars. Nil uses the engine's generator with Count.
	Source    car.Source
	Count     int
	Criterion filter.Criterion
	Mode      filter.Mode
	// CarsShown leaves the generated cars out of the text report because
	// they were already printed with ShowCars.
	CarsShown bool
}

// NewEngine creates a new engine writing its report to out.
func NewEngine(cfg *config.Config, out io.Writer) (*Engine, error) {
	gen, err := generator.New(GeneratorOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	reporter, err := report.New(cfg.Output.Format, out)
	if err != nil {
		return nil, fmt.Errorf("failed to create reporter: %w", err)
	}

	return &Engine{
		config:    cfg,
		generator: gen,
		reporter:  reporter,
	}, nil
}

// GeneratorOptions converts the generator section of cfg.
func GeneratorOptions(cfg *config.Config) generator.Options {
	manufacturers := make([]car.Manufacturer, 0, len(cfg.Generator.Manufacturers))
	for _, m := range cfg.Generator.Manufacturers {
		manufacturers = append(manufacturers, car.Manufacturer(m))
	}

	return generator.Options{
		Manufacturers: manufacturers,
		MaxPrice:      cfg.Generator.MaxPrice,
		MinYear:       cfg.Generator.MinYear,
		MaxYear:       cfg.Generator.MaxYear,
		Seed:          cfg.Generator.Seed,
	}
}

// RequestFromConfig builds a request from the filter and generator sections.
func RequestFromConfig(cfg *config.Config) (Request, error) {
	mode, err := filter.ParseMode(cfg.Filter.Mode)
	if err != nil {
		return Request{}, err
	}

	criterion, err := filter.Parse(cfg.Filter.Criterion, cfg.Filter.Year)
	if err != nil {
		return Request{}, err
	}

	count := 0
	if cfg.Generator.Count != nil {
		count = *cfg.Generator.Count
	}

	return Request{
		Count:     count,
		Criterion: criterion,
		Mode:      mode,
	}, nil
}

// Run obtains the cars, filters them and writes the report. In
// SignalAsFailure mode the returned error is the *filter.MatchSignal of the
// outcome; the report is written either way.
func (e *Engine) Run(ctx context.Context, req Request) (filter.Outcome, error) {
	runID := uuid.NewString()
	log := logger.WithRun(runID)

	cars, err := e.Cars(ctx, req)
	if err != nil {
		return filter.Outcome{}, err
	}

	log.Debug("cars obtained", "count", len(cars))

	outcome := filter.Run(cars, req.Criterion, req.Mode)

	log.Info("cars filtered",
		"criterion", req.Criterion.String(),
		"mode", req.Mode.String(),
		"total", len(cars),
		"matched", len(outcome.Matches()),
	)

	summary := &report.Summary{
		RunID:     runID,
		Criterion: req.Criterion.String(),
		Mode:      req.Mode.String(),
		Cars:      cars,
		Matches:   outcome.Matches(),
		OmitCars:  req.CarsShown,
	}

	if err := e.reporter.Generate(summary); err != nil {
		return filter.Outcome{}, fmt.Errorf("failed to generate report: %w", err)
	}

	if _, err := outcome.Unwrap(); err != nil {
		log.Debug("raising match signal", "matched", len(outcome.Matches()))

		return outcome, err
	}

	return outcome, nil
}

// Cars obtains the cars of req from its Source, or from the engine's
// generator when the request has none.
func (e *Engine) Cars(ctx context.Context, req Request) ([]car.Car, error) {
	src := req.Source
	if src == nil {
		src = generator.Source{Generator: e.generator, Count: req.Count}
	}

	cars, err := src.Cars(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain cars: %w", err)
	}

	return cars, nil
}

// ShowCars prints the "Cars created:" listing ahead of the report.
func (e *Engine) ShowCars(cars []car.Car) error {
	return e.reporter.Listing("Cars created:", cars)
}

// IsMatchSignal reports whether err carries a match signal and returns it.
func IsMatchSignal(err error) (*filter.MatchSignal, bool) {
	var signal *filter.MatchSignal
	if errors.As(err, &signal) {
		return signal, true
	}

	return nil, false
}
