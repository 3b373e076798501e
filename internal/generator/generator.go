// Package generator produces random car lists.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sivchari/carfilter/internal/car"
)

var (
	// ErrNegativeCount is returned when asked for fewer than zero cars.
	ErrNegativeCount = errors.New("car count must not be negative")
	// ErrInvalidOptions is returned by New for unusable options.
	ErrInvalidOptions = errors.New("invalid generator options")
)

// Options configures the random car source.
type Options struct {
	Manufacturers []car.Manufacturer
	// MaxPrice is exclusive.
	MaxPrice int
	MinYear  int
	// MaxYear is inclusive.
	MaxYear int
	// Seed makes generation reproducible. Zero seeds from the clock.
	Seed uint64
}

// DefaultOptions returns the ranges of the original coursework program.
func DefaultOptions() Options {
	return Options{
		Manufacturers: car.Manufacturers(),
		MaxPrice:      100000,
		MinYear:       1970,
		MaxYear:       2019,
	}
}

// Generator creates cars within the configured bounds.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

// New creates a new generator.
func New(opts Options) (*Generator, error) {
	if len(opts.Manufacturers) == 0 {
		return nil, fmt.Errorf("%w: no manufacturers", ErrInvalidOptions)
	}

	for _, m := range opts.Manufacturers {
		if _, err := car.ParseManufacturer(string(m)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	}

	if opts.MaxPrice <= 0 {
		return nil, fmt.Errorf("%w: max price %d must be positive", ErrInvalidOptions, opts.MaxPrice)
	}

	if opts.MaxYear < opts.MinYear {
		return nil, fmt.Errorf("%w: max year %d is before min year %d", ErrInvalidOptions, opts.MaxYear, opts.MinYear)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Generator{
		opts: opts,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Generate returns n random cars.
func (g *Generator) Generate(n int) ([]car.Car, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	cars := make([]car.Car, 0, n)

	for range n {
		m := g.opts.Manufacturers[g.rng.IntN(len(g.opts.Manufacturers))]
		price := g.rng.IntN(g.opts.MaxPrice)
		year := g.opts.MinYear + g.rng.IntN(g.opts.MaxYear-g.opts.MinYear+1)

		c, err := car.New(m, price, year)
		if err != nil {
			return nil, fmt.Errorf("failed to create car: %w", err)
		}

		cars = append(cars, c)
	}

	return cars, nil
}

// Source adapts a generator to car.Source with a fixed count.
type Source struct {
	Generator *Generator
	Count     int
}

// Cars generates Count cars.
func (s Source) Cars(ctx context.Context) ([]car.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.Generator.Generate(s.Count)
}
