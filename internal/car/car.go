// Package car provides the car record and helpers to load car lists.
package car

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Manufacturer is one of the fixed manufacturer labels.
type Manufacturer string

const (
	// Polonez is the POLONEZ label.
	Polonez Manufacturer = "POLONEZ"
	// Fiat is the FIAT label.
	Fiat Manufacturer = "FIAT"
	// Syrena is the SYRENA label.
	Syrena Manufacturer = "SYRENA"
)

var (
	// ErrUnknownManufacturer is returned for labels outside the fixed set.
	ErrUnknownManufacturer = errors.New("unknown manufacturer")
	// ErrNegativePrice is returned when a car is built with a price below zero.
	ErrNegativePrice = errors.New("price must not be negative")
)

// Manufacturers returns all known manufacturer labels in display order.
func Manufacturers() []Manufacturer {
	return []Manufacturer{Polonez, Fiat, Syrena}
}

// ParseManufacturer parses a label case-insensitively.
func ParseManufacturer(s string) (Manufacturer, error) {
	m := Manufacturer(cases.Upper(language.Und).String(strings.TrimSpace(s)))
	for _, known := range Manufacturers() {
		if m == known {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownManufacturer, s)
}

// Car is an immutable car record. Fields are exported for serialization only;
// build values through New.
type Car struct {
	Manufacturer Manufacturer `json:"manufacturer" yaml:"manufacturer"`
	Price        int          `json:"price" yaml:"price"`
	Year         int          `json:"year" yaml:"year"`
}

// New creates a validated car record.
func New(manufacturer Manufacturer, price, year int) (Car, error) {
	m, err := ParseManufacturer(string(manufacturer))
	if err != nil {
		return Car{}, err
	}

	if price < 0 {
		return Car{}, fmt.Errorf("%w: %d", ErrNegativePrice, price)
	}

	return Car{Manufacturer: m, Price: price, Year: year}, nil
}

func (c Car) String() string {
	return fmt.Sprintf("Car{manufacturer=%s, price=%d, year=%d}", c.Manufacturer, c.Price, c.Year)
}

// Source supplies a materialized car sequence.
type Source interface {
	Cars(ctx context.Context) ([]Car, error)
}

// List is a Source over an already materialized sequence.
type List []Car

// Cars returns the list itself.
func (l List) Cars(ctx context.Context) ([]Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return l, nil
}

// Years returns the model years of cars in order.
func Years(cars []Car) []int {
	years := make([]int, len(cars))
	for i, c := range cars {
		years[i] = c.Year
	}

	return years
}
