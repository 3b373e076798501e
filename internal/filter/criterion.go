// Package filter selects cars by year and delivers the matches either as a
// plain return value or as a match signal.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// ErrUnknownCriterion is returned for criterion tokens outside the four known ones.
	ErrUnknownCriterion = errors.New("unknown criterion")
	// ErrYearRequired is returned when a year based criterion is parsed without a year.
	ErrYearRequired = errors.New("criterion requires a year")
)

// Kind identifies one of the four selection rules.
type Kind int

const (
	// KindOldest selects the cars with the minimum year.
	KindOldest Kind = iota
	// KindNotOlderThan selects the cars whose year is at most the given year.
	KindNotOlderThan
	// KindYoungest selects the cars with the maximum year.
	KindYoungest
	// KindNotYoungerThan selects the cars whose year is at least the given year.
	KindNotYoungerThan
)

var kindTokens = map[Kind]string{
	KindOldest:         "oldest",
	KindNotOlderThan:   "not older than",
	KindYoungest:       "youngest",
	KindNotYoungerThan: "not younger than",
}

// Kinds returns all kinds in their menu order.
func Kinds() []Kind {
	return []Kind{KindOldest, KindNotOlderThan, KindYoungest, KindNotYoungerThan}
}

func (k Kind) String() string {
	if s, ok := kindTokens[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// NeedsYear reports whether the kind takes a year parameter.
func (k Kind) NeedsYear() bool {
	return k == KindNotOlderThan || k == KindNotYoungerThan
}

func normalizeToken(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(cases.Fold().String(s))

	return strings.Join(strings.Fields(s), " ")
}

// ParseKind parses a criterion token such as "oldest" or "not-older-than".
func ParseKind(token string) (Kind, error) {
	norm := normalizeToken(token)
	for _, k := range Kinds() {
		if kindTokens[k] == norm {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCriterion, token)
}

// Criterion is a selection rule with its optional year parameter.
type Criterion struct {
	kind Kind
	year int
}

// Oldest selects every car sharing the minimum year.
func Oldest() Criterion { return Criterion{kind: KindOldest} }

// Youngest selects every car sharing the maximum year.
func Youngest() Criterion { return Criterion{kind: KindYoungest} }

// NotOlderThan selects every car with year <= year.
func NotOlderThan(year int) Criterion { return Criterion{kind: KindNotOlderThan, year: year} }

// NotYoungerThan selects every car with year >= year.
func NotYoungerThan(year int) Criterion { return Criterion{kind: KindNotYoungerThan, year: year} }

// Parse builds a criterion from a token. year is consulted only for the
// year based kinds and must be non-nil for them.
func Parse(token string, year *int) (Criterion, error) {
	k, err := ParseKind(token)
	if err != nil {
		return Criterion{}, err
	}

	if !k.NeedsYear() {
		return Criterion{kind: k}, nil
	}

	if year == nil {
		return Criterion{}, fmt.Errorf("%w: %s", ErrYearRequired, k)
	}

	return Criterion{kind: k, year: *year}, nil
}

// Kind returns the selection rule.
func (c Criterion) Kind() Kind { return c.kind }

// Year returns the year parameter and whether the rule uses one.
func (c Criterion) Year() (int, bool) {
	return c.year, c.kind.NeedsYear()
}

func (c Criterion) String() string {
	if c.kind.NeedsYear() {
		return fmt.Sprintf("%s %d", c.kind, c.year)
	}

	return c.kind.String()
}
