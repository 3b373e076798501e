package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sivchari/carfilter/internal/car"
)

// ErrUnknownMode is returned for delivery mode tokens other than R and W.
var ErrUnknownMode = errors.New("unknown delivery mode")

// Mode selects how matches reach the caller.
type Mode int

const (
	// ReturnValue hands the matches back as an ordinary result.
	ReturnValue Mode = iota
	// SignalAsFailure packages the matches into a MatchSignal.
	SignalAsFailure
)

func (m Mode) String() string {
	switch m {
	case ReturnValue:
		return "R"
	case SignalAsFailure:
		return "W"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the R/W tokens case-insensitively.
func ParseMode(token string) (Mode, error) {
	switch normalizeToken(token) {
	case "r", "return":
		return ReturnValue, nil
	case "w", "signal":
		return SignalAsFailure, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, strings.TrimSpace(token))
	}
}

// MatchSignal carries the matched cars when they are delivered through the
// error channel. It does not indicate a failure of the filter.
type MatchSignal struct {
	Cars []car.Car
}

func (s *MatchSignal) Error() string {
	return fmt.Sprintf("match signal: %d car(s) matched", len(s.Cars))
}

// Outcome is the tagged result of a filter run.
type Outcome struct {
	mode    Mode
	matches []car.Car
}

// Run filters cars by c and tags the matches with the delivery mode.
func Run(cars []car.Car, c Criterion, mode Mode) Outcome {
	return Outcome{mode: mode, matches: Apply(cars, c)}
}

// Mode returns the delivery mode the outcome was produced with.
func (o Outcome) Mode() Mode { return o.mode }

// Matches returns the matched cars regardless of the delivery mode.
func (o Outcome) Matches() []car.Car { return o.matches }

// IsSignal reports whether the matches are delivered as a MatchSignal.
func (o Outcome) IsSignal() bool { return o.mode == SignalAsFailure }

// Unwrap returns the matches with a nil error in ReturnValue mode, and nil
// with a *MatchSignal in SignalAsFailure mode.
func (o Outcome) Unwrap() ([]car.Car, error) {
	if o.IsSignal() {
		return nil, &MatchSignal{Cars: o.matches}
	}

	return o.matches, nil
}
