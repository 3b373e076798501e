package filter

import (
	"github.com/sivchari/carfilter/internal/car"
)

// Apply returns the cars matching c in their original order.
// The result is never nil and cars is not modified.
func Apply(cars []car.Car, c Criterion) []car.Car {
	switch c.kind {
	case KindOldest:
		if len(cars) == 0 {
			return []car.Car{}
		}

		oldest := cars[0].Year
		for _, cc := range cars[1:] {
			oldest = min(oldest, cc.Year)
		}

		return keep(cars, func(y int) bool { return y == oldest })
	case KindNotOlderThan:
		return keep(cars, func(y int) bool { return y <= c.year })
	case KindYoungest:
		if len(cars) == 0 {
			return []car.Car{}
		}

		youngest := cars[0].Year
		for _, cc := range cars[1:] {
			youngest = max(youngest, cc.Year)
		}

		return keep(cars, func(y int) bool { return y == youngest })
	case KindNotYoungerThan:
		return keep(cars, func(y int) bool { return y >= c.year })
	default:
		return []car.Car{}
	}
}

func keep(cars []car.Car, match func(year int) bool) []car.Car {
	out := make([]car.Car, 0, len(cars))
	for _, c := range cars {
		if match(c.Year) {
			out = append(out, c)
		}
	}

	return out
}
