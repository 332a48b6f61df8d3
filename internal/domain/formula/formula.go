// Package formula holds the game's numeric curves: overclock power scaling,
// productivity boosting, node purity and fuel efficiency.
//
// All functions are pure and reject inputs outside their documented domain
// instead of clamping them.
package formula

import (
	"fmt"
	"math"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

const (
	// OverclockExponent is log2(2.5), the exponent of the overclock power curve
	OverclockExponent = 1.3219280948873623

	MinOverclockPercent = 0.0
	MaxOverclockPercent = 250.0

	// NominalOverclockPercent is the clock speed at which every multiplier is exactly 1
	NominalOverclockPercent = 100.0
)

// ValidateOverclock checks that percent lies in [0, 250]
func ValidateOverclock(percent float64) error {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return shared.NewInvalidConfigurationError("overclock_percent", "must be a finite number")
	}
	if percent < MinOverclockPercent || percent > MaxOverclockPercent {
		return shared.NewInvalidConfigurationError(
			"overclock_percent",
			fmt.Sprintf("%.4g is outside [%g, %g]", percent, MinOverclockPercent, MaxOverclockPercent),
		)
	}
	return nil
}

// OverclockMultiplier returns (percent/100)^E. At 100% the result is exactly 1.
func OverclockMultiplier(percent float64) (float64, error) {
	if err := ValidateOverclock(percent); err != nil {
		return 0, err
	}
	if percent == NominalOverclockPercent {
		return 1, nil
	}
	return math.Pow(percent/100, OverclockExponent), nil
}

// MustOverclockMultiplier is OverclockMultiplier for values already validated at construction.
// It panics on a domain violation.
func MustOverclockMultiplier(percent float64) float64 {
	m, err := OverclockMultiplier(percent)
	if err != nil {
		panic(err)
	}
	return m
}

// ValidateBoosters checks 0 <= boosters <= machineCap
func ValidateBoosters(boosters, machineCap int) error {
	if boosters < 0 {
		return shared.NewInvalidConfigurationError("productivity_booster_count", "cannot be negative")
	}
	if boosters > machineCap {
		return shared.NewInvalidConfigurationError(
			"productivity_booster_count",
			fmt.Sprintf("%d exceeds machine cap of %d", boosters, machineCap),
		)
	}
	return nil
}

// ProductivityMultiplier returns (1 + boosters/machineCap)^2.
// Machines with a cap of 0 accept no boosters and always yield 1.
func ProductivityMultiplier(boosters, machineCap int) (float64, error) {
	if err := ValidateBoosters(boosters, machineCap); err != nil {
		return 0, err
	}
	if boosters == 0 {
		return 1, nil
	}
	f := 1 + float64(boosters)/float64(machineCap)
	return f * f, nil
}

// MustProductivityMultiplier panics on a domain violation
func MustProductivityMultiplier(boosters, machineCap int) float64 {
	m, err := ProductivityMultiplier(boosters, machineCap)
	if err != nil {
		panic(err)
	}
	return m
}
