package formula

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// Purity is the richness of a resource node
type Purity string

const (
	PurityImpure Purity = "impure"
	PurityNormal Purity = "normal"
	PurityPure   Purity = "pure"
)

// AllPurities returns every purity level, poorest first
func AllPurities() []Purity {
	return []Purity{PurityImpure, PurityNormal, PurityPure}
}

// IsValid checks if the purity is one of the three known levels
func (p Purity) IsValid() bool {
	switch p {
	case PurityImpure, PurityNormal, PurityPure:
		return true
	default:
		return false
	}
}

func (p Purity) String() string {
	return string(p)
}

// ParsePurity parses a string into a Purity
func ParsePurity(s string) (Purity, error) {
	p := Purity(s)
	if !p.IsValid() {
		return "", shared.NewInvalidConfigurationError("purity", fmt.Sprintf("unknown purity: %q", s))
	}
	return p, nil
}

// PurityMultiplier returns 0.5, 1.0 or 2.0 for impure, normal and pure nodes
func PurityMultiplier(p Purity) (float64, error) {
	switch p {
	case PurityImpure:
		return 0.5, nil
	case PurityNormal:
		return 1.0, nil
	case PurityPure:
		return 2.0, nil
	default:
		return 0, shared.NewInvalidConfigurationError("purity", fmt.Sprintf("unknown purity: %q", p))
	}
}

// MustPurityMultiplier panics on an unknown purity
func MustPurityMultiplier(p Purity) float64 {
	m, err := PurityMultiplier(p)
	if err != nil {
		panic(err)
	}
	return m
}
