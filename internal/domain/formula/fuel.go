package formula

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// FuelType identifies what a generator burns
type FuelType string

const (
	// Biomass burner fuels
	FuelSolidBiofuel FuelType = "solid_biofuel"
	FuelBiomass      FuelType = "biomass"
	FuelWood         FuelType = "wood"
	FuelLeaves       FuelType = "leaves"
	FuelMycelia      FuelType = "mycelia"

	// Coal-powered generator fuels
	FuelCoal          FuelType = "coal"
	FuelCompactedCoal FuelType = "compacted_coal"
	FuelPetroleumCoke FuelType = "petroleum_coke"

	// Fuel-powered generator fuels
	FuelFuel          FuelType = "fuel"
	FuelLiquidBiofuel FuelType = "liquid_biofuel"
	FuelTurbofuel     FuelType = "turbofuel"
	FuelRocketFuel    FuelType = "rocket_fuel"
	FuelIonizedFuel   FuelType = "ionized_fuel"

	// Nuclear power plant fuels
	FuelUraniumRod   FuelType = "uranium_fuel_rod"
	FuelPlutoniumRod FuelType = "plutonium_fuel_rod"
	FuelFicsoniumRod FuelType = "ficsonium_fuel_rod"
)

// fuelEfficiency is the consumption multiplier relative to each generator's reference
// fuel. Values below 1 mean the fuel is denser than the reference and is burned slower.
var fuelEfficiency = map[FuelType]float64{
	FuelSolidBiofuel: 1.0,
	FuelBiomass:      2.5,
	FuelWood:         4.5,
	FuelLeaves:       30.0,
	FuelMycelia:      22.5,

	FuelCoal:          1.0,
	FuelCompactedCoal: 0.8,
	FuelPetroleumCoke: 5.0 / 3.0,

	FuelFuel:          1.0,
	FuelLiquidBiofuel: 1.0,
	FuelTurbofuel:     0.375,
	FuelRocketFuel:    750.0 / 3600.0,
	FuelIonizedFuel:   0.15,

	FuelUraniumRod:   1.0,
	FuelPlutoniumRod: 0.5,
	FuelFicsoniumRod: 5.0,
}

// fuelWaste is the number of waste items left behind per unit of fuel burned
var fuelWaste = map[FuelType]float64{
	FuelUraniumRod:   50,
	FuelPlutoniumRod: 10,
	FuelFicsoniumRod: 0,
}

func (f FuelType) String() string {
	return string(f)
}

// IsValid checks if the fuel type has an efficiency entry
func (f FuelType) IsValid() bool {
	_, ok := fuelEfficiency[f]
	return ok
}

// ParseFuelType parses a string into a FuelType
func ParseFuelType(s string) (FuelType, error) {
	f := FuelType(s)
	if !f.IsValid() {
		return "", shared.NewInvalidConfigurationError("fuel_type", fmt.Sprintf("unknown fuel type: %q", s))
	}
	return f, nil
}

// AllFuelTypes returns every known fuel type in lexical order
func AllFuelTypes() []FuelType {
	out := make([]FuelType, 0, len(fuelEfficiency))
	for f := range fuelEfficiency {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FuelEfficiencyMultiplier looks up the consumption multiplier of a fuel type
func FuelEfficiencyMultiplier(f FuelType) (float64, error) {
	m, ok := fuelEfficiency[f]
	if !ok {
		return 0, shared.NewInvalidConfigurationError("fuel_type", fmt.Sprintf("unknown fuel type: %q", f))
	}
	return m, nil
}

// MustFuelEfficiencyMultiplier panics on an unknown fuel type
func MustFuelEfficiencyMultiplier(f FuelType) float64 {
	m, err := FuelEfficiencyMultiplier(f)
	if err != nil {
		panic(err)
	}
	return m
}

// WastePerFuelUnit returns how many waste items one unit of fuel leaves behind.
// Only nuclear fuels produce waste.
func WastePerFuelUnit(f FuelType) float64 {
	return fuelWaste[f]
}
