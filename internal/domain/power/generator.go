// Package power models generator clusters and their fuel and waste flows.
package power

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// GeneratorGroup is a set of identical generators sharing one clock speed
type GeneratorGroup struct {
	GeneratorCount   int     `json:"generator_count"`
	OverclockPercent float64 `json:"overclock_percent"`
}

func (g GeneratorGroup) validate() error {
	if g.GeneratorCount < 1 {
		return shared.NewInvalidConfigurationError("generator_count", "must be at least 1")
	}
	return formula.ValidateOverclock(g.OverclockPercent)
}

func (g GeneratorGroup) clockFactor() float64 {
	return float64(g.GeneratorCount) * formula.MustOverclockMultiplier(g.OverclockPercent)
}

// GeneratorDefinition is the configuration of a generator cluster without identity.
// FuelType must be empty for generator types that burn nothing.
type GeneratorDefinition struct {
	GeneratorType catalog.GeneratorTypeID `json:"generator_type"`
	FuelType      formula.FuelType        `json:"fuel_type,omitempty"`
	Groups        []GeneratorGroup        `json:"groups"`
}

// Copy returns a definition that shares no slices with d
func (d GeneratorDefinition) Copy() GeneratorDefinition {
	d.Groups = append([]GeneratorGroup(nil), d.Groups...)
	return d
}

// Generator is one cluster of generators of the same type burning the same fuel
type Generator struct {
	id        string
	genType   catalog.GeneratorType
	fuelType  formula.FuelType
	groups    []GeneratorGroup
	fuelItem  catalog.Item
	wasteItem catalog.Item
}

// NewGenerator validates def against the catalog and builds a generator cluster
func NewGenerator(id string, def GeneratorDefinition, cat *catalog.Catalog) (*Generator, error) {
	if err := shared.ValidateID("generator.id", id); err != nil {
		return nil, err
	}

	gt, ok := cat.Generator(def.GeneratorType)
	if !ok {
		return nil, shared.NewInvalidConfigurationError("generator_type", fmt.Sprintf("unknown generator type: %s", def.GeneratorType))
	}

	var fuelItem, wasteItem catalog.Item
	switch {
	case !gt.UsesFuel() && def.FuelType != "":
		return nil, shared.NewInvalidConfigurationError("fuel_type", fmt.Sprintf("%s does not burn fuel", gt.Name))
	case gt.UsesFuel() && def.FuelType == "":
		return nil, shared.NewInvalidConfigurationError("fuel_type", fmt.Sprintf("%s requires a fuel type", gt.Name))
	case gt.UsesFuel():
		item, accepted := gt.Fuels[def.FuelType]
		if !accepted {
			return nil, shared.NewInvalidConfigurationError("fuel_type", fmt.Sprintf("%s cannot burn %s", gt.Name, def.FuelType))
		}
		fuelItem = item
		wasteItem = gt.Waste[def.FuelType]
	}

	for i, g := range def.Groups {
		if err := g.validate(); err != nil {
			return nil, fmt.Errorf("generator group %d: %w", i, err)
		}
	}

	return &Generator{
		id:        id,
		genType:   gt,
		fuelType:  def.FuelType,
		groups:    append([]GeneratorGroup(nil), def.Groups...),
		fuelItem:  fuelItem,
		wasteItem: wasteItem,
	}, nil
}

func (g *Generator) ID() string                  { return g.id }
func (g *Generator) Type() catalog.GeneratorType { return g.genType }
func (g *Generator) FuelType() formula.FuelType  { return g.fuelType }
func (g *Generator) FuelItem() catalog.Item      { return g.fuelItem }
func (g *Generator) WasteItem() catalog.Item     { return g.wasteItem }

// Groups returns a copy of the generator groups
func (g *Generator) Groups() []GeneratorGroup {
	return append([]GeneratorGroup(nil), g.groups...)
}

func (g *Generator) Definition() GeneratorDefinition {
	return GeneratorDefinition{
		GeneratorType: g.genType.ID,
		FuelType:      g.fuelType,
		Groups:        g.Groups(),
	}
}

// GeneratorCount sums generator counts over groups
func (g *Generator) GeneratorCount() int {
	n := 0
	for _, grp := range g.groups {
		n += grp.GeneratorCount
	}
	return n
}

// PowerGeneration is the sum over groups of count * base MW * overclock multiplier
func (g *Generator) PowerGeneration() float64 {
	total := 0.0
	for _, grp := range g.groups {
		total += grp.clockFactor() * g.genType.BasePowerMW
	}
	return total
}

// FuelConsumption is the sum over groups of count * base fuel rate * efficiency * overclock
// multiplier. It is zero for generators that burn nothing.
func (g *Generator) FuelConsumption() float64 {
	if !g.genType.UsesFuel() {
		return 0
	}
	eff := formula.MustFuelEfficiencyMultiplier(g.fuelType)
	total := 0.0
	for _, grp := range g.groups {
		total += grp.clockFactor() * g.genType.BaseFuelRate * eff
	}
	return total
}

// WasteProduction follows fuel consumption; only fuels with a waste byproduct yield any
func (g *Generator) WasteProduction() float64 {
	if g.wasteItem == "" {
		return 0
	}
	return g.FuelConsumption() * formula.WastePerFuelUnit(g.fuelType)
}

// FuelRates maps the burned item to its consumption rate; empty for fuel-less generators
func (g *Generator) FuelRates() catalog.Rates {
	out := catalog.NewRates()
	if g.fuelItem != "" && len(g.groups) > 0 {
		out.Add(g.fuelItem, g.FuelConsumption())
	}
	return out
}

// WasteRates maps the waste item to its production rate
func (g *Generator) WasteRates() catalog.Rates {
	out := catalog.NewRates()
	if g.wasteItem != "" && len(g.groups) > 0 {
		out.Add(g.wasteItem, g.WasteProduction())
	}
	return out
}

func (g *Generator) String() string {
	return fmt.Sprintf("Generator[%s, type=%s, fuel=%s, count=%d]", g.id, g.genType.ID, g.fuelType, g.GeneratorCount())
}
