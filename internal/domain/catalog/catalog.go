// Package catalog is the read-only game reference data: items, machines, recipes,
// extractor tiers and generator types.
package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

const (
	// ResourceWellPressurizerPowerMW is the draw of a pressurizer at 100%
	ResourceWellPressurizerPowerMW = 150.0

	// ResourceWellNodeRate is the per-minute output of a normal satellite node at 100%
	ResourceWellNodeRate = 60.0
)

// MachineID identifies a manufacturing building
type MachineID string

// RecipeID identifies a recipe
type RecipeID string

// ExtractorID identifies an extractor tier
type ExtractorID string

// GeneratorTypeID identifies a generator building
type GeneratorTypeID string

const (
	GeneratorBiomass    GeneratorTypeID = "biomass"
	GeneratorCoal       GeneratorTypeID = "coal"
	GeneratorFuel       GeneratorTypeID = "fuel"
	GeneratorNuclear    GeneratorTypeID = "nuclear"
	GeneratorGeothermal GeneratorTypeID = "geothermal"
)

// ItemInfo describes one catalog item
type ItemInfo struct {
	ID    Item   `yaml:"id"`
	Name  string `yaml:"name"`
	Fluid bool   `yaml:"fluid"`
}

// MachineType is a manufacturing building with a fixed draw and booster slot count
type MachineType struct {
	ID          MachineID `yaml:"id"`
	Name        string    `yaml:"name"`
	BasePowerMW float64   `yaml:"base_power_mw"`
	BoosterCap  int       `yaml:"booster_cap"`
}

// Recipe is a fixed transformation; rates are per machine per minute at 100%
type Recipe struct {
	ID        RecipeID   `yaml:"id"`
	Name      string     `yaml:"name"`
	Machine   MachineID  `yaml:"machine"`
	Inputs    []ItemRate `yaml:"inputs"`
	Outputs   []ItemRate `yaml:"outputs"`
	Alternate bool       `yaml:"alternate"`
}

// ExtractorType is a single-node extraction building tier
type ExtractorType struct {
	ID          ExtractorID `yaml:"id"`
	Name        string      `yaml:"name"`
	BasePowerMW float64     `yaml:"base_power_mw"`
	BaseRate    float64     `yaml:"base_rate"`
	Items       []Item      `yaml:"items"`
}

// Extracts reports whether this tier can work a node of item
func (e ExtractorType) Extracts(item Item) bool {
	for _, it := range e.Items {
		if it == item {
			return true
		}
	}
	return false
}

// GeneratorType is a power building with a fixed output and reference fuel rate
type GeneratorType struct {
	ID           GeneratorTypeID
	Name         string
	BasePowerMW  float64
	BaseFuelRate float64 // reference fuel units per minute at 100%
	Fuels        map[formula.FuelType]Item
	Waste        map[formula.FuelType]Item
}

// UsesFuel is false for generators that burn nothing
func (g GeneratorType) UsesFuel() bool {
	return len(g.Fuels) > 0
}

// Catalog is an immutable set of reference data
type Catalog struct {
	items      map[Item]ItemInfo
	machines   map[MachineID]MachineType
	recipes    map[RecipeID]Recipe
	extractors map[ExtractorID]ExtractorType
	generators map[GeneratorTypeID]GeneratorType
	wellItems  map[Item]bool
}

func newCatalog() *Catalog {
	return &Catalog{
		items:      make(map[Item]ItemInfo),
		machines:   make(map[MachineID]MachineType),
		recipes:    make(map[RecipeID]Recipe),
		extractors: make(map[ExtractorID]ExtractorType),
		generators: make(map[GeneratorTypeID]GeneratorType),
		wellItems:  make(map[Item]bool),
	}
}

// clone copies the top-level maps; entries are values and never mutated in place
func (c *Catalog) clone() *Catalog {
	out := newCatalog()
	for k, v := range c.items {
		out.items[k] = v
	}
	for k, v := range c.machines {
		out.machines[k] = v
	}
	for k, v := range c.recipes {
		out.recipes[k] = v
	}
	for k, v := range c.extractors {
		out.extractors[k] = v
	}
	for k, v := range c.generators {
		out.generators[k] = v
	}
	for k, v := range c.wellItems {
		out.wellItems[k] = v
	}
	return out
}

// HasItem reports whether item is part of the catalog
func (c *Catalog) HasItem(item Item) bool {
	_, ok := c.items[item]
	return ok
}

// ItemInfo returns the catalog entry for item
func (c *Catalog) ItemInfo(item Item) (ItemInfo, bool) {
	info, ok := c.items[item]
	return info, ok
}

// Machine returns a machine type by id
func (c *Catalog) Machine(id MachineID) (MachineType, bool) {
	m, ok := c.machines[id]
	return m, ok
}

// Recipe returns a recipe by id
func (c *Catalog) Recipe(id RecipeID) (Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

// Extractor returns an extractor tier by id
func (c *Catalog) Extractor(id ExtractorID) (ExtractorType, bool) {
	e, ok := c.extractors[id]
	return e, ok
}

// Generator returns a generator type by id
func (c *Catalog) Generator(id GeneratorTypeID) (GeneratorType, bool) {
	g, ok := c.generators[id]
	return g, ok
}

// ResourceWellItem reports whether item can be drawn from a resource well
func (c *Catalog) ResourceWellItem(item Item) bool {
	return c.wellItems[item]
}

// Items returns every item id in lexical order
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for id := range c.items {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Recipes returns every recipe ordered by id
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Machines returns every machine type ordered by id
func (c *Catalog) Machines() []MachineType {
	out := make([]MachineType, 0, len(c.machines))
	for _, m := range c.machines {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) addItem(info ItemInfo) {
	c.items[info.ID] = info
}

func (c *Catalog) addMachine(m MachineType) error {
	if m.ID == "" {
		return fmt.Errorf("machine id cannot be empty")
	}
	if !finite(m.BasePowerMW) || m.BasePowerMW < 0 {
		return shared.NewInvalidConfigurationError("machine.base_power_mw", fmt.Sprintf("machine %s: must be a finite non-negative number, got %v", m.ID, m.BasePowerMW))
	}
	if m.BoosterCap < 0 {
		return fmt.Errorf("machine %s: booster cap cannot be negative", m.ID)
	}
	c.machines[m.ID] = m
	return nil
}

func (c *Catalog) addRecipe(r Recipe) error {
	if r.ID == "" {
		return fmt.Errorf("recipe id cannot be empty")
	}
	if _, ok := c.machines[r.Machine]; !ok {
		return fmt.Errorf("recipe %s: unknown machine %s", r.ID, r.Machine)
	}
	if len(r.Outputs) == 0 {
		return fmt.Errorf("recipe %s: must have at least one output", r.ID)
	}
	for _, list := range [][]ItemRate{r.Inputs, r.Outputs} {
		for _, ir := range list {
			if _, ok := c.items[ir.Item]; !ok {
				return fmt.Errorf("recipe %s: unknown item %s", r.ID, ir.Item)
			}
			if !finite(ir.Rate) || ir.Rate <= 0 {
				return shared.NewInvalidConfigurationError("recipe.rate", fmt.Sprintf("recipe %s: rate for %s must be positive and finite, got %v", r.ID, ir.Item, ir.Rate))
			}
		}
	}
	c.recipes[r.ID] = r
	return nil
}

func (c *Catalog) addExtractor(e ExtractorType) error {
	if e.ID == "" {
		return fmt.Errorf("extractor id cannot be empty")
	}
	if !finite(e.BasePowerMW) || e.BasePowerMW < 0 {
		return shared.NewInvalidConfigurationError("extractor.base_power_mw", fmt.Sprintf("extractor %s: must be a finite non-negative number, got %v", e.ID, e.BasePowerMW))
	}
	if !finite(e.BaseRate) || e.BaseRate <= 0 {
		return shared.NewInvalidConfigurationError("extractor.base_rate", fmt.Sprintf("extractor %s: must be positive and finite, got %v", e.ID, e.BaseRate))
	}
	for _, item := range e.Items {
		if _, ok := c.items[item]; !ok {
			return fmt.Errorf("extractor %s: unknown item %s", e.ID, item)
		}
	}
	c.extractors[e.ID] = e
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
