package production

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// MachineGroup is a set of identical machines sharing one clock speed and booster count
type MachineGroup struct {
	MachineCount     int     `json:"machine_count"`
	OverclockPercent float64 `json:"overclock_percent"`
	BoosterCount     int     `json:"productivity_booster_count"`
}

// Validate checks the group against the booster cap of its machine
func (g MachineGroup) Validate(machine catalog.MachineType) error {
	if g.MachineCount < 1 {
		return shared.NewInvalidConfigurationError("machine_count", "must be at least 1")
	}
	if err := formula.ValidateOverclock(g.OverclockPercent); err != nil {
		return err
	}
	if err := formula.ValidateBoosters(g.BoosterCount, machine.BoosterCap); err != nil {
		return shared.NewInvalidConfigurationError(
			"productivity_booster_count",
			fmt.Sprintf("%s: %d boosters exceed the %s cap of %d", machine.ID, g.BoosterCount, machine.Name, machine.BoosterCap),
		)
	}
	return nil
}

// clockFactor is count * overclock multiplier
func (g MachineGroup) clockFactor() float64 {
	return float64(g.MachineCount) * formula.MustOverclockMultiplier(g.OverclockPercent)
}

func copyGroups(groups []MachineGroup) []MachineGroup {
	if groups == nil {
		return nil
	}
	out := make([]MachineGroup, len(groups))
	copy(out, groups)
	return out
}

// RecipeLine runs one recipe on one or more machine groups
type RecipeLine struct {
	id          string
	name        string
	description string
	recipe      catalog.Recipe
	machine     catalog.MachineType
	groups      []MachineGroup
}

// NewRecipeLine validates def against the catalog and builds a recipe line
func NewRecipeLine(id string, def RecipeLineDefinition, cat *catalog.Catalog) (*RecipeLine, error) {
	if err := shared.ValidateID("production_unit.id", id); err != nil {
		return nil, err
	}
	if def.Name == "" {
		return nil, shared.NewInvalidConfigurationError("name", "cannot be empty")
	}

	recipe, ok := cat.Recipe(def.Recipe)
	if !ok {
		return nil, shared.NewInvalidConfigurationError("recipe", fmt.Sprintf("unknown recipe: %s", def.Recipe))
	}
	machine, ok := cat.Machine(recipe.Machine)
	if !ok {
		return nil, shared.NewInvalidConfigurationError(
			"recipe",
			fmt.Sprintf("recipe %s requires unknown machine type %s", recipe.ID, recipe.Machine),
		)
	}

	for i, g := range def.MachineGroups {
		if err := g.Validate(machine); err != nil {
			return nil, fmt.Errorf("machine group %d: %w", i, err)
		}
	}

	return &RecipeLine{
		id:          id,
		name:        def.Name,
		description: def.Description,
		recipe:      recipe,
		machine:     machine,
		groups:      copyGroups(def.MachineGroups),
	}, nil
}

func (l *RecipeLine) ID() string                   { return l.id }
func (l *RecipeLine) Name() string                 { return l.name }
func (l *RecipeLine) Description() string          { return l.description }
func (l *RecipeLine) Kind() Kind                   { return KindRecipeLine }
func (l *RecipeLine) Recipe() catalog.Recipe       { return l.recipe }
func (l *RecipeLine) Machine() catalog.MachineType { return l.machine }
func (l *RecipeLine) sealed()                      {}

// MachineGroups returns a copy of the line's groups
func (l *RecipeLine) MachineGroups() []MachineGroup {
	return copyGroups(l.groups)
}

// PowerConsumption is the sum over groups of count * base * overclock mul * productivity mul
func (l *RecipeLine) PowerConsumption() float64 {
	total := 0.0
	for _, g := range l.groups {
		boost := formula.MustProductivityMultiplier(g.BoosterCount, l.machine.BoosterCap)
		total += g.clockFactor() * l.machine.BasePowerMW * boost
	}
	return total
}

// MachineCount sums machine counts over groups
func (l *RecipeLine) MachineCount() int {
	n := 0
	for _, g := range l.groups {
		n += g.MachineCount
	}
	return n
}

// InputRates scales the recipe inputs by count, overclock and productivity
func (l *RecipeLine) InputRates() catalog.Rates {
	out := catalog.NewRates()
	for _, g := range l.groups {
		factor := g.clockFactor() * formula.MustProductivityMultiplier(g.BoosterCount, l.machine.BoosterCap)
		for _, ir := range l.recipe.Inputs {
			out.Add(ir.Item, ir.Rate*factor)
		}
	}
	return out
}

// OutputRates scales the recipe outputs by count, overclock and productivity
func (l *RecipeLine) OutputRates() catalog.Rates {
	out := catalog.NewRates()
	for _, g := range l.groups {
		factor := g.clockFactor() * formula.MustProductivityMultiplier(g.BoosterCount, l.machine.BoosterCap)
		for _, ir := range l.recipe.Outputs {
			out.Add(ir.Item, ir.Rate*factor)
		}
	}
	return out
}

// Definition returns the line's configuration
func (l *RecipeLine) Definition() Definition {
	return l.definition()
}

func (l *RecipeLine) definition() RecipeLineDefinition {
	return RecipeLineDefinition{
		Name:          l.name,
		Description:   l.description,
		Recipe:        l.recipe.ID,
		MachineGroups: copyGroups(l.groups),
	}
}

func (l *RecipeLine) String() string {
	return fmt.Sprintf("RecipeLine[%s, recipe=%s, machines=%d]", l.id, l.recipe.ID, l.MachineCount())
}
