package production

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// Blueprint is a named composite of recipe lines; its totals are the sums of its lines
type Blueprint struct {
	id          string
	name        string
	description string
	lines       []*RecipeLine
}

// NewBlueprint builds a blueprint from already constructed lines
func NewBlueprint(id, name, description string, lines []*RecipeLine) (*Blueprint, error) {
	if err := shared.ValidateID("production_unit.id", id); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewInvalidConfigurationError("name", "cannot be empty")
	}

	seen := map[string]bool{id: true}
	for _, l := range lines {
		if l == nil {
			return nil, shared.NewInvalidConfigurationError("lines", "cannot contain nil")
		}
		if seen[l.id] {
			return nil, shared.NewInvalidConfigurationError("lines", fmt.Sprintf("duplicate id %s", l.id))
		}
		seen[l.id] = true
	}

	return &Blueprint{
		id:          id,
		name:        name,
		description: description,
		lines:       append([]*RecipeLine(nil), lines...),
	}, nil
}

func (b *Blueprint) ID() string          { return b.id }
func (b *Blueprint) Name() string        { return b.name }
func (b *Blueprint) Description() string { return b.description }
func (b *Blueprint) Kind() Kind          { return KindBlueprint }
func (b *Blueprint) sealed()             {}

// Lines returns the nested recipe lines in order
func (b *Blueprint) Lines() []*RecipeLine {
	return append([]*RecipeLine(nil), b.lines...)
}

func (b *Blueprint) PowerConsumption() float64 {
	total := 0.0
	for _, l := range b.lines {
		total += l.PowerConsumption()
	}
	return total
}

func (b *Blueprint) MachineCount() int {
	n := 0
	for _, l := range b.lines {
		n += l.MachineCount()
	}
	return n
}

func (b *Blueprint) InputRates() catalog.Rates {
	out := catalog.NewRates()
	for _, l := range b.lines {
		out.Merge(l.InputRates(), 1)
	}
	return out
}

func (b *Blueprint) OutputRates() catalog.Rates {
	out := catalog.NewRates()
	for _, l := range b.lines {
		out.Merge(l.OutputRates(), 1)
	}
	return out
}

// Definition returns a deep copy of the blueprint configuration
func (b *Blueprint) Definition() Definition {
	return b.BlueprintDefinition()
}

// BlueprintDefinition is Definition without the interface wrapping
func (b *Blueprint) BlueprintDefinition() BlueprintDefinition {
	lines := make([]RecipeLineDefinition, len(b.lines))
	for i, l := range b.lines {
		lines[i] = l.definition()
	}
	return BlueprintDefinition{
		Name:        b.name,
		Description: b.description,
		Lines:       lines,
	}
}

func (b *Blueprint) String() string {
	return fmt.Sprintf("Blueprint[%s, name=%s, lines=%d]", b.id, b.name, len(b.lines))
}
