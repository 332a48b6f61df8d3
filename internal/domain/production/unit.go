// Package production models producible units: recipe lines and blueprint composites.
//
// Units are immutable once built. Updating a unit means building a replacement with
// the same id, so a unit value can be shared freely between snapshots.
package production

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// Kind discriminates the two unit variants
type Kind string

const (
	KindRecipeLine Kind = "recipe_line"
	KindBlueprint  Kind = "blueprint"
)

// Unit is a ProductionUnit. The only implementations are *RecipeLine and *Blueprint.
type Unit interface {
	ID() string
	Name() string
	Description() string
	Kind() Kind

	PowerConsumption() float64
	MachineCount() int
	InputRates() catalog.Rates
	OutputRates() catalog.Rates

	// Definition returns an independent copy of the unit's configuration
	Definition() Definition

	sealed()
}

// Definition is the configuration of a unit without identity. The only
// implementations are RecipeLineDefinition and BlueprintDefinition.
type Definition interface {
	Kind() Kind
	DisplayName() string
	withName(name string) Definition
	sealedDefinition()
}

// RecipeLineDefinition configures a recipe line
type RecipeLineDefinition struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Recipe        catalog.RecipeID `json:"recipe"`
	MachineGroups []MachineGroup   `json:"machine_groups"`
}

func (RecipeLineDefinition) Kind() Kind { return KindRecipeLine }

func (d RecipeLineDefinition) DisplayName() string { return d.Name }

func (d RecipeLineDefinition) withName(name string) Definition {
	d.MachineGroups = copyGroups(d.MachineGroups)
	d.Name = name
	return d
}

func (RecipeLineDefinition) sealedDefinition() {}

// BlueprintDefinition configures a blueprint composite
type BlueprintDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Lines       []RecipeLineDefinition `json:"lines"`
}

func (BlueprintDefinition) Kind() Kind { return KindBlueprint }

func (d BlueprintDefinition) DisplayName() string { return d.Name }

func (d BlueprintDefinition) withName(name string) Definition {
	d = CopyBlueprintDefinition(d)
	d.Name = name
	return d
}

func (BlueprintDefinition) sealedDefinition() {}

// WithName returns a copy of def renamed to name
func WithName(def Definition, name string) Definition {
	return def.withName(name)
}

// CopyBlueprintDefinition deep-copies a blueprint definition
func CopyBlueprintDefinition(d BlueprintDefinition) BlueprintDefinition {
	lines := make([]RecipeLineDefinition, len(d.Lines))
	for i, l := range d.Lines {
		l.MachineGroups = copyGroups(l.MachineGroups)
		lines[i] = l
	}
	d.Lines = lines
	return d
}

// Build constructs a unit with the given id. Nested blueprint lines draw fresh ids from ids.
func Build(id string, def Definition, ids shared.IDGenerator, cat *catalog.Catalog) (Unit, error) {
	return Rebuild(id, nil, def, ids, cat)
}

// Rebuild constructs a replacement for previous (which may be nil) keeping id. When both
// are blueprints, nested line ids are kept by position and extra lines get fresh ids.
func Rebuild(id string, previous Unit, def Definition, ids shared.IDGenerator, cat *catalog.Catalog) (Unit, error) {
	switch d := def.(type) {
	case RecipeLineDefinition:
		return NewRecipeLine(id, d, cat)
	case BlueprintDefinition:
		var keep []string
		if bp, ok := previous.(*Blueprint); ok {
			for _, l := range bp.lines {
				keep = append(keep, l.id)
			}
		}
		lines := make([]*RecipeLine, 0, len(d.Lines))
		for i, ld := range d.Lines {
			var lineID string
			if i < len(keep) {
				lineID = keep[i]
			} else {
				lineID = ids.NewID()
			}
			line, err := NewRecipeLine(lineID, ld, cat)
			if err != nil {
				return nil, fmt.Errorf("blueprint line %d: %w", i, err)
			}
			lines = append(lines, line)
		}
		return NewBlueprint(id, d.Name, d.Description, lines)
	case nil:
		return nil, shared.NewInvalidConfigurationError("definition", "cannot be nil")
	default:
		return nil, shared.NewInvalidConfigurationError("definition", fmt.Sprintf("unsupported unit kind %T", def))
	}
}

// Validate checks def against the catalog without keeping the built unit
func Validate(def Definition, cat *catalog.Catalog) error {
	_, err := Build("validation", def, shared.NewSequentialIDGenerator("validation"), cat)
	return err
}

// CollectIDs returns the unit id followed by every nested id
func CollectIDs(u Unit) []string {
	ids := []string{u.ID()}
	if bp, ok := u.(*Blueprint); ok {
		for _, l := range bp.lines {
			ids = append(ids, l.id)
		}
	}
	return ids
}
