// Package blueprint holds the template library entity. Templates are never edited in
// place: a new version is a new template with its own id.
package blueprint

import (
	"fmt"
	"time"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// Template is a reusable blueprint definition held in the library
type Template struct {
	id          string
	definition  production.BlueprintDefinition
	derivedFrom string
	createdAt   time.Time
}

// NewTemplate validates def against the catalog and creates a template
func NewTemplate(id string, def production.BlueprintDefinition, cat *catalog.Catalog, clock shared.Clock) (*Template, error) {
	if err := shared.ValidateID("template.id", id); err != nil {
		return nil, err
	}
	if err := production.Validate(def, cat); err != nil {
		return nil, err
	}
	return &Template{
		id:         id,
		definition: production.CopyBlueprintDefinition(def),
		createdAt:  clock.Now(),
	}, nil
}

// NewVersion creates a new template from def that records t as its predecessor.
// t itself is left untouched.
func (t *Template) NewVersion(id string, def production.BlueprintDefinition, cat *catalog.Catalog, clock shared.Clock) (*Template, error) {
	next, err := NewTemplate(id, def, cat, clock)
	if err != nil {
		return nil, err
	}
	if next.id == t.id {
		return nil, shared.NewConflictError("new template version must have a new id", t.id)
	}
	next.derivedFrom = t.id
	return next, nil
}

// ReconstructTemplate rebuilds a template from persisted state
func ReconstructTemplate(id string, def production.BlueprintDefinition, derivedFrom string, createdAt time.Time, cat *catalog.Catalog) (*Template, error) {
	if err := shared.ValidateID("template.id", id); err != nil {
		return nil, err
	}
	if err := production.Validate(def, cat); err != nil {
		return nil, err
	}
	return &Template{
		id:          id,
		definition:  production.CopyBlueprintDefinition(def),
		derivedFrom: derivedFrom,
		createdAt:   createdAt,
	}, nil
}

func (t *Template) ID() string           { return t.id }
func (t *Template) Name() string         { return t.definition.Name }
func (t *Template) Description() string  { return t.definition.Description }
func (t *Template) DerivedFrom() string  { return t.derivedFrom }
func (t *Template) CreatedAt() time.Time { return t.createdAt }
func (t *Template) LineCount() int       { return len(t.definition.Lines) }

// Definition returns a deep copy of the template contents
func (t *Template) Definition() production.BlueprintDefinition {
	return production.CopyBlueprintDefinition(t.definition)
}

// Instantiate builds a new blueprint unit from the template. Every id in the result
// is drawn from ids; a non-empty nameOverride replaces the template name.
func (t *Template) Instantiate(ids shared.IDGenerator, nameOverride string, cat *catalog.Catalog) (production.Unit, error) {
	var def production.Definition = t.Definition()
	if nameOverride != "" {
		def = production.WithName(def, nameOverride)
	}
	return production.Build(ids.NewID(), def, ids, cat)
}

// DefinitionFromUnit turns a placed unit into a blueprint definition suitable for a
// template. A recipe line becomes a one-line blueprint.
func DefinitionFromUnit(u production.Unit) (production.BlueprintDefinition, error) {
	switch def := u.Definition().(type) {
	case production.BlueprintDefinition:
		return def, nil
	case production.RecipeLineDefinition:
		return production.BlueprintDefinition{
			Name:        def.Name,
			Description: def.Description,
			Lines:       []production.RecipeLineDefinition{def},
		}, nil
	default:
		return production.BlueprintDefinition{}, shared.NewInvalidConfigurationError("unit", fmt.Sprintf("unsupported unit kind %s", u.Kind()))
	}
}

func (t *Template) String() string {
	return fmt.Sprintf("Template[%s, name=%s, lines=%d]", t.id, t.definition.Name, len(t.definition.Lines))
}
