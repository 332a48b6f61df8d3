// Package factory holds the Factory aggregate: the sole owner and mutator of its
// production units, raw inputs and generators.
package factory

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// Factory owns a set of production units, raw inputs and generators.
//
// Every id inside a factory (including nested blueprint line ids) is unique
// across all three collections.
type Factory struct {
	id          string
	name        string
	description string
	notes       string

	units      *shared.Collection[production.Unit]
	rawInputs  *shared.Collection[extraction.RawInput]
	generators *shared.Collection[*power.Generator]

	owned map[string]string // id -> owning entity id
}

// NewFactory creates an empty factory
func NewFactory(id, name, description, notes string) (*Factory, error) {
	if err := shared.ValidateID("factory.id", id); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewInvalidConfigurationError("factory.name", "cannot be empty")
	}

	return &Factory{
		id:          id,
		name:        name,
		description: description,
		notes:       notes,
		units:       shared.NewCollection[production.Unit](),
		rawInputs:   shared.NewCollection[extraction.RawInput](),
		generators:  shared.NewCollection[*power.Generator](),
		owned:       make(map[string]string),
	}, nil
}

func (f *Factory) ID() string          { return f.id }
func (f *Factory) Name() string        { return f.name }
func (f *Factory) Description() string { return f.description }
func (f *Factory) Notes() string       { return f.notes }

// UpdateDetails replaces the factory's descriptive fields
func (f *Factory) UpdateDetails(name, description, notes string) error {
	if name == "" {
		return shared.NewInvalidConfigurationError("factory.name", "cannot be empty")
	}
	f.name = name
	f.description = description
	f.notes = notes
	return nil
}

// Units returns the production units in insertion order
func (f *Factory) Units() []production.Unit { return f.units.List() }

// RawInputs returns the raw inputs in insertion order
func (f *Factory) RawInputs() []extraction.RawInput { return f.rawInputs.List() }

// Generators returns the generator clusters in insertion order
func (f *Factory) Generators() []*power.Generator { return f.generators.List() }

// IsEmpty reports whether the factory owns nothing
func (f *Factory) IsEmpty() bool {
	return f.units.Len() == 0 && f.rawInputs.Len() == 0 && f.generators.Len() == 0
}

// Unit returns the production unit with the given id
func (f *Factory) Unit(id string) (production.Unit, error) {
	u, ok := f.units.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("production unit", id)
	}
	return u, nil
}

// AddUnit builds def with a fresh id and inserts it
func (f *Factory) AddUnit(def production.Definition, ids shared.IDGenerator, cat *catalog.Catalog) (production.Unit, error) {
	u, err := production.Build(ids.NewID(), def, ids, cat)
	if err != nil {
		return nil, err
	}
	if err := f.claim(production.CollectIDs(u)); err != nil {
		return nil, err
	}
	f.units.Insert(u)
	return u, nil
}

// UpdateUnit replaces the configuration of unit id, keeping the id
func (f *Factory) UpdateUnit(id string, def production.Definition, ids shared.IDGenerator, cat *catalog.Catalog) (production.Unit, error) {
	prev, ok := f.units.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("production unit", id)
	}

	u, err := production.Rebuild(id, prev, def, ids, cat)
	if err != nil {
		return nil, err
	}

	oldIDs := production.CollectIDs(prev)
	f.release(oldIDs)
	if err := f.claim(production.CollectIDs(u)); err != nil {
		f.mustClaim(oldIDs)
		return nil, err
	}
	f.units.Replace(u)
	return u, nil
}

// RemoveUnit deletes unit id. A missing id is a NotFoundError, not a silent success.
func (f *Factory) RemoveUnit(id string) error {
	u, ok := f.units.Get(id)
	if !ok {
		return shared.NewNotFoundError("production unit", id)
	}
	f.units.Remove(id)
	f.release(production.CollectIDs(u))
	return nil
}

// RestoreUnit inserts an already built unit, keeping all of its ids
func (f *Factory) RestoreUnit(u production.Unit) error {
	if u == nil {
		return shared.NewInvalidConfigurationError("production_unit", "cannot be nil")
	}
	if err := f.claim(production.CollectIDs(u)); err != nil {
		return err
	}
	f.units.Insert(u)
	return nil
}

// RawInput returns the raw input with the given id
func (f *Factory) RawInput(id string) (extraction.RawInput, error) {
	r, ok := f.rawInputs.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("raw input", id)
	}
	return r, nil
}

// AddRawInput builds def with a fresh id and inserts it
func (f *Factory) AddRawInput(def extraction.Definition, ids shared.IDGenerator, cat *catalog.Catalog) (extraction.RawInput, error) {
	r, err := extraction.Build(ids.NewID(), def, cat)
	if err != nil {
		return nil, err
	}
	if err := f.RestoreRawInput(r); err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateRawInput replaces the configuration of raw input id, keeping the id
func (f *Factory) UpdateRawInput(id string, def extraction.Definition, cat *catalog.Catalog) (extraction.RawInput, error) {
	if _, ok := f.rawInputs.Get(id); !ok {
		return nil, shared.NewNotFoundError("raw input", id)
	}
	r, err := extraction.Build(id, def, cat)
	if err != nil {
		return nil, err
	}
	f.rawInputs.Replace(r)
	return r, nil
}

// RemoveRawInput deletes raw input id
func (f *Factory) RemoveRawInput(id string) error {
	if !f.rawInputs.Remove(id) {
		return shared.NewNotFoundError("raw input", id)
	}
	f.release([]string{id})
	return nil
}

// RestoreRawInput inserts an already built raw input, keeping its id
func (f *Factory) RestoreRawInput(r extraction.RawInput) error {
	if r == nil {
		return shared.NewInvalidConfigurationError("raw_input", "cannot be nil")
	}
	if err := f.claim([]string{r.ID()}); err != nil {
		return err
	}
	f.rawInputs.Insert(r)
	return nil
}

// Generator returns the generator cluster with the given id
func (f *Factory) Generator(id string) (*power.Generator, error) {
	g, ok := f.generators.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("generator", id)
	}
	return g, nil
}

// AddGenerator builds def with a fresh id and inserts it
func (f *Factory) AddGenerator(def power.GeneratorDefinition, ids shared.IDGenerator, cat *catalog.Catalog) (*power.Generator, error) {
	g, err := power.NewGenerator(ids.NewID(), def, cat)
	if err != nil {
		return nil, err
	}
	if err := f.RestoreGenerator(g); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGenerator replaces the configuration of generator id, keeping the id
func (f *Factory) UpdateGenerator(id string, def power.GeneratorDefinition, cat *catalog.Catalog) (*power.Generator, error) {
	if _, ok := f.generators.Get(id); !ok {
		return nil, shared.NewNotFoundError("generator", id)
	}
	g, err := power.NewGenerator(id, def, cat)
	if err != nil {
		return nil, err
	}
	f.generators.Replace(g)
	return g, nil
}

// RemoveGenerator deletes generator id
func (f *Factory) RemoveGenerator(id string) error {
	if !f.generators.Remove(id) {
		return shared.NewNotFoundError("generator", id)
	}
	f.release([]string{id})
	return nil
}

// RestoreGenerator inserts an already built generator, keeping its id
func (f *Factory) RestoreGenerator(g *power.Generator) error {
	if g == nil {
		return shared.NewInvalidConfigurationError("generator", "cannot be nil")
	}
	if err := f.claim([]string{g.ID()}); err != nil {
		return err
	}
	f.generators.Insert(g)
	return nil
}

// claim reserves ids for one entity, all or nothing
func (f *Factory) claim(ids []string) error {
	var taken []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, exists := f.owned[id]; exists || seen[id] || id == f.id {
			taken = append(taken, id)
		}
		seen[id] = true
	}
	if len(taken) > 0 {
		return shared.NewConflictError(fmt.Sprintf("id already in use in factory %s", f.id), taken...)
	}
	f.mustClaim(ids)
	return nil
}

func (f *Factory) mustClaim(ids []string) {
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		f.owned[id] = ids[0]
	}
}

func (f *Factory) release(ids []string) {
	for _, id := range ids {
		delete(f.owned, id)
	}
}

func (f *Factory) String() string {
	return fmt.Sprintf("Factory[%s, name=%s, units=%d, raw_inputs=%d, generators=%d]",
		f.id, f.name, f.units.Len(), f.rawInputs.Len(), f.generators.Len())
}
