// Package planner is the engine orchestrator: it owns every factory, logistics link and
// library template of one plan and computes global balances over them.
//
// The engine is synchronous and performs no locking. Hosts that share an Engine between
// goroutines must serialize access themselves (single writer, many readers).
package planner

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/factory"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// DeletePolicy decides what happens to logistics links when a factory they touch is
// deleted
type DeletePolicy string

const (
	// DeletePolicyReject refuses to delete a factory that still has links
	DeletePolicyReject DeletePolicy = "reject"
	// DeletePolicyCascade deletes the factory's links along with it
	DeletePolicyCascade DeletePolicy = "cascade"
)

// ParseDeletePolicy accepts "reject" or "cascade"; empty means reject
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case "", DeletePolicyReject:
		return DeletePolicyReject, nil
	case DeletePolicyCascade:
		return DeletePolicyCascade, nil
	}
	return "", shared.NewInvalidConfigurationError("factory_delete_policy", fmt.Sprintf("unknown policy %q", s))
}

// Options configures an Engine. Zero values fall back to the built-in catalog, random
// UUIDs, the system clock and DeletePolicyReject.
type Options struct {
	Catalog      *catalog.Catalog
	IDs          shared.IDGenerator
	Clock        shared.Clock
	DeletePolicy DeletePolicy
}

// Engine is one plan: factories, links between them and the template library
type Engine struct {
	cat    *catalog.Catalog
	ids    shared.IDGenerator
	clock  shared.Clock
	policy DeletePolicy

	factories *shared.Collection[*factory.Factory]
	links     *shared.Collection[*logistics.Link]
	templates *shared.Collection[*blueprint.Template]
}

// NewEngine creates an empty plan
func NewEngine(opts Options) *Engine {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Builtin()
	}
	if opts.IDs == nil {
		opts.IDs = shared.NewUUIDGenerator()
	}
	if opts.Clock == nil {
		opts.Clock = shared.SystemClock{}
	}
	if opts.DeletePolicy == "" {
		opts.DeletePolicy = DeletePolicyReject
	}
	return &Engine{
		cat:       opts.Catalog,
		ids:       opts.IDs,
		clock:     opts.Clock,
		policy:    opts.DeletePolicy,
		factories: shared.NewCollection[*factory.Factory](),
		links:     shared.NewCollection[*logistics.Link](),
		templates: shared.NewCollection[*blueprint.Template](),
	}
}

func (e *Engine) Catalog() *catalog.Catalog  { return e.cat }
func (e *Engine) DeletePolicy() DeletePolicy { return e.policy }

// newID draws ids until one is unused by any engine-level collection
func (e *Engine) newID() (string, error) {
	for attempt := 0; attempt < 8; attempt++ {
		id := e.ids.NewID()
		if !e.factories.Has(id) && !e.links.Has(id) && !e.templates.Has(id) {
			return id, nil
		}
	}
	return "", shared.NewConflictError("id generator keeps returning ids that are already in use")
}

// CreateFactory adds an empty factory
func (e *Engine) CreateFactory(name, description, notes string) (*factory.Factory, error) {
	id, err := e.newID()
	if err != nil {
		return nil, err
	}
	f, err := factory.NewFactory(id, name, description, notes)
	if err != nil {
		return nil, err
	}
	e.factories.Insert(f)
	return f, nil
}

// UpdateFactory replaces a factory's name, description and notes
func (e *Engine) UpdateFactory(id, name, description, notes string) (*factory.Factory, error) {
	f, err := e.Factory(id)
	if err != nil {
		return nil, err
	}
	if err := f.UpdateDetails(name, description, notes); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFactory removes a factory and everything it owns. Links touching the factory
// are handled by the engine's DeletePolicy: reject returns a ConflictError naming them,
// cascade deletes them and returns their ids.
func (e *Engine) DeleteFactory(id string) ([]string, error) {
	if !e.factories.Has(id) {
		return nil, shared.NewNotFoundError("factory", id)
	}

	var touching []string
	for _, l := range e.links.List() {
		if l.Touches(id) {
			touching = append(touching, l.ID())
		}
	}

	if len(touching) > 0 && e.policy != DeletePolicyCascade {
		return nil, shared.NewConflictError(fmt.Sprintf("factory %s is referenced by logistics links", id), touching...)
	}
	for _, linkID := range touching {
		e.links.Remove(linkID)
	}
	e.factories.Remove(id)
	return touching, nil
}

// Factory returns the factory with the given id
func (e *Engine) Factory(id string) (*factory.Factory, error) {
	f, ok := e.factories.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("factory", id)
	}
	return f, nil
}

// Factories returns every factory in creation order
func (e *Engine) Factories() []*factory.Factory {
	return e.factories.List()
}

func (e *Engine) AddUnit(factoryID string, def production.Definition) (production.Unit, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	return f.AddUnit(def, e.ids, e.cat)
}

func (e *Engine) UpdateUnit(factoryID, unitID string, def production.Definition) (production.Unit, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	return f.UpdateUnit(unitID, def, e.ids, e.cat)
}

func (e *Engine) RemoveUnit(factoryID, unitID string) error {
	f, err := e.Factory(factoryID)
	if err != nil {
		return err
	}
	return f.RemoveUnit(unitID)
}

func (e *Engine) AddRawInput(factoryID string, def extraction.Definition) (extraction.RawInput, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	return f.AddRawInput(def, e.ids, e.cat)
}

func (e *Engine) UpdateRawInput(factoryID, rawInputID string, def extraction.Definition) (extraction.RawInput, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	return f.UpdateRawInput(rawInputID, def, e.cat)
}

func (e *Engine) RemoveRawInput(factoryID, rawInputID string) error {
	f, err := e.Factory(factoryID)
	if err != nil {
		return err
	}
	return f.RemoveRawInput(rawInputID)
}

func (e *Engine) AddGenerator(factoryID string, def power.GeneratorDefinition) (*power.Generator, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	return f.AddGenerator(def, e.ids, e.cat)
}

func (e *Engine) UpdateGenerator(factoryID, generatorID string, def power.GeneratorDefinition) (*power.Generator, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	return f.UpdateGenerator(generatorID, def, e.cat)
}

func (e *Engine) RemoveGenerator(factoryID, generatorID string) error {
	f, err := e.Factory(factoryID)
	if err != nil {
		return err
	}
	return f.RemoveGenerator(generatorID)
}
