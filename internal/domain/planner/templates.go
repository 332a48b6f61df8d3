package planner

import (
	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// CreateTemplate adds a new template to the library
func (e *Engine) CreateTemplate(def production.BlueprintDefinition) (*blueprint.Template, error) {
	id, err := e.newID()
	if err != nil {
		return nil, err
	}
	t, err := blueprint.NewTemplate(id, def, e.cat, e.clock)
	if err != nil {
		return nil, err
	}
	e.templates.Insert(t)
	return t, nil
}

// SaveTemplateAsNewVersion stores def as a new template derived from templateID. The
// source template is not modified and stays in the library until deleted.
func (e *Engine) SaveTemplateAsNewVersion(templateID string, def production.BlueprintDefinition) (*blueprint.Template, error) {
	src, err := e.Template(templateID)
	if err != nil {
		return nil, err
	}
	id, err := e.newID()
	if err != nil {
		return nil, err
	}
	next, err := src.NewVersion(id, def, e.cat, e.clock)
	if err != nil {
		return nil, err
	}
	e.templates.Insert(next)
	return next, nil
}

// DeleteTemplate removes a template from the library. Units already instantiated from
// it are unaffected.
func (e *Engine) DeleteTemplate(id string) error {
	if !e.templates.Remove(id) {
		return shared.NewNotFoundError("template", id)
	}
	return nil
}

// Template returns the library template with the given id
func (e *Engine) Template(id string) (*blueprint.Template, error) {
	t, ok := e.templates.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("template", id)
	}
	return t, nil
}

// Templates returns the library in creation order
func (e *Engine) Templates() []*blueprint.Template {
	return e.templates.List()
}

// InstantiateTemplate deep-copies a template into a factory as a new blueprint unit
// with every id regenerated. A non-empty nameOverride renames the new unit.
func (e *Engine) InstantiateTemplate(templateID, factoryID, nameOverride string) (production.Unit, error) {
	t, err := e.Template(templateID)
	if err != nil {
		return nil, err
	}
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	u, err := t.Instantiate(e.ids, nameOverride, e.cat)
	if err != nil {
		return nil, err
	}
	if err := f.RestoreUnit(u); err != nil {
		return nil, err
	}
	return u, nil
}

// CaptureTemplate snapshots a placed unit into a new library template. A non-empty
// name replaces the unit's name on the template.
func (e *Engine) CaptureTemplate(factoryID, unitID, name string) (*blueprint.Template, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	u, err := f.Unit(unitID)
	if err != nil {
		return nil, err
	}
	def, err := blueprint.DefinitionFromUnit(u)
	if err != nil {
		return nil, err
	}
	if name != "" {
		def.Name = name
	}
	return e.CreateTemplate(def)
}

// ExportTemplate writes one template in the self-contained transfer format
func (e *Engine) ExportTemplate(id string) ([]byte, error) {
	t, err := e.Template(id)
	if err != nil {
		return nil, err
	}
	return blueprint.EncodeTemplate(t)
}

// ImportTemplate reads a transfer document into a new library template with a fresh id
func (e *Engine) ImportTemplate(data []byte) (*blueprint.Template, error) {
	def, err := blueprint.DecodeTemplateDefinition(data, e.cat)
	if err != nil {
		return nil, err
	}
	return e.CreateTemplate(def)
}

// ExportUnit writes one production unit tree in the transfer format
func (e *Engine) ExportUnit(factoryID, unitID string) ([]byte, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	u, err := f.Unit(unitID)
	if err != nil {
		return nil, err
	}
	return blueprint.EncodeDefinition(u.Definition())
}

// ImportUnit reads a transfer document into factoryID with every id regenerated
func (e *Engine) ImportUnit(factoryID string, data []byte) (production.Unit, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	def, err := blueprint.DecodeDefinition(data, e.cat)
	if err != nil {
		return nil, err
	}
	return f.AddUnit(def, e.ids, e.cat)
}

// AddTemplate places an existing template (for example one loaded from a shared
// library) into this plan's library, keeping its id
func (e *Engine) AddTemplate(t *blueprint.Template) error {
	if t == nil {
		return shared.NewInvalidConfigurationError("template", "cannot be nil")
	}
	if e.factories.Has(t.ID()) || e.links.Has(t.ID()) || e.templates.Has(t.ID()) {
		return shared.NewConflictError("template id already in use", t.ID())
	}
	e.templates.Insert(t)
	return nil
}
