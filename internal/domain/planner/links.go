package planner

import (
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// checkEndpoints rejects links whose factories are missing. It runs after
// logistics.NewLink, so both ids are set and distinct.
func (e *Engine) checkEndpoints(def logistics.LinkDefinition) error {
	if !e.factories.Has(def.SourceFactoryID) {
		return &shared.DanglingReferenceError{Role: "source", FactoryID: def.SourceFactoryID}
	}
	if !e.factories.Has(def.DestinationFactoryID) {
		return &shared.DanglingReferenceError{Role: "destination", FactoryID: def.DestinationFactoryID}
	}
	return nil
}

// CreateLink adds a logistics link between two existing, distinct factories
func (e *Engine) CreateLink(def logistics.LinkDefinition) (*logistics.Link, error) {
	id, err := e.newID()
	if err != nil {
		return nil, err
	}
	link, err := logistics.NewLink(id, def, e.cat)
	if err != nil {
		return nil, err
	}
	if err := e.checkEndpoints(def); err != nil {
		return nil, err
	}
	e.links.Insert(link)
	return link, nil
}

// UpdateLink replaces the configuration of link id, keeping the id
func (e *Engine) UpdateLink(id string, def logistics.LinkDefinition) (*logistics.Link, error) {
	if !e.links.Has(id) {
		return nil, shared.NewNotFoundError("logistics link", id)
	}
	link, err := logistics.NewLink(id, def, e.cat)
	if err != nil {
		return nil, err
	}
	if err := e.checkEndpoints(def); err != nil {
		return nil, err
	}
	e.links.Replace(link)
	return link, nil
}

// DeleteLink removes link id
func (e *Engine) DeleteLink(id string) error {
	if !e.links.Remove(id) {
		return shared.NewNotFoundError("logistics link", id)
	}
	return nil
}

// Link returns the link with the given id
func (e *Engine) Link(id string) (*logistics.Link, error) {
	l, ok := e.links.Get(id)
	if !ok {
		return nil, shared.NewNotFoundError("logistics link", id)
	}
	return l, nil
}

// Links returns every link in creation order
func (e *Engine) Links() []*logistics.Link {
	return e.links.List()
}

// LinksForFactory returns the links that start or end at factoryID
func (e *Engine) LinksForFactory(factoryID string) ([]*logistics.Link, error) {
	if !e.factories.Has(factoryID) {
		return nil, shared.NewNotFoundError("factory", factoryID)
	}
	var out []*logistics.Link
	for _, l := range e.links.List() {
		if l.Touches(factoryID) {
			out = append(out, l)
		}
	}
	return out, nil
}
