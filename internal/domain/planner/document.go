package planner

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/factory"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// Document is the persisted shape of a whole plan. Every identifier is stored, so a
// round trip reproduces the plan exactly.
type Document struct {
	Factories          map[string]FactoryRecord  `json:"factories"`
	Logistics          []LinkRecord              `json:"logistics"`
	BlueprintTemplates map[string]TemplateRecord `json:"blueprint_templates,omitempty"`
}

type FactoryRecord struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	ProductionUnits []UnitRecord      `json:"production_units"`
	RawInputs       []RawInputRecord  `json:"raw_inputs"`
	PowerGenerators []GeneratorRecord `json:"power_generators"`
}

type UnitRecord struct {
	ID            string                    `json:"id"`
	Kind          production.Kind           `json:"kind"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description,omitempty"`
	Recipe        catalog.RecipeID          `json:"recipe,omitempty"`
	MachineGroups []production.MachineGroup `json:"machine_groups,omitempty"`
	Lines         []LineRecord              `json:"lines,omitempty"`
}

type LineRecord struct {
	ID string `json:"id"`
	production.RecipeLineDefinition
}

type RawInputRecord struct {
	ID           string                             `json:"id"`
	Kind         extraction.Kind                    `json:"kind"`
	Extractor    *extraction.ExtractorDefinition    `json:"extractor,omitempty"`
	ResourceWell *extraction.ResourceWellDefinition `json:"resource_well,omitempty"`
}

type GeneratorRecord struct {
	ID string `json:"id"`
	power.GeneratorDefinition
}

type LinkRecord struct {
	ID                   string             `json:"id"`
	SourceFactoryID      string             `json:"source_factory_id"`
	DestinationFactoryID string             `json:"destination_factory_id"`
	Flows                []catalog.ItemRate `json:"flows"`
	Transport            json.RawMessage    `json:"transport"`
}

type TemplateRecord struct {
	ID string `json:"id"`
	production.BlueprintDefinition
	DerivedFrom string    `json:"derived_from,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot captures the engine state as a Document
func (e *Engine) Snapshot() (Document, error) {
	doc := Document{
		Factories:          make(map[string]FactoryRecord, e.factories.Len()),
		Logistics:          make([]LinkRecord, 0, e.links.Len()),
		BlueprintTemplates: make(map[string]TemplateRecord, e.templates.Len()),
	}

	for _, f := range e.factories.List() {
		doc.Factories[f.ID()] = factoryToRecord(f)
	}
	for _, l := range e.links.List() {
		rec, err := linkToRecord(l)
		if err != nil {
			return Document{}, err
		}
		doc.Logistics = append(doc.Logistics, rec)
	}
	for _, t := range e.templates.List() {
		doc.BlueprintTemplates[t.ID()] = TemplateRecord{
			ID:                  t.ID(),
			BlueprintDefinition: t.Definition(),
			DerivedFrom:         t.DerivedFrom(),
			CreatedAt:           t.CreatedAt(),
		}
	}
	return doc, nil
}

// Export serializes the whole plan
func (e *Engine) Export() ([]byte, error) {
	doc, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeDocument parses a persisted plan without validating it
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, shared.NewSerializationError("malformed plan document", err)
	}
	return doc, nil
}

// Import replaces the engine's contents with a serialized plan. Nothing changes unless
// the whole document is valid; any problem is a SerializationError.
func (e *Engine) Import(data []byte) error {
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	return e.Restore(doc)
}

// Restore replaces the engine's contents with doc, keeping every identifier
func (e *Engine) Restore(doc Document) error {
	factories := shared.NewCollection[*factory.Factory]()
	links := shared.NewCollection[*logistics.Link]()
	templates := shared.NewCollection[*blueprint.Template]()
	seen := make(map[string]string)

	claim := func(kind, id string) error {
		if prev, dup := seen[id]; dup {
			return shared.NewSerializationError(fmt.Sprintf("%s id %s already used by a %s", kind, id, prev), nil)
		}
		seen[id] = kind
		return nil
	}

	for _, key := range sortedKeys(doc.Factories) {
		rec := doc.Factories[key]
		if err := checkKey("factory", key, &rec.ID); err != nil {
			return err
		}
		if err := claim("factory", rec.ID); err != nil {
			return err
		}
		f, err := e.factoryFromRecord(rec)
		if err != nil {
			return shared.NewSerializationError(fmt.Sprintf("factory %s", key), err)
		}
		factories.Insert(f)
	}

	for i, rec := range doc.Logistics {
		if err := claim("logistics link", rec.ID); err != nil {
			return err
		}
		l, err := e.linkFromRecord(rec)
		if err != nil {
			return shared.NewSerializationError(fmt.Sprintf("logistics link %d", i), err)
		}
		if !factories.Has(l.SourceFactoryID()) {
			return shared.NewSerializationError(fmt.Sprintf("logistics link %s", l.ID()),
				&shared.DanglingReferenceError{Role: "source", FactoryID: l.SourceFactoryID()})
		}
		if !factories.Has(l.DestinationFactoryID()) {
			return shared.NewSerializationError(fmt.Sprintf("logistics link %s", l.ID()),
				&shared.DanglingReferenceError{Role: "destination", FactoryID: l.DestinationFactoryID()})
		}
		links.Insert(l)
	}

	restored := make([]*blueprint.Template, 0, len(doc.BlueprintTemplates))
	for _, key := range sortedKeys(doc.BlueprintTemplates) {
		rec := doc.BlueprintTemplates[key]
		if err := checkKey("template", key, &rec.ID); err != nil {
			return err
		}
		if err := claim("template", rec.ID); err != nil {
			return err
		}
		t, err := blueprint.ReconstructTemplate(rec.ID, rec.BlueprintDefinition, rec.DerivedFrom, rec.CreatedAt, e.cat)
		if err != nil {
			return shared.NewSerializationError(fmt.Sprintf("template %s", key), err)
		}
		restored = append(restored, t)
	}
	sort.SliceStable(restored, func(i, j int) bool {
		return restored[i].CreatedAt().Before(restored[j].CreatedAt())
	})
	for _, t := range restored {
		templates.Insert(t)
	}

	e.factories = factories
	e.links = links
	e.templates = templates
	e.observeIDs()
	return nil
}

// observeIDs reports every restored id to generators that track them
func (e *Engine) observeIDs() {
	obs, ok := e.ids.(shared.IDObserver)
	if !ok {
		return
	}
	for _, f := range e.factories.List() {
		obs.Observe(f.ID())
		for _, u := range f.Units() {
			obs.Observe(u.ID())
			if b, ok := u.(*production.Blueprint); ok {
				for _, l := range b.Lines() {
					obs.Observe(l.ID())
				}
			}
		}
		for _, r := range f.RawInputs() {
			obs.Observe(r.ID())
		}
		for _, g := range f.Generators() {
			obs.Observe(g.ID())
		}
	}
	for _, l := range e.links.List() {
		obs.Observe(l.ID())
	}
	for _, t := range e.templates.List() {
		obs.Observe(t.ID())
	}
}

func checkKey(kind, key string, id *string) error {
	if *id == "" {
		*id = key
	}
	if *id != key {
		return shared.NewSerializationError(fmt.Sprintf("%s stored under key %s has id %s", kind, key, *id), nil)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func factoryToRecord(f *factory.Factory) FactoryRecord {
	rec := FactoryRecord{
		ID:              f.ID(),
		Name:            f.Name(),
		Description:     f.Description(),
		Notes:           f.Notes(),
		ProductionUnits: []UnitRecord{},
		RawInputs:       []RawInputRecord{},
		PowerGenerators: []GeneratorRecord{},
	}

	for _, u := range f.Units() {
		rec.ProductionUnits = append(rec.ProductionUnits, unitToRecord(u))
	}
	for _, r := range f.RawInputs() {
		ri := RawInputRecord{ID: r.ID(), Kind: r.Kind()}
		switch d := r.Definition().(type) {
		case extraction.ExtractorDefinition:
			ri.Extractor = &d
		case extraction.ResourceWellDefinition:
			ri.ResourceWell = &d
		}
		rec.RawInputs = append(rec.RawInputs, ri)
	}
	for _, g := range f.Generators() {
		rec.PowerGenerators = append(rec.PowerGenerators, GeneratorRecord{ID: g.ID(), GeneratorDefinition: g.Definition()})
	}
	return rec
}

func unitToRecord(u production.Unit) UnitRecord {
	rec := UnitRecord{ID: u.ID(), Kind: u.Kind(), Name: u.Name(), Description: u.Description()}
	switch v := u.(type) {
	case *production.RecipeLine:
		rec.Recipe = v.Recipe().ID
		rec.MachineGroups = v.MachineGroups()
	case *production.Blueprint:
		rec.Lines = []LineRecord{}
		for _, l := range v.Lines() {
			rec.Lines = append(rec.Lines, LineRecord{
				ID:                   l.ID(),
				RecipeLineDefinition: l.Definition().(production.RecipeLineDefinition),
			})
		}
	}
	return rec
}

func linkToRecord(l *logistics.Link) (LinkRecord, error) {
	transport, err := logistics.MarshalTransport(l.Transport())
	if err != nil {
		return LinkRecord{}, err
	}
	return LinkRecord{
		ID:                   l.ID(),
		SourceFactoryID:      l.SourceFactoryID(),
		DestinationFactoryID: l.DestinationFactoryID(),
		Flows:                l.Flows(),
		Transport:            transport,
	}, nil
}

func (e *Engine) factoryFromRecord(rec FactoryRecord) (*factory.Factory, error) {
	f, err := factory.NewFactory(rec.ID, rec.Name, rec.Description, rec.Notes)
	if err != nil {
		return nil, err
	}

	for _, ur := range rec.ProductionUnits {
		u, err := e.unitFromRecord(ur)
		if err != nil {
			return nil, fmt.Errorf("production unit %s: %w", ur.ID, err)
		}
		if err := f.RestoreUnit(u); err != nil {
			return nil, err
		}
	}

	for _, rr := range rec.RawInputs {
		var def extraction.Definition
		switch {
		case rr.Kind == extraction.KindExtractor && rr.Extractor != nil:
			def = *rr.Extractor
		case rr.Kind == extraction.KindResourceWell && rr.ResourceWell != nil:
			def = *rr.ResourceWell
		default:
			return nil, fmt.Errorf("raw input %s: kind %q does not match its payload", rr.ID, rr.Kind)
		}
		r, err := extraction.Build(rr.ID, def, e.cat)
		if err != nil {
			return nil, fmt.Errorf("raw input %s: %w", rr.ID, err)
		}
		if err := f.RestoreRawInput(r); err != nil {
			return nil, err
		}
	}

	for _, gr := range rec.PowerGenerators {
		g, err := power.NewGenerator(gr.ID, gr.GeneratorDefinition, e.cat)
		if err != nil {
			return nil, fmt.Errorf("generator %s: %w", gr.ID, err)
		}
		if err := f.RestoreGenerator(g); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (e *Engine) unitFromRecord(rec UnitRecord) (production.Unit, error) {
	switch rec.Kind {
	case production.KindRecipeLine:
		return production.NewRecipeLine(rec.ID, production.RecipeLineDefinition{
			Name:          rec.Name,
			Description:   rec.Description,
			Recipe:        rec.Recipe,
			MachineGroups: rec.MachineGroups,
		}, e.cat)
	case production.KindBlueprint:
		lines := make([]*production.RecipeLine, 0, len(rec.Lines))
		for _, lr := range rec.Lines {
			line, err := production.NewRecipeLine(lr.ID, lr.RecipeLineDefinition, e.cat)
			if err != nil {
				return nil, fmt.Errorf("line %s: %w", lr.ID, err)
			}
			lines = append(lines, line)
		}
		return production.NewBlueprint(rec.ID, rec.Name, rec.Description, lines)
	}
	return nil, fmt.Errorf("unknown unit kind %q", rec.Kind)
}

func (e *Engine) linkFromRecord(rec LinkRecord) (*logistics.Link, error) {
	var transport logistics.Transport
	if len(rec.Transport) > 0 && string(rec.Transport) != "null" {
		t, err := logistics.UnmarshalTransport(rec.Transport)
		if err != nil {
			return nil, err
		}
		transport = t
	}
	return logistics.NewLink(rec.ID, logistics.LinkDefinition{
		SourceFactoryID:      rec.SourceFactoryID,
		DestinationFactoryID: rec.DestinationFactoryID,
		Flows:                rec.Flows,
		Transport:            transport,
	}, e.cat)
}
