// Package extraction models raw resource inputs: single extractors on one node and
// pressurized resource-well systems.
package extraction

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// Kind discriminates the two raw input variants
type Kind string

const (
	KindExtractor    Kind = "extractor"
	KindResourceWell Kind = "resource_well"
)

// RawInput is a source of items with no input side. The only implementations are
// *SingleExtractor and *ResourceWellSystem.
type RawInput interface {
	ID() string
	Kind() Kind
	Item() catalog.Item
	PowerConsumption() float64
	OutputRate() float64
	OutputRates() catalog.Rates
	Definition() Definition
	sealed()
}

// Definition is a raw input configuration without identity
type Definition interface {
	Kind() Kind
	sealedDefinition()
}

// ExtractorDefinition configures a single extractor. A nil overclock means 100%.
type ExtractorDefinition struct {
	Extractor        catalog.ExtractorID `json:"extractor_type"`
	Item             catalog.Item        `json:"item"`
	Purity           formula.Purity      `json:"purity"`
	OverclockPercent *float64            `json:"overclock_percent,omitempty"`
}

func (ExtractorDefinition) Kind() Kind         { return KindExtractor }
func (ExtractorDefinition) sealedDefinition() {}

// WellNode is one satellite extractor of a resource well
type WellNode struct {
	Purity formula.Purity `json:"purity"`
}

// ResourceWellDefinition configures a pressurizer and its satellite nodes
type ResourceWellDefinition struct {
	Item                        catalog.Item `json:"item"`
	PressurizerOverclockPercent float64      `json:"pressurizer_overclock_percent"`
	Nodes                       []WellNode   `json:"extractors"`
}

func (ResourceWellDefinition) Kind() Kind         { return KindResourceWell }
func (ResourceWellDefinition) sealedDefinition() {}

// Build constructs a raw input with the given id
func Build(id string, def Definition, cat *catalog.Catalog) (RawInput, error) {
	switch d := def.(type) {
	case ExtractorDefinition:
		return NewSingleExtractor(id, d, cat)
	case ResourceWellDefinition:
		return NewResourceWellSystem(id, d, cat)
	case nil:
		return nil, shared.NewInvalidConfigurationError("definition", "cannot be nil")
	default:
		return nil, shared.NewInvalidConfigurationError("definition", fmt.Sprintf("unsupported raw input kind %T", def))
	}
}

// SingleExtractor works one resource node
type SingleExtractor struct {
	id        string
	extractor catalog.ExtractorType
	item      catalog.Item
	purity    formula.Purity
	overclock *float64
}

// NewSingleExtractor validates def and builds a single extractor
func NewSingleExtractor(id string, def ExtractorDefinition, cat *catalog.Catalog) (*SingleExtractor, error) {
	if err := shared.ValidateID("raw_input.id", id); err != nil {
		return nil, err
	}

	ext, ok := cat.Extractor(def.Extractor)
	if !ok {
		return nil, shared.NewInvalidConfigurationError("extractor_type", fmt.Sprintf("unknown extractor type: %s", def.Extractor))
	}
	if !cat.HasItem(def.Item) {
		return nil, shared.NewInvalidConfigurationError("item", fmt.Sprintf("unknown item: %s", def.Item))
	}
	if !ext.Extracts(def.Item) {
		return nil, shared.NewInvalidConfigurationError("item", fmt.Sprintf("%s cannot extract %s", ext.Name, def.Item))
	}
	if _, err := formula.PurityMultiplier(def.Purity); err != nil {
		return nil, err
	}

	var oc *float64
	if def.OverclockPercent != nil {
		if err := formula.ValidateOverclock(*def.OverclockPercent); err != nil {
			return nil, err
		}
		v := *def.OverclockPercent
		oc = &v
	}

	return &SingleExtractor{
		id:        id,
		extractor: ext,
		item:      def.Item,
		purity:    def.Purity,
		overclock: oc,
	}, nil
}

func (e *SingleExtractor) ID() string                       { return e.id }
func (e *SingleExtractor) Kind() Kind                       { return KindExtractor }
func (e *SingleExtractor) Item() catalog.Item               { return e.item }
func (e *SingleExtractor) Purity() formula.Purity           { return e.purity }
func (e *SingleExtractor) Extractor() catalog.ExtractorType { return e.extractor }
func (e *SingleExtractor) sealed()                          {}

// OverclockPercent returns the effective clock speed (100 when unset)
func (e *SingleExtractor) OverclockPercent() float64 {
	if e.overclock == nil {
		return formula.NominalOverclockPercent
	}
	return *e.overclock
}

// PowerConsumption is base power * overclock multiplier
func (e *SingleExtractor) PowerConsumption() float64 {
	return e.extractor.BasePowerMW * formula.MustOverclockMultiplier(e.OverclockPercent())
}

// OutputRate is base rate * purity multiplier * overclock multiplier
func (e *SingleExtractor) OutputRate() float64 {
	return e.extractor.BaseRate *
		formula.MustPurityMultiplier(e.purity) *
		formula.MustOverclockMultiplier(e.OverclockPercent())
}

func (e *SingleExtractor) OutputRates() catalog.Rates {
	return catalog.Rates{e.item: e.OutputRate()}
}

func (e *SingleExtractor) Definition() Definition {
	def := ExtractorDefinition{
		Extractor: e.extractor.ID,
		Item:      e.item,
		Purity:    e.purity,
	}
	if e.overclock != nil {
		v := *e.overclock
		def.OverclockPercent = &v
	}
	return def
}
