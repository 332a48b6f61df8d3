package extraction

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// ResourceWellSystem is one pressurizer driving satellite extractors on a shared item.
// The pressurizer clock governs the extraction rate of the whole system.
type ResourceWellSystem struct {
	id        string
	item      catalog.Item
	overclock float64
	nodes     []WellNode
}

// NewResourceWellSystem validates def and builds the system. At least one node is required.
func NewResourceWellSystem(id string, def ResourceWellDefinition, cat *catalog.Catalog) (*ResourceWellSystem, error) {
	if err := shared.ValidateID("raw_input.id", id); err != nil {
		return nil, err
	}
	if !cat.HasItem(def.Item) {
		return nil, shared.NewInvalidConfigurationError("item", fmt.Sprintf("unknown item: %s", def.Item))
	}
	if !cat.ResourceWellItem(def.Item) {
		return nil, shared.NewInvalidConfigurationError("item", fmt.Sprintf("%s cannot be drawn from a resource well", def.Item))
	}
	if err := formula.ValidateOverclock(def.PressurizerOverclockPercent); err != nil {
		return nil, err
	}
	if len(def.Nodes) == 0 {
		return nil, shared.NewInvalidConfigurationError("extractors", "resource well system needs at least one extractor node")
	}
	for i, n := range def.Nodes {
		if _, err := formula.PurityMultiplier(n.Purity); err != nil {
			return nil, fmt.Errorf("extractor node %d: %w", i, err)
		}
	}

	return &ResourceWellSystem{
		id:        id,
		item:      def.Item,
		overclock: def.PressurizerOverclockPercent,
		nodes:     append([]WellNode(nil), def.Nodes...),
	}, nil
}

func (w *ResourceWellSystem) ID() string                     { return w.id }
func (w *ResourceWellSystem) Kind() Kind                     { return KindResourceWell }
func (w *ResourceWellSystem) Item() catalog.Item             { return w.item }
func (w *ResourceWellSystem) PressurizerOverclock() float64 { return w.overclock }
func (w *ResourceWellSystem) sealed()                        {}

// Nodes returns a copy of the satellite nodes
func (w *ResourceWellSystem) Nodes() []WellNode {
	return append([]WellNode(nil), w.nodes...)
}

// PowerConsumption is the pressurizer draw; satellite nodes draw nothing
func (w *ResourceWellSystem) PowerConsumption() float64 {
	return catalog.ResourceWellPressurizerPowerMW * formula.MustOverclockMultiplier(w.overclock)
}

// OutputRate sums purity-weighted node rates, then applies the pressurizer multiplier
func (w *ResourceWellSystem) OutputRate() float64 {
	total := 0.0
	for _, n := range w.nodes {
		total += catalog.ResourceWellNodeRate * formula.MustPurityMultiplier(n.Purity)
	}
	return total * formula.MustOverclockMultiplier(w.overclock)
}

func (w *ResourceWellSystem) OutputRates() catalog.Rates {
	return catalog.Rates{w.item: w.OutputRate()}
}

func (w *ResourceWellSystem) Definition() Definition {
	return ResourceWellDefinition{
		Item:                        w.item,
		PressurizerOverclockPercent: w.overclock,
		Nodes:                       w.Nodes(),
	}
}
