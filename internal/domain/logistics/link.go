// Package logistics models directed item transfers between factories.
//
// Links reference factories by id only. Whether those ids exist is checked by the
// engine that owns both the factories and the links.
package logistics

import (
	"fmt"
	"math"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// LinkDefinition is the configuration of a link without identity
type LinkDefinition struct {
	SourceFactoryID      string
	DestinationFactoryID string
	Flows                []catalog.ItemRate
	Transport            Transport
}

// Link carries one or more item flows from a source factory to a destination factory
type Link struct {
	id            string
	sourceID      string
	destinationID string
	flows         []catalog.ItemRate
	transport     Transport
}

// NewLink validates def and builds a link. A link between a factory and itself is a
// SelfLoopError.
func NewLink(id string, def LinkDefinition, cat *catalog.Catalog) (*Link, error) {
	if err := shared.ValidateID("link.id", id); err != nil {
		return nil, err
	}
	if err := shared.ValidateID("link.source_factory_id", def.SourceFactoryID); err != nil {
		return nil, err
	}
	if err := shared.ValidateID("link.destination_factory_id", def.DestinationFactoryID); err != nil {
		return nil, err
	}
	if def.SourceFactoryID == def.DestinationFactoryID {
		return nil, &shared.SelfLoopError{FactoryID: def.SourceFactoryID}
	}
	if len(def.Flows) == 0 {
		return nil, shared.NewInvalidConfigurationError("link.flows", "at least one item flow is required")
	}

	seen := make(map[catalog.Item]bool, len(def.Flows))
	for _, fl := range def.Flows {
		if !cat.HasItem(fl.Item) {
			return nil, shared.NewInvalidConfigurationError("link.flows", fmt.Sprintf("unknown item: %s", fl.Item))
		}
		if !(fl.Rate > 0) || math.IsInf(fl.Rate, 1) {
			return nil, shared.NewInvalidConfigurationError("link.flows", fmt.Sprintf("rate for %s must be positive and finite, got %v", fl.Item, fl.Rate))
		}
		if seen[fl.Item] {
			return nil, shared.NewInvalidConfigurationError("link.flows", fmt.Sprintf("duplicate flow for %s", fl.Item))
		}
		seen[fl.Item] = true
	}

	transport := def.Transport
	if transport == nil {
		transport = Bus{}
	}
	if err := transport.validate(); err != nil {
		return nil, err
	}

	return &Link{
		id:            id,
		sourceID:      def.SourceFactoryID,
		destinationID: def.DestinationFactoryID,
		flows:         append([]catalog.ItemRate(nil), def.Flows...),
		transport:     transport,
	}, nil
}

func (l *Link) ID() string                   { return l.id }
func (l *Link) SourceFactoryID() string      { return l.sourceID }
func (l *Link) DestinationFactoryID() string { return l.destinationID }
func (l *Link) Transport() Transport         { return l.transport }

// Flows returns a copy of the item flows
func (l *Link) Flows() []catalog.ItemRate {
	return append([]catalog.ItemRate(nil), l.flows...)
}

// FlowRates returns the flows as a rate mapping
func (l *Link) FlowRates() catalog.Rates {
	return catalog.RatesFromList(l.flows)
}

// TotalFlowRate sums the rates of every flow
func (l *Link) TotalFlowRate() float64 {
	total := 0.0
	for _, fl := range l.flows {
		total += fl.Rate
	}
	return total
}

// Touches reports whether the link starts or ends at factoryID
func (l *Link) Touches(factoryID string) bool {
	return l.sourceID == factoryID || l.destinationID == factoryID
}

func (l *Link) Definition() LinkDefinition {
	return LinkDefinition{
		SourceFactoryID:      l.sourceID,
		DestinationFactoryID: l.destinationID,
		Flows:                l.Flows(),
		Transport:            l.transport,
	}
}

func (l *Link) String() string {
	return fmt.Sprintf("Link[%s, %s -> %s, %s, flows=%d]", l.id, l.sourceID, l.destinationID, l.transport.Kind(), len(l.flows))
}
