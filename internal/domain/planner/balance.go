package planner

import (
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
)

// FactoryPower is one factory's share of the global power picture
type FactoryPower struct {
	FactoryID   string  `json:"factory_id"`
	FactoryName string  `json:"factory_name"`
	Generation  float64 `json:"generation_mw"`
	Consumption float64 `json:"consumption_mw"`
	Balance     float64 `json:"balance_mw"`
}

// PowerStats aggregates generation and consumption over every factory
type PowerStats struct {
	TotalGeneration  float64        `json:"total_generation_mw"`
	TotalConsumption float64        `json:"total_consumption_mw"`
	Balance          float64        `json:"balance_mw"`
	Factories        []FactoryPower `json:"factories"`
}

// GlobalItemBalance sums every factory's local balance. Links move items between
// factories without creating or destroying them, so they cancel out here.
func (e *Engine) GlobalItemBalance() catalog.Rates {
	out := catalog.NewRates()
	for _, f := range e.factories.List() {
		out.Merge(f.NetItemBalance(), 1)
	}
	return out
}

// FactoryBalances returns each factory's local balance keyed by factory id
func (e *Engine) FactoryBalances() map[string]catalog.Rates {
	out := make(map[string]catalog.Rates, e.factories.Len())
	for _, f := range e.factories.List() {
		out[f.ID()] = f.NetItemBalance()
	}
	return out
}

// TransferAdjustedBalance is a factory's local balance minus what its outgoing links
// carry away plus what its incoming links deliver
func (e *Engine) TransferAdjustedBalance(factoryID string) (catalog.Rates, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return nil, err
	}
	out := f.NetItemBalance()
	for _, l := range e.links.List() {
		switch factoryID {
		case l.SourceFactoryID():
			out.Merge(l.FlowRates(), -1)
		case l.DestinationFactoryID():
			out.Merge(l.FlowRates(), 1)
		}
	}
	return out, nil
}

// TransferAdjustedBalances applies every link to every factory's local balance. The
// sum of the results equals GlobalItemBalance.
func (e *Engine) TransferAdjustedBalances() map[string]catalog.Rates {
	out := e.FactoryBalances()
	for _, l := range e.links.List() {
		flows := l.FlowRates()
		out[l.SourceFactoryID()].Merge(flows, -1)
		out[l.DestinationFactoryID()].Merge(flows, 1)
	}
	return out
}

// GlobalPowerStats reports total generation, consumption and balance with a
// per-factory breakdown in factory creation order
func (e *Engine) GlobalPowerStats() PowerStats {
	stats := PowerStats{Factories: make([]FactoryPower, 0, e.factories.Len())}
	for _, f := range e.factories.List() {
		gen := f.TotalPowerGeneration()
		cons := f.TotalPowerConsumption()
		stats.TotalGeneration += gen
		stats.TotalConsumption += cons
		stats.Factories = append(stats.Factories, FactoryPower{
			FactoryID:   f.ID(),
			FactoryName: f.Name(),
			Generation:  gen,
			Consumption: cons,
			Balance:     gen - cons,
		})
	}
	stats.Balance = stats.TotalGeneration - stats.TotalConsumption
	return stats
}

// GlobalFuelConsumption sums generator fuel burn over every factory
func (e *Engine) GlobalFuelConsumption() catalog.Rates {
	out := catalog.NewRates()
	for _, f := range e.factories.List() {
		out.Merge(f.FuelConsumption(), 1)
	}
	return out
}

// GlobalWasteProduction sums generator waste over every factory
func (e *Engine) GlobalWasteProduction() catalog.Rates {
	out := catalog.NewRates()
	for _, f := range e.factories.List() {
		out.Merge(f.WasteProduction(), 1)
	}
	return out
}
