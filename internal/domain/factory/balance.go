package factory

import (
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
)

// TotalPowerConsumption sums unit and raw input power draw
func (f *Factory) TotalPowerConsumption() float64 {
	total := 0.0
	for _, u := range f.units.List() {
		total += u.PowerConsumption()
	}
	for _, r := range f.rawInputs.List() {
		total += r.PowerConsumption()
	}
	return total
}

// TotalPowerGeneration sums generator output
func (f *Factory) TotalPowerGeneration() float64 {
	total := 0.0
	for _, g := range f.generators.List() {
		total += g.PowerGeneration()
	}
	return total
}

// PowerBalance is generation minus consumption; negative means a deficit
func (f *Factory) PowerBalance() float64 {
	return f.TotalPowerGeneration() - f.TotalPowerConsumption()
}

// TotalMachineCount sums machines over all production units
func (f *Factory) TotalMachineCount() int {
	n := 0
	for _, u := range f.units.List() {
		n += u.MachineCount()
	}
	return n
}

// NetItemBalance is unit outputs minus unit inputs plus raw input outputs.
// Positive entries are surplus, negative entries are deficit.
func (f *Factory) NetItemBalance() catalog.Rates {
	out := catalog.NewRates()
	for _, u := range f.units.List() {
		out.Merge(u.OutputRates(), 1)
		out.Merge(u.InputRates(), -1)
	}
	for _, r := range f.rawInputs.List() {
		out.Merge(r.OutputRates(), 1)
	}
	return out
}

// FuelConsumption maps each burned item to its total rate across generators
func (f *Factory) FuelConsumption() catalog.Rates {
	out := catalog.NewRates()
	for _, g := range f.generators.List() {
		out.Merge(g.FuelRates(), 1)
	}
	return out
}

// WasteProduction maps each waste item to its total rate across generators
func (f *Factory) WasteProduction() catalog.Rates {
	out := catalog.NewRates()
	for _, g := range f.generators.List() {
		out.Merge(g.WasteRates(), 1)
	}
	return out
}
