package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// PlanMetricsCollector exposes the current plan as gauges. It is a planning.Observer
// and refreshes every gauge after each mutation.
type PlanMetricsCollector struct {
	factoriesTotal   prometheus.Gauge
	linksTotal       prometheus.Gauge
	templatesTotal   prometheus.Gauge
	powerGeneration  *prometheus.GaugeVec
	powerConsumption *prometheus.GaugeVec
	machinesTotal    *prometheus.GaugeVec
	itemBalance      *prometheus.GaugeVec
	fuelConsumption  *prometheus.GaugeVec
}

// NewPlanMetricsCollector creates a new plan metrics collector
func NewPlanMetricsCollector() *PlanMetricsCollector {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	gaugeVec := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &PlanMetricsCollector{
		factoriesTotal:   gauge("factories", "Number of factories in the plan"),
		linksTotal:       gauge("logistics_links", "Number of logistics links in the plan"),
		templatesTotal:   gauge("blueprint_templates", "Number of templates in the plan library"),
		powerGeneration:  gaugeVec("factory_power_generation_mw", "Power generated per factory", "factory_id", "factory"),
		powerConsumption: gaugeVec("factory_power_consumption_mw", "Power consumed per factory", "factory_id", "factory"),
		machinesTotal:    gaugeVec("factory_machines", "Machines placed per factory", "factory_id", "factory"),
		itemBalance:      gaugeVec("item_balance_per_minute", "Global net item balance per minute", "item"),
		fuelConsumption:  gaugeVec("generator_fuel_per_minute", "Fuel burned by generators per minute", "item"),
	}
}

// Register registers all plan metrics with the Prometheus registry
func (c *PlanMetricsCollector) Register() error {
	return register(
		c.factoriesTotal,
		c.linksTotal,
		c.templatesTotal,
		c.powerGeneration,
		c.powerConsumption,
		c.machinesTotal,
		c.itemBalance,
		c.fuelConsumption,
	)
}

// PlanChanged refreshes every gauge from e
func (c *PlanMetricsCollector) PlanChanged(e *planner.Engine) {
	factories := e.Factories()
	c.factoriesTotal.Set(float64(len(factories)))
	c.linksTotal.Set(float64(len(e.Links())))
	c.templatesTotal.Set(float64(len(e.Templates())))

	c.powerGeneration.Reset()
	c.powerConsumption.Reset()
	c.machinesTotal.Reset()
	for _, f := range factories {
		c.powerGeneration.WithLabelValues(f.ID(), f.Name()).Set(f.TotalPowerGeneration())
		c.powerConsumption.WithLabelValues(f.ID(), f.Name()).Set(f.TotalPowerConsumption())
		c.machinesTotal.WithLabelValues(f.ID(), f.Name()).Set(float64(f.TotalMachineCount()))
	}

	c.itemBalance.Reset()
	for item, rate := range e.GlobalItemBalance() {
		c.itemBalance.WithLabelValues(string(item)).Set(rate)
	}
	c.fuelConsumption.Reset()
	for item, rate := range e.GlobalFuelConsumption() {
		c.fuelConsumption.WithLabelValues(string(item)).Set(rate)
	}
}
