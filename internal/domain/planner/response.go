package planner

import (
	"time"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/factory"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
)

// UnitResponse is a production unit with its computed totals
type UnitResponse struct {
	ID               string          `json:"id"`
	Kind             production.Kind `json:"kind"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Recipe           string          `json:"recipe,omitempty"`
	MachineCount     int             `json:"machine_count"`
	PowerConsumption float64         `json:"power_consumption_mw"`
	InputRates       catalog.Rates   `json:"input_rates"`
	OutputRates      catalog.Rates   `json:"output_rates"`
	Lines            []UnitResponse  `json:"lines,omitempty"`
}

// RawInputResponse is a raw input with its computed totals
type RawInputResponse struct {
	ID               string          `json:"id"`
	Kind             extraction.Kind `json:"kind"`
	Item             catalog.Item    `json:"item"`
	PowerConsumption float64         `json:"power_consumption_mw"`
	OutputRate       float64         `json:"output_rate"`
}

// GeneratorResponse is a generator cluster with its computed flows
type GeneratorResponse struct {
	ID              string       `json:"id"`
	GeneratorType   string       `json:"generator_type"`
	FuelType        string       `json:"fuel_type,omitempty"`
	GeneratorCount  int          `json:"generator_count"`
	PowerGeneration float64      `json:"power_generation_mw"`
	FuelItem        catalog.Item `json:"fuel_item,omitempty"`
	FuelConsumption float64      `json:"fuel_consumption"`
	WasteItem       catalog.Item `json:"waste_item,omitempty"`
	WasteProduction float64      `json:"waste_production"`
}

// FactoryResponse is the read model of one factory
type FactoryResponse struct {
	ID                    string              `json:"id"`
	Name                  string              `json:"name"`
	Description           string              `json:"description,omitempty"`
	Notes                 string              `json:"notes,omitempty"`
	ProductionUnits       []UnitResponse      `json:"production_units"`
	RawInputs             []RawInputResponse  `json:"raw_inputs"`
	PowerGenerators       []GeneratorResponse `json:"power_generators"`
	TotalPowerConsumption float64             `json:"total_power_consumption_mw"`
	TotalPowerGeneration  float64             `json:"total_power_generation_mw"`
	PowerBalance          float64             `json:"power_balance_mw"`
	TotalMachineCount     int                 `json:"total_machine_count"`
	NetItemBalance        catalog.Rates       `json:"net_item_balance"`
	GeneratorFuel         catalog.Rates       `json:"generator_fuel"`
	GeneratorWaste        catalog.Rates       `json:"generator_waste"`
}

// LinkResponse is a logistics link with its total flow
type LinkResponse struct {
	ID                   string             `json:"id"`
	SourceFactoryID      string             `json:"source_factory_id"`
	DestinationFactoryID string             `json:"destination_factory_id"`
	Transport            string             `json:"transport"`
	Flows                []catalog.ItemRate `json:"flows"`
	TotalFlowRate        float64            `json:"total_flow_rate"`
}

// PlanResponse is the read model of the whole plan
type PlanResponse struct {
	Factories                []FactoryResponse        `json:"factories"`
	Links                    []LinkResponse           `json:"links"`
	GlobalItemBalance        catalog.Rates            `json:"global_item_balance"`
	TransferAdjustedBalances map[string]catalog.Rates `json:"transfer_adjusted_balances"`
	Power                    PowerStats               `json:"power"`
}

// FactoryResponse builds the read model of factoryID
func (e *Engine) FactoryResponse(factoryID string) (FactoryResponse, error) {
	f, err := e.Factory(factoryID)
	if err != nil {
		return FactoryResponse{}, err
	}
	return NewFactoryResponse(f), nil
}

// PlanResponse builds the read model of the whole plan
func (e *Engine) PlanResponse() PlanResponse {
	resp := PlanResponse{
		Factories:                make([]FactoryResponse, 0, e.factories.Len()),
		Links:                    make([]LinkResponse, 0, e.links.Len()),
		GlobalItemBalance:        e.GlobalItemBalance(),
		TransferAdjustedBalances: e.TransferAdjustedBalances(),
		Power:                    e.GlobalPowerStats(),
	}
	for _, f := range e.factories.List() {
		resp.Factories = append(resp.Factories, NewFactoryResponse(f))
	}
	for _, l := range e.links.List() {
		resp.Links = append(resp.Links, NewLinkResponse(l))
	}
	return resp
}

// NewFactoryResponse computes the read model of f
func NewFactoryResponse(f *factory.Factory) FactoryResponse {
	resp := FactoryResponse{
		ID:                    f.ID(),
		Name:                  f.Name(),
		Description:           f.Description(),
		Notes:                 f.Notes(),
		ProductionUnits:       []UnitResponse{},
		RawInputs:             []RawInputResponse{},
		PowerGenerators:       []GeneratorResponse{},
		TotalPowerConsumption: f.TotalPowerConsumption(),
		TotalPowerGeneration:  f.TotalPowerGeneration(),
		PowerBalance:          f.PowerBalance(),
		TotalMachineCount:     f.TotalMachineCount(),
		NetItemBalance:        f.NetItemBalance(),
		GeneratorFuel:         f.FuelConsumption(),
		GeneratorWaste:        f.WasteProduction(),
	}
	for _, u := range f.Units() {
		resp.ProductionUnits = append(resp.ProductionUnits, NewUnitResponse(u))
	}
	for _, r := range f.RawInputs() {
		resp.RawInputs = append(resp.RawInputs, NewRawInputResponse(r))
	}
	for _, g := range f.Generators() {
		resp.PowerGenerators = append(resp.PowerGenerators, NewGeneratorResponse(g))
	}
	return resp
}

// NewUnitResponse computes the read model of a unit and, for blueprints, its lines
func NewUnitResponse(u production.Unit) UnitResponse {
	resp := UnitResponse{
		ID:               u.ID(),
		Kind:             u.Kind(),
		Name:             u.Name(),
		Description:      u.Description(),
		MachineCount:     u.MachineCount(),
		PowerConsumption: u.PowerConsumption(),
		InputRates:       u.InputRates(),
		OutputRates:      u.OutputRates(),
	}
	switch v := u.(type) {
	case *production.RecipeLine:
		resp.Recipe = string(v.Recipe().ID)
	case *production.Blueprint:
		for _, l := range v.Lines() {
			resp.Lines = append(resp.Lines, NewUnitResponse(l))
		}
	}
	return resp
}

func NewGeneratorResponse(g *power.Generator) GeneratorResponse {
	return GeneratorResponse{
		ID:              g.ID(),
		GeneratorType:   string(g.Type().ID),
		FuelType:        string(g.FuelType()),
		GeneratorCount:  g.GeneratorCount(),
		PowerGeneration: g.PowerGeneration(),
		FuelItem:        g.FuelItem(),
		FuelConsumption: g.FuelConsumption(),
		WasteItem:       g.WasteItem(),
		WasteProduction: g.WasteProduction(),
	}
}

func NewRawInputResponse(r extraction.RawInput) RawInputResponse {
	return RawInputResponse{
		ID:               r.ID(),
		Kind:             r.Kind(),
		Item:             r.Item(),
		PowerConsumption: r.PowerConsumption(),
		OutputRate:       r.OutputRate(),
	}
}

func NewLinkResponse(l *logistics.Link) LinkResponse {
	return LinkResponse{
		ID:                   l.ID(),
		SourceFactoryID:      l.SourceFactoryID(),
		DestinationFactoryID: l.DestinationFactoryID(),
		Transport:            string(l.Transport().Kind()),
		Flows:                l.Flows(),
		TotalFlowRate:        l.TotalFlowRate(),
	}
}

// TemplateResponse describes a library template without its line definitions
type TemplateResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DerivedFrom string    `json:"derived_from,omitempty"`
	LineCount   int       `json:"line_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTemplateResponse(t *blueprint.Template) TemplateResponse {
	return TemplateResponse{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		DerivedFrom: t.DerivedFrom(),
		LineCount:   t.LineCount(),
		CreatedAt:   t.CreatedAt(),
	}
}
