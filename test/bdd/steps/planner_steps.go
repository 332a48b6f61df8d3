package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

const tolerance = 1e-9

type plannerContext struct {
	overlay *catalog.Overlay
	engine  *planner.Engine

	// factory ids by name, plus the one most recently created
	factories map[string]string
	factoryID string

	unit       production.Unit
	generator  *power.Generator
	multiplier float64
	err        error

	template       *blueprint.Template
	templateExport []byte
	newVersion     *blueprint.Template
	instances      []placedUnit

	imported *planner.Engine
}

type placedUnit struct {
	factoryID string
	unit      production.Unit
}

func (pc *plannerContext) reset() {
	pc.overlay = &catalog.Overlay{}
	pc.engine = nil
	pc.factories = make(map[string]string)
	pc.factoryID = ""
	pc.unit = nil
	pc.generator = nil
	pc.multiplier = 0
	pc.err = nil
	pc.template = nil
	pc.templateExport = nil
	pc.newVersion = nil
	pc.instances = nil
	pc.imported = nil
}

// ensureEngine builds the engine lazily so catalog steps can run first
func (pc *plannerContext) ensureEngine() error {
	if pc.engine != nil {
		return nil
	}
	cat, err := catalog.Builtin().WithOverlay(pc.overlay)
	if err != nil {
		return err
	}
	pc.engine = planner.NewEngine(planner.Options{
		Catalog:      cat,
		IDs:          shared.NewSequentialIDGenerator("id"),
		Clock:        shared.NewFixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		DeletePolicy: planner.DeletePolicyReject,
	})
	return nil
}

func (pc *plannerContext) factoryNamed(name string) (string, error) {
	id, ok := pc.factories[name]
	if !ok {
		return "", fmt.Errorf("no factory named %q in this scenario", name)
	}
	return id, nil
}

func approx(name string, expected, actual, delta float64) error {
	if math.Abs(expected-actual) > delta {
		return fmt.Errorf("expected %s %v, got %v", name, expected, actual)
	}
	return nil
}

func sameRates(expected, actual catalog.Rates) error {
	for _, item := range expected.Clone().Compact(tolerance).Items() {
		if err := approx(string(item), expected.Get(item), actual.Get(item), 1e-6); err != nil {
			return err
		}
	}
	for _, item := range actual.Clone().Compact(tolerance).Items() {
		if err := approx(string(item), expected.Get(item), actual.Get(item), 1e-6); err != nil {
			return err
		}
	}
	return nil
}

// Given steps

func (pc *plannerContext) theCatalogHasAMachine(id string, powerMW float64, boosterCap int) error {
	pc.overlay.Machines = append(pc.overlay.Machines, catalog.MachineType{
		ID: catalog.MachineID(id), Name: id, BasePowerMW: powerMW, BoosterCap: boosterCap,
	})
	return nil
}

func (pc *plannerContext) theCatalogHasARecipe(id, machine string, rate float64, item string) error {
	pc.overlay.Recipes = append(pc.overlay.Recipes, catalog.Recipe{
		ID:      catalog.RecipeID(id),
		Name:    id,
		Machine: catalog.MachineID(machine),
		Outputs: []catalog.ItemRate{{Item: catalog.Item(item), Rate: rate}},
	})
	return nil
}

func (pc *plannerContext) aPlanWithAFactory(name string) error {
	if err := pc.ensureEngine(); err != nil {
		return err
	}
	f, err := pc.engine.CreateFactory(name, "", "")
	if err != nil {
		return err
	}
	pc.factories[name] = f.ID()
	pc.factoryID = f.ID()
	return nil
}

func (pc *plannerContext) aPlanWithFactories(first, second string) error {
	if err := pc.aPlanWithAFactory(first); err != nil {
		return err
	}
	return pc.aPlanWithAFactory(second)
}

func (pc *plannerContext) aLinkMoving(rate float64, item, from, to string) error {
	src, err := pc.factoryNamed(from)
	if err != nil {
		return err
	}
	dst, err := pc.factoryNamed(to)
	if err != nil {
		return err
	}
	_, err = pc.engine.CreateLink(logistics.LinkDefinition{
		SourceFactoryID:      src,
		DestinationFactoryID: dst,
		Flows:                []catalog.ItemRate{{Item: catalog.Item(item), Rate: rate}},
		Transport:            logistics.Truck{Vehicles: 2},
	})
	return err
}

func (pc *plannerContext) factoryHasAnExtractor(factory, extractor, item, purity string) error {
	id, err := pc.factoryNamed(factory)
	if err != nil {
		return err
	}
	pc.factoryID = id
	if err := pc.iAddAnExtractor(extractor, item, purity); err != nil {
		return err
	}
	return pc.err
}

func (pc *plannerContext) factoryRuns(factory, recipe string, machines int) error {
	id, err := pc.factoryNamed(factory)
	if err != nil {
		return err
	}
	pc.factoryID = id
	if err := pc.iAddARecipeLine(recipe, recipe, machines, 100, 0); err != nil {
		return err
	}
	return pc.err
}

// When steps

func (pc *plannerContext) iComputeTheOverclockMultiplier(percent float64) error {
	pc.multiplier, pc.err = formula.OverclockMultiplier(percent)
	return nil
}

func (pc *plannerContext) iAddARecipeLine(name, recipe string, machines int, overclock float64, boosters int) error {
	pc.unit, pc.err = pc.engine.AddUnit(pc.factoryID, production.RecipeLineDefinition{
		Name:   name,
		Recipe: catalog.RecipeID(recipe),
		MachineGroups: []production.MachineGroup{
			{MachineCount: machines, OverclockPercent: overclock, BoosterCount: boosters},
		},
	})
	return nil
}

func (pc *plannerContext) iAddGenerators(count int, genType, fuel string, overclock float64) error {
	pc.generator, pc.err = pc.engine.AddGenerator(pc.factoryID, power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorTypeID(genType),
		FuelType:      formula.FuelType(fuel),
		Groups:        []power.GeneratorGroup{{GeneratorCount: count, OverclockPercent: overclock}},
	})
	return nil
}

func (pc *plannerContext) iAddAnExtractor(extractor, item, purity string) error {
	_, pc.err = pc.engine.AddRawInput(pc.factoryID, extraction.ExtractorDefinition{
		Extractor: catalog.ExtractorID(extractor),
		Item:      catalog.Item(item),
		Purity:    formula.Purity(purity),
	})
	return nil
}

func (pc *plannerContext) iRemoveUnit(unitID string) error {
	pc.err = pc.engine.RemoveUnit(pc.factoryID, unitID)
	return nil
}

func (pc *plannerContext) iDeleteTheFactory(name string) error {
	id, err := pc.factoryNamed(name)
	if err != nil {
		return err
	}
	_, pc.err = pc.engine.DeleteFactory(id)
	return nil
}

func (pc *plannerContext) iExportAndImportThePlan() error {
	data, err := pc.engine.Export()
	if err != nil {
		return err
	}
	pc.imported = planner.NewEngine(planner.Options{
		IDs:   shared.NewSequentialIDGenerator("id"),
		Clock: shared.NewFixedClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)),
	})
	return pc.imported.Import(data)
}

// Then steps

func (pc *plannerContext) theMultiplierShouldBeExactly(expected float64) error {
	if pc.err != nil {
		return pc.err
	}
	if pc.multiplier != expected {
		return fmt.Errorf("expected multiplier exactly %v, got %v", expected, pc.multiplier)
	}
	return nil
}

func (pc *plannerContext) theUnitShouldDraw(expected, delta float64) error {
	if pc.err != nil {
		return fmt.Errorf("expected the unit to be added, got %w", pc.err)
	}
	return approx("power consumption", expected, pc.unit.PowerConsumption(), delta)
}

func (pc *plannerContext) theGeneratorsShouldBurn(expected float64) error {
	if pc.err != nil {
		return fmt.Errorf("expected the generators to be added, got %w", pc.err)
	}
	return approx("fuel consumption", expected, pc.generator.FuelConsumption(), tolerance)
}

func (pc *plannerContext) theGeneratorsShouldProduce(expected float64) error {
	return approx("power generation", expected, pc.generator.PowerGeneration(), tolerance)
}

func (pc *plannerContext) theOperationShouldFailWith(kind string) error {
	var target error
	switch kind {
	case "not found":
		target = shared.ErrNotFound
	case "invalid configuration":
		target = shared.ErrInvalidConfiguration
	case "conflict":
		target = shared.ErrConflict
	case "serialization":
		target = shared.ErrSerialization
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if pc.err == nil {
		return fmt.Errorf("expected a %s error, but the operation succeeded", kind)
	}
	if !errors.Is(pc.err, target) {
		return fmt.Errorf("expected a %s error, got %v", kind, pc.err)
	}
	return nil
}

func (pc *plannerContext) theFactoryShouldHaveUnits(expected int) error {
	f, err := pc.engine.Factory(pc.factoryID)
	if err != nil {
		return err
	}
	if got := len(f.Units()); got != expected {
		return fmt.Errorf("expected %d units, got %d", expected, got)
	}
	return nil
}

func (pc *plannerContext) theFactoryConsumptionShouldEqualTheSum() error {
	f, err := pc.engine.Factory(pc.factoryID)
	if err != nil {
		return err
	}
	sum := 0.0
	for _, u := range f.Units() {
		sum += u.PowerConsumption()
	}
	for _, r := range f.RawInputs() {
		sum += r.PowerConsumption()
	}
	return approx("total consumption", sum, f.TotalPowerConsumption(), tolerance)
}

func (pc *plannerContext) theFactoryConsumptionShouldNotBeNegative() error {
	f, err := pc.engine.Factory(pc.factoryID)
	if err != nil {
		return err
	}
	if f.TotalPowerConsumption() < 0 {
		return fmt.Errorf("consumption is negative: %v", f.TotalPowerConsumption())
	}
	return nil
}

func (pc *plannerContext) thePlanShouldHaveLinks(expected int) error {
	if got := len(pc.engine.Links()); got != expected {
		return fmt.Errorf("expected %d links, got %d", expected, got)
	}
	return nil
}

func (pc *plannerContext) theGlobalBalanceShouldReconcile() error {
	summed := catalog.NewRates()
	for _, rates := range pc.engine.TransferAdjustedBalances() {
		summed.Merge(rates, 1)
	}
	return sameRates(pc.engine.GlobalItemBalance(), summed)
}

func (pc *plannerContext) theImportedPlanShouldHaveTheSameBalance() error {
	return sameRates(pc.engine.GlobalItemBalance(), pc.imported.GlobalItemBalance())
}

func (pc *plannerContext) theImportedPlanShouldHaveTheSamePowerStats() error {
	want, got := pc.engine.GlobalPowerStats(), pc.imported.GlobalPowerStats()
	if err := approx("total generation", want.TotalGeneration, got.TotalGeneration, tolerance); err != nil {
		return err
	}
	if err := approx("total consumption", want.TotalConsumption, got.TotalConsumption, tolerance); err != nil {
		return err
	}
	return approx("power balance", want.Balance, got.Balance, tolerance)
}

func (pc *plannerContext) theImportedPlanShouldHaveTheSameIDs() error {
	want, got := entityIDs(pc.engine), entityIDs(pc.imported)
	if len(want) != len(got) {
		return fmt.Errorf("expected %d ids, got %d", len(want), len(got))
	}
	for id := range want {
		if !got[id] {
			return fmt.Errorf("id %s is missing after import", id)
		}
	}
	return nil
}

func entityIDs(e *planner.Engine) map[string]bool {
	ids := make(map[string]bool)
	for _, f := range e.Factories() {
		ids[f.ID()] = true
		for _, u := range f.Units() {
			for _, id := range production.CollectIDs(u) {
				ids[id] = true
			}
		}
		for _, r := range f.RawInputs() {
			ids[r.ID()] = true
		}
		for _, g := range f.Generators() {
			ids[g.ID()] = true
		}
	}
	for _, l := range e.Links() {
		ids[l.ID()] = true
	}
	for _, t := range e.Templates() {
		ids[t.ID()] = true
	}
	return ids
}

// InitializePlannerScenario registers the factory, power and balance steps
func InitializePlannerScenario(ctx *godog.ScenarioContext) {
	pc := &plannerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	ctx.Step(`^the catalog has a machine "([^"]*)" drawing (\d+(?:\.\d+)?) MW with a booster cap of (\d+)$`, pc.theCatalogHasAMachine)
	ctx.Step(`^the catalog has a recipe "([^"]*)" on "([^"]*)" making (\d+(?:\.\d+)?) "([^"]*)" per minute$`, pc.theCatalogHasARecipe)
	ctx.Step(`^a plan with a factory "([^"]*)"$`, pc.aPlanWithAFactory)
	ctx.Step(`^a plan with factories "([^"]*)" and "([^"]*)"$`, pc.aPlanWithFactories)
	ctx.Step(`^a link moving (\d+(?:\.\d+)?) "([^"]*)" from "([^"]*)" to "([^"]*)"$`, pc.aLinkMoving)
	ctx.Step(`^"([^"]*)" has a "([^"]*)" extracting "([^"]*)" from a "([^"]*)" node$`, pc.factoryHasAnExtractor)
	ctx.Step(`^"([^"]*)" runs "([^"]*)" on (\d+) machines$`, pc.factoryRuns)

	ctx.Step(`^I compute the overclock multiplier for (\d+(?:\.\d+)?) percent$`, pc.iComputeTheOverclockMultiplier)
	ctx.Step(`^I add a recipe line "([^"]*)" running "([^"]*)" with (\d+) machines? at (\d+(?:\.\d+)?) percent and (\d+) boosters$`, pc.iAddARecipeLine)
	ctx.Step(`^I add (\d+) "([^"]*)" generators burning "([^"]*)" at (\d+(?:\.\d+)?) percent$`, pc.iAddGenerators)
	ctx.Step(`^I add a "([^"]*)" extracting "([^"]*)" from a "([^"]*)" node$`, pc.iAddAnExtractor)
	ctx.Step(`^I remove unit "([^"]*)" from the factory$`, pc.iRemoveUnit)
	ctx.Step(`^I delete the factory "([^"]*)"$`, pc.iDeleteTheFactory)
	ctx.Step(`^I export the plan and import it into a fresh engine$`, pc.iExportAndImportThePlan)

	ctx.Step(`^the multiplier should be exactly (\d+(?:\.\d+)?)$`, pc.theMultiplierShouldBeExactly)
	ctx.Step(`^the unit should draw (\d+(?:\.\d+)?) MW within (\d+(?:\.\d+)?)$`, pc.theUnitShouldDraw)
	ctx.Step(`^the generators should burn (\d+(?:\.\d+)?) per minute$`, pc.theGeneratorsShouldBurn)
	ctx.Step(`^the generators should produce (\d+(?:\.\d+)?) MW$`, pc.theGeneratorsShouldProduce)
	ctx.Step(`^the operation should fail with an? (not found|invalid configuration|conflict|serialization) error$`, pc.theOperationShouldFailWith)
	ctx.Step(`^the factory should have (\d+) units$`, pc.theFactoryShouldHaveUnits)
	ctx.Step(`^the factory consumption should equal the sum over its units and raw inputs$`, pc.theFactoryConsumptionShouldEqualTheSum)
	ctx.Step(`^the factory consumption should not be negative$`, pc.theFactoryConsumptionShouldNotBeNegative)
	ctx.Step(`^the plan should have (\d+) links?$`, pc.thePlanShouldHaveLinks)
	ctx.Step(`^the global item balance should equal the sum of transfer adjusted balances$`, pc.theGlobalBalanceShouldReconcile)
	ctx.Step(`^the imported plan should have the same global item balance$`, pc.theImportedPlanShouldHaveTheSameBalance)
	ctx.Step(`^the imported plan should have the same power stats$`, pc.theImportedPlanShouldHaveTheSamePowerStats)
	ctx.Step(`^the imported plan should have the same entity ids$`, pc.theImportedPlanShouldHaveTheSameIDs)

	initializeTemplateSteps(ctx, pc)
}
