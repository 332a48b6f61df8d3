package planner_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

func newEngine(policy planner.DeletePolicy) *planner.Engine {
	return planner.NewEngine(planner.Options{
		IDs:          shared.NewSequentialIDGenerator("id"),
		Clock:        shared.NewFixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		DeletePolicy: policy,
	})
}

func groups(count int) []production.MachineGroup {
	return []production.MachineGroup{{MachineCount: count, OverclockPercent: 100}}
}

// seedTwoFactories builds an ore site feeding a plate mill over one link
func seedTwoFactories(t *testing.T, e *planner.Engine) (mine, mill string, link *logistics.Link) {
	t.Helper()

	m, err := e.CreateFactory("Ore Site", "", "")
	require.NoError(t, err)
	_, err = e.AddRawInput(m.ID(), extraction.ExtractorDefinition{
		Extractor: catalog.MinerMk2, Item: catalog.IronOre, Purity: formula.PurityPure,
	})
	require.NoError(t, err)
	_, err = e.AddUnit(m.ID(), production.RecipeLineDefinition{Name: "Ingots", Recipe: "iron_ingot", MachineGroups: groups(6)})
	require.NoError(t, err)

	p, err := e.CreateFactory("Plate Mill", "", "")
	require.NoError(t, err)
	_, err = e.AddUnit(p.ID(), production.RecipeLineDefinition{Name: "Plates", Recipe: "iron_plate", MachineGroups: groups(4)})
	require.NoError(t, err)
	_, err = e.AddGenerator(p.ID(), power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorCoal,
		FuelType:      formula.FuelCompactedCoal,
		Groups:        []power.GeneratorGroup{{GeneratorCount: 3, OverclockPercent: 100}},
	})
	require.NoError(t, err)

	l, err := e.CreateLink(logistics.LinkDefinition{
		SourceFactoryID:      m.ID(),
		DestinationFactoryID: p.ID(),
		Flows:                []catalog.ItemRate{{Item: catalog.IronIngot, Rate: 120}},
		Transport:            logistics.Train{Name: "Ingot Shuttle", Locomotives: 1, FreightCars: 2},
	})
	require.NoError(t, err)
	return m.ID(), p.ID(), l
}

func TestEngine_ConstructorPower(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	f, err := e.CreateFactory("Plates", "", "")
	require.NoError(t, err)

	_, err = e.AddUnit(f.ID(), production.RecipeLineDefinition{Name: "Plates", Recipe: "iron_plate", MachineGroups: groups(4)})
	require.NoError(t, err)

	stats := e.GlobalPowerStats()
	assert.Equal(t, 16.0, stats.TotalConsumption)
	assert.Equal(t, -16.0, stats.Balance)
	require.Len(t, stats.Factories, 1)
	assert.Equal(t, f.ID(), stats.Factories[0].FactoryID)
}

func TestEngine_UnknownFactoryIsNotFound(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)

	_, err := e.AddUnit("ghost", production.RecipeLineDefinition{Name: "x", Recipe: "wire"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, e.RemoveUnit("ghost", "u"), shared.ErrNotFound)
	_, err = e.TransferAdjustedBalance("ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = e.DeleteFactory("ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestEngine_RemoveNeverAddedUnit(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	f, err := e.CreateFactory("Empty", "", "")
	require.NoError(t, err)

	err = e.RemoveUnit(f.ID(), "never-added")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestEngine_LinkValidation(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	f, err := e.CreateFactory("Solo", "", "")
	require.NoError(t, err)
	flows := []catalog.ItemRate{{Item: catalog.IronPlate, Rate: 10}}

	_, err = e.CreateLink(logistics.LinkDefinition{SourceFactoryID: f.ID(), DestinationFactoryID: f.ID(), Flows: flows})
	var loop *shared.SelfLoopError
	assert.ErrorAs(t, err, &loop)

	_, err = e.CreateLink(logistics.LinkDefinition{SourceFactoryID: f.ID(), DestinationFactoryID: "ghost", Flows: flows})
	var dangling *shared.DanglingReferenceError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "destination", dangling.Role)
	assert.Equal(t, "ghost", dangling.FactoryID)

	_, err = e.CreateLink(logistics.LinkDefinition{SourceFactoryID: "ghost", DestinationFactoryID: f.ID(), Flows: flows})
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "source", dangling.Role)

	assert.Empty(t, e.Links())
}

func TestEngine_LinkRejectsNonFiniteRates(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	src, err := e.CreateFactory("Smelter", "", "")
	require.NoError(t, err)
	dst, err := e.CreateFactory("Assembly", "", "")
	require.NoError(t, err)

	for _, rate := range []float64{math.Inf(1), math.NaN()} {
		_, err = e.CreateLink(logistics.LinkDefinition{
			SourceFactoryID:      src.ID(),
			DestinationFactoryID: dst.ID(),
			Flows:                []catalog.ItemRate{{Item: catalog.IronPlate, Rate: rate}},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidConfiguration, "rate %v", rate)
	}
	assert.Empty(t, e.Links())

	_, err = e.Export()
	assert.NoError(t, err)
}

func TestEngine_DeleteFactoryRejectsWhileLinked(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	mine, _, link := seedTwoFactories(t, e)

	_, err := e.DeleteFactory(mine)

	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{link.ID()}, conflict.IDs)
	_, err = e.Factory(mine)
	assert.NoError(t, err)
	assert.Len(t, e.Links(), 1)

	require.NoError(t, e.DeleteLink(link.ID()))
	removed, err := e.DeleteFactory(mine)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestEngine_DeleteFactoryCascades(t *testing.T) {
	e := newEngine(planner.DeletePolicyCascade)
	_, mill, link := seedTwoFactories(t, e)

	removed, err := e.DeleteFactory(mill)
	require.NoError(t, err)

	assert.Equal(t, []string{link.ID()}, removed)
	assert.Empty(t, e.Links())
	assert.Len(t, e.Factories(), 1)
	_, err = e.Link(link.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestEngine_GlobalBalanceReconciliation(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	mine, mill, _ := seedTwoFactories(t, e)

	global := e.GlobalItemBalance()
	adjusted := e.TransferAdjustedBalances()

	summed := catalog.NewRates()
	for _, rates := range adjusted {
		summed.Merge(rates, 1)
	}
	assert.True(t, global.EqualWithin(summed, 1e-9))

	// 240 ore mined, 180 smelted into ingots, 120 shipped, 120 pressed into 80 plates
	assert.Equal(t, 60.0, global.Get(catalog.IronOre))
	assert.Equal(t, 60.0, global.Get(catalog.IronIngot))
	assert.Equal(t, 80.0, global.Get(catalog.IronPlate))

	assert.Equal(t, 60.0, adjusted[mine].Get(catalog.IronIngot))
	assert.Equal(t, 0.0, adjusted[mill].Get(catalog.IronIngot))

	local, err := e.TransferAdjustedBalance(mill)
	require.NoError(t, err)
	assert.Equal(t, adjusted[mill], local)
	assert.Equal(t, -120.0, e.FactoryBalances()[mill].Get(catalog.IronIngot))
}

func TestEngine_GlobalPowerStats(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	seedTwoFactories(t, e)

	stats := e.GlobalPowerStats()

	assert.Equal(t, 225.0, stats.TotalGeneration)
	assert.Equal(t, 15.0+6*4.0+4*4.0, stats.TotalConsumption)
	assert.Equal(t, stats.TotalGeneration-stats.TotalConsumption, stats.Balance)
	require.Len(t, stats.Factories, 2)
	assert.Equal(t, "Ore Site", stats.Factories[0].FactoryName)
	assert.InDelta(t, 36.0, e.GlobalFuelConsumption().Get(catalog.CompactedCoal), 1e-9)
}

func TestEngine_TemplateIsolation(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	f, err := e.CreateFactory("Assembly", "", "")
	require.NoError(t, err)
	tpl, err := e.CreateTemplate(production.BlueprintDefinition{
		Name: "Rods and Screws",
		Lines: []production.RecipeLineDefinition{
			{Name: "Rods", Recipe: "iron_rod", MachineGroups: groups(1)},
			{Name: "Screws", Recipe: "screw", MachineGroups: groups(1)},
		},
	})
	require.NoError(t, err)

	a, err := e.InstantiateTemplate(tpl.ID(), f.ID(), "")
	require.NoError(t, err)
	b, err := e.InstantiateTemplate(tpl.ID(), f.ID(), "Screws B")
	require.NoError(t, err)

	for _, id := range production.CollectIDs(a) {
		assert.NotContains(t, production.CollectIDs(b), id)
	}
	assert.Equal(t, "Screws B", b.Name())

	_, err = e.UpdateUnit(f.ID(), a.ID(), production.BlueprintDefinition{
		Name:  "Rods only",
		Lines: []production.RecipeLineDefinition{{Name: "Rods", Recipe: "iron_rod", MachineGroups: groups(5)}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, b.MachineCount())
	assert.Equal(t, 2, tpl.LineCount())
	assert.Equal(t, 1, tpl.Definition().Lines[0].MachineGroups[0].MachineCount)
}

func TestEngine_InstantiateTemplateNotFound(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	f, err := e.CreateFactory("Assembly", "", "")
	require.NoError(t, err)
	tpl, err := e.CreateTemplate(production.BlueprintDefinition{Name: "Empty"})
	require.NoError(t, err)

	_, err = e.InstantiateTemplate("ghost", f.ID(), "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = e.InstantiateTemplate(tpl.ID(), "ghost", "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, f.Units())
}

func TestEngine_SaveTemplateAsNewVersion(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	src, err := e.CreateTemplate(production.BlueprintDefinition{
		Name:  "Wire",
		Lines: []production.RecipeLineDefinition{{Name: "Wire", Recipe: "wire", MachineGroups: groups(2)}},
	})
	require.NoError(t, err)

	edited := src.Definition()
	edited.Lines[0].MachineGroups[0].MachineCount = 8
	next, err := e.SaveTemplateAsNewVersion(src.ID(), edited)
	require.NoError(t, err)

	assert.NotEqual(t, src.ID(), next.ID())
	assert.Equal(t, src.ID(), next.DerivedFrom())
	assert.Equal(t, 2, src.Definition().Lines[0].MachineGroups[0].MachineCount)
	assert.Len(t, e.Templates(), 2)

	_, err = e.SaveTemplateAsNewVersion("ghost", edited)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, e.DeleteTemplate(src.ID()))
	assert.ErrorIs(t, e.DeleteTemplate(src.ID()), shared.ErrNotFound)
	assert.Len(t, e.Templates(), 1)
}

func TestEngine_CaptureTemplate(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	f, err := e.CreateFactory("Wiring", "", "")
	require.NoError(t, err)
	u, err := e.AddUnit(f.ID(), production.RecipeLineDefinition{Name: "Cable", Recipe: "cable", MachineGroups: groups(3)})
	require.NoError(t, err)

	tpl, err := e.CaptureTemplate(f.ID(), u.ID(), "Cable Block")
	require.NoError(t, err)

	assert.Equal(t, "Cable Block", tpl.Name())
	assert.Equal(t, 1, tpl.LineCount())
	assert.Equal(t, "Cable", u.Name())

	_, err = e.CaptureTemplate(f.ID(), "ghost", "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestEngine_UnitTransferRegeneratesIDs(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	f, err := e.CreateFactory("Wiring", "", "")
	require.NoError(t, err)
	u, err := e.AddUnit(f.ID(), production.BlueprintDefinition{
		Name:  "Copper",
		Lines: []production.RecipeLineDefinition{{Name: "Wire", Recipe: "wire", MachineGroups: groups(2)}},
	})
	require.NoError(t, err)

	data, err := e.ExportUnit(f.ID(), u.ID())
	require.NoError(t, err)
	copied, err := e.ImportUnit(f.ID(), data)
	require.NoError(t, err)

	assert.NotEqual(t, u.ID(), copied.ID())
	for _, id := range production.CollectIDs(u) {
		assert.NotContains(t, production.CollectIDs(copied), id)
	}
	assert.Equal(t, u.Definition(), copied.Definition())

	_, err = e.ImportUnit(f.ID(), []byte(`{"format_version": 1, "kind": "recipe_line"`))
	assert.ErrorIs(t, err, shared.ErrSerialization)
	assert.Len(t, f.Units(), 2)
}

func TestEngine_TemplateTransfer(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	tpl, err := e.CreateTemplate(production.BlueprintDefinition{
		Name:  "Steel",
		Lines: []production.RecipeLineDefinition{{Name: "Steel", Recipe: "steel_ingot", MachineGroups: groups(2)}},
	})
	require.NoError(t, err)

	data, err := e.ExportTemplate(tpl.ID())
	require.NoError(t, err)

	other := newEngine(planner.DeletePolicyReject)
	imported, err := other.ImportTemplate(data)
	require.NoError(t, err)
	assert.Equal(t, tpl.Definition(), imported.Definition())
}
