package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/factory"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

func newFactory(t *testing.T) *factory.Factory {
	t.Helper()
	f, err := factory.NewFactory("f-1", "Iron Works", "", "")
	require.NoError(t, err)
	return f
}

func plateLine(count int) production.RecipeLineDefinition {
	return production.RecipeLineDefinition{
		Name:          "Plates",
		Recipe:        "iron_plate",
		MachineGroups: []production.MachineGroup{{MachineCount: count, OverclockPercent: 100}},
	}
}

func TestNewFactory_RequiresName(t *testing.T) {
	_, err := factory.NewFactory("f-1", "", "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)

	_, err = factory.NewFactory("", "Name", "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
}

func TestFactory_AddUpdateRemoveUnit(t *testing.T) {
	// Arrange
	f := newFactory(t)
	ids := shared.NewSequentialIDGenerator("u")
	cat := catalog.Builtin()

	// Act
	u, err := f.AddUnit(plateLine(4), ids, cat)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "u-1", u.ID())
	assert.Equal(t, 16.0, f.TotalPowerConsumption())

	updated, err := f.UpdateUnit(u.ID(), plateLine(2), ids, cat)
	require.NoError(t, err)
	assert.Equal(t, u.ID(), updated.ID())
	assert.Equal(t, 8.0, f.TotalPowerConsumption())

	require.NoError(t, f.RemoveUnit(u.ID()))
	assert.True(t, f.IsEmpty())
	assert.Zero(t, f.TotalPowerConsumption())
}

func TestFactory_RemoveMissingUnitIsNotFound(t *testing.T) {
	f := newFactory(t)

	err := f.RemoveUnit("never-added")

	var nf *shared.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "production unit", nf.Kind)
	assert.Equal(t, "never-added", nf.ID)
}

func TestFactory_UpdateMissingIsNotFound(t *testing.T) {
	f := newFactory(t)
	cat := catalog.Builtin()
	ids := shared.NewUUIDGenerator()

	_, err := f.UpdateUnit("x", plateLine(1), ids, cat)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.UpdateRawInput("x", extraction.ExtractorDefinition{Extractor: catalog.MinerMk1, Item: catalog.IronOre, Purity: formula.PurityNormal}, cat)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.UpdateGenerator("x", power.GeneratorDefinition{GeneratorType: catalog.GeneratorGeothermal}, cat)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, f.RemoveRawInput("x"), shared.ErrNotFound)
	assert.ErrorIs(t, f.RemoveGenerator("x"), shared.ErrNotFound)
}

func TestFactory_InvalidUpdateLeavesUnitUntouched(t *testing.T) {
	f := newFactory(t)
	ids := shared.NewSequentialIDGenerator("u")
	u, err := f.AddUnit(plateLine(4), ids, catalog.Builtin())
	require.NoError(t, err)

	_, err = f.UpdateUnit(u.ID(), production.RecipeLineDefinition{Name: "Bad", Recipe: "nope"}, ids, catalog.Builtin())
	require.ErrorIs(t, err, shared.ErrInvalidConfiguration)

	got, err := f.Unit(u.ID())
	require.NoError(t, err)
	assert.Same(t, u, got)
}

func TestFactory_BalancesCombineUnitsAndRawInputs(t *testing.T) {
	// Arrange
	f := newFactory(t)
	ids := shared.NewSequentialIDGenerator("e")
	cat := catalog.Builtin()

	_, err := f.AddRawInput(extraction.ExtractorDefinition{
		Extractor: catalog.MinerMk2,
		Item:      catalog.IronOre,
		Purity:    formula.PurityNormal,
	}, ids, cat)
	require.NoError(t, err)
	_, err = f.AddUnit(production.RecipeLineDefinition{
		Name:          "Ingots",
		Recipe:        "iron_ingot",
		MachineGroups: []production.MachineGroup{{MachineCount: 4, OverclockPercent: 100}},
	}, ids, cat)
	require.NoError(t, err)
	_, err = f.AddUnit(plateLine(4), ids, cat)
	require.NoError(t, err)
	_, err = f.AddGenerator(power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorCoal,
		FuelType:      formula.FuelCompactedCoal,
		Groups:        []power.GeneratorGroup{{GeneratorCount: 3, OverclockPercent: 100}},
	}, ids, cat)
	require.NoError(t, err)

	// Act
	balance := f.NetItemBalance()

	// Assert
	assert.Equal(t, 0.0, balance.Get(catalog.IronOre))
	assert.Equal(t, 0.0, balance.Get(catalog.IronIngot))
	assert.Equal(t, 80.0, balance.Get(catalog.IronPlate))
	assert.Equal(t, 15.0+4*4+4*4, f.TotalPowerConsumption())
	assert.Equal(t, 225.0, f.TotalPowerGeneration())
	assert.Equal(t, 225.0-47.0, f.PowerBalance())
	assert.Equal(t, 8, f.TotalMachineCount())
	assert.InDelta(t, 36.0, f.FuelConsumption().Get(catalog.CompactedCoal), 1e-9)
	assert.Zero(t, balance.Get(catalog.CompactedCoal))
}

func TestFactory_ConsumptionIsNeverNegative(t *testing.T) {
	f := newFactory(t)
	ids := shared.NewUUIDGenerator()
	cat := catalog.Builtin()

	for _, oc := range []float64{0, 1, 50, 100, 249.9, 250} {
		_, err := f.AddUnit(production.RecipeLineDefinition{
			Name:          "Screws",
			Recipe:        "screw",
			MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: oc}},
		}, ids, cat)
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, f.TotalPowerConsumption(), 0.0)
}

func TestFactory_RestoreRejectsDuplicateIDs(t *testing.T) {
	f := newFactory(t)
	cat := catalog.Builtin()

	g, err := power.NewGenerator("shared-id", power.GeneratorDefinition{GeneratorType: catalog.GeneratorGeothermal}, cat)
	require.NoError(t, err)
	require.NoError(t, f.RestoreGenerator(g))

	line, err := production.NewRecipeLine("shared-id", plateLine(1), cat)
	require.NoError(t, err)

	err = f.RestoreUnit(line)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Len(t, f.Units(), 0)
}

func TestFactory_BlueprintUpdateFreesDroppedLineIDs(t *testing.T) {
	f := newFactory(t)
	ids := shared.NewSequentialIDGenerator("id")
	cat := catalog.Builtin()

	two := production.BlueprintDefinition{
		Name:  "Wiring",
		Lines: []production.RecipeLineDefinition{{Name: "Wire", Recipe: "wire"}, {Name: "Cable", Recipe: "cable"}},
	}
	u, err := f.AddUnit(two, ids, cat)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1", "id-2", "id-3"}, production.CollectIDs(u))

	one := production.BlueprintDefinition{Name: "Wiring", Lines: two.Lines[:1]}
	u, err = f.UpdateUnit(u.ID(), one, ids, cat)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1", "id-2"}, production.CollectIDs(u))

	line, err := production.NewRecipeLine("id-3", plateLine(1), cat)
	require.NoError(t, err)
	assert.NoError(t, f.RestoreUnit(line))
}

func TestFactory_UpdateDetails(t *testing.T) {
	f := newFactory(t)

	require.NoError(t, f.UpdateDetails("Steel Mill", "north ridge", "needs coal"))
	assert.Equal(t, "Steel Mill", f.Name())
	assert.Equal(t, "north ridge", f.Description())
	assert.Equal(t, "needs coal", f.Notes())

	assert.ErrorIs(t, f.UpdateDetails("", "", ""), shared.ErrInvalidConfiguration)
	assert.Equal(t, "Steel Mill", f.Name())
}
