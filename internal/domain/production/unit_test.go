package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// testCatalog extends the built-in catalog with a 32 MW machine with four booster slots
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Builtin().WithOverlay(&catalog.Overlay{
		Machines: []catalog.MachineType{{ID: "test_bench", Name: "Test Bench", BasePowerMW: 32, BoosterCap: 4}},
		Recipes: []catalog.Recipe{{
			ID: "bench_motor", Name: "Bench Motor", Machine: "test_bench",
			Inputs:  []catalog.ItemRate{{Item: catalog.Rotor, Rate: 10}},
			Outputs: []catalog.ItemRate{{Item: catalog.Motor, Rate: 5}},
		}},
	})
	require.NoError(t, err)
	return c
}

func TestRecipeLine_ConstructorAt100Percent(t *testing.T) {
	line, err := production.NewRecipeLine("line-1", production.RecipeLineDefinition{
		Name:          "Plates",
		Recipe:        "iron_plate",
		MachineGroups: []production.MachineGroup{{MachineCount: 4, OverclockPercent: 100}},
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.Equal(t, 16.0, line.PowerConsumption())
	assert.Equal(t, 4, line.MachineCount())
	assert.Equal(t, catalog.Rates{catalog.IronIngot: 120}, line.InputRates())
	assert.Equal(t, catalog.Rates{catalog.IronPlate: 80}, line.OutputRates())
}

func TestRecipeLine_BoostersScalePowerQuadratically(t *testing.T) {
	line, err := production.NewRecipeLine("line-1", production.RecipeLineDefinition{
		Name:          "Motors",
		Recipe:        "bench_motor",
		MachineGroups: []production.MachineGroup{{MachineCount: 2, OverclockPercent: 100, BoosterCount: 2}},
	}, testCatalog(t))
	require.NoError(t, err)

	assert.Equal(t, 144.0, line.PowerConsumption())
	assert.Equal(t, catalog.Rates{catalog.Motor: 2 * 5 * 2.25}, line.OutputRates())
	assert.Equal(t, catalog.Rates{catalog.Rotor: 2 * 10 * 2.25}, line.InputRates())
}

func TestRecipeLine_BoostersScaleInputsWithOutputs(t *testing.T) {
	line, err := production.NewRecipeLine("line-1", production.RecipeLineDefinition{
		Name:          "Frames",
		Recipe:        "heavy_modular_frame",
		MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 100, BoosterCount: 4}},
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.InDelta(t, 2*4.0, line.OutputRates().Get(catalog.HeavyModularFrame), 1e-9)
	assert.InDelta(t, 240*4.0, line.InputRates().Get(catalog.Screw), 1e-9)
}

func TestRecipeLine_MixedGroups(t *testing.T) {
	line, err := production.NewRecipeLine("line-1", production.RecipeLineDefinition{
		Name:   "Steel",
		Recipe: "steel_ingot",
		MachineGroups: []production.MachineGroup{
			{MachineCount: 2, OverclockPercent: 100},
			{MachineCount: 1, OverclockPercent: 150},
		},
	}, catalog.Builtin())
	require.NoError(t, err)

	oc := formula.MustOverclockMultiplier(150)
	assert.InDelta(t, 2*16+16*oc, line.PowerConsumption(), 1e-9)
	assert.Equal(t, 3, line.MachineCount())
	assert.InDelta(t, 45*(2+oc), line.OutputRates().Get(catalog.SteelIngot), 1e-9)
	assert.InDelta(t, 45*(2+oc), line.InputRates().Get(catalog.Coal), 1e-9)
}

func TestRecipeLine_ZeroGroupsYieldsZero(t *testing.T) {
	line, err := production.NewRecipeLine("line-1", production.RecipeLineDefinition{
		Name:   "Idle",
		Recipe: "wire",
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.Zero(t, line.PowerConsumption())
	assert.Zero(t, line.MachineCount())
	assert.Empty(t, line.InputRates())
	assert.Empty(t, line.OutputRates())
}

func TestRecipeLine_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		def  production.RecipeLineDefinition
	}{
		{"unknown recipe", production.RecipeLineDefinition{Name: "x", Recipe: "unobtainium"}},
		{"empty name", production.RecipeLineDefinition{Recipe: "wire"}},
		{"zero machines", production.RecipeLineDefinition{Name: "x", Recipe: "wire",
			MachineGroups: []production.MachineGroup{{MachineCount: 0, OverclockPercent: 100}}}},
		{"overclock too high", production.RecipeLineDefinition{Name: "x", Recipe: "wire",
			MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 251}}}},
		{"negative overclock", production.RecipeLineDefinition{Name: "x", Recipe: "wire",
			MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: -5}}}},
		{"boosters over cap", production.RecipeLineDefinition{Name: "x", Recipe: "wire",
			MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 100, BoosterCount: 2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := production.NewRecipeLine("line-1", tt.def, catalog.Builtin())
			assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
		})
	}
}

func TestRecipeLine_DefinitionIsACopy(t *testing.T) {
	def := production.RecipeLineDefinition{
		Name:          "Wire",
		Recipe:        "wire",
		MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 100}},
	}
	line, err := production.NewRecipeLine("line-1", def, catalog.Builtin())
	require.NoError(t, err)

	def.MachineGroups[0].MachineCount = 99
	assert.Equal(t, 1, line.MachineCount())

	got := line.Definition().(production.RecipeLineDefinition)
	got.MachineGroups[0].MachineCount = 42
	assert.Equal(t, 1, line.MachineGroups()[0].MachineCount)
}

func TestBlueprint_SumsNestedLines(t *testing.T) {
	ids := shared.NewSequentialIDGenerator("line")
	unit, err := production.Build("bp-1", production.BlueprintDefinition{
		Name: "Reinforced plates",
		Lines: []production.RecipeLineDefinition{
			{Name: "Plates", Recipe: "iron_plate", MachineGroups: []production.MachineGroup{{MachineCount: 3, OverclockPercent: 100}}},
			{Name: "Screws", Recipe: "screw", MachineGroups: []production.MachineGroup{{MachineCount: 3, OverclockPercent: 100}}},
			{Name: "RIP", Recipe: "reinforced_iron_plate", MachineGroups: []production.MachineGroup{{MachineCount: 2, OverclockPercent: 100}}},
		},
	}, ids, catalog.Builtin())
	require.NoError(t, err)

	bp, ok := unit.(*production.Blueprint)
	require.True(t, ok)
	assert.Equal(t, production.KindBlueprint, bp.Kind())
	assert.Equal(t, 8, bp.MachineCount())
	assert.Equal(t, 3*4.0+3*4.0+2*15.0, bp.PowerConsumption())
	assert.Equal(t, 60.0, bp.OutputRates().Get(catalog.IronPlate))
	assert.Equal(t, 60.0, bp.InputRates().Get(catalog.IronPlate))
	assert.Equal(t, 120.0, bp.OutputRates().Get(catalog.Screw))
	assert.Equal(t, 10.0, bp.OutputRates().Get(catalog.ReinforcedIronPlate))
	assert.Equal(t, []string{"bp-1", "line-1", "line-2", "line-3"}, production.CollectIDs(bp))
}

func TestRebuild_KeepsNestedIDsByPosition(t *testing.T) {
	ids := shared.NewSequentialIDGenerator("line")
	def := production.BlueprintDefinition{
		Name:  "Wiring",
		Lines: []production.RecipeLineDefinition{{Name: "Wire", Recipe: "wire"}},
	}
	first, err := production.Build("bp-1", def, ids, catalog.Builtin())
	require.NoError(t, err)

	def.Lines = append(def.Lines, production.RecipeLineDefinition{Name: "Cable", Recipe: "cable"})
	second, err := production.Rebuild("bp-1", first, def, ids, catalog.Builtin())
	require.NoError(t, err)

	assert.Equal(t, []string{"bp-1", "line-1", "line-2"}, production.CollectIDs(second))
	assert.Equal(t, []string{"bp-1", "line-1"}, production.CollectIDs(first))
}

func TestWithName_DoesNotShareGroups(t *testing.T) {
	def := production.BlueprintDefinition{
		Name: "Original",
		Lines: []production.RecipeLineDefinition{
			{Name: "Wire", Recipe: "wire", MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 100}}},
		},
	}
	renamed := production.WithName(def, "Copy").(production.BlueprintDefinition)
	renamed.Lines[0].MachineGroups[0].MachineCount = 7

	assert.Equal(t, "Copy", renamed.Name)
	assert.Equal(t, "Original", def.Name)
	assert.Equal(t, 1, def.Lines[0].MachineGroups[0].MachineCount)
}

func TestBuild_RejectsNilDefinition(t *testing.T) {
	_, err := production.Build("u-1", nil, shared.NewUUIDGenerator(), catalog.Builtin())
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
}
