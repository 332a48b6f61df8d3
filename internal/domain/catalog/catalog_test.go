package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

func TestBuiltin_ReferenceValues(t *testing.T) {
	c := catalog.Builtin()

	constructor, ok := c.Machine(catalog.Constructor)
	require.True(t, ok)
	assert.Equal(t, 4.0, constructor.BasePowerMW)
	assert.Equal(t, 1, constructor.BoosterCap)

	recipe, ok := c.Recipe("iron_plate")
	require.True(t, ok)
	assert.Equal(t, catalog.Constructor, recipe.Machine)
	assert.Equal(t, []catalog.ItemRate{{Item: catalog.IronIngot, Rate: 30}}, recipe.Inputs)

	coal, ok := c.Generator(catalog.GeneratorCoal)
	require.True(t, ok)
	assert.Equal(t, 75.0, coal.BasePowerMW)
	assert.Equal(t, 15.0, coal.BaseFuelRate)
	assert.Equal(t, catalog.CompactedCoal, coal.Fuels[formula.FuelCompactedCoal])

	geo, ok := c.Generator(catalog.GeneratorGeothermal)
	require.True(t, ok)
	assert.False(t, geo.UsesFuel())
}

func TestBuiltin_EveryRecipeReferencesKnownItems(t *testing.T) {
	c := catalog.Builtin()
	for _, r := range c.Recipes() {
		_, ok := c.Machine(r.Machine)
		assert.True(t, ok, "recipe %s machine", r.ID)
		for _, ir := range append(append([]catalog.ItemRate{}, r.Inputs...), r.Outputs...) {
			assert.True(t, c.HasItem(ir.Item), "recipe %s item %s", r.ID, ir.Item)
		}
	}
}

func TestBuiltin_GeneratorFuelsAreItems(t *testing.T) {
	c := catalog.Builtin()
	for _, id := range []catalog.GeneratorTypeID{
		catalog.GeneratorBiomass, catalog.GeneratorCoal, catalog.GeneratorFuel, catalog.GeneratorNuclear,
	} {
		g, ok := c.Generator(id)
		require.True(t, ok)
		for fuel, item := range g.Fuels {
			assert.True(t, fuel.IsValid(), "fuel %s", fuel)
			assert.True(t, c.HasItem(item), "fuel item %s", item)
		}
	}
}

func TestExtractorType_Extracts(t *testing.T) {
	c := catalog.Builtin()
	oil, ok := c.Extractor(catalog.OilExtractor)
	require.True(t, ok)

	assert.True(t, oil.Extracts(catalog.CrudeOil))
	assert.False(t, oil.Extracts(catalog.IronOre))
}

func TestWithOverlay_AddsRecipeWithoutTouchingBase(t *testing.T) {
	doc := `
items:
  - id: aluminum_scrap
recipes:
  - id: alternate_iron_wire
    name: Iron Wire
    machine: constructor
    inputs: [{item: iron_ingot, rate: 12.5}]
    outputs: [{item: wire, rate: 22.5}]
`
	overlay, err := catalog.ParseOverlay(strings.NewReader(doc))
	require.NoError(t, err)

	extended, err := catalog.Builtin().WithOverlay(overlay)
	require.NoError(t, err)

	r, ok := extended.Recipe("alternate_iron_wire")
	require.True(t, ok)
	assert.Equal(t, 22.5, r.Outputs[0].Rate)

	info, ok := extended.ItemInfo("aluminum_scrap")
	require.True(t, ok)
	assert.Equal(t, "Aluminum Scrap", info.Name)

	_, ok = catalog.Builtin().Recipe("alternate_iron_wire")
	assert.False(t, ok, "base catalog must stay untouched")
}

func TestWithOverlay_RejectsUnknownMachine(t *testing.T) {
	overlay := &catalog.Overlay{Recipes: []catalog.Recipe{{
		ID: "bad", Machine: "teleporter",
		Outputs: []catalog.ItemRate{{Item: catalog.Wire, Rate: 1}},
	}}}

	_, err := catalog.Builtin().WithOverlay(overlay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown machine")
}

func TestWithOverlay_RejectsNonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"infinite recipe rate", `
recipes:
  - id: endless_wire
    machine: constructor
    inputs: [{item: iron_ingot, rate: .inf}]
    outputs: [{item: wire, rate: 30}]
`},
		{"NaN recipe rate", `
recipes:
  - id: odd_wire
    machine: constructor
    outputs: [{item: wire, rate: .nan}]
`},
		{"infinite machine power", "machines:\n  - {id: reactor_x, name: Reactor X, base_power_mw: .inf}\n"},
		{"NaN machine power", "machines:\n  - {id: reactor_y, name: Reactor Y, base_power_mw: .nan}\n"},
		{"infinite extractor rate", "extractors:\n  - {id: miner_x, name: Miner X, base_power_mw: 5, base_rate: .inf, items: [iron_ore]}\n"},
		{"NaN extractor power", "extractors:\n  - {id: miner_y, name: Miner Y, base_power_mw: .nan, base_rate: 60, items: [iron_ore]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlay, err := catalog.ParseOverlay(strings.NewReader(tt.doc))
			require.NoError(t, err)

			_, err = catalog.Builtin().WithOverlay(overlay)
			assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
		})
	}
}

func TestParseOverlay_RejectsUnknownKeys(t *testing.T) {
	_, err := catalog.ParseOverlay(strings.NewReader("gadgets: []\n"))
	assert.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("machines:\n  - {id: test_bench, name: Test Bench, base_power_mw: 32, booster_cap: 4}\n"), 0644))

	c, err := catalog.Load(path)
	require.NoError(t, err)

	m, ok := c.Machine("test_bench")
	require.True(t, ok)
	assert.Equal(t, 32.0, m.BasePowerMW)

	same, err := catalog.Load("")
	require.NoError(t, err)
	assert.Same(t, catalog.Builtin(), same)
}

func TestRates(t *testing.T) {
	r := catalog.NewRates()
	r.Add(catalog.IronOre, 30)
	r.Merge(catalog.Rates{catalog.IronOre: 10, catalog.Coal: 5}, -1)

	assert.Equal(t, 20.0, r.Get(catalog.IronOre))
	assert.Equal(t, -5.0, r.Get(catalog.Coal))
	assert.Equal(t, []catalog.Item{catalog.Coal, catalog.IronOre}, r.Items())
	assert.Equal(t, 15.0, r.Total())

	clone := r.Clone()
	clone.Add(catalog.Coal, 5)
	assert.Equal(t, -5.0, r.Get(catalog.Coal))
	assert.Equal(t, catalog.Rates{catalog.IronOre: 20}, clone.Compact(1e-9))

	assert.True(t, catalog.Rates{catalog.Coal: 1}.EqualWithin(catalog.Rates{catalog.Coal: 1 + 1e-12, catalog.Wire: 0}, 1e-9))
	assert.False(t, catalog.Rates{}.EqualWithin(catalog.Rates{catalog.Wire: 1}, 1e-9))
}
