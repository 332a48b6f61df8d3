package power_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

func TestGenerator_CoalWithCompactedFuel(t *testing.T) {
	gen, err := power.NewGenerator("gen-1", power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorCoal,
		FuelType:      formula.FuelCompactedCoal,
		Groups:        []power.GeneratorGroup{{GeneratorCount: 3, OverclockPercent: 100}},
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.InDelta(t, 36.0, gen.FuelConsumption(), 1e-9)
	assert.Equal(t, 225.0, gen.PowerGeneration())
	assert.Zero(t, gen.WasteProduction())
	assert.Equal(t, catalog.CompactedCoal, gen.FuelItem())
	assert.InDelta(t, 36.0, gen.FuelRates().Get(catalog.CompactedCoal), 1e-9)
	assert.Empty(t, gen.WasteRates())
}

func TestGenerator_OverclockScalesPowerAndFuel(t *testing.T) {
	gen, err := power.NewGenerator("gen-1", power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorFuel,
		FuelType:      formula.FuelTurbofuel,
		Groups: []power.GeneratorGroup{
			{GeneratorCount: 2, OverclockPercent: 100},
			{GeneratorCount: 1, OverclockPercent: 200},
		},
	}, catalog.Builtin())
	require.NoError(t, err)

	mul := formula.MustOverclockMultiplier(200)
	assert.InDelta(t, 250*(2+mul), gen.PowerGeneration(), 1e-9)
	assert.InDelta(t, 20*0.375*(2+mul), gen.FuelConsumption(), 1e-9)
	assert.Equal(t, 3, gen.GeneratorCount())
}

func TestGenerator_NuclearProducesWaste(t *testing.T) {
	gen, err := power.NewGenerator("gen-1", power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorNuclear,
		FuelType:      formula.FuelUraniumRod,
		Groups:        []power.GeneratorGroup{{GeneratorCount: 2, OverclockPercent: 100}},
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.Equal(t, 5000.0, gen.PowerGeneration())
	assert.InDelta(t, 0.4, gen.FuelConsumption(), 1e-9)
	assert.InDelta(t, 20.0, gen.WasteProduction(), 1e-9)
	assert.Equal(t, catalog.UraniumWaste, gen.WasteItem())
	assert.InDelta(t, 20.0, gen.WasteRates().Get(catalog.UraniumWaste), 1e-9)
}

func TestGenerator_GeothermalBurnsNothing(t *testing.T) {
	gen, err := power.NewGenerator("gen-1", power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorGeothermal,
		Groups:        []power.GeneratorGroup{{GeneratorCount: 1, OverclockPercent: 100}},
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.Equal(t, 200.0, gen.PowerGeneration())
	assert.Zero(t, gen.FuelConsumption())
	assert.Empty(t, gen.FuelRates())
}

func TestGenerator_ZeroGroups(t *testing.T) {
	gen, err := power.NewGenerator("gen-1", power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorCoal,
		FuelType:      formula.FuelCoal,
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.Zero(t, gen.PowerGeneration())
	assert.Zero(t, gen.FuelConsumption())
	assert.Empty(t, gen.FuelRates())
}

func TestGenerator_ConfigurationErrors(t *testing.T) {
	one := []power.GeneratorGroup{{GeneratorCount: 1, OverclockPercent: 100}}
	tests := []struct {
		name string
		def  power.GeneratorDefinition
	}{
		{"geothermal with fuel", power.GeneratorDefinition{GeneratorType: catalog.GeneratorGeothermal, FuelType: formula.FuelCoal, Groups: one}},
		{"coal without fuel", power.GeneratorDefinition{GeneratorType: catalog.GeneratorCoal, Groups: one}},
		{"fuel not accepted", power.GeneratorDefinition{GeneratorType: catalog.GeneratorCoal, FuelType: formula.FuelTurbofuel, Groups: one}},
		{"unknown type", power.GeneratorDefinition{GeneratorType: "steam", Groups: one}},
		{"zero generators", power.GeneratorDefinition{GeneratorType: catalog.GeneratorGeothermal,
			Groups: []power.GeneratorGroup{{GeneratorCount: 0, OverclockPercent: 100}}}},
		{"overclock out of range", power.GeneratorDefinition{GeneratorType: catalog.GeneratorGeothermal,
			Groups: []power.GeneratorGroup{{GeneratorCount: 1, OverclockPercent: 250.5}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := power.NewGenerator("gen-1", tt.def, catalog.Builtin())
			assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
		})
	}
}

func TestGeneratorDefinition_CopyDoesNotShareGroups(t *testing.T) {
	def := power.GeneratorDefinition{
		GeneratorType: catalog.GeneratorGeothermal,
		Groups:        []power.GeneratorGroup{{GeneratorCount: 1, OverclockPercent: 100}},
	}
	cp := def.Copy()
	cp.Groups[0].GeneratorCount = 5

	assert.Equal(t, 1, def.Groups[0].GeneratorCount)
}
