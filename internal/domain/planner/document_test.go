package planner_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

func TestEngine_ExportImportRoundTrip(t *testing.T) {
	// Arrange
	e := newEngine(planner.DeletePolicyReject)
	mine, mill, link := seedTwoFactories(t, e)
	_, err := e.AddRawInput(mill, extraction.ResourceWellDefinition{
		Item:                        catalog.Water,
		PressurizerOverclockPercent: 120,
		Nodes:                       []extraction.WellNode{{Purity: formula.PurityImpure}, {Purity: formula.PurityPure}},
	})
	require.NoError(t, err)
	bp, err := e.AddUnit(mine, production.BlueprintDefinition{
		Name:  "Rods",
		Lines: []production.RecipeLineDefinition{{Name: "Rods", Recipe: "iron_rod", MachineGroups: groups(1)}},
	})
	require.NoError(t, err)
	tpl, err := e.CaptureTemplate(mine, bp.ID(), "")
	require.NoError(t, err)

	// Act
	data, err := e.Export()
	require.NoError(t, err)
	restored := newEngine(planner.DeletePolicyReject)
	require.NoError(t, restored.Import(data))

	// Assert
	assert.Equal(t, e.GlobalItemBalance(), restored.GlobalItemBalance())
	assert.Equal(t, e.GlobalPowerStats(), restored.GlobalPowerStats())
	assert.Equal(t, e.TransferAdjustedBalances(), restored.TransferAdjustedBalances())

	for _, id := range []string{mine, mill} {
		want, err := e.FactoryResponse(id)
		require.NoError(t, err)
		got, err := restored.FactoryResponse(id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	gotLink, err := restored.Link(link.ID())
	require.NoError(t, err)
	assert.Equal(t, link.Transport(), gotLink.Transport())

	gotTpl, err := restored.Template(tpl.ID())
	require.NoError(t, err)
	assert.Equal(t, tpl.Definition(), gotTpl.Definition())
	assert.Equal(t, tpl.CreatedAt(), gotTpl.CreatedAt())

	again, err := restored.Export()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestEngine_ImportToleratesMissingTemplates(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	doc := `{
		"factories": {
			"f-1": {"id": "f-1", "name": "Smelter", "production_units": [
				{"id": "u-1", "kind": "recipe_line", "name": "Ingots", "recipe": "iron_ingot",
				 "machine_groups": [{"machine_count": 2, "overclock_percent": 100, "productivity_booster_count": 0}]}
			]}
		},
		"logistics": []
	}`

	require.NoError(t, e.Import([]byte(doc)))

	assert.Empty(t, e.Templates())
	f, err := e.Factory("f-1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, f.TotalPowerConsumption())
	_, err = f.Unit("u-1")
	assert.NoError(t, err)
}

func TestEngine_ImportFailureLeavesEngineUntouched(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"factories": [`},
		{"wrong shape", `{"factories": []}`},
		{"invalid unit", `{"factories": {"f-1": {"id": "f-1", "name": "A", "production_units": [
			{"id": "u-1", "kind": "recipe_line", "name": "X", "recipe": "unknown"}]}}}`},
		{"zero well nodes", `{"factories": {"f-1": {"id": "f-1", "name": "A", "raw_inputs": [
			{"id": "r-1", "kind": "resource_well", "resource_well": {"item": "water", "pressurizer_overclock_percent": 100, "extractors": []}}]}}}`},
		{"key mismatch", `{"factories": {"f-1": {"id": "f-2", "name": "A"}}}`},
		{"dangling link", `{"factories": {"f-1": {"id": "f-1", "name": "A"}}, "logistics": [
			{"id": "l-1", "source_factory_id": "f-1", "destination_factory_id": "f-9", "flows": [{"item": "iron_plate", "rate": 5}]}]}`},
		{"duplicate ids", `{"factories": {"x": {"id": "x", "name": "A"}, "y": {"id": "y", "name": "B"}}, "logistics": [
			{"id": "x", "source_factory_id": "x", "destination_factory_id": "y", "flows": [{"item": "iron_plate", "rate": 5}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(planner.DeletePolicyReject)
			f, err := e.CreateFactory("Keep Me", "", "")
			require.NoError(t, err)

			err = e.Import([]byte(tt.doc))

			assert.ErrorIs(t, err, shared.ErrSerialization)
			assert.NotErrorIs(t, err, shared.ErrInvalidConfiguration)
			assert.NotErrorIs(t, err, shared.ErrNotFound)
			require.Len(t, e.Factories(), 1)
			assert.Equal(t, f.ID(), e.Factories()[0].ID())
		})
	}
}

func TestEngine_ExportShape(t *testing.T) {
	e := newEngine(planner.DeletePolicyReject)
	seedTwoFactories(t, e)

	data, err := e.Export()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "factories")
	assert.Contains(t, raw, "logistics")
	assert.NotContains(t, raw, "blueprint_templates")
}

func TestEngine_ImportAdvancesSequentialIDs(t *testing.T) {
	src := planner.NewEngine(planner.Options{IDs: shared.NewSequentialIDGenerator("id")})
	mine, _, _ := seedTwoFactories(t, src)
	data, err := src.Export()
	require.NoError(t, err)

	restored := planner.NewEngine(planner.Options{IDs: shared.NewSequentialIDGenerator("id")})
	require.NoError(t, restored.Import(data))

	for i := 0; i < 12; i++ {
		_, err := restored.AddUnit(mine, production.RecipeLineDefinition{Name: "More", Recipe: "iron_plate", MachineGroups: groups(1)})
		require.NoError(t, err)
	}
	_, err = restored.CreateFactory("Fresh", "", "")
	assert.NoError(t, err)
}
