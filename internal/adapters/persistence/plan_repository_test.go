package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
	"github.com/andrescamacho/factoryplanner-go/test/helpers"
)

func TestPlanRepository_SaveLoadRoundTrip(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	ctx := context.Background()

	e := planner.NewEngine(planner.Options{IDs: shared.NewSequentialIDGenerator("p")})
	f, err := e.CreateFactory("Plates", "", "")
	require.NoError(t, err)
	_, err = e.AddUnit(f.ID(), production.RecipeLineDefinition{
		Name:          "Plates",
		Recipe:        "iron_plate",
		MachineGroups: []production.MachineGroup{{MachineCount: 4, OverclockPercent: 100}},
	})
	require.NoError(t, err)
	doc, err := e.Export()
	require.NoError(t, err)
	savedAt := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	// Act
	err = repo.Save(ctx, &planner.SavedPlan{Name: "base", Document: doc, SavedAt: savedAt}, e.Summary("base", savedAt))
	require.NoError(t, err)
	loaded, err := repo.Load(ctx, "base")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "base", loaded.Name)
	assert.True(t, savedAt.Equal(loaded.SavedAt))

	restored := planner.NewEngine(planner.Options{})
	require.NoError(t, restored.Import(loaded.Document))
	assert.Equal(t, e.GlobalPowerStats(), restored.GlobalPowerStats())
}

func TestPlanRepository_SaveReplacesAndLists(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, &planner.SavedPlan{Name: "zeta", Document: []byte(`{"factories":{}}`), SavedAt: now},
		planner.PlanSummary{Name: "zeta", SavedAt: now}))
	require.NoError(t, repo.Save(ctx, &planner.SavedPlan{Name: "alpha", Document: []byte(`{"factories":{}}`), SavedAt: now},
		planner.PlanSummary{Name: "alpha", FactoryCount: 1, SavedAt: now}))
	require.NoError(t, repo.Save(ctx, &planner.SavedPlan{Name: "alpha", Document: []byte(`{"factories":{}}`), SavedAt: now.Add(time.Hour)},
		planner.PlanSummary{Name: "alpha", FactoryCount: 3, LinkCount: 2, SavedAt: now.Add(time.Hour)}))

	plans, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "alpha", plans[0].Name)
	assert.Equal(t, 3, plans[0].FactoryCount)
	assert.Equal(t, 2, plans[0].LinkCount)
	assert.True(t, now.Add(time.Hour).Equal(plans[0].SavedAt))
	assert.Equal(t, "zeta", plans[1].Name)
}

func TestPlanRepository_MissingPlanIsNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	ctx := context.Background()

	_, err := repo.Load(ctx, "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPlanRepository_Delete(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.Save(ctx, &planner.SavedPlan{Name: "old", Document: []byte("{}"), SavedAt: now},
		planner.PlanSummary{Name: "old", SavedAt: now}))

	require.NoError(t, repo.Delete(ctx, "old"))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
