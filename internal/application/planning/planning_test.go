package planning_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
	"github.com/andrescamacho/factoryplanner-go/test/helpers"
)

type fixture struct {
	med       mediator.Mediator
	session   *planning.Session
	plans     *helpers.MockPlanRepository
	templates *helpers.MockTemplateRepository
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T, policy planner.DeletePolicy) *fixture {
	t.Helper()
	return newFixtureWithRepos(t, policy, helpers.NewMockPlanRepository(), helpers.NewMockTemplateRepository())
}

func newFixtureWithRepos(t *testing.T, policy planner.DeletePolicy, plans *helpers.MockPlanRepository, templates *helpers.MockTemplateRepository) *fixture {
	t.Helper()
	engine := planner.NewEngine(planner.Options{
		IDs:          shared.NewSequentialIDGenerator(t.Name()),
		Clock:        shared.NewFixedClock(time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)),
		DeletePolicy: policy,
	})
	session := planning.NewSession(engine, "main", plans, templates)

	core, logs := observer.New(zapcore.DebugLevel)
	med := mediator.NewMediator()
	med.RegisterMiddleware(planning.LoggingMiddleware(zap.New(core)))
	med.RegisterMiddleware(planning.ValidationMiddleware(validator.New()))
	require.NoError(t, commands.RegisterHandlers(med, session))
	require.NoError(t, queries.RegisterHandlers(med, session))

	return &fixture{med: med, session: session, plans: plans, templates: templates, logs: logs}
}

func (f *fixture) createFactory(t *testing.T, name string) string {
	t.Helper()
	resp, err := f.med.Send(context.Background(), &commands.CreateFactoryCommand{Name: name})
	require.NoError(t, err)
	return resp.(*commands.FactoryResponse).Factory.ID
}

func (f *fixture) addLine(t *testing.T, factoryID string, recipe catalog.RecipeID, machines int) commands.UnitResponse {
	t.Helper()
	resp, err := f.med.Send(context.Background(), &commands.AddProductionUnitCommand{
		FactoryID: factoryID,
		Definition: production.RecipeLineDefinition{
			Name:          string(recipe),
			Recipe:        recipe,
			MachineGroups: []production.MachineGroup{{MachineCount: machines, OverclockPercent: 100}},
		},
	})
	require.NoError(t, err)
	return *resp.(*commands.UnitResponse)
}

type countingObserver struct{ calls int }

func (o *countingObserver) PlanChanged(e *planner.Engine) { o.calls++ }

func TestFactoryCommands_ComputeTotals(t *testing.T) {
	// Arrange
	fx := newFixture(t, planner.DeletePolicyReject)
	ctx := context.Background()
	fid := fx.createFactory(t, "Plates")

	// Act
	fx.addLine(t, fid, "iron_plate", 4)
	resp, err := fx.med.Send(ctx, &queries.GetFactoryQuery{FactoryID: fid})

	// Assert
	require.NoError(t, err)
	got := resp.(*queries.GetFactoryResponse).Factory
	assert.Equal(t, "Plates", got.Name)
	assert.Equal(t, 16.0, got.TotalPowerConsumption)
	assert.Equal(t, 4, got.TotalMachineCount)
	assert.InDelta(t, 80.0, got.NetItemBalance[catalog.IronPlate], 1e-9)
}

func TestValidationMiddleware_RejectsMissingFields(t *testing.T) {
	fx := newFixture(t, planner.DeletePolicyReject)

	_, err := fx.med.Send(context.Background(), &commands.CreateFactoryCommand{})

	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
	var cfgErr *shared.InvalidConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "CreateFactoryCommand.Name", cfgErr.Field)

	resp, err := fx.med.Send(context.Background(), &queries.ListFactoriesQuery{})
	require.NoError(t, err)
	assert.Empty(t, resp.(*queries.ListFactoriesResponse).Factories)
}

func TestDeleteFactory_RejectPolicyKeepsLinkedFactory(t *testing.T) {
	// Arrange
	fx := newFixture(t, planner.DeletePolicyReject)
	ctx := context.Background()
	src := fx.createFactory(t, "Smelter")
	dst := fx.createFactory(t, "Assembler")
	_, err := fx.med.Send(ctx, &commands.CreateLinkCommand{Definition: logistics.LinkDefinition{
		SourceFactoryID:      src,
		DestinationFactoryID: dst,
		Flows:                []catalog.ItemRate{{Item: catalog.IronIngot, Rate: 30}},
	}})
	require.NoError(t, err)

	// Act
	_, err = fx.med.Send(ctx, &commands.DeleteFactoryCommand{FactoryID: src})

	// Assert
	assert.ErrorIs(t, err, shared.ErrConflict)
	resp, err := fx.med.Send(ctx, &queries.ListLinksQuery{FactoryID: src})
	require.NoError(t, err)
	assert.Len(t, resp.(*queries.ListLinksResponse).Links, 1)
}

func TestDeleteFactory_CascadeReportsRemovedLinks(t *testing.T) {
	fx := newFixture(t, planner.DeletePolicyCascade)
	ctx := context.Background()
	src := fx.createFactory(t, "Smelter")
	dst := fx.createFactory(t, "Assembler")
	linkResp, err := fx.med.Send(ctx, &commands.CreateLinkCommand{Definition: logistics.LinkDefinition{
		SourceFactoryID:      src,
		DestinationFactoryID: dst,
		Flows:                []catalog.ItemRate{{Item: catalog.IronIngot, Rate: 30}},
	}})
	require.NoError(t, err)

	resp, err := fx.med.Send(ctx, &commands.DeleteFactoryCommand{FactoryID: src})

	require.NoError(t, err)
	assert.Equal(t, []string{linkResp.(*commands.LinkResponse).Link.ID}, resp.(*commands.DeleteFactoryResponse).RemovedLinkIDs)
}

func TestSetMachineGroups_NestedLineKeepsIDs(t *testing.T) {
	// Arrange
	fx := newFixture(t, planner.DeletePolicyReject)
	ctx := context.Background()
	fid := fx.createFactory(t, "Block")
	added, err := fx.med.Send(ctx, &commands.AddProductionUnitCommand{
		FactoryID: fid,
		Definition: production.BlueprintDefinition{
			Name: "Plates",
			Lines: []production.RecipeLineDefinition{
				{Name: "Ingots", Recipe: "iron_ingot", MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 100}}},
				{Name: "Plates", Recipe: "iron_plate", MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 100}}},
			},
		},
	})
	require.NoError(t, err)
	unit := added.(*commands.UnitResponse).Unit
	require.Len(t, unit.Lines, 2)

	// Act
	resp, err := fx.med.Send(ctx, &commands.SetMachineGroupsCommand{
		FactoryID:     fid,
		UnitID:        unit.ID,
		LineID:        unit.Lines[1].ID,
		MachineGroups: []production.MachineGroup{{MachineCount: 3, OverclockPercent: 100}},
	})

	// Assert
	require.NoError(t, err)
	updated := resp.(*commands.UnitResponse).Unit
	assert.Equal(t, unit.ID, updated.ID)
	assert.Equal(t, 4, updated.MachineCount)
	assert.Equal(t, unit.Lines[0].ID, updated.Lines[0].ID)
	assert.Equal(t, unit.Lines[1].ID, updated.Lines[1].ID)

	_, err = fx.med.Send(ctx, &commands.SetMachineGroupsCommand{
		FactoryID:     fid,
		UnitID:        unit.ID,
		LineID:        "missing",
		MachineGroups: []production.MachineGroup{{MachineCount: 1, OverclockPercent: 100}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSaveAndLoadPlan(t *testing.T) {
	// Arrange
	plans := helpers.NewMockPlanRepository()
	fx := newFixtureWithRepos(t, planner.DeletePolicyReject, plans, helpers.NewMockTemplateRepository())
	ctx := context.Background()
	fid := fx.createFactory(t, "Plates")
	fx.addLine(t, fid, "iron_plate", 4)

	// Act
	saved, err := fx.med.Send(ctx, &commands.SavePlanCommand{})
	require.NoError(t, err)

	other := newFixtureWithRepos(t, planner.DeletePolicyReject, plans, helpers.NewMockTemplateRepository())
	_, err = other.med.Send(ctx, &commands.LoadPlanCommand{Name: "main"})
	require.NoError(t, err)

	// Assert
	summary := saved.(*commands.PlanResponse).Summary
	assert.Equal(t, "main", summary.Name)
	assert.Equal(t, 1, summary.FactoryCount)

	resp, err := other.med.Send(ctx, &queries.GetFactoryQuery{FactoryID: fid})
	require.NoError(t, err)
	assert.Equal(t, 16.0, resp.(*queries.GetFactoryResponse).Factory.TotalPowerConsumption)

	list, err := other.med.Send(ctx, &queries.ListPlansQuery{})
	require.NoError(t, err)
	require.Len(t, list.(*queries.ListPlansResponse).Plans, 1)

	_, err = other.med.Send(ctx, &commands.LoadPlanCommand{Name: "missing"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSessionWithoutPlanStore(t *testing.T) {
	engine := planner.NewEngine(planner.Options{})
	session := planning.NewSession(engine, "main", nil, nil)
	med := mediator.NewMediator()
	require.NoError(t, commands.RegisterHandlers(med, session))

	_, err := med.Send(context.Background(), &commands.SavePlanCommand{})

	assert.ErrorIs(t, err, planning.ErrNoPlanRepository)
}

func TestPublishAndFetchSharedTemplate(t *testing.T) {
	// Arrange
	library := helpers.NewMockTemplateRepository()
	author := newFixtureWithRepos(t, planner.DeletePolicyReject, helpers.NewMockPlanRepository(), library)
	ctx := context.Background()
	created, err := author.med.Send(ctx, &commands.CreateTemplateCommand{Definition: production.BlueprintDefinition{
		Name:  "Rods",
		Lines: []production.RecipeLineDefinition{{Name: "Rods", Recipe: "iron_rod", MachineGroups: []production.MachineGroup{{MachineCount: 2, OverclockPercent: 100}}}},
	}})
	require.NoError(t, err)
	tid := created.(*commands.TemplateResponse).Template.ID

	// Act
	_, err = author.med.Send(ctx, &commands.PublishTemplateCommand{TemplateID: tid})
	require.NoError(t, err)

	reader := newFixtureWithRepos(t, planner.DeletePolicyReject, helpers.NewMockPlanRepository(), library)
	_, err = reader.med.Send(ctx, &commands.FetchTemplateCommand{TemplateID: tid})
	require.NoError(t, err)

	// Assert
	resp, err := reader.med.Send(ctx, &queries.ListTemplatesQuery{})
	require.NoError(t, err)
	templates := resp.(*queries.ListTemplatesResponse).Templates
	require.Len(t, templates, 1)
	assert.Equal(t, tid, templates[0].ID)
	assert.Equal(t, 1, templates[0].LineCount)

	sharedList, err := reader.med.Send(ctx, &queries.ListTemplatesQuery{Shared: true})
	require.NoError(t, err)
	assert.Len(t, sharedList.(*queries.ListTemplatesResponse).Templates, 1)
}

func TestSession_NotifiesObserversOnlyOnSuccess(t *testing.T) {
	fx := newFixture(t, planner.DeletePolicyReject)
	obs := &countingObserver{}
	fx.session.Subscribe(obs)
	require.Equal(t, 1, obs.calls)

	fx.createFactory(t, "A")
	_, err := fx.med.Send(context.Background(), &commands.RemoveProductionUnitCommand{FactoryID: "nope", UnitID: "u"})
	require.Error(t, err)

	assert.Equal(t, 2, obs.calls)
}

func TestLoggingMiddleware_RecordsRequests(t *testing.T) {
	fx := newFixture(t, planner.DeletePolicyReject)
	ctx := context.Background()

	fx.createFactory(t, "A")
	_, err := fx.med.Send(ctx, &queries.GetFactoryQuery{FactoryID: "ghost"})
	require.Error(t, err)

	handled := fx.logs.FilterMessage("request handled").All()
	require.Len(t, handled, 1)
	assert.Equal(t, "CreateFactoryCommand", handled[0].ContextMap()["request"])

	failed := fx.logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "GetFactoryQuery", failed[0].ContextMap()["request"])
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
}

func TestImportPlan_FailureKeepsCurrentPlan(t *testing.T) {
	fx := newFixture(t, planner.DeletePolicyReject)
	ctx := context.Background()
	fx.createFactory(t, "Keep")

	_, err := fx.med.Send(ctx, &commands.ImportPlanCommand{Data: []byte(`{"factories": [`)})

	assert.ErrorIs(t, err, shared.ErrSerialization)
	resp, err := fx.med.Send(ctx, &queries.ListFactoriesQuery{})
	require.NoError(t, err)
	assert.Len(t, resp.(*queries.ListFactoriesResponse).Factories, 1)
}

func TestItemBalanceQuery_TransferAdjusted(t *testing.T) {
	// Arrange
	fx := newFixture(t, planner.DeletePolicyReject)
	ctx := context.Background()
	src := fx.createFactory(t, "Smelter")
	dst := fx.createFactory(t, "Mill")
	fx.addLine(t, src, "iron_ingot", 2)
	_, err := fx.med.Send(ctx, &commands.CreateLinkCommand{Definition: logistics.LinkDefinition{
		SourceFactoryID:      src,
		DestinationFactoryID: dst,
		Flows:                []catalog.ItemRate{{Item: catalog.IronIngot, Rate: 60}},
	}})
	require.NoError(t, err)

	// Act
	local, err := fx.med.Send(ctx, &queries.GetItemBalanceQuery{FactoryID: src})
	require.NoError(t, err)
	adjusted, err := fx.med.Send(ctx, &queries.GetItemBalanceQuery{FactoryID: src, TransferAdjusted: true})
	require.NoError(t, err)
	global, err := fx.med.Send(ctx, &queries.GetItemBalanceQuery{})
	require.NoError(t, err)

	// Assert
	assert.InDelta(t, 60.0, local.(*queries.GetItemBalanceResponse).Balance[catalog.IronIngot], 1e-9)
	assert.InDelta(t, 0.0, adjusted.(*queries.GetItemBalanceResponse).Balance[catalog.IronIngot], 1e-9)
	assert.Equal(t, "global", global.(*queries.GetItemBalanceResponse).Scope)
	assert.InDelta(t, 60.0, global.(*queries.GetItemBalanceResponse).Balance[catalog.IronIngot], 1e-9)
}
