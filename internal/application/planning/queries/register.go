package queries

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
)

// RegisterHandlers registers every planning query handler with med
func RegisterHandlers(med mediator.Mediator, session *planning.Session) error {
	if err := mediator.RegisterHandler[*GetPlanQuery](med, NewGetPlanHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetPlan handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ExportPlanQuery](med, NewExportPlanHandler(session)); err != nil {
		return fmt.Errorf("failed to register ExportPlan handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ListPlansQuery](med, NewListPlansHandler(session)); err != nil {
		return fmt.Errorf("failed to register ListPlans handler: %w", err)
	}
	if err := mediator.RegisterHandler[*GetFactoryQuery](med, NewGetFactoryHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetFactory handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ListFactoriesQuery](med, NewListFactoriesHandler(session)); err != nil {
		return fmt.Errorf("failed to register ListFactories handler: %w", err)
	}
	if err := mediator.RegisterHandler[*GetItemBalanceQuery](med, NewGetItemBalanceHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetItemBalance handler: %w", err)
	}
	if err := mediator.RegisterHandler[*GetPowerStatsQuery](med, NewGetPowerStatsHandler(session)); err != nil {
		return fmt.Errorf("failed to register GetPowerStats handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ListLinksQuery](med, NewListLinksHandler(session)); err != nil {
		return fmt.Errorf("failed to register ListLinks handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ListTemplatesQuery](med, NewListTemplatesHandler(session)); err != nil {
		return fmt.Errorf("failed to register ListTemplates handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ExportTemplateQuery](med, NewExportTemplateHandler(session)); err != nil {
		return fmt.Errorf("failed to register ExportTemplate handler: %w", err)
	}
	if err := mediator.RegisterHandler[*ExportUnitQuery](med, NewExportUnitHandler(session)); err != nil {
		return fmt.Errorf("failed to register ExportUnit handler: %w", err)
	}
	return nil
}
