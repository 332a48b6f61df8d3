package commands

import (
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
)

// RegisterHandlers registers every planning command handler with med
func RegisterHandlers(med mediator.Mediator, session *planning.Session) error {
	registrations := []struct {
		name     string
		register func() error
	}{
		{"CreateFactory", func() error {
			return mediator.RegisterHandler[*CreateFactoryCommand](med, NewCreateFactoryHandler(session))
		}},
		{"UpdateFactory", func() error {
			return mediator.RegisterHandler[*UpdateFactoryCommand](med, NewUpdateFactoryHandler(session))
		}},
		{"DeleteFactory", func() error {
			return mediator.RegisterHandler[*DeleteFactoryCommand](med, NewDeleteFactoryHandler(session))
		}},
		{"AddProductionUnit", func() error {
			return mediator.RegisterHandler[*AddProductionUnitCommand](med, NewAddProductionUnitHandler(session))
		}},
		{"UpdateProductionUnit", func() error {
			return mediator.RegisterHandler[*UpdateProductionUnitCommand](med, NewUpdateProductionUnitHandler(session))
		}},
		{"SetMachineGroups", func() error {
			return mediator.RegisterHandler[*SetMachineGroupsCommand](med, NewSetMachineGroupsHandler(session))
		}},
		{"RemoveProductionUnit", func() error {
			return mediator.RegisterHandler[*RemoveProductionUnitCommand](med, NewRemoveProductionUnitHandler(session))
		}},
		{"AddRawInput", func() error {
			return mediator.RegisterHandler[*AddRawInputCommand](med, NewAddRawInputHandler(session))
		}},
		{"UpdateRawInput", func() error {
			return mediator.RegisterHandler[*UpdateRawInputCommand](med, NewUpdateRawInputHandler(session))
		}},
		{"RemoveRawInput", func() error {
			return mediator.RegisterHandler[*RemoveRawInputCommand](med, NewRemoveRawInputHandler(session))
		}},
		{"AddGenerator", func() error {
			return mediator.RegisterHandler[*AddGeneratorCommand](med, NewAddGeneratorHandler(session))
		}},
		{"UpdateGenerator", func() error {
			return mediator.RegisterHandler[*UpdateGeneratorCommand](med, NewUpdateGeneratorHandler(session))
		}},
		{"RemoveGenerator", func() error {
			return mediator.RegisterHandler[*RemoveGeneratorCommand](med, NewRemoveGeneratorHandler(session))
		}},
		{"CreateLink", func() error {
			return mediator.RegisterHandler[*CreateLinkCommand](med, NewCreateLinkHandler(session))
		}},
		{"UpdateLink", func() error {
			return mediator.RegisterHandler[*UpdateLinkCommand](med, NewUpdateLinkHandler(session))
		}},
		{"DeleteLink", func() error {
			return mediator.RegisterHandler[*DeleteLinkCommand](med, NewDeleteLinkHandler(session))
		}},
		{"CreateTemplate", func() error {
			return mediator.RegisterHandler[*CreateTemplateCommand](med, NewCreateTemplateHandler(session))
		}},
		{"SaveTemplateVersion", func() error {
			return mediator.RegisterHandler[*SaveTemplateVersionCommand](med, NewSaveTemplateVersionHandler(session))
		}},
		{"DeleteTemplate", func() error {
			return mediator.RegisterHandler[*DeleteTemplateCommand](med, NewDeleteTemplateHandler(session))
		}},
		{"InstantiateTemplate", func() error {
			return mediator.RegisterHandler[*InstantiateTemplateCommand](med, NewInstantiateTemplateHandler(session))
		}},
		{"CaptureTemplate", func() error {
			return mediator.RegisterHandler[*CaptureTemplateCommand](med, NewCaptureTemplateHandler(session))
		}},
		{"ImportTemplate", func() error {
			return mediator.RegisterHandler[*ImportTemplateCommand](med, NewImportTemplateHandler(session))
		}},
		{"ImportUnit", func() error {
			return mediator.RegisterHandler[*ImportUnitCommand](med, NewImportUnitHandler(session))
		}},
		{"PublishTemplate", func() error {
			return mediator.RegisterHandler[*PublishTemplateCommand](med, NewPublishTemplateHandler(session))
		}},
		{"FetchTemplate", func() error {
			return mediator.RegisterHandler[*FetchTemplateCommand](med, NewFetchTemplateHandler(session))
		}},
		{"SavePlan", func() error {
			return mediator.RegisterHandler[*SavePlanCommand](med, NewSavePlanHandler(session))
		}},
		{"LoadPlan", func() error {
			return mediator.RegisterHandler[*LoadPlanCommand](med, NewLoadPlanHandler(session))
		}},
		{"ImportPlan", func() error {
			return mediator.RegisterHandler[*ImportPlanCommand](med, NewImportPlanHandler(session))
		}},
		{"DeletePlan", func() error {
			return mediator.RegisterHandler[*DeletePlanCommand](med, NewDeletePlanHandler(session))
		}},
	}

	for _, r := range registrations {
		if err := r.register(); err != nil {
			return fmt.Errorf("failed to register %s handler: %w", r.name, err)
		}
	}
	return nil
}
