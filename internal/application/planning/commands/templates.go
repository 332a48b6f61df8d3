package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
)

// TemplateResponse carries the library entry a command created or touched
type TemplateResponse struct {
	Template planner.TemplateResponse
}

// CreateTemplateCommand adds a blueprint template to the plan's library
type CreateTemplateCommand struct {
	Definition production.BlueprintDefinition
}

// CreateTemplateHandler handles the CreateTemplate command
type CreateTemplateHandler struct {
	session *planning.Session
}

// NewCreateTemplateHandler creates a new CreateTemplateHandler
func NewCreateTemplateHandler(session *planning.Session) *CreateTemplateHandler {
	return &CreateTemplateHandler{session: session}
}

// Handle executes the CreateTemplate command
func (h *CreateTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateTemplateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateTemplateCommand")
	}

	var resp TemplateResponse
	err := h.session.Write(func(e *planner.Engine) error {
		t, err := e.CreateTemplate(cmd.Definition)
		if err != nil {
			return err
		}
		resp.Template = planner.NewTemplateResponse(t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return &resp, nil
}

// SaveTemplateVersionCommand stores an edited definition as a new template derived
// from TemplateID. The source template is left as it is.
type SaveTemplateVersionCommand struct {
	TemplateID string `validate:"required"`
	Definition production.BlueprintDefinition
}

// SaveTemplateVersionHandler handles the SaveTemplateVersion command
type SaveTemplateVersionHandler struct {
	session *planning.Session
}

// NewSaveTemplateVersionHandler creates a new SaveTemplateVersionHandler
func NewSaveTemplateVersionHandler(session *planning.Session) *SaveTemplateVersionHandler {
	return &SaveTemplateVersionHandler{session: session}
}

// Handle executes the SaveTemplateVersion command
func (h *SaveTemplateVersionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SaveTemplateVersionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveTemplateVersionCommand")
	}

	var resp TemplateResponse
	err := h.session.Write(func(e *planner.Engine) error {
		t, err := e.SaveTemplateAsNewVersion(cmd.TemplateID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.Template = planner.NewTemplateResponse(t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save template version: %w", err)
	}
	return &resp, nil
}

// DeleteTemplateCommand removes a template from the plan's library
type DeleteTemplateCommand struct {
	TemplateID string `validate:"required"`
}

// DeleteTemplateHandler handles the DeleteTemplate command
type DeleteTemplateHandler struct {
	session *planning.Session
}

// NewDeleteTemplateHandler creates a new DeleteTemplateHandler
func NewDeleteTemplateHandler(session *planning.Session) *DeleteTemplateHandler {
	return &DeleteTemplateHandler{session: session}
}

// Handle executes the DeleteTemplate command
func (h *DeleteTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteTemplateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteTemplateCommand")
	}

	err := h.session.Write(func(e *planner.Engine) error {
		return e.DeleteTemplate(cmd.TemplateID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete template: %w", err)
	}
	return &RemovedResponse{ID: cmd.TemplateID}, nil
}

// InstantiateTemplateCommand places a fresh copy of a template in a factory
type InstantiateTemplateCommand struct {
	TemplateID   string `validate:"required"`
	FactoryID    string `validate:"required"`
	NameOverride string
}

// InstantiateTemplateHandler handles the InstantiateTemplate command
type InstantiateTemplateHandler struct {
	session *planning.Session
}

// NewInstantiateTemplateHandler creates a new InstantiateTemplateHandler
func NewInstantiateTemplateHandler(session *planning.Session) *InstantiateTemplateHandler {
	return &InstantiateTemplateHandler{session: session}
}

// Handle executes the InstantiateTemplate command
func (h *InstantiateTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*InstantiateTemplateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InstantiateTemplateCommand")
	}

	var resp UnitResponse
	err := h.session.Write(func(e *planner.Engine) error {
		u, err := e.InstantiateTemplate(cmd.TemplateID, cmd.FactoryID, cmd.NameOverride)
		if err != nil {
			return err
		}
		resp.Unit = planner.NewUnitResponse(u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate template: %w", err)
	}
	return &resp, nil
}

// CaptureTemplateCommand snapshots a placed unit into a new library template
type CaptureTemplateCommand struct {
	FactoryID string `validate:"required"`
	UnitID    string `validate:"required"`
	Name      string
}

// CaptureTemplateHandler handles the CaptureTemplate command
type CaptureTemplateHandler struct {
	session *planning.Session
}

// NewCaptureTemplateHandler creates a new CaptureTemplateHandler
func NewCaptureTemplateHandler(session *planning.Session) *CaptureTemplateHandler {
	return &CaptureTemplateHandler{session: session}
}

// Handle executes the CaptureTemplate command
func (h *CaptureTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CaptureTemplateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CaptureTemplateCommand")
	}

	var resp TemplateResponse
	err := h.session.Write(func(e *planner.Engine) error {
		t, err := e.CaptureTemplate(cmd.FactoryID, cmd.UnitID, cmd.Name)
		if err != nil {
			return err
		}
		resp.Template = planner.NewTemplateResponse(t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to capture template: %w", err)
	}
	return &resp, nil
}

// ImportTemplateCommand reads a template transfer document into the library
type ImportTemplateCommand struct {
	Data []byte `validate:"required"`
}

// ImportTemplateHandler handles the ImportTemplate command
type ImportTemplateHandler struct {
	session *planning.Session
}

// NewImportTemplateHandler creates a new ImportTemplateHandler
func NewImportTemplateHandler(session *planning.Session) *ImportTemplateHandler {
	return &ImportTemplateHandler{session: session}
}

// Handle executes the ImportTemplate command
func (h *ImportTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportTemplateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportTemplateCommand")
	}

	var resp TemplateResponse
	err := h.session.Write(func(e *planner.Engine) error {
		t, err := e.ImportTemplate(cmd.Data)
		if err != nil {
			return err
		}
		resp.Template = planner.NewTemplateResponse(t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import template: %w", err)
	}
	return &resp, nil
}

// ImportUnitCommand reads a unit transfer document into a factory
type ImportUnitCommand struct {
	FactoryID string `validate:"required"`
	Data      []byte `validate:"required"`
}

// ImportUnitHandler handles the ImportUnit command
type ImportUnitHandler struct {
	session *planning.Session
}

// NewImportUnitHandler creates a new ImportUnitHandler
func NewImportUnitHandler(session *planning.Session) *ImportUnitHandler {
	return &ImportUnitHandler{session: session}
}

// Handle executes the ImportUnit command
func (h *ImportUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportUnitCommand")
	}

	var resp UnitResponse
	err := h.session.Write(func(e *planner.Engine) error {
		u, err := e.ImportUnit(cmd.FactoryID, cmd.Data)
		if err != nil {
			return err
		}
		resp.Unit = planner.NewUnitResponse(u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import unit: %w", err)
	}
	return &resp, nil
}

// PublishTemplateCommand copies a plan template into the shared template library
type PublishTemplateCommand struct {
	TemplateID string `validate:"required"`
}

// PublishTemplateHandler handles the PublishTemplate command
type PublishTemplateHandler struct {
	session *planning.Session
}

// NewPublishTemplateHandler creates a new PublishTemplateHandler
func NewPublishTemplateHandler(session *planning.Session) *PublishTemplateHandler {
	return &PublishTemplateHandler{session: session}
}

// Handle executes the PublishTemplate command
func (h *PublishTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PublishTemplateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PublishTemplateCommand")
	}

	repo, err := h.session.Templates()
	if err != nil {
		return nil, err
	}

	var t *blueprint.Template
	if err := h.session.Read(func(e *planner.Engine) error {
		var err error
		t, err = e.Template(cmd.TemplateID)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to publish template: %w", err)
	}

	if err := repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to publish template: %w", err)
	}
	return &TemplateResponse{Template: planner.NewTemplateResponse(t)}, nil
}

// FetchTemplateCommand copies a template from the shared library into the plan,
// keeping its id
type FetchTemplateCommand struct {
	TemplateID string `validate:"required"`
}

// FetchTemplateHandler handles the FetchTemplate command
type FetchTemplateHandler struct {
	session *planning.Session
}

// NewFetchTemplateHandler creates a new FetchTemplateHandler
func NewFetchTemplateHandler(session *planning.Session) *FetchTemplateHandler {
	return &FetchTemplateHandler{session: session}
}

// Handle executes the FetchTemplate command
func (h *FetchTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*FetchTemplateCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FetchTemplateCommand")
	}

	repo, err := h.session.Templates()
	if err != nil {
		return nil, err
	}

	var cat *catalog.Catalog
	_ = h.session.Read(func(e *planner.Engine) error {
		cat = e.Catalog()
		return nil
	})

	t, err := repo.FindByID(ctx, cmd.TemplateID, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	if err := h.session.Write(func(e *planner.Engine) error {
		return e.AddTemplate(t)
	}); err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	return &TemplateResponse{Template: planner.NewTemplateResponse(t)}, nil
}
