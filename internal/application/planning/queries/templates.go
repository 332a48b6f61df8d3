package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// ListTemplatesQuery lists the plan's template library, or the shared library when
// Shared is set
type ListTemplatesQuery struct {
	Shared bool
}

// ListTemplatesResponse holds templates ordered by creation
type ListTemplatesResponse struct {
	Templates []planner.TemplateResponse
}

// ListTemplatesHandler handles the ListTemplates query
type ListTemplatesHandler struct {
	session *planning.Session
}

// NewListTemplatesHandler creates a new ListTemplatesHandler
func NewListTemplatesHandler(session *planning.Session) *ListTemplatesHandler {
	return &ListTemplatesHandler{session: session}
}

// Handle executes the ListTemplates query
func (h *ListTemplatesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListTemplatesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListTemplatesQuery")
	}

	var (
		templates []*blueprint.Template
		cat       *catalog.Catalog
	)
	_ = h.session.Read(func(e *planner.Engine) error {
		templates = e.Templates()
		cat = e.Catalog()
		return nil
	})

	if query.Shared {
		repo, err := h.session.Templates()
		if err != nil {
			return nil, err
		}
		if templates, err = repo.FindAll(ctx, cat); err != nil {
			return nil, fmt.Errorf("failed to list shared templates: %w", err)
		}
	}

	resp := &ListTemplatesResponse{Templates: make([]planner.TemplateResponse, 0, len(templates))}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, planner.NewTemplateResponse(t))
	}
	return resp, nil
}

// ExportTemplateQuery writes one library template in the transfer format
type ExportTemplateQuery struct {
	TemplateID string `validate:"required"`
}

// ExportTemplateHandler handles the ExportTemplate query
type ExportTemplateHandler struct {
	session *planning.Session
}

// NewExportTemplateHandler creates a new ExportTemplateHandler
func NewExportTemplateHandler(session *planning.Session) *ExportTemplateHandler {
	return &ExportTemplateHandler{session: session}
}

// Handle executes the ExportTemplate query
func (h *ExportTemplateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ExportTemplateQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportTemplateQuery")
	}

	var data []byte
	err := h.session.Read(func(e *planner.Engine) error {
		var err error
		data, err = e.ExportTemplate(query.TemplateID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export template: %w", err)
	}
	return &ExportResponse{Data: data}, nil
}

// ExportUnitQuery writes one placed production unit in the transfer format
type ExportUnitQuery struct {
	FactoryID string `validate:"required"`
	UnitID    string `validate:"required"`
}

// ExportUnitHandler handles the ExportUnit query
type ExportUnitHandler struct {
	session *planning.Session
}

// NewExportUnitHandler creates a new ExportUnitHandler
func NewExportUnitHandler(session *planning.Session) *ExportUnitHandler {
	return &ExportUnitHandler{session: session}
}

// Handle executes the ExportUnit query
func (h *ExportUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ExportUnitQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportUnitQuery")
	}

	var data []byte
	err := h.session.Read(func(e *planner.Engine) error {
		var err error
		data, err = e.ExportUnit(query.FactoryID, query.UnitID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export unit: %w", err)
	}
	return &ExportResponse{Data: data}, nil
}
