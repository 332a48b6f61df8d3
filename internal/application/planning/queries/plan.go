package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// GetPlanQuery returns the full read model of the session's plan
type GetPlanQuery struct{}

// GetPlanResponse wraps the plan read model
type GetPlanResponse struct {
	PlanName string
	Plan     planner.PlanResponse
}

// GetPlanHandler handles the GetPlan query
type GetPlanHandler struct {
	session *planning.Session
}

// NewGetPlanHandler creates a new GetPlanHandler
func NewGetPlanHandler(session *planning.Session) *GetPlanHandler {
	return &GetPlanHandler{session: session}
}

// Handle executes the GetPlan query
func (h *GetPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetPlanQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlanQuery")
	}

	resp := &GetPlanResponse{PlanName: h.session.PlanName()}
	_ = h.session.Read(func(e *planner.Engine) error {
		resp.Plan = e.PlanResponse()
		return nil
	})
	return resp, nil
}

// ExportPlanQuery serializes the session's plan to its persisted document form
type ExportPlanQuery struct{}

// ExportResponse carries a serialized document
type ExportResponse struct {
	Data []byte
}

// ExportPlanHandler handles the ExportPlan query
type ExportPlanHandler struct {
	session *planning.Session
}

// NewExportPlanHandler creates a new ExportPlanHandler
func NewExportPlanHandler(session *planning.Session) *ExportPlanHandler {
	return &ExportPlanHandler{session: session}
}

// Handle executes the ExportPlan query
func (h *ExportPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ExportPlanQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportPlanQuery")
	}

	var data []byte
	err := h.session.Read(func(e *planner.Engine) error {
		var err error
		data, err = e.Export()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export plan: %w", err)
	}
	return &ExportResponse{Data: data}, nil
}

// ListPlansQuery lists the plans in the plan store
type ListPlansQuery struct{}

// ListPlansResponse holds saved plan summaries ordered by name
type ListPlansResponse struct {
	Plans []planner.PlanSummary
}

// ListPlansHandler handles the ListPlans query
type ListPlansHandler struct {
	session *planning.Session
}

// NewListPlansHandler creates a new ListPlansHandler
func NewListPlansHandler(session *planning.Session) *ListPlansHandler {
	return &ListPlansHandler{session: session}
}

// Handle executes the ListPlans query
func (h *ListPlansHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListPlansQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPlansQuery")
	}

	repo, err := h.session.Plans()
	if err != nil {
		return nil, err
	}
	plans, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return &ListPlansResponse{Plans: plans}, nil
}
