package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// PlanResponse summarizes the plan a persistence command saved or loaded
type PlanResponse struct {
	Summary planner.PlanSummary
}

// SavePlanCommand stores the current plan under Name, or under the session's plan
// name when Name is empty
type SavePlanCommand struct {
	Name string
}

// SavePlanHandler handles the SavePlan command
type SavePlanHandler struct {
	session *planning.Session
}

// NewSavePlanHandler creates a new SavePlanHandler
func NewSavePlanHandler(session *planning.Session) *SavePlanHandler {
	return &SavePlanHandler{session: session}
}

// Handle executes the SavePlan command
func (h *SavePlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SavePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SavePlanCommand")
	}

	repo, err := h.session.Plans()
	if err != nil {
		return nil, err
	}

	name := cmd.Name
	if name == "" {
		name = h.session.PlanName()
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}

	var (
		data    []byte
		summary planner.PlanSummary
	)
	if err := h.session.Read(func(e *planner.Engine) error {
		var err error
		data, err = e.Export()
		summary = e.Summary(name, e.Now())
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to export plan: %w", err)
	}

	plan := &planner.SavedPlan{Name: name, Document: data, SavedAt: summary.SavedAt}
	if err := repo.Save(ctx, plan, summary); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	h.session.SetPlanName(name)
	return &PlanResponse{Summary: summary}, nil
}

// LoadPlanCommand replaces the session's plan with a saved one
type LoadPlanCommand struct {
	Name string `validate:"required"`
}

// LoadPlanHandler handles the LoadPlan command
type LoadPlanHandler struct {
	session *planning.Session
}

// NewLoadPlanHandler creates a new LoadPlanHandler
func NewLoadPlanHandler(session *planning.Session) *LoadPlanHandler {
	return &LoadPlanHandler{session: session}
}

// Handle executes the LoadPlan command
func (h *LoadPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LoadPlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoadPlanCommand")
	}

	repo, err := h.session.Plans()
	if err != nil {
		return nil, err
	}

	plan, err := repo.Load(ctx, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	var summary planner.PlanSummary
	if err := h.session.Write(func(e *planner.Engine) error {
		if err := e.Import(plan.Document); err != nil {
			return err
		}
		summary = e.Summary(plan.Name, plan.SavedAt)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	h.session.SetPlanName(plan.Name)
	return &PlanResponse{Summary: summary}, nil
}

// ImportPlanCommand replaces the session's plan with a plan document
type ImportPlanCommand struct {
	Data []byte `validate:"required"`
}

// ImportPlanHandler handles the ImportPlan command
type ImportPlanHandler struct {
	session *planning.Session
}

// NewImportPlanHandler creates a new ImportPlanHandler
func NewImportPlanHandler(session *planning.Session) *ImportPlanHandler {
	return &ImportPlanHandler{session: session}
}

// Handle executes the ImportPlan command
func (h *ImportPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportPlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportPlanCommand")
	}

	name := h.session.PlanName()
	var summary planner.PlanSummary
	if err := h.session.Write(func(e *planner.Engine) error {
		if err := e.Import(cmd.Data); err != nil {
			return err
		}
		summary = e.Summary(name, e.Now())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to import plan: %w", err)
	}
	return &PlanResponse{Summary: summary}, nil
}

// DeletePlanCommand removes a saved plan from the store. The session's plan is not
// affected.
type DeletePlanCommand struct {
	Name string `validate:"required"`
}

// DeletePlanHandler handles the DeletePlan command
type DeletePlanHandler struct {
	session *planning.Session
}

// NewDeletePlanHandler creates a new DeletePlanHandler
func NewDeletePlanHandler(session *planning.Session) *DeletePlanHandler {
	return &DeletePlanHandler{session: session}
}

// Handle executes the DeletePlan command
func (h *DeletePlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeletePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeletePlanCommand")
	}

	repo, err := h.session.Plans()
	if err != nil {
		return nil, err
	}
	if err := repo.Delete(ctx, cmd.Name); err != nil {
		return nil, fmt.Errorf("failed to delete plan: %w", err)
	}
	return &RemovedResponse{ID: cmd.Name}, nil
}
