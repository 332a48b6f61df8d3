package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
)

// AddGeneratorCommand places a generator cluster in a factory
type AddGeneratorCommand struct {
	FactoryID  string `validate:"required"`
	Definition power.GeneratorDefinition
}

// GeneratorResponse carries the read model of the generator a command touched
type GeneratorResponse struct {
	Generator planner.GeneratorResponse
}

// AddGeneratorHandler handles the AddGenerator command
type AddGeneratorHandler struct {
	session *planning.Session
}

// NewAddGeneratorHandler creates a new AddGeneratorHandler
func NewAddGeneratorHandler(session *planning.Session) *AddGeneratorHandler {
	return &AddGeneratorHandler{session: session}
}

// Handle executes the AddGenerator command
func (h *AddGeneratorHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddGeneratorCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddGeneratorCommand")
	}

	var resp GeneratorResponse
	err := h.session.Write(func(e *planner.Engine) error {
		g, err := e.AddGenerator(cmd.FactoryID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.Generator = planner.NewGeneratorResponse(g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add generator: %w", err)
	}
	return &resp, nil
}

// UpdateGeneratorCommand replaces a generator's definition, keeping its id
type UpdateGeneratorCommand struct {
	FactoryID   string `validate:"required"`
	GeneratorID string `validate:"required"`
	Definition  power.GeneratorDefinition
}

// UpdateGeneratorHandler handles the UpdateGenerator command
type UpdateGeneratorHandler struct {
	session *planning.Session
}

// NewUpdateGeneratorHandler creates a new UpdateGeneratorHandler
func NewUpdateGeneratorHandler(session *planning.Session) *UpdateGeneratorHandler {
	return &UpdateGeneratorHandler{session: session}
}

// Handle executes the UpdateGenerator command
func (h *UpdateGeneratorHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateGeneratorCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateGeneratorCommand")
	}

	var resp GeneratorResponse
	err := h.session.Write(func(e *planner.Engine) error {
		g, err := e.UpdateGenerator(cmd.FactoryID, cmd.GeneratorID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.Generator = planner.NewGeneratorResponse(g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update generator: %w", err)
	}
	return &resp, nil
}

// RemoveGeneratorCommand removes a generator cluster from a factory
type RemoveGeneratorCommand struct {
	FactoryID   string `validate:"required"`
	GeneratorID string `validate:"required"`
}

// RemoveGeneratorHandler handles the RemoveGenerator command
type RemoveGeneratorHandler struct {
	session *planning.Session
}

// NewRemoveGeneratorHandler creates a new RemoveGeneratorHandler
func NewRemoveGeneratorHandler(session *planning.Session) *RemoveGeneratorHandler {
	return &RemoveGeneratorHandler{session: session}
}

// Handle executes the RemoveGenerator command
func (h *RemoveGeneratorHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveGeneratorCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveGeneratorCommand")
	}

	err := h.session.Write(func(e *planner.Engine) error {
		return e.RemoveGenerator(cmd.FactoryID, cmd.GeneratorID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove generator: %w", err)
	}
	return &RemovedResponse{ID: cmd.GeneratorID}, nil
}
