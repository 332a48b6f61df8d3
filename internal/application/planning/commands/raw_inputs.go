package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// AddRawInputCommand places an extractor or resource well system in a factory
type AddRawInputCommand struct {
	FactoryID  string                `validate:"required"`
	Definition extraction.Definition `validate:"required"`
}

// RawInputResponse carries the read model of the raw input a command touched
type RawInputResponse struct {
	RawInput planner.RawInputResponse
}

// AddRawInputHandler handles the AddRawInput command
type AddRawInputHandler struct {
	session *planning.Session
}

// NewAddRawInputHandler creates a new AddRawInputHandler
func NewAddRawInputHandler(session *planning.Session) *AddRawInputHandler {
	return &AddRawInputHandler{session: session}
}

// Handle executes the AddRawInput command
func (h *AddRawInputHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddRawInputCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddRawInputCommand")
	}

	var resp RawInputResponse
	err := h.session.Write(func(e *planner.Engine) error {
		r, err := e.AddRawInput(cmd.FactoryID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.RawInput = planner.NewRawInputResponse(r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add raw input: %w", err)
	}
	return &resp, nil
}

// UpdateRawInputCommand replaces a raw input's definition, keeping its id
type UpdateRawInputCommand struct {
	FactoryID  string                `validate:"required"`
	RawInputID string                `validate:"required"`
	Definition extraction.Definition `validate:"required"`
}

// UpdateRawInputHandler handles the UpdateRawInput command
type UpdateRawInputHandler struct {
	session *planning.Session
}

// NewUpdateRawInputHandler creates a new UpdateRawInputHandler
func NewUpdateRawInputHandler(session *planning.Session) *UpdateRawInputHandler {
	return &UpdateRawInputHandler{session: session}
}

// Handle executes the UpdateRawInput command
func (h *UpdateRawInputHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateRawInputCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateRawInputCommand")
	}

	var resp RawInputResponse
	err := h.session.Write(func(e *planner.Engine) error {
		r, err := e.UpdateRawInput(cmd.FactoryID, cmd.RawInputID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.RawInput = planner.NewRawInputResponse(r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update raw input: %w", err)
	}
	return &resp, nil
}

// RemoveRawInputCommand removes a raw input from a factory
type RemoveRawInputCommand struct {
	FactoryID  string `validate:"required"`
	RawInputID string `validate:"required"`
}

// RemoveRawInputHandler handles the RemoveRawInput command
type RemoveRawInputHandler struct {
	session *planning.Session
}

// NewRemoveRawInputHandler creates a new RemoveRawInputHandler
func NewRemoveRawInputHandler(session *planning.Session) *RemoveRawInputHandler {
	return &RemoveRawInputHandler{session: session}
}

// Handle executes the RemoveRawInput command
func (h *RemoveRawInputHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveRawInputCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveRawInputCommand")
	}

	err := h.session.Write(func(e *planner.Engine) error {
		return e.RemoveRawInput(cmd.FactoryID, cmd.RawInputID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove raw input: %w", err)
	}
	return &RemovedResponse{ID: cmd.RawInputID}, nil
}
