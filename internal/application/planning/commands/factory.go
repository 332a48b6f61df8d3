package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// CreateFactoryCommand creates an empty factory
type CreateFactoryCommand struct {
	Name        string `validate:"required"`
	Description string
	Notes       string
}

// FactoryResponse carries the read model of the factory a command touched
type FactoryResponse struct {
	Factory planner.FactoryResponse
}

// CreateFactoryHandler handles the CreateFactory command
type CreateFactoryHandler struct {
	session *planning.Session
}

// NewCreateFactoryHandler creates a new CreateFactoryHandler
func NewCreateFactoryHandler(session *planning.Session) *CreateFactoryHandler {
	return &CreateFactoryHandler{session: session}
}

// Handle executes the CreateFactory command
func (h *CreateFactoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateFactoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateFactoryCommand")
	}

	var resp FactoryResponse
	err := h.session.Write(func(e *planner.Engine) error {
		f, err := e.CreateFactory(cmd.Name, cmd.Description, cmd.Notes)
		if err != nil {
			return err
		}
		resp.Factory = planner.NewFactoryResponse(f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create factory: %w", err)
	}
	return &resp, nil
}

// UpdateFactoryCommand replaces a factory's descriptive fields
type UpdateFactoryCommand struct {
	FactoryID   string `validate:"required"`
	Name        string `validate:"required"`
	Description string
	Notes       string
}

// UpdateFactoryHandler handles the UpdateFactory command
type UpdateFactoryHandler struct {
	session *planning.Session
}

// NewUpdateFactoryHandler creates a new UpdateFactoryHandler
func NewUpdateFactoryHandler(session *planning.Session) *UpdateFactoryHandler {
	return &UpdateFactoryHandler{session: session}
}

// Handle executes the UpdateFactory command
func (h *UpdateFactoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateFactoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateFactoryCommand")
	}

	var resp FactoryResponse
	err := h.session.Write(func(e *planner.Engine) error {
		f, err := e.UpdateFactory(cmd.FactoryID, cmd.Name, cmd.Description, cmd.Notes)
		if err != nil {
			return err
		}
		resp.Factory = planner.NewFactoryResponse(f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update factory: %w", err)
	}
	return &resp, nil
}

// DeleteFactoryCommand removes a factory. What happens to its links depends on the
// engine's delete policy.
type DeleteFactoryCommand struct {
	FactoryID string `validate:"required"`
}

// DeleteFactoryResponse lists the links removed together with the factory
type DeleteFactoryResponse struct {
	RemovedLinkIDs []string
}

// DeleteFactoryHandler handles the DeleteFactory command
type DeleteFactoryHandler struct {
	session *planning.Session
}

// NewDeleteFactoryHandler creates a new DeleteFactoryHandler
func NewDeleteFactoryHandler(session *planning.Session) *DeleteFactoryHandler {
	return &DeleteFactoryHandler{session: session}
}

// Handle executes the DeleteFactory command
func (h *DeleteFactoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteFactoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteFactoryCommand")
	}

	var removed []string
	err := h.session.Write(func(e *planner.Engine) error {
		var err error
		removed, err = e.DeleteFactory(cmd.FactoryID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete factory: %w", err)
	}
	return &DeleteFactoryResponse{RemovedLinkIDs: removed}, nil
}
