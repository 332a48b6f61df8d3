package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// CreateLinkCommand connects two factories with a logistics link
type CreateLinkCommand struct {
	Definition logistics.LinkDefinition
}

// LinkResponse carries the read model of the link a command touched
type LinkResponse struct {
	Link planner.LinkResponse
}

// CreateLinkHandler handles the CreateLink command
type CreateLinkHandler struct {
	session *planning.Session
}

// NewCreateLinkHandler creates a new CreateLinkHandler
func NewCreateLinkHandler(session *planning.Session) *CreateLinkHandler {
	return &CreateLinkHandler{session: session}
}

// Handle executes the CreateLink command
func (h *CreateLinkHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateLinkCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateLinkCommand")
	}

	var resp LinkResponse
	err := h.session.Write(func(e *planner.Engine) error {
		l, err := e.CreateLink(cmd.Definition)
		if err != nil {
			return err
		}
		resp.Link = planner.NewLinkResponse(l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return &resp, nil
}

// UpdateLinkCommand replaces a link's endpoints, flows and transport
type UpdateLinkCommand struct {
	LinkID     string `validate:"required"`
	Definition logistics.LinkDefinition
}

// UpdateLinkHandler handles the UpdateLink command
type UpdateLinkHandler struct {
	session *planning.Session
}

// NewUpdateLinkHandler creates a new UpdateLinkHandler
func NewUpdateLinkHandler(session *planning.Session) *UpdateLinkHandler {
	return &UpdateLinkHandler{session: session}
}

// Handle executes the UpdateLink command
func (h *UpdateLinkHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateLinkCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateLinkCommand")
	}

	var resp LinkResponse
	err := h.session.Write(func(e *planner.Engine) error {
		l, err := e.UpdateLink(cmd.LinkID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.Link = planner.NewLinkResponse(l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return &resp, nil
}

// DeleteLinkCommand removes a logistics link
type DeleteLinkCommand struct {
	LinkID string `validate:"required"`
}

// DeleteLinkHandler handles the DeleteLink command
type DeleteLinkHandler struct {
	session *planning.Session
}

// NewDeleteLinkHandler creates a new DeleteLinkHandler
func NewDeleteLinkHandler(session *planning.Session) *DeleteLinkHandler {
	return &DeleteLinkHandler{session: session}
}

// Handle executes the DeleteLink command
func (h *DeleteLinkHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteLinkCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteLinkCommand")
	}

	err := h.session.Write(func(e *planner.Engine) error {
		return e.DeleteLink(cmd.LinkID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete link: %w", err)
	}
	return &RemovedResponse{ID: cmd.LinkID}, nil
}
