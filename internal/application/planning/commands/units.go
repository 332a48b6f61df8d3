package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// AddProductionUnitCommand places a recipe line or blueprint in a factory
type AddProductionUnitCommand struct {
	FactoryID  string                `validate:"required"`
	Definition production.Definition `validate:"required"`
}

// UnitResponse carries the read model of the unit a command touched
type UnitResponse struct {
	Unit planner.UnitResponse
}

// AddProductionUnitHandler handles the AddProductionUnit command
type AddProductionUnitHandler struct {
	session *planning.Session
}

// NewAddProductionUnitHandler creates a new AddProductionUnitHandler
func NewAddProductionUnitHandler(session *planning.Session) *AddProductionUnitHandler {
	return &AddProductionUnitHandler{session: session}
}

// Handle executes the AddProductionUnit command
func (h *AddProductionUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddProductionUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddProductionUnitCommand")
	}

	var resp UnitResponse
	err := h.session.Write(func(e *planner.Engine) error {
		u, err := e.AddUnit(cmd.FactoryID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.Unit = planner.NewUnitResponse(u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add production unit: %w", err)
	}
	return &resp, nil
}

// UpdateProductionUnitCommand replaces a unit's definition, keeping its id
type UpdateProductionUnitCommand struct {
	FactoryID  string                `validate:"required"`
	UnitID     string                `validate:"required"`
	Definition production.Definition `validate:"required"`
}

// UpdateProductionUnitHandler handles the UpdateProductionUnit command
type UpdateProductionUnitHandler struct {
	session *planning.Session
}

// NewUpdateProductionUnitHandler creates a new UpdateProductionUnitHandler
func NewUpdateProductionUnitHandler(session *planning.Session) *UpdateProductionUnitHandler {
	return &UpdateProductionUnitHandler{session: session}
}

// Handle executes the UpdateProductionUnit command
func (h *UpdateProductionUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateProductionUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateProductionUnitCommand")
	}

	var resp UnitResponse
	err := h.session.Write(func(e *planner.Engine) error {
		u, err := e.UpdateUnit(cmd.FactoryID, cmd.UnitID, cmd.Definition)
		if err != nil {
			return err
		}
		resp.Unit = planner.NewUnitResponse(u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update production unit: %w", err)
	}
	return &resp, nil
}

// SetMachineGroupsCommand replaces the machine groups of a recipe line, either a
// top-level unit or a line nested in a blueprint
type SetMachineGroupsCommand struct {
	FactoryID     string                    `validate:"required"`
	UnitID        string                    `validate:"required"`
	LineID        string                    // empty when UnitID is itself a recipe line
	MachineGroups []production.MachineGroup `validate:"required,min=1"`
}

// SetMachineGroupsHandler handles the SetMachineGroups command
type SetMachineGroupsHandler struct {
	session *planning.Session
}

// NewSetMachineGroupsHandler creates a new SetMachineGroupsHandler
func NewSetMachineGroupsHandler(session *planning.Session) *SetMachineGroupsHandler {
	return &SetMachineGroupsHandler{session: session}
}

// Handle executes the SetMachineGroups command
func (h *SetMachineGroupsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetMachineGroupsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetMachineGroupsCommand")
	}

	var resp UnitResponse
	err := h.session.Write(func(e *planner.Engine) error {
		f, err := e.Factory(cmd.FactoryID)
		if err != nil {
			return err
		}
		u, err := f.Unit(cmd.UnitID)
		if err != nil {
			return err
		}
		def, err := withMachineGroups(u, cmd.LineID, cmd.MachineGroups)
		if err != nil {
			return err
		}
		updated, err := e.UpdateUnit(cmd.FactoryID, cmd.UnitID, def)
		if err != nil {
			return err
		}
		resp.Unit = planner.NewUnitResponse(updated)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set machine groups: %w", err)
	}
	return &resp, nil
}

func withMachineGroups(u production.Unit, lineID string, groups []production.MachineGroup) (production.Definition, error) {
	switch v := u.(type) {
	case *production.RecipeLine:
		if lineID != "" && lineID != v.ID() {
			return nil, shared.NewNotFoundError("recipe line", lineID)
		}
		def := v.Definition().(production.RecipeLineDefinition)
		def.MachineGroups = groups
		return def, nil
	case *production.Blueprint:
		def := v.BlueprintDefinition()
		for i, l := range v.Lines() {
			if l.ID() == lineID {
				def.Lines[i].MachineGroups = groups
				return def, nil
			}
		}
		return nil, shared.NewNotFoundError("recipe line", lineID)
	default:
		return nil, fmt.Errorf("unsupported production unit %T", u)
	}
}

// RemoveProductionUnitCommand removes a unit from a factory
type RemoveProductionUnitCommand struct {
	FactoryID string `validate:"required"`
	UnitID    string `validate:"required"`
}

// RemovedResponse acknowledges a removal
type RemovedResponse struct {
	ID string
}

// RemoveProductionUnitHandler handles the RemoveProductionUnit command
type RemoveProductionUnitHandler struct {
	session *planning.Session
}

// NewRemoveProductionUnitHandler creates a new RemoveProductionUnitHandler
func NewRemoveProductionUnitHandler(session *planning.Session) *RemoveProductionUnitHandler {
	return &RemoveProductionUnitHandler{session: session}
}

// Handle executes the RemoveProductionUnit command
func (h *RemoveProductionUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveProductionUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveProductionUnitCommand")
	}

	err := h.session.Write(func(e *planner.Engine) error {
		return e.RemoveUnit(cmd.FactoryID, cmd.UnitID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove production unit: %w", err)
	}
	return &RemovedResponse{ID: cmd.UnitID}, nil
}
