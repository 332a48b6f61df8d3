package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// GetFactoryQuery returns one factory with its computed totals
type GetFactoryQuery struct {
	FactoryID string `validate:"required"`
}

// GetFactoryResponse wraps the factory read model
type GetFactoryResponse struct {
	Factory planner.FactoryResponse
}

// GetFactoryHandler handles the GetFactory query
type GetFactoryHandler struct {
	session *planning.Session
}

// NewGetFactoryHandler creates a new GetFactoryHandler
func NewGetFactoryHandler(session *planning.Session) *GetFactoryHandler {
	return &GetFactoryHandler{session: session}
}

// Handle executes the GetFactory query
func (h *GetFactoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetFactoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFactoryQuery")
	}

	var resp GetFactoryResponse
	err := h.session.Read(func(e *planner.Engine) error {
		var err error
		resp.Factory, err = e.FactoryResponse(query.FactoryID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get factory: %w", err)
	}
	return &resp, nil
}

// ListFactoriesQuery lists factories in creation order
type ListFactoriesQuery struct{}

// FactorySummary is a factory row without nested entities
type FactorySummary struct {
	ID                string
	Name              string
	UnitCount         int
	RawInputCount     int
	GeneratorCount    int
	TotalMachineCount int
	PowerBalance      float64
}

// ListFactoriesResponse holds factory summaries in creation order
type ListFactoriesResponse struct {
	Factories []FactorySummary
}

// ListFactoriesHandler handles the ListFactories query
type ListFactoriesHandler struct {
	session *planning.Session
}

// NewListFactoriesHandler creates a new ListFactoriesHandler
func NewListFactoriesHandler(session *planning.Session) *ListFactoriesHandler {
	return &ListFactoriesHandler{session: session}
}

// Handle executes the ListFactories query
func (h *ListFactoriesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListFactoriesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListFactoriesQuery")
	}

	resp := &ListFactoriesResponse{Factories: []FactorySummary{}}
	_ = h.session.Read(func(e *planner.Engine) error {
		for _, f := range e.Factories() {
			resp.Factories = append(resp.Factories, FactorySummary{
				ID:                f.ID(),
				Name:              f.Name(),
				UnitCount:         len(f.Units()),
				RawInputCount:     len(f.RawInputs()),
				GeneratorCount:    len(f.Generators()),
				TotalMachineCount: f.TotalMachineCount(),
				PowerBalance:      f.PowerBalance(),
			})
		}
		return nil
	})
	return resp, nil
}
