package planner

import (
	"context"
	"time"
)

// SavedPlan is a named, serialized plan document
type SavedPlan struct {
	Name     string
	Document []byte
	SavedAt  time.Time
}

// PlanSummary describes a saved plan without its document
type PlanSummary struct {
	Name          string
	FactoryCount  int
	LinkCount     int
	TemplateCount int
	SavedAt       time.Time
}

// PlanRepository defines persistence operations for named plans
type PlanRepository interface {
	// Save creates or replaces the plan stored under plan.Name
	Save(ctx context.Context, plan *SavedPlan, summary PlanSummary) error

	// Load retrieves a plan by name; a missing plan is a NotFoundError
	Load(ctx context.Context, name string) (*SavedPlan, error)

	// List returns summaries of every saved plan ordered by name
	List(ctx context.Context) ([]PlanSummary, error)

	// Delete removes a plan; a missing plan is a NotFoundError
	Delete(ctx context.Context, name string) error
}

// Summary counts what the engine currently holds
func (e *Engine) Summary(name string, savedAt time.Time) PlanSummary {
	return PlanSummary{
		Name:          name,
		FactoryCount:  e.factories.Len(),
		LinkCount:     e.links.Len(),
		TemplateCount: e.templates.Len(),
		SavedAt:       savedAt,
	}
}

// Now returns the engine clock's current time
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}
