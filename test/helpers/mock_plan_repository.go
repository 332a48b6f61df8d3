package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// MockPlanRepository is an in-memory test double for planner.PlanRepository
type MockPlanRepository struct {
	mu        sync.RWMutex
	plans     map[string]*planner.SavedPlan
	summaries map[string]planner.PlanSummary
	SaveCalls int
}

// NewMockPlanRepository creates a new mock plan repository
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		plans:     make(map[string]*planner.SavedPlan),
		summaries: make(map[string]planner.PlanSummary),
	}
}

// Save stores a copy of the plan
func (m *MockPlanRepository) Save(ctx context.Context, plan *planner.SavedPlan, summary planner.PlanSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := make([]byte, len(plan.Document))
	copy(doc, plan.Document)
	m.plans[plan.Name] = &planner.SavedPlan{Name: plan.Name, Document: doc, SavedAt: plan.SavedAt}
	m.summaries[plan.Name] = summary
	m.SaveCalls++
	return nil
}

// Load retrieves a plan by name
func (m *MockPlanRepository) Load(ctx context.Context, name string) (*planner.SavedPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[name]
	if !ok {
		return nil, shared.NewNotFoundError("plan", name)
	}
	return p, nil
}

// List returns summaries ordered by name
func (m *MockPlanRepository) List(ctx context.Context) ([]planner.PlanSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planner.PlanSummary, 0, len(m.summaries))
	for _, s := range m.summaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a plan by name
func (m *MockPlanRepository) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[name]; !ok {
		return shared.NewNotFoundError("plan", name)
	}
	delete(m.plans, name)
	delete(m.summaries, name)
	return nil
}
