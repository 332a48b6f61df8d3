package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// MockTemplateRepository is an in-memory test double for blueprint.TemplateRepository
type MockTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]*blueprint.Template
}

// NewMockTemplateRepository creates a new mock template repository
func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{templates: make(map[string]*blueprint.Template)}
}

// Save inserts or replaces a template
func (m *MockTemplateRepository) Save(ctx context.Context, t *blueprint.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID()] = t
	return nil
}

// FindByID retrieves a template by id
func (m *MockTemplateRepository) FindByID(ctx context.Context, id string, cat *catalog.Catalog) (*blueprint.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, shared.NewNotFoundError("template", id)
	}
	return t, nil
}

// FindAll returns every template ordered by creation time
func (m *MockTemplateRepository) FindAll(ctx context.Context, cat *catalog.Catalog) ([]*blueprint.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*blueprint.Template, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID() < out[j].ID()
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

// Delete removes a template by id
func (m *MockTemplateRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return shared.NewNotFoundError("template", id)
	}
	delete(m.templates, id)
	return nil
}
