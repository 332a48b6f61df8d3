package planning

import (
	"errors"
	"sync"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// ErrNoPlanRepository is returned by plan persistence commands when the session has no store
var ErrNoPlanRepository = errors.New("plan repository not configured")

// ErrNoTemplateRepository is returned when the shared template library is not configured
var ErrNoTemplateRepository = errors.New("template repository not configured")

// Observer is notified after every successful mutation, while the session still holds
// its lock. Observers must only read from the engine.
type Observer interface {
	PlanChanged(e *planner.Engine)
}

// Session owns one planner engine and serializes access to it: mutations run one at a
// time and never overlap a read.
type Session struct {
	mu        sync.RWMutex
	engine    *planner.Engine
	planName  string
	plans     planner.PlanRepository
	templates blueprint.TemplateRepository
	observers []Observer
}

// NewSession wraps engine. plans and templates may be nil when persistence is disabled.
func NewSession(
	engine *planner.Engine,
	planName string,
	plans planner.PlanRepository,
	templates blueprint.TemplateRepository,
) *Session {
	return &Session{
		engine:    engine,
		planName:  planName,
		plans:     plans,
		templates: templates,
	}
}

// Read runs fn with shared access to the engine
func (s *Session) Read(fn func(e *planner.Engine) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.engine)
}

// Write runs fn with exclusive access to the engine and notifies observers when fn
// succeeds
func (s *Session) Write(fn func(e *planner.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.engine); err != nil {
		return err
	}
	for _, o := range s.observers {
		o.PlanChanged(s.engine)
	}
	return nil
}

// Subscribe registers an observer and immediately reports the current plan to it
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
	o.PlanChanged(s.engine)
}

// PlanName returns the name the plan is saved under by default
func (s *Session) PlanName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planName
}

// SetPlanName changes the default save name
func (s *Session) SetPlanName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planName = name
}

// Plans returns the plan repository or ErrNoPlanRepository
func (s *Session) Plans() (planner.PlanRepository, error) {
	if s.plans == nil {
		return nil, ErrNoPlanRepository
	}
	return s.plans, nil
}

// Templates returns the shared template repository or ErrNoTemplateRepository
func (s *Session) Templates() (blueprint.TemplateRepository, error) {
	if s.templates == nil {
		return nil, ErrNoTemplateRepository
	}
	return s.templates, nil
}
