package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrescamacho/factoryplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/factoryplanner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/database"
	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/logging"
)

// Runtime is everything a command needs: the loaded plan behind a session and the
// mediator that dispatches requests against it
type Runtime struct {
	Config   *config.Config
	Logger   *zap.Logger
	Session  *planning.Session
	Mediator mediator.Mediator

	db       *gorm.DB
	dirty    bool
	autosave bool
}

// NewRuntime wires configuration, logging, storage and handlers, then loads the
// configured plan. planOverride replaces the configured default plan name.
func NewRuntime(ctx context.Context, cfg *config.Config, planOverride string) (*Runtime, error) {
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cat, err := catalog.Load(cfg.Planner.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	policy, err := planner.ParseDeletePolicy(cfg.Planner.FactoryDeletePolicy)
	if err != nil {
		return nil, err
	}

	var ids shared.IDGenerator = shared.NewUUIDGenerator()
	if cfg.Planner.IDStrategy == "sequential" {
		ids = shared.NewSequentialIDGenerator("id")
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	engine := planner.NewEngine(planner.Options{
		Catalog:      cat,
		IDs:          ids,
		DeletePolicy: policy,
	})

	planName := cfg.Planner.DefaultPlan
	if planOverride != "" {
		planName = planOverride
	}

	session := planning.NewSession(
		engine,
		planName,
		persistence.NewGormPlanRepository(db),
		persistence.NewGormTemplateRepository(db),
	)

	med := mediator.NewMediator()
	med.RegisterMiddleware(planning.LoggingMiddleware(logger))
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandMetrics := metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		med.RegisterMiddleware(metrics.PrometheusMiddleware(commandMetrics))
	}
	med.RegisterMiddleware(planning.ValidationMiddleware(validator.New()))

	if err := commands.RegisterHandlers(med, session); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	if err := queries.RegisterHandlers(med, session); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Session:  session,
		Mediator: med,
		db:       db,
		autosave: cfg.Planner.AutosaveEnabled(),
	}

	if err := rt.loadPlan(ctx, planName); err != nil {
		_ = rt.Close()
		return nil, err
	}

	if cfg.Metrics.Enabled {
		planMetrics := metrics.NewPlanMetricsCollector()
		if err := planMetrics.Register(); err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("failed to register plan metrics: %w", err)
		}
		session.Subscribe(planMetrics)
	}

	return rt, nil
}

// loadPlan restores the named plan; a plan that was never saved starts empty
func (r *Runtime) loadPlan(ctx context.Context, name string) error {
	_, err := r.Mediator.Send(ctx, &commands.LoadPlanCommand{Name: name})
	if err == nil {
		return nil
	}
	// only a missing plan row starts empty; a stored plan that fails to restore must
	// not be replaced by the next autosave
	var missing *shared.NotFoundError
	if errors.As(err, &missing) && missing.Kind == "plan" {
		r.Logger.Debug("starting empty plan", zap.String("plan", name))
		return nil
	}
	return fmt.Errorf("failed to load plan %s: %w", name, err)
}

// Query dispatches a read-only request
func (r *Runtime) Query(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return r.Mediator.Send(ctx, request)
}

// Mutate dispatches a request that changes the plan and marks it for autosave
func (r *Runtime) Mutate(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	resp, err := r.Mediator.Send(ctx, request)
	if err != nil {
		return nil, err
	}
	r.dirty = true
	return resp, nil
}

// Finish saves the plan when it changed and autosave is on
func (r *Runtime) Finish(ctx context.Context) error {
	if !r.dirty || !r.autosave {
		return nil
	}
	if _, err := r.Mediator.Send(ctx, &commands.SavePlanCommand{}); err != nil {
		return fmt.Errorf("failed to autosave plan: %w", err)
	}
	r.dirty = false
	return nil
}

// Close releases the database and flushes the logger
func (r *Runtime) Close() error {
	_ = r.Logger.Sync()
	if r.db == nil {
		return nil
	}
	return database.Close(r.db)
}
