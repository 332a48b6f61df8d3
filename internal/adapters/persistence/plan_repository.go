package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM plan repository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save creates or replaces the plan stored under plan.Name
func (r *GormPlanRepository) Save(ctx context.Context, plan *planner.SavedPlan, summary planner.PlanSummary) error {
	model := &PlanModel{
		Name:          plan.Name,
		Document:      string(plan.Document),
		FactoryCount:  summary.FactoryCount,
		LinkCount:     summary.LinkCount,
		TemplateCount: summary.TemplateCount,
		SavedAt:       plan.SavedAt.UTC(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save plan: %w", result.Error)
	}
	return nil
}

// Load retrieves a plan by name
func (r *GormPlanRepository) Load(ctx context.Context, name string) (*planner.SavedPlan, error) {
	var model PlanModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("plan", name)
		}
		return nil, fmt.Errorf("failed to load plan: %w", result.Error)
	}

	return &planner.SavedPlan{
		Name:     model.Name,
		Document: []byte(model.Document),
		SavedAt:  model.SavedAt.UTC(),
	}, nil
}

// List returns summaries of every saved plan ordered by name. The documents are not
// read.
func (r *GormPlanRepository) List(ctx context.Context) ([]planner.PlanSummary, error) {
	var models []PlanModel
	result := r.db.WithContext(ctx).
		Select("name", "factory_count", "link_count", "template_count", "saved_at").
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list plans: %w", result.Error)
	}

	summaries := make([]planner.PlanSummary, 0, len(models))
	for _, m := range models {
		summaries = append(summaries, planner.PlanSummary{
			Name:          m.Name,
			FactoryCount:  m.FactoryCount,
			LinkCount:     m.LinkCount,
			TemplateCount: m.TemplateCount,
			SavedAt:       m.SavedAt.UTC(),
		})
	}
	return summaries, nil
}

// Delete removes a plan by name
func (r *GormPlanRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&PlanModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("plan", name)
	}
	return nil
}
