package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/blueprint"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GORM template repository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Save inserts or replaces a template
func (r *GormTemplateRepository) Save(ctx context.Context, t *blueprint.Template) error {
	model, err := r.templateToModel(t)
	if err != nil {
		return fmt.Errorf("failed to convert template to model: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save template: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a template by id
func (r *GormTemplateRepository) FindByID(ctx context.Context, id string, cat *catalog.Catalog) (*blueprint.Template, error) {
	var model TemplateModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("template", id)
		}
		return nil, fmt.Errorf("failed to find template: %w", result.Error)
	}
	return r.modelToTemplate(&model, cat)
}

// FindAll returns every template ordered by creation time
func (r *GormTemplateRepository) FindAll(ctx context.Context, cat *catalog.Catalog) ([]*blueprint.Template, error) {
	var models []TemplateModel
	result := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list templates: %w", result.Error)
	}

	templates := make([]*blueprint.Template, 0, len(models))
	for i := range models {
		t, err := r.modelToTemplate(&models[i], cat)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// Delete removes a template by id
func (r *GormTemplateRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TemplateModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("template", id)
	}
	return nil
}

// modelToTemplate validates the stored definition against cat
func (r *GormTemplateRepository) modelToTemplate(model *TemplateModel, cat *catalog.Catalog) (*blueprint.Template, error) {
	var def production.BlueprintDefinition
	if err := json.Unmarshal([]byte(model.Definition), &def); err != nil {
		return nil, shared.NewSerializationError(fmt.Sprintf("template %s has a malformed definition", model.ID), err)
	}
	t, err := blueprint.ReconstructTemplate(model.ID, def, model.DerivedFrom, model.CreatedAt.UTC(), cat)
	if err != nil {
		return nil, shared.NewSerializationError(fmt.Sprintf("template %s is invalid", model.ID), err)
	}
	return t, nil
}

func (r *GormTemplateRepository) templateToModel(t *blueprint.Template) (*TemplateModel, error) {
	def, err := json.Marshal(t.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal definition: %w", err)
	}
	return &TemplateModel{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		DerivedFrom: t.DerivedFrom(),
		Definition:  string(def),
		CreatedAt:   t.CreatedAt().UTC(),
	}, nil
}
