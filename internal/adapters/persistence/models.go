package persistence

import (
	"time"
)

// PlanModel represents the plans table. Document holds the full plan document as JSON
// and the counts are denormalized for listing.
type PlanModel struct {
	Name          string    `gorm:"column:name;primaryKey"`
	Document      string    `gorm:"column:document;type:text;not null"`
	FactoryCount  int       `gorm:"column:factory_count;not null;default:0"`
	LinkCount     int       `gorm:"column:link_count;not null;default:0"`
	TemplateCount int       `gorm:"column:template_count;not null;default:0"`
	SavedAt       time.Time `gorm:"column:saved_at;not null"`
}

func (PlanModel) TableName() string {
	return "plans"
}

// TemplateModel represents the blueprint_templates table (shared template library)
type TemplateModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null;index"`
	Description string    `gorm:"column:description"`
	DerivedFrom string    `gorm:"column:derived_from;index"`
	Definition  string    `gorm:"column:definition;type:text;not null"` // JSON blueprint definition
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (TemplateModel) TableName() string {
	return "blueprint_templates"
}
