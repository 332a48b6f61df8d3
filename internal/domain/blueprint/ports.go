package blueprint

import (
	"context"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
)

// TemplateRepository defines persistence operations for a shared template library
// that outlives any single plan
type TemplateRepository interface {
	// Save inserts or replaces a template
	Save(ctx context.Context, t *Template) error

	// FindByID retrieves a template; a missing id is a NotFoundError
	FindByID(ctx context.Context, id string, cat *catalog.Catalog) (*Template, error)

	// FindAll returns every template ordered by creation time
	FindAll(ctx context.Context, cat *catalog.Catalog) ([]*Template, error)

	// Delete removes a template; a missing id is a NotFoundError
	Delete(ctx context.Context, id string) error
}
