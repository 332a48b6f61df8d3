package config

// PlannerConfig holds planning engine configuration
type PlannerConfig struct {
	// Optional YAML file extending the built-in catalog
	CatalogPath string `mapstructure:"catalog_path" validate:"omitempty,file"`

	// What deleting a factory does to its links: reject or cascade
	FactoryDeletePolicy string `mapstructure:"factory_delete_policy" validate:"required,delete_policy"`

	// Plan loaded at startup and saved after every change
	DefaultPlan string `mapstructure:"default_plan" validate:"required,max=128"`

	// Entity id format: uuid, or sequential for reproducible documents
	IDStrategy string `mapstructure:"id_strategy" validate:"required,oneof=uuid sequential"`

	// Save the plan after every successful mutation (default true)
	Autosave *bool `mapstructure:"autosave"`
}

// AutosaveEnabled reports whether mutations are persisted immediately
func (c PlannerConfig) AutosaveEnabled() bool {
	return c.Autosave == nil || *c.Autosave
}
