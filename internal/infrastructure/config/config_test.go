package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, "{}\n"))

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "factoryplanner.db", cfg.Database.Path)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "reject", cfg.Planner.FactoryDeletePolicy)
	assert.Equal(t, "default", cfg.Planner.DefaultPlan)
	assert.Equal(t, "uuid", cfg.Planner.IDStrategy)
	assert.True(t, cfg.Planner.AutosaveEnabled())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9464, cfg.Metrics.Port)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
database:
  type: sqlite
  path: ":memory:"
planner:
  factory_delete_policy: reject
  default_plan: base
  autosave: false
logging:
  level: debug
`)
	t.Setenv("FP_PLANNER_FACTORY_DELETE_POLICY", "cascade")
	t.Setenv("FP_METRICS_PORT", "9100")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "cascade", cfg.Planner.FactoryDeletePolicy)
	assert.Equal(t, "base", cfg.Planner.DefaultPlan)
	assert.False(t, cfg.Planner.AutosaveEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9100, cfg.Metrics.Port)
}

func TestLoadConfig_RejectsUnknownDeletePolicy(t *testing.T) {
	path := writeConfig(t, "planner:\n  factory_delete_policy: orphan\n")

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete_policy")
}

func TestNewValidator_DeletePolicyRule(t *testing.T) {
	type policyHolder struct {
		Policy string `validate:"delete_policy"`
	}

	v, err := config.NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(policyHolder{Policy: "cascade"}))
	err = v.Validate(policyHolder{Policy: "orphan"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete_policy")
}

func TestLoadConfig_FileOutputNeedsPath(t *testing.T) {
	path := writeConfig(t, "logging:\n  output: file\n")

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FilePath")
}
