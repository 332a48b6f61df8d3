package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/database"
)

func TestNewConnection_MigratesSQLite(t *testing.T) {
	db, err := database.NewConnection(&config.DatabaseConfig{Type: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable("plans"))
	assert.True(t, db.Migrator().HasTable("blueprint_templates"))
}

func TestNewConnection_RejectsUnknownType(t *testing.T) {
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "mysql"})

	assert.EqualError(t, err, "unsupported database type: mysql")
}
