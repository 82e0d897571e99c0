package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		driver string
		dsn    string
	}{
		{
			name:   "defaults to sqlite file",
			env:    map[string]string{},
			driver: DriverSQLite,
			dsn:    "widgets.db",
		},
		{
			name:   "sqlite path override",
			env:    map[string]string{"WIDGET_DB_PATH": "/tmp/w.db"},
			driver: DriverSQLite,
			dsn:    "/tmp/w.db",
		},
		{
			name: "postgres url",
			env: map[string]string{
				"WIDGET_DB_DRIVER":    "Postgres",
				"WIDGET_DATABASE_URL": "postgres://u:p@localhost/w",
			},
			driver: DriverPostgres,
			dsn:    "postgres://u:p@localhost/w",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"WIDGET_DB_DRIVER", "WIDGET_DB_PATH", "WIDGET_DATABASE_URL"} {
				t.Setenv(k, tt.env[k])
			}
			cfg := ConfigFromEnv("WIDGET", "widgets.db")
			assert.Equal(t, tt.driver, cfg.Driver)
			assert.Equal(t, tt.dsn, cfg.DSN)
		})
	}
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(Config{Driver: DriverSQLite, DSN: ":memory:"}, &widget{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Create(&widget{ID: "w1", Name: "gear"}).Error)

	var got widget
	require.NoError(t, db.First(&got, "id = ?", "w1").Error)
	assert.Equal(t, "gear", got.Name)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
