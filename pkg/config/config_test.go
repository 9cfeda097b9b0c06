package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorageDriverPostgres, cfg.Inventory.StorageDriver)
	assert.Equal(t, DeletePolicyArchive, cfg.Inventory.DeletePolicy)
	assert.Equal(t, 5*time.Second, cfg.Inventory.MutationTimeout)
	assert.Equal(t, 10, cfg.Inventory.LowStockLimit)
	assert.Equal(t, []string{"admin", "manager", "staff"}, cfg.Auth.MutationRoles)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("INVENTORY_STORAGE_DRIVER", "memory")
	v.Set("INVENTORY_MUTATION_TIMEOUT", "250ms")
	v.Set("INVENTORY_DELETE_POLICY", "cascade")
	v.Set("AUTH_MUTATION_ROLES", " admin , gudang ,")
	v.Set("DB_PORT", "6543")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Inventory.StorageDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.Inventory.MutationTimeout)
	assert.Equal(t, DeletePolicyCascade, cfg.Inventory.DeletePolicy)
	assert.Equal(t, []string{"admin", "gudang"}, cfg.Auth.MutationRoles)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("INVENTORY_DELETE_POLICY", "soft")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("INVENTORY_STORAGE_DRIVER", "mysql")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "material_db", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/material_db?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
