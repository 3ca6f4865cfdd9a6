package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/possync/internal/config"
	pkgerrors "github.com/storeops/possync/pkg/errors"
)

func newViper(t *testing.T, values map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func fullConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.Load(newViper(t, map[string]any{
		"shopify_store": "example.myshopify.com",
		"shopify_token": "shpat_test",
		"location_id":   "1234567",
		"pos_base_url":  "https://pos.example.com/export",
		"pos_password":  "secret",
	}))
}

func TestLoadDefaults(t *testing.T) {
	cfg := fullConfig(t)

	assert.Equal(t, config.DefaultAPIVersion, cfg.Shopify.APIVersion)
	assert.Equal(t, config.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, 200*time.Millisecond, cfg.Pacing.ItemInterval)
	assert.Equal(t, 200*time.Millisecond, cfg.Pacing.SubOpInterval)
	assert.Equal(t, 15*time.Second, cfg.MutationTimeout)
	assert.Equal(t, 60*time.Second, cfg.BulkTimeout)
	assert.False(t, cfg.DryRun)
}

func TestLoadOverrides(t *testing.T) {
	v := newViper(t, map[string]any{
		"shopify_api_version": "2025-01",
		"page_size":           50,
		"item_pace":           "500ms",
		"mutation_timeout":    "5s",
		"dry_run":             true,
	})
	cfg := config.Load(v)

	assert.Equal(t, "2025-01", cfg.Shopify.APIVersion)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Pacing.ItemInterval)
	assert.Equal(t, 5*time.Second, cfg.MutationTimeout)
	assert.True(t, cfg.DryRun)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SHOPIFY_STORE", "env.myshopify.com")
	cfg := config.Load(viper.New())
	assert.Equal(t, "env.myshopify.com", cfg.Shopify.Store)
}

func TestValidateComplete(t *testing.T) {
	require.NoError(t, fullConfig(t).Validate())
}

func TestValidateReportsEveryMissingKey(t *testing.T) {
	cfg := config.Load(newViper(t, map[string]any{
		"shopify_store": "example.myshopify.com",
	}))

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotConfigured(err))
	assert.Contains(t, err.Error(), "SHOPIFY_TOKEN")
	assert.Contains(t, err.Error(), "LOCATION_ID")
	assert.Contains(t, err.Error(), "POS_BASE_URL")
	assert.Contains(t, err.Error(), "POS_PASSWORD")
	assert.NotContains(t, err.Error(), "SHOPIFY_STORE")
}

func TestValidateTreatsBlankAsMissing(t *testing.T) {
	cfg := fullConfig(t)
	cfg.POS.Password = "   "

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POS_PASSWORD")
}
