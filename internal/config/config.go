// Package config loads and validates possync runtime configuration.
//
// Values come from the environment (optionally seeded from a .env file) and
// from any config file or flags bound through Viper by the command layer.
// Validation happens once, before any network activity: a run with missing
// credentials never gets far enough to issue a request.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/storeops/possync/pkg/errors"
	"github.com/storeops/possync/pkg/logging"
)

// Defaults for tunables that have sensible values without configuration.
const (
	DefaultAPIVersion      = "2024-07"
	DefaultPageSize        = 250
	DefaultItemPace        = 200 * time.Millisecond
	DefaultSubOpPace       = 200 * time.Millisecond
	DefaultMutationTimeout = 15 * time.Second
	DefaultBulkTimeout     = 60 * time.Second
)

// Shopify holds storefront connection settings.
type Shopify struct {
	// Store is the myshopify domain, e.g. "example.myshopify.com".
	Store string
	// Token is the Admin API access token sent as X-Shopify-Access-Token.
	Token string
	// APIVersion selects the Admin API version path segment.
	APIVersion string
	// LocationID is the numeric location the stock mutation targets.
	LocationID string
}

// POS holds point-of-sale export settings.
type POS struct {
	// BaseURL is the bulk export endpoint.
	BaseURL string
	// Password is the shared secret passed as the "ps" query parameter.
	Password string
}

// Pacing holds the spacing requirements for remote mutation calls.
type Pacing struct {
	// ItemInterval is the minimum spacing between two storefront items.
	ItemInterval time.Duration
	// SubOpInterval separates the stock and price calls for one item.
	SubOpInterval time.Duration
}

// Config is the immutable configuration value constructed once at process
// start and passed into the snapshot builders and mutation callers.
type Config struct {
	Shopify Shopify
	POS     POS
	Pacing  Pacing

	// PageSize is the storefront listing page size.
	PageSize int
	// MutationTimeout bounds stock/price mutation calls.
	MutationTimeout time.Duration
	// BulkTimeout bounds the POS bulk export call.
	BulkTimeout time.Duration
	// DryRun computes outcomes without issuing mutations.
	DryRun bool
}

// LoadEnvFiles loads .env files into the process environment. Missing files
// are not an error; existing environment variables win.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logging.Warn().Str("path", path).Err(err).Msg("failed to load env file")
		}
	}
}

// Load assembles a Config from Viper. The command layer is expected to have
// called viper.AutomaticEnv (with the usual key replacer) and bound any flags
// before this point.
func Load(v *viper.Viper) *Config {
	if v == nil {
		v = viper.GetViper()
	}

	v.SetDefault("shopify_api_version", DefaultAPIVersion)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("item_pace", DefaultItemPace)
	v.SetDefault("sub_op_pace", DefaultSubOpPace)
	v.SetDefault("mutation_timeout", DefaultMutationTimeout)
	v.SetDefault("bulk_timeout", DefaultBulkTimeout)

	return &Config{
		Shopify: Shopify{
			Store:      getString(v, "shopify_store"),
			Token:      getString(v, "shopify_token"),
			APIVersion: getString(v, "shopify_api_version"),
			LocationID: getString(v, "location_id"),
		},
		POS: POS{
			BaseURL:  getString(v, "pos_base_url"),
			Password: getString(v, "pos_password"),
		},
		Pacing: Pacing{
			ItemInterval:  v.GetDuration("item_pace"),
			SubOpInterval: v.GetDuration("sub_op_pace"),
		},
		PageSize:        v.GetInt("page_size"),
		MutationTimeout: v.GetDuration("mutation_timeout"),
		BulkTimeout:     v.GetDuration("bulk_timeout"),
		DryRun:          v.GetBool("dry_run"),
	}
}

// Validate checks the fatal preconditions. It reports every missing key in
// one error so the operator fixes them all at once.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"SHOPIFY_STORE", c.Shopify.Store},
		{"SHOPIFY_TOKEN", c.Shopify.Token},
		{"LOCATION_ID", c.Shopify.LocationID},
		{"POS_BASE_URL", c.POS.BaseURL},
		{"POS_PASSWORD", c.POS.Password},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return errors.NewConfigError("possync",
			"missing required settings: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// getString checks both Viper and the raw OS environment. Viper only sees
// variables it has been told about unless AutomaticEnv bound them, so the
// direct lookup keeps plain `SHOPIFY_TOKEN=... possync sync` working.
func getString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(strings.ToUpper(key))
}
