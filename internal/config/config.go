package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/identity"
)

// Mark-sold modes
const (
	ModeTransactional = "transactional"
	ModeBestEffort    = "best_effort"
)

// Environment overrides
const (
	EnvDBPath       = "RESALE_DB_PATH"
	EnvMarkup       = "RESALE_MARKUP"
	EnvMarkSoldMode = "RESALE_MARK_SOLD_MODE"
	EnvActor        = "RESALE_ACTOR"
	EnvRole         = "RESALE_ROLE"
)

const currentVersion = "1"

// Config represents the marketplace configuration.
type Config struct {
	Version          string `json:"version"`
	DBPath           string `json:"db_path,omitempty"`
	Markup           string `json:"markup"`         // multiplier applied to base_price on go-live
	OtherCharges     string `json:"other_charges"`  // default delivery charge per order
	MarkSoldMode     string `json:"mark_sold_mode"` // "transactional" or "best_effort"
	VerifyCartPrices bool   `json:"verify_cart_prices"`
	ActorID          string `json:"actor_id,omitempty"` // default CLI identity
	Role             string `json:"role,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:      currentVersion,
		Markup:       "1.25",
		OtherCharges: "0",
		MarkSoldMode: ModeTransactional,
	}
}

// LoadConfig reads .resale/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".resale", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	resaleDir := filepath.Join(dir, ".resale")
	if err := os.MkdirAll(resaleDir, 0755); err != nil {
		return fmt.Errorf("failed to create .resale dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(resaleDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Load resolves the effective configuration for dir: defaults, then the
// config file if present, then .env, then the environment.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from RESALE_* environment variables.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		key   string
		field *string
	}{
		{EnvDBPath, &c.DBPath},
		{EnvMarkup, &c.Markup},
		{EnvMarkSoldMode, &c.MarkSoldMode},
		{EnvActor, &c.ActorID},
		{EnvRole, &c.Role},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.field = v
		}
	}
}

// Validate rejects unknown modes and roles and out-of-range prices.
func (c *Config) Validate() error {
	switch c.MarkSoldMode {
	case ModeTransactional, ModeBestEffort:
	default:
		return fmt.Errorf("invalid mark_sold_mode %q (want %s or %s)", c.MarkSoldMode, ModeTransactional, ModeBestEffort)
	}

	if c.Role != "" {
		if _, err := identity.ParseRole(c.Role); err != nil {
			return fmt.Errorf("invalid role: %w", err)
		}
	}

	markup, err := c.MarkupDecimal()
	if err != nil {
		return err
	}
	if markup.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid markup %s: must be at least 1", markup)
	}

	charges, err := c.OtherChargesDecimal()
	if err != nil {
		return err
	}
	if charges.IsNegative() {
		return fmt.Errorf("invalid other_charges %s: must not be negative", charges)
	}

	return nil
}

// MarkupDecimal parses the markup multiplier.
func (c *Config) MarkupDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Markup)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid markup %q: %w", c.Markup, err)
	}
	return d, nil
}

// OtherChargesDecimal parses the default delivery charge. Empty means zero.
func (c *Config) OtherChargesDecimal() (decimal.Decimal, error) {
	if c.OtherCharges == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(c.OtherCharges)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid other_charges %q: %w", c.OtherCharges, err)
	}
	return d, nil
}
