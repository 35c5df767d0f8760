package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/services"
)

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override
const EnvPrefix = "STOREFRONT_"

// Config holds storefront configuration. Precedence, lowest first: defaults,
// YAML file, STOREFRONT_* environment, command-line flags.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Checkout CheckoutConfig `yaml:"checkout"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
}

// StoreConfig seeds the store settings
type StoreConfig struct {
	Name         string `yaml:"name"`
	ContactEmail string `yaml:"contact_email"`
	Open         string `yaml:"open"`
	Close        string `yaml:"close"`
	// TaxRate is kept as a string so the rate stays an exact decimal
	TaxRate  string `yaml:"tax_rate"`
	ItemCap  int    `yaml:"item_cap"`
	Timezone string `yaml:"timezone"`
}

// CheckoutConfig tunes the pickup slot planner
type CheckoutConfig struct {
	SlotStepMinutes     int `yaml:"slot_step_minutes"`
	SlotRoundingMinutes int `yaml:"slot_rounding_minutes"`
}

// HTTPConfig configures the API server
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a configuration usable without any file or environment
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Name:     "Liquor Store",
			Open:     "09:00",
			Close:    "21:00",
			TaxRate:  "0",
			ItemCap:  entities.DefaultItemCap,
			Timezone: "Local",
		},
		Checkout: CheckoutConfig{
			SlotStepMinutes:     services.DefaultSlotStepMinutes,
			SlotRoundingMinutes: services.DefaultSlotRoundingMinutes,
		},
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a validated configuration from defaults, an optional YAML file
// and the environment
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile overlays values from a YAML file onto c
func (c *Config) LoadFromFile(path string) error {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %q: %w", ext, ErrInvalidConfig)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", cleanPath, err)
	}
	return nil
}

// LoadFromEnv overlays STOREFRONT_* environment variables onto c
func (c *Config) LoadFromEnv() error {
	strs := map[string]*string{
		"STORE_NAME":          &c.Store.Name,
		"STORE_CONTACT_EMAIL": &c.Store.ContactEmail,
		"STORE_OPEN":          &c.Store.Open,
		"STORE_CLOSE":         &c.Store.Close,
		"STORE_TAX_RATE":      &c.Store.TaxRate,
		"STORE_TIMEZONE":      &c.Store.Timezone,
		"HTTP_ADDRESS":        &c.HTTP.Address,
		"LOG_LEVEL":           &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"STORE_ITEM_CAP":                 &c.Store.ItemCap,
		"CHECKOUT_SLOT_STEP_MINUTES":     &c.Checkout.SlotStepMinutes,
		"CHECKOUT_SLOT_ROUNDING_MINUTES": &c.Checkout.SlotRoundingMinutes,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"HTTP_READ_TIMEOUT":     &c.HTTP.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":    &c.HTTP.WriteTimeout,
		"HTTP_SHUTDOWN_TIMEOUT": &c.HTTP.ShutdownTimeout,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "LOG_DEVELOPMENT"); ok {
		c.Log.Development = parseBool(v)
	}
	return nil
}

// Validate checks that the configuration can seed a working store
func (c *Config) Validate() error {
	if _, err := c.StoreSettings(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Checkout.SlotStepMinutes < 1 {
		return fmt.Errorf("checkout.slot_step_minutes must be positive, got %d: %w", c.Checkout.SlotStepMinutes, ErrInvalidConfig)
	}
	if c.Checkout.SlotRoundingMinutes < 1 {
		return fmt.Errorf("checkout.slot_rounding_minutes must be positive, got %d: %w", c.Checkout.SlotRoundingMinutes, ErrInvalidConfig)
	}
	if c.HTTP.Address == "" {
		return fmt.Errorf("http.address is required: %w", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error: %w", c.Log.Level, ErrInvalidConfig)
	}
	return nil
}

// StoreSettings converts the store section into validated settings
func (c *Config) StoreSettings() (entities.StoreSettings, error) {
	hours, err := entities.NewBusinessHours(c.Store.Open, c.Store.Close)
	if err != nil {
		return entities.StoreSettings{}, fmt.Errorf("store hours: %v: %w", err, ErrInvalidConfig)
	}

	tax := decimal.Zero
	if strings.TrimSpace(c.Store.TaxRate) != "" {
		tax, err = decimal.NewFromString(strings.TrimSpace(c.Store.TaxRate))
		if err != nil {
			return entities.StoreSettings{}, fmt.Errorf("store.tax_rate %q: %v: %w", c.Store.TaxRate, err, ErrInvalidConfig)
		}
	}

	settings := entities.StoreSettings{
		StoreName:     c.Store.Name,
		ContactEmail:  c.Store.ContactEmail,
		BusinessHours: hours,
		DefaultTax:    tax,
		ItemCap:       c.Store.ItemCap,
	}
	if err := settings.Validate(); err != nil {
		return entities.StoreSettings{}, fmt.Errorf("store: %v: %w", err, ErrInvalidConfig)
	}
	return settings, nil
}

// Location resolves the store timezone used for slot generation
func (c *Config) Location() (*time.Location, error) {
	name := c.Store.Timezone
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("store.timezone %q: %v: %w", name, err, ErrInvalidConfig)
	}
	return loc, nil
}

// Planner builds the pickup slot planner for the checkout section
func (c *Config) Planner() (*services.PickupSlotPlanner, error) {
	return services.NewPickupSlotPlannerWithIntervals(c.Checkout.SlotStepMinutes, c.Checkout.SlotRoundingMinutes)
}

// parseBool accepts "true", "1", "yes" and "on", case-insensitively
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
