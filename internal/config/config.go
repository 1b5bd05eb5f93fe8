// Package config loads the runtime configuration shared by the pricefield
// binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, for example PRICEFIELD_LOCALE.
const EnvPrefix = "PRICEFIELD"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the settings of the pricefield binaries.
type Config struct {
	Locale       string   `mapstructure:"locale" validate:"required"`
	Locales      []string `mapstructure:"locales"`
	Currencies   []string `mapstructure:"currencies" validate:"required_without_all=CatalogFile DatabaseURL,dive,len=3"`
	CatalogFile  string   `mapstructure:"catalog_file"`
	DatabaseURL  string   `mapstructure:"database_url"`
	CatalogTable string   `mapstructure:"catalog_table" validate:"required"`
	ListenAddr   string   `mapstructure:"listen_addr" validate:"required"`
	LogLevel     string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat    string   `mapstructure:"log_format" validate:"oneof=json text"`
}

// CatalogSource names the catalog backend selected by the configuration.
type CatalogSource string

const (
	CatalogSourceDatabase CatalogSource = "database"
	CatalogSourceFile     CatalogSource = "file"
	CatalogSourceISO      CatalogSource = "iso"
)

// CatalogSource reports where the currency catalog is loaded from: the
// database when a URL is set, then the YAML file, then the ISO table.
func (c Config) CatalogSource() CatalogSource {
	switch {
	case strings.TrimSpace(c.DatabaseURL) != "":
		return CatalogSourceDatabase
	case strings.TrimSpace(c.CatalogFile) != "":
		return CatalogSourceFile
	default:
		return CatalogSourceISO
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks the struct rules.
func (c Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("locale", "en")
	v.SetDefault("locales", []string{})
	v.SetDefault("currencies", []string{"USD"})
	v.SetDefault("catalog_file", "")
	v.SetDefault("database_url", "")
	v.SetDefault("catalog_table", "currencies")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads .env (when present), applies defaults, merges the optional YAML
// file at path and finally PRICEFIELD_ environment variables.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Currencies = normalizeCodes(cfg.Currencies)
	cfg.Locales = splitList(cfg.Locales)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, item := range strings.Split(entry, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// normalizeCodes accepts both list values and comma separated strings from
// the environment.
func normalizeCodes(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, code := range strings.Split(entry, ",") {
			if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
				out = append(out, code)
			}
		}
	}
	return out
}
