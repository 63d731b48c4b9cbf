// Package config loads adapter settings from defaults, an optional config
// file and DEEPTRAN_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valpere/deeptran/internal/translator"
)

const (
	envPrefix = "DEEPTRAN"

	// ConfigFileEnv names an optional config file (any format viper reads).
	ConfigFileEnv = "DEEPTRAN_CONFIG"

	DefaultProvider = "google"
	DefaultTimeout  = 30 * time.Second
)

type GoogleConfig struct {
	Tries int `mapstructure:"tries"`
}

type MyMemoryConfig struct {
	Email   string `mapstructure:"email"`
	BaseURL string `mapstructure:"base_url"`
}

type LibreTranslateConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Config struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Verbose  bool          `mapstructure:"verbose"`

	Service        translator.ServiceConfig `mapstructure:"service"`
	Google         GoogleConfig             `mapstructure:"google"`
	MyMemory       MyMemoryConfig           `mapstructure:"mymemory"`
	LibreTranslate LibreTranslateConfig     `mapstructure:"libretranslate"`
}

// Load reads a .env file from the working directory when present, then
// resolves the configuration from the environment.
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	return LoadFrom(viper.New(), os.Getenv(ConfigFileEnv))
}

// LoadFrom resolves the configuration into v. configFile may be empty.
func LoadFrom(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names accepted for LibreTranslate deployments.
	if err := v.BindEnv("libretranslate.base_url", "DEEPTRAN_LIBRETRANSLATE_BASE_URL", "LIBRETRANSLATE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := v.BindEnv("libretranslate.api_key", "DEEPTRAN_LIBRETRANSLATE_API_KEY", "LIBRETRANSLATE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("verbose", false)

	v.SetDefault("service.credentials", "")
	v.SetDefault("service.api_key", "")

	v.SetDefault("google.tries", 1)

	v.SetDefault("mymemory.email", "")
	v.SetDefault("mymemory.base_url", translator.DefaultMyMemoryURL)

	v.SetDefault("libretranslate.base_url", translator.DefaultLibreTranslateURL)
	v.SetDefault("libretranslate.api_key", "")
}
