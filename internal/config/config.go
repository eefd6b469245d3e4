package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/inovacc/petgallery/internal/application"
	"github.com/inovacc/petgallery/internal/catalog"
)

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Export  ExportConfig  `mapstructure:"export"`
	Sort    SortConfig    `mapstructure:"sort"`
	Log     LogConfig     `mapstructure:"log"`
}

// CatalogConfig selects the catalog source.
type CatalogConfig struct {
	URL string `mapstructure:"url"`
}

// HTTPConfig holds client settings.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// ExportConfig controls where and how images are saved.
type ExportConfig struct {
	Dir      string `mapstructure:"dir"`
	Parallel int    `mapstructure:"parallel"`
}

// SortConfig holds ordering settings.
type SortConfig struct {
	Locale string `mapstructure:"locale"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	File  string `mapstructure:"file"`
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"catalog-url": "catalog.url",
	"timeout":     "http.timeout",
	"dir":         "export.dir",
	"parallel":    "export.parallel",
	"locale":      "sort.locale",
	"log-level":   "log.level",
	"json-logs":   "log.json",
	"log-file":    "log.file",
}

// Load reads configuration from defaults, the config file, env and flags, in
// increasing priority. Env var overrides use prefix PETGALLERY_. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("catalog.url", catalog.DefaultURL)
	v.SetDefault("http.timeout", catalog.DefaultTimeout)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.parallel", 0)
	v.SetDefault("sort.locale", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", application.DefaultLogFile())

	cfgPath := os.Getenv(application.EnvPrefix + "_CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if dir, err := application.GetApplicationDirectory(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(application.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path must exist; the default location is optional
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if strings.TrimSpace(c.Catalog.URL) == "" {
		return fmt.Errorf("catalog.url must not be empty")
	}

	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}

	if c.Export.Parallel < 0 || c.Export.Parallel > 64 {
		return fmt.Errorf("export.parallel must be between 0 and 64")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	return nil
}
