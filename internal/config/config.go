package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SourceConfig tells where the bitmap filenames come from
type SourceConfig struct {
	Dir        string   `mapstructure:"dir"`
	URL        string   `mapstructure:"url"` // directory index page, takes precedence over dir
	Extensions []string `mapstructure:"extensions"`
	Timeout    int      `mapstructure:"timeout"`
	MaxRetries int      `mapstructure:"max_retries"`
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`
	DumpFile   string `mapstructure:"dump_file"`
	IndexFile  string `mapstructure:"index_file"`
	BitmapHref string `mapstructure:"bitmap_href"` // prefix of <img src>, relative to the pages
	PagePrefix string `mapstructure:"page_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Load loads configuration from YAML file with environment variable overrides.
// An empty path searches for config.yaml in the current directory; a missing
// file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Source.Dir == "" && config.Source.URL == "" {
		return nil, fmt.Errorf("either source.dir or source.url must be set")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.dir", "bitmaps")
	v.SetDefault("source.url", "")
	v.SetDefault("source.extensions", []string{"bmp"})
	v.SetDefault("source.timeout", 30)
	v.SetDefault("source.max_retries", 3)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.dump_file", "indexDump.json")
	v.SetDefault("output.index_file", "index.md")
	v.SetDefault("output.bitmap_href", "bitmaps")
	v.SetDefault("output.page_prefix", "index_")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "displays")
	v.SetDefault("database.user", "displays_user")
	v.SetDefault("database.password", "displays_pass")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "displays:")
}
