package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"qrbanner/internal/domain/entity"
)

type Config struct {
	Render  RenderConfig  `mapstructure:"render"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Server  ServerConfig  `mapstructure:"server"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RenderConfig pre-fills render parameters; explicit flags win over
// these on every code path.
type RenderConfig struct {
	URL      string `mapstructure:"url"`
	Design   string `mapstructure:"design"`
	Output   string `mapstructure:"output"`
	Title    string `mapstructure:"title"`
	Subtitle string `mapstructure:"subtitle"`
	Footer   string `mapstructure:"footer"`
}

type PathsConfig struct {
	OutputDir string `mapstructure:"output-dir"`
	FontsDir  string `mapstructure:"fonts-dir"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

type LoggingConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogToFile bool   `mapstructure:"log-to-file"`
	LogsDir   string `mapstructure:"logs-dir"`
}

// Load builds the configuration in three layers: built-in defaults, the
// optional YAML file at path, then QRBANNER_* environment overrides. An
// empty path skips the file entirely; a named file that cannot be read
// or parsed is an error surfaced with its path.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a registered default, even an empty one: viper only
	// surfaces QRBANNER_* env values during Unmarshal for known keys.
	v.SetDefault("render.url", "")
	v.SetDefault("render.design", "card")
	v.SetDefault("render.output", "")
	v.SetDefault("render.title", "")
	v.SetDefault("render.subtitle", "")
	v.SetDefault("render.footer", "")
	v.SetDefault("paths.output-dir", "outputs")
	v.SetDefault("paths.fonts-dir", "fonts")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read-timeout", 10*time.Second)
	v.SetDefault("server.write-timeout", 30*time.Second)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("logging.debug", false)
	v.SetDefault("logging.log-to-file", false)
	v.SetDefault("logging.logs-dir", "logs")

	v.SetEnvPrefix("QRBANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Addr is the listen address for serve mode.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Merge overlays the config's render values onto a flag-built request.
// changed reports whether the named flag was set explicitly; an explicit
// flag always wins over the config value, on every field.
func (r RenderConfig) Merge(req entity.Request, changed func(string) bool) entity.Request {
	if !changed("url") && r.URL != "" {
		req.URL = r.URL
	}
	if !changed("design") && r.Design != "" {
		req.Design = r.Design
	}
	if !changed("output") && r.Output != "" {
		req.Output = r.Output
	}
	if !changed("title") && r.Title != "" {
		req.Title = r.Title
	}
	if !changed("subtitle") && r.Subtitle != "" {
		req.Subtitle = r.Subtitle
	}
	if !changed("footer") && r.Footer != "" {
		req.Footer = r.Footer
	}
	return req
}
