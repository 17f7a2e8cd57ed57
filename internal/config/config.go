package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docform/pkg/composer"
	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/sections"
	"github.com/goliatone/go-docform/pkg/submission"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "docform.yaml"

// Config holds all docform configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Document DocumentConfig `yaml:"document"`
	Form     FormConfig     `yaml:"form"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
}

// DocumentConfig configures the generated document.
type DocumentConfig struct {
	Institution      string   `yaml:"institution"`
	Program          string   `yaml:"program"`
	Font             string   `yaml:"font"`
	GuidanceRows     int      `yaml:"guidance_rows"`
	GuidanceInterval int      `yaml:"guidance_interval"`   // days
	Sections         []string `yaml:"sections,omitempty"` // empty means all
	Required         []string `yaml:"required,omitempty"` // empty means the form's list
}

// FormConfig selects the form definition and page look.
type FormConfig struct {
	Path        string `yaml:"path"` // empty uses the embedded definition
	OperationID string `yaml:"operation_id"`
	Templates   string `yaml:"templates"` // directory overriding the embedded templates
	Variant     string `yaml:"variant"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings matching the printed forms.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "10s",
			MaxBodyBytes:    1 << 20,
		},
		Document: DocumentConfig{
			Institution:      sections.DefaultInstitution,
			Program:          sections.DefaultProgram,
			Font:             docx.DefaultFont,
			GuidanceRows:     sections.DefaultGuidanceRows,
			GuidanceInterval: sections.DefaultGuidanceInterval,
		},
		Form: FormConfig{
			OperationID: "createTrainingReport",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.Server.Addr = getEnv("DOCFORM_ADDR", c.Server.Addr)
	c.Document.Institution = getEnv("DOCFORM_INSTITUTION", c.Document.Institution)
	c.Document.Program = getEnv("DOCFORM_PROGRAM", c.Document.Program)
	c.Document.GuidanceRows = getEnvInt("DOCFORM_GUIDANCE_ROWS", c.Document.GuidanceRows)
	c.Form.Path = getEnv("DOCFORM_FORM", c.Form.Path)
	c.Logging.Level = getEnv("DOCFORM_LOG_LEVEL", c.Logging.Level)
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	for name, value := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	if rows := c.Document.GuidanceRows; rows < 0 || rows > sections.MaxGuidanceRows {
		return fmt.Errorf("config: document.guidance_rows must be between 0 and %d, got %d", sections.MaxGuidanceRows, rows)
	}
	if interval := c.Document.GuidanceInterval; interval < 0 || interval > sections.MaxGuidanceInterval {
		return fmt.Errorf("config: document.guidance_interval must be between 0 and %d, got %d", sections.MaxGuidanceInterval, interval)
	}
	if _, err := sections.Select(c.Document.Sections...); err != nil {
		return fmt.Errorf("config: document.sections: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	if strings.TrimSpace(c.Logging.Level) == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: logging.level: %w", err)
	}
	return level, nil
}

// ReadTimeout returns server.read_timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 15*time.Second)
}

// WriteTimeout returns server.write_timeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 30*time.Second)
}

// ShutdownTimeout returns server.shutdown_timeout as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// ComposerOptions translates the document settings. required is used when
// document.required is empty, typically the form's required list.
func (c *Config) ComposerOptions(required []string) []composer.Option {
	fields := c.Document.Required
	if len(fields) == 0 {
		fields = required
	}
	if len(fields) == 0 {
		fields = submission.DefaultRequiredFields()
	}
	return []composer.Option{
		composer.WithInstitution(c.Document.Institution),
		composer.WithProgram(c.Document.Program),
		composer.WithFont(c.Document.Font),
		composer.WithGuidanceRows(c.Document.GuidanceRows),
		composer.WithGuidanceInterval(c.Document.GuidanceInterval),
		composer.WithSections(c.Document.Sections...),
		composer.WithRequired(fields...),
	}
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
