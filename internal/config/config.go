// Package config provides configuration management for guardpatch.
//
// Configuration is loaded from:
// 1. .guardpatch.yaml (optional, current directory or $HOME, or an explicit path)
// 2. Environment variables prefixed GUARDPATCH_ (engine.lookahead → GUARDPATCH_ENGINE_LOOKAHEAD)
// 3. Default values
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mouse-blink/guardpatch/internal/domain"
	"github.com/mouse-blink/guardpatch/internal/domain/guards"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "GUARDPATCH"

// Config is the root configuration structure.
type Config struct {
	Log      LogConfig       `mapstructure:"log"`
	Engine   EngineConfig    `mapstructure:"engine"`
	Template guards.Template `mapstructure:"template"`
	Reports  ReportsConfig   `mapstructure:"reports"`
	Backup   BackupConfig    `mapstructure:"backup"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// EngineConfig tunes the patch engine.
type EngineConfig struct {
	Lookahead      int      `mapstructure:"lookahead"`
	Indent         string   `mapstructure:"indent"`
	WellKnownRoots []string `mapstructure:"well_known_roots"`
}

// ReportsConfig controls where run reports are saved. An empty Dir disables them.
type ReportsConfig struct {
	Dir string `mapstructure:"dir"`
}

// BackupConfig controls the timestamped copy written before a file changes.
type BackupConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables. When path
// is empty the optional .guardpatch.yaml is searched for; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".guardpatch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the engine can be built from the configuration.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	return c.EngineOptions().Validate()
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions() domain.Options {
	roots := c.Engine.WellKnownRoots
	if len(roots) == 0 {
		roots = []string{c.Template.UserBinding}
	}

	return domain.Options{
		Lookahead:      c.Engine.Lookahead,
		IndentUnit:     c.Engine.Indent,
		Template:       c.Template,
		WellKnownRoots: roots,
	}
}

func setDefaults(v *viper.Viper) {
	// Log
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Engine
	opts := domain.DefaultOptions()
	v.SetDefault("engine.lookahead", opts.Lookahead)
	v.SetDefault("engine.indent", opts.IndentUnit)
	v.SetDefault("engine.well_known_roots", opts.WellKnownRoots)

	// Template
	t := opts.Template
	v.SetDefault("template.sentinel", t.Sentinel)
	v.SetDefault("template.current_user_call", t.CurrentUserCall)
	v.SetDefault("template.orm", t.ORM)
	v.SetDefault("template.scope_entity", t.ScopeEntity)
	v.SetDefault("template.members_field", t.MembersField)
	v.SetDefault("template.scope_key_field", t.ScopeKeyField)
	v.SetDefault("template.user_binding", t.UserBinding)
	v.SetDefault("template.record_binding", t.RecordBinding)
	v.SetDefault("template.access_binding", t.AccessBinding)
	v.SetDefault("template.messages.unauthenticated", t.Messages.Unauthenticated)
	v.SetDefault("template.messages.access_denied", t.Messages.AccessDenied)
	v.SetDefault("template.messages.not_found", t.Messages.NotFound)

	// Reports
	v.SetDefault("reports.dir", ".guardpatch-reports")

	// Backup
	v.SetDefault("backup.enabled", true)
}
