package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/guardpatch/internal/domain"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, domain.DefaultLookahead, cfg.Engine.Lookahead)
	assert.Equal(t, "    ", cfg.Engine.Indent)
	assert.Equal(t, ".guardpatch-reports", cfg.Reports.Dir)
	assert.True(t, cfg.Backup.Enabled)

	assert.Equal(t, domain.DefaultOptions(), cfg.EngineOptions())
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("GUARDPATCH_ENGINE_LOOKAHEAD", "4096")
	t.Setenv("GUARDPATCH_TEMPLATE_ORM", "db")
	t.Setenv("GUARDPATCH_BACKUP_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.Engine.Lookahead)
	assert.Equal(t, "db", cfg.Template.ORM)
	assert.False(t, cfg.Backup.Enabled)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "guardpatch.yaml")
	content := `
log:
  level: debug
  format: json
engine:
  indent: "  "
template:
  scope_entity: company
  messages:
    access_denied: Forbidden
reports:
  dir: ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "  ", cfg.Engine.Indent)
	assert.Equal(t, "company", cfg.Template.ScopeEntity)
	assert.Equal(t, "Forbidden", cfg.Template.Messages.AccessDenied)
	assert.Equal(t, "Non authentifié", cfg.Template.Messages.Unauthenticated)
	assert.Empty(t, cfg.Reports.Dir)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown log format", content: "log:\n  format: xml\n"},
		{name: "zero lookahead", content: "engine:\n  lookahead: 0\n"},
		{name: "indent not whitespace", content: "engine:\n  indent: \"--\"\n"},
		{name: "orm not an identifier", content: "template:\n  orm: \"my orm\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "guardpatch.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
		})
	}

	t.Run("explicit file missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestEngineOptions_FallsBackToUserBinding(t *testing.T) {
	cfg := Config{
		Engine:   EngineConfig{Lookahead: 512, Indent: "\t"},
		Template: domain.DefaultOptions().Template,
	}

	opts := cfg.EngineOptions()

	assert.Equal(t, []string{"userRes"}, opts.WellKnownRoots)
	assert.Equal(t, "\t", opts.IndentUnit)
	assert.Equal(t, 512, opts.Lookahead)
}
