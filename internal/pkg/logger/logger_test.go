package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "console info", level: "info", format: "console"},
		{name: "json debug", level: "debug", format: "json"},
		{name: "default format", level: "warn", format: ""},
		{name: "bad level", level: "loud", format: "json", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, L())
		})
	}
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, Init("info", "json"))
	require.NoError(t, SetLevel("error"))
	assert.False(t, L().Core().Enabled(zapcore.WarnLevel))
	assert.Error(t, SetLevel("nope"))
}

func TestSet_RoutesPackageHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	original := L()
	Set(zap.New(core))
	t.Cleanup(func() { Set(original) })

	Info("patched", zap.String("function", "updateInvoice"))
	Warn("skipped")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "patched", logs.All()[0].Message)
	assert.Equal(t, "updateInvoice", logs.All()[0].ContextMap()["function"])
}
