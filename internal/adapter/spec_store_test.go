package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

func TestSpecStore_LoadSpecs(t *testing.T) {
	store := NewSpecStore()

	t.Run("decodes both kinds in order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "specs.yaml")
		writeTestFile(t, path, `specs:
  - function: fetchDashboardMetrics
    kind: direct
    scope_param: societeId
  - function: updateInvoice
    kind: fetch
    table: facture
    id_param: invoice.id
    label: Facture
`)

		specs, err := store.LoadSpecs(m.Path(path))
		require.NoError(t, err)

		assert.Equal(t, []m.PatchSpec{
			{Function: "fetchDashboardMetrics", Kind: m.DirectScope, ScopeParam: "societeId"},
			{Function: "updateInvoice", Kind: m.FetchThenVerify, Table: "facture", IDParam: "invoice.id", Label: "Facture"},
		}, specs)
	})

	t.Run("fixture file", func(t *testing.T) {
		specs, err := store.LoadSpecs(m.Path(filepath.Join("..", "..", "examples", "actions", "specs.yaml")))
		require.NoError(t, err)
		assert.NotEmpty(t, specs)
	})

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty file", content: "", wantErr: ErrNoSpecs},
		{name: "empty list", content: "specs: []\n", wantErr: ErrNoSpecs},
		{name: "unknown key", content: "specs:\n  - function: f\n    scope_parm: x\n"},
		{name: "not yaml", content: "specs: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "specs.yaml")
			writeTestFile(t, path, tt.content)

			_, err := store.LoadSpecs(m.Path(path))
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := store.LoadSpecs(m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
		require.Error(t, err)
	})
}
