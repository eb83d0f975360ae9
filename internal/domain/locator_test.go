package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "examples", "actions", name))
	require.NoError(t, err)

	return string(data)
}

func TestLocate(t *testing.T) {
	src := loadFixture(t, "actions.ts")

	t.Run("finds canonical async function", func(t *testing.T) {
		span, err := Locate(src, "fetchDashboardMetrics")
		require.NoError(t, err)

		assert.Equal(t, strings.Index(src, "export async function fetchDashboardMetrics"), span.SignatureStart)
		assert.True(t, span.Async)
		assert.True(t, span.Complete())
		require.True(t, span.HasCanonicalBody())
		assert.Equal(t, "    ", span.TryIndent)
		assert.True(t, strings.HasSuffix(src[:span.BodyOpenOffset], "try {"))
		assert.Equal(t, []string{"societeId"}, span.ParamNames())
		assert.Equal(t, byte('}'), src[span.BodyEnd-1])
	})

	t.Run("skips guard clause and object return type", func(t *testing.T) {
		span, err := Locate(src, "updateInvoice")
		require.NoError(t, err)

		require.True(t, span.HasCanonicalBody())
		assert.True(t, strings.HasSuffix(src[:span.BodyOpenOffset], "try {"))
		assert.Contains(t, src[span.BodyStart:span.BodyOpenOffset], "ID manquant")
		require.Len(t, span.Params, 1)
		assert.Equal(t, "invoice", span.Params[0].Name)
		assert.Equal(t, "Facture", span.Params[0].Type)
	})

	t.Run("destructured parameters bind every name", func(t *testing.T) {
		span, err := Locate(src, "createProduct")
		require.NoError(t, err)

		assert.Equal(t, []string{"societeId", "product"}, span.ParamNames())
		assert.True(t, span.Complete(), "regex literal braces must not unbalance the body")
	})

	t.Run("non async function is located", func(t *testing.T) {
		span, err := Locate(src, "formatAmount")
		require.NoError(t, err)

		assert.False(t, span.Async)
		assert.False(t, span.HasCanonicalBody())
	})

	t.Run("names inside strings and comments are never matched", func(t *testing.T) {
		for _, name := range []string{"listClients", "archiveSociete"} {
			_, err := Locate(src, name)
			require.ErrorIs(t, err, ErrFunctionNotFound, name)
		}
	})

	t.Run("prefix of a real name is not found", func(t *testing.T) {
		_, err := Locate(src, "updateInv")
		require.ErrorIs(t, err, ErrFunctionNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := Locate(src, "update Invoice")
		require.ErrorIs(t, err, ErrInvalidSpec)
	})
}

func TestLocate_Anchoring(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		found bool
	}{
		{
			name:  "template literal",
			src:   "const doc = `\nexport async function target(id) {\n    try {\n    } catch {}\n}\n`;\n",
			found: false,
		},
		{
			name:  "nested block",
			src:   "namespace api {\n    export async function target(id: string) {\n        try {\n        } catch {}\n    }\n}\n",
			found: false,
		},
		{
			name:  "block comment",
			src:   "/*\nexport async function target(id) {\n    try {\n*/\n",
			found: false,
		},
		{
			name:  "export default",
			src:   "export default async function target(id: string) {\n    try {\n    } catch {}\n}\n",
			found: true,
		},
		{
			name:  "generic parameters",
			src:   "export async function target<T extends { id: string }>(row: T) {\n    try {\n    } catch {}\n}\n",
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := Locate(tt.src, "target")
			if !tt.found {
				require.ErrorIs(t, err, ErrFunctionNotFound)
				return
			}

			require.NoError(t, err)
			assert.True(t, span.HasCanonicalBody())
		})
	}
}

func TestLocate_BodyShapes(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		canonical bool
	}{
		{
			name:      "statement before try",
			src:       "export async function f(id: string) {\n    const x = 1;\n    try {\n    } catch {}\n}\n",
			canonical: false,
		},
		{
			name:      "block guard clause",
			src:       "export async function f(id: string) {\n    if (!id) {\n        throw new Error(\"id\");\n    }\n    try {\n    } catch {}\n}\n",
			canonical: true,
		},
		{
			name:      "two guard clauses",
			src:       "export async function f(id: string) {\n    if (!id) return null;\n    if (id === \"x\") return null;\n    try {\n    } catch {}\n}\n",
			canonical: false,
		},
		{
			name:      "comment before try",
			src:       "export async function f(id: string) {\n    // wrapped\n    try {\n    } catch {}\n}\n",
			canonical: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := Locate(tt.src, "f")
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, span.HasCanonicalBody())
		})
	}
}

func TestLocateAll(t *testing.T) {
	src := "export function over(a: string): void;\n" +
		"export function over(a: string | number): void {\n}\n" +
		"export const notAFunction = 1;\n" +
		"export async function over(b: number) {\n    try {\n    } catch {}\n}\n"

	spans := LocateAll(src)
	require.Len(t, spans, 2, "overload signatures have no body")

	for _, s := range spans {
		assert.Equal(t, "over", s.Name)
	}

	assert.Less(t, spans[0].SignatureStart, spans[1].SignatureStart)
	assert.Equal(t, []m.Param{{Name: "b", Type: "number"}}, spans[1].Params)
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name  string
		sig   string
		names []string
	}{
		{name: "plain", sig: "export function f(a: string, b?: number) {}", names: []string{"a", "b"}},
		{name: "defaults and arrows", sig: "export function f(cb = (x) => x, n = 3) {}", names: []string{"cb", "n"}},
		{name: "nested generics", sig: "export function f(m: Map<string, Array<number>>, id: string) {}", names: []string{"m", "id"}},
		{name: "object pattern with rename", sig: "export function f({ a, b: renamed, c = 1 }: Opts) {}", names: []string{"a", "renamed", "c"}},
		{name: "array pattern", sig: "export function f([first, , third]: string[]) {}", names: []string{"first", "third"}},
		{name: "rest", sig: "export function f(head: string, ...tail: string[]) {}", names: []string{"head", "tail"}},
		{name: "commented", sig: "export function f(/* scope */ societeId: string // trailing\n) {}", names: []string{"societeId"}},
		{name: "none", sig: "export function f() {}", names: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := LocateAll(tt.sig)
			require.Len(t, spans, 1)
			assert.Equal(t, tt.names, spans[0].ParamNames())
		})
	}
}
