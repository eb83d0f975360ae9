package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	t.Run("no change", func(t *testing.T) {
		assert.Empty(t, Preview(handlerSource, handlerSource))
	})

	t.Run("inserted guard", func(t *testing.T) {
		out := Preview(handlerSource, guardedHandler)

		assert.True(t, strings.HasPrefix(out, "@@ line 1 @@\n"), out)
		assert.Contains(t, out, " export async function handler(scopeId: string) {\n")
		assert.Contains(t, out, "+        // 🔒 SECURITY: Verify membership\n")
		assert.Contains(t, out, "+        const userRes = await getCurrentUser();\n")
		assert.NotContains(t, out, "\n-")
		assert.Contains(t, out, "     } catch (e) {\n")
		assert.NotContains(t, out, "return { success: false };", "lines beyond the context are collapsed")
	})

	t.Run("replaced line with collapsed context", func(t *testing.T) {
		var before, after strings.Builder

		for i := 1; i <= 20; i++ {
			fmt.Fprintf(&before, "line %d\n", i)

			if i == 10 {
				after.WriteString("line ten\n")
				continue
			}

			fmt.Fprintf(&after, "line %d\n", i)
		}

		out := Preview(before.String(), after.String())

		assert.True(t, strings.HasPrefix(out, "@@ line 8 @@\n"), out)
		assert.Contains(t, out, "-line 10\n")
		assert.Contains(t, out, "+line ten\n")
		assert.Contains(t, out, " line 12\n")
		assert.NotContains(t, out, "line 7\n")
		assert.NotContains(t, out, "line 13\n")
	})
}

func TestHasGuard(t *testing.T) {
	src := "try {\n    // 🔒 SECURITY: Verify access\n    const userRes = await getCurrentUser();\n"
	at := strings.Index(src, "{") + 1

	tests := []struct {
		name      string
		offset    int
		lookahead int
		markers   []string
		want      bool
	}{
		{name: "sentinel in window", offset: at, lookahead: DefaultLookahead, markers: []string{"🔒 SECURITY"}, want: true},
		{name: "call marker in window", offset: at, lookahead: DefaultLookahead, markers: []string{"getCurrentUser()"}, want: true},
		{name: "window too short", offset: at, lookahead: 5, markers: []string{"🔒 SECURITY", "getCurrentUser()"}, want: false},
		{name: "marker before offset", offset: len(src), lookahead: DefaultLookahead, markers: []string{"🔒 SECURITY"}, want: false},
		{name: "negative offset", offset: -1, lookahead: DefaultLookahead, markers: []string{"try"}, want: false},
		{name: "empty marker ignored", offset: 0, lookahead: DefaultLookahead, markers: []string{""}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasGuard(src, tt.offset, tt.lookahead, tt.markers...))
		})
	}
}
