package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	toggleLockV1 = "export async function toggleLock(id: string) {\n    try {\n        return 1;\n    } catch (e) {}\n}\n"
	toggleLockV2 = "export async function toggleLock(id: string) {\n    try {\n        return 2;\n    } catch (e) {}\n}\n"
	otherFunc    = "export async function other() {\n    try {\n    } catch (e) {}\n}\n"
)

func TestDedupe_RemovesLaterDefinition(t *testing.T) {
	src := toggleLockV1 + "\n" + toggleLockV2 + "\n" + otherFunc

	out, removed := Dedupe(src)

	assert.Equal(t, 1, removed)

	if diff := cmp.Diff(toggleLockV1+"\n"+otherFunc, out); diff != "" {
		t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
	}

	span, err := Locate(out, "toggleLock")
	require.NoError(t, err)
	assert.Contains(t, out[span.BodyStart:span.BodyEnd], "return 1;", "the first definition survives")
}

func TestDedupe_NoDuplicatesIsNoop(t *testing.T) {
	src := toggleLockV1 + "\n" + otherFunc

	out, removed := Dedupe(src)

	assert.Zero(t, removed)
	assert.Equal(t, src, out)
}

func TestDedupe_LastDefinitionLeavesNoTrailingGap(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "one blank line", src: toggleLockV1 + "\n" + toggleLockV2, want: toggleLockV1},
		{name: "several blank lines", src: toggleLockV1 + "\n\n\n" + toggleLockV2, want: toggleLockV1},
		{name: "adjacent", src: toggleLockV1 + toggleLockV2, want: toggleLockV1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, removed := Dedupe(tt.src)

			assert.Equal(t, 1, removed)

			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDedupe_ThreeCopies(t *testing.T) {
	src := toggleLockV1 + "\n" + toggleLockV2 + "\n" + otherFunc + "\n" + toggleLockV2

	out, removed := Dedupe(src)

	assert.Equal(t, 2, removed)
	assert.Len(t, LocateAll(out), 2)
	assert.NotContains(t, out, "return 2;")

	if diff := cmp.Diff(toggleLockV1+"\n"+otherFunc, out); diff != "" {
		t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
	}
}

func TestDedupe_IgnoresCopiesInStringsAndComments(t *testing.T) {
	src := toggleLockV1 + "\n/*\n" + toggleLockV2 + "*/\nconst tpl = `\n" + toggleLockV2 + "`;\n"

	out, removed := Dedupe(src)

	assert.Zero(t, removed)
	assert.Equal(t, src, out)
}

func TestDedupe_IgnoresUnterminatedDefinition(t *testing.T) {
	src := toggleLockV1 + "\nexport async function toggleLock(id: string) {\n    try {\n"

	out, removed := Dedupe(src)

	assert.Zero(t, removed)
	assert.Equal(t, src, out)
}

func TestFindDuplicates(t *testing.T) {
	src := otherFunc + toggleLockV1 + toggleLockV2 + otherFunc

	groups := FindDuplicates(src)
	require.Len(t, groups, 2)

	assert.Equal(t, "other", groups[0].Name)
	assert.Equal(t, "toggleLock", groups[1].Name)

	for _, g := range groups {
		require.Len(t, g.Spans, 2)
		assert.Less(t, g.Spans[0].SignatureStart, g.Spans[1].SignatureStart)
	}
}
