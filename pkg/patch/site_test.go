package patch

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRewrite(target Target) *SiteRewrite {
	return &SiteRewrite{
		RuleID:      "call",
		Text:        "enriched call",
		Site:        regexp.MustCompile(`// call`),
		Shape:       regexp.MustCompile(`\A// call\s+do\(\);`),
		Target:      target,
		Replacement: "// call/enriched\ndo(extra);",
	}
}

func TestSiteRewrite(t *testing.T) {
	anchor := regexp.MustCompile(`func second\b`)

	tests := []struct {
		name    string
		content string
		target  Target
		want    string
		wantOK  bool
	}{
		{
			name:    "second_site_by_index",
			content: "func first {\n// call\ndo();\n}\nfunc second {\n// call\ndo();\n}",
			target:  Target{Index: 1},
			want:    "func first {\n// call\ndo();\n}\nfunc second {\n// call/enriched\ndo(extra);\n}",
			wantOK:  true,
		},
		{
			name:    "index_counts_already_rewritten_sites",
			content: "// call/enriched\ndo(extra);\n// call\ndo();",
			target:  Target{Index: 1},
			want:    "// call/enriched\ndo(extra);\n// call/enriched\ndo(extra);",
			wantOK:  true,
		},
		{
			name:    "single_site_has_no_second",
			content: "// call\ndo();",
			target:  Target{Index: 1},
			want:    "// call\ndo();",
		},
		{
			name:    "target_already_rewritten",
			content: "// call\ndo();\n// call/enriched\ndo(extra);",
			target:  Target{Index: 1},
			want:    "// call\ndo();\n// call/enriched\ndo(extra);",
		},
		{
			name:    "anchor_wins_over_index",
			content: "func first {\n// call\ndo();\n// call\ndo();\n}\nfunc second {\n// call\ndo();\n}",
			target:  Target{Anchor: anchor, Index: 1},
			want:    "func first {\n// call\ndo();\n// call\ndo();\n}\nfunc second {\n// call/enriched\ndo(extra);\n}",
			wantOK:  true,
		},
		{
			name:    "anchor_without_following_site",
			content: "func first {\n// call\ndo();\n// call\ndo();\n}\nfunc second {\n}",
			target:  Target{Anchor: anchor, Index: 1},
			want:    "func first {\n// call\ndo();\n// call\ndo();\n}\nfunc second {\n}",
		},
		{
			name:    "missing_anchor_falls_back_to_index",
			content: "// call\ndo();\n// call\ndo();",
			target:  Target{Anchor: anchor, Index: 1},
			want:    "// call\ndo();\n// call/enriched\ndo(extra);",
			wantOK:  true,
		},
		{
			name:    "negative_index",
			content: "// call\ndo();",
			target:  Target{Index: -1},
			want:    "// call\ndo();",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := callRewrite(tt.target).Apply(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSiteRewriteBuildKeepsGroups(t *testing.T) {
	rule := &SiteRewrite{
		RuleID: "prefixed",
		Site:   regexp.MustCompile(`// info`),
		Shape:  regexp.MustCompile(`\A(// info[^}]*\}\s+)// call\s+do\(\);`),
		Target: Target{Anchor: regexp.MustCompile(`func first\b`)},
		Build: func(m Match) string {
			return m.Group(1) + "// call/enriched\ndo(extra);"
		},
	}

	content := "func first {\n// info { show() }\n// call\ndo();\n}\nfunc second {\n// info { show() }\n// call\ndo();\n}"

	got, ok := rule.Apply(content)
	require.True(t, ok)
	assert.Equal(t, "func first {\n// info { show() }\n// call/enriched\ndo(extra);\n}\nfunc second {\n// info { show() }\n// call\ndo();\n}", got)

	// the anchored site is done, so the second function is left alone
	again, ok := rule.Apply(got)
	assert.False(t, ok)
	assert.Equal(t, got, again)
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   Stats
	}{
		{name: "equal", before: "abc", after: "abc", want: Stats{}},
		{name: "insertion", before: "ab", after: "aXYb", want: Stats{Inserted: 2}},
		{name: "deletion", before: "aXYb", after: "ab", want: Stats{Deleted: 2}},
		{name: "runes_not_bytes", before: "a", after: "a✅", want: Stats{Inserted: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Measure(tt.before, tt.after))
		})
	}
}

func TestUnifiedDiff(t *testing.T) {
	t.Run("changed", func(t *testing.T) {
		var buf bytes.Buffer
		err := UnifiedDiff(&buf, "page.tsx", "alpha\nbeta\ngamma\n", "alpha\ndelta\ngamma\n")
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "a/page.tsx")
		assert.Contains(t, out, "b/page.tsx")
		assert.Contains(t, out, "-beta")
		assert.Contains(t, out, "+delta")
	})

	t.Run("unchanged", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, UnifiedDiff(&buf, "page.tsx", "same\n", "same\n"))
		assert.Empty(t, buf.String())
	})
}
