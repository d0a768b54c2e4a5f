package labels

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "mixed case and punctuation",
			in:   []string{"Back-End Work!", "  ", "UI/UX"},
			want: []string{"back-end-work", "ui-ux"},
		},
		{
			name: "collapses consecutive separators",
			in:   []string{"data -- ingestion"},
			want: []string{"data-ingestion"},
		},
		{
			name: "trims leading and trailing separators",
			in:   []string{"--release--"},
			want: []string{"release"},
		},
		{
			name: "drops empty and symbol-only labels",
			in:   []string{"", "!!!", "   "},
			want: []string{},
		},
		{
			name: "deduplicates after normalization",
			in:   []string{"QA&Ops", "qa-ops", "QA Ops"},
			want: []string{"qa-ops"},
		},
		{
			name: "keeps digits",
			in:   []string{"Q3 2025 Goals"},
			want: []string{"q3-2025-goals"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("Sanitize(%v) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Sanitize(%v) = %v, want %v", tc.in, got, tc.want)
				}
			}
		})
	}
}

// Every output must stay inside [a-z0-9-], never start/end with '-' and never
// contain "--", regardless of input.
func TestSanitizeProperties(t *testing.T) {
	inputs := []string{
		"", " ", "-", "--", "a", "A", "é é é", "___", "ops/infra", "a--b",
		"ALL CAPS LABEL", "  padded  ", "emoji 🚀 label", "dash-end-", "-dash-start",
		strings.Repeat("x!", 400),
	}

	for _, in := range inputs {
		for _, slug := range Sanitize([]string{in}) {
			if slug == "" {
				t.Fatalf("Sanitize(%q) produced an empty label", in)
			}
			if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
				t.Fatalf("Sanitize(%q) = %q has a boundary dash", in, slug)
			}
			if strings.Contains(slug, "--") {
				t.Fatalf("Sanitize(%q) = %q contains a dash run", in, slug)
			}
			for _, r := range slug {
				if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
					t.Fatalf("Sanitize(%q) = %q contains %q", in, slug, r)
				}
			}
			if len(slug) > maxLabelLength {
				t.Fatalf("Sanitize(%q) = %q exceeds %d chars", in, slug, maxLabelLength)
			}
		}
	}
}
