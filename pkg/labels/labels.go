// Package labels normalizes free-text labels to the alphabet Jira accepts.
package labels

import "strings"

const maxLabelLength = 255

// Sanitize slugs each raw label and drops the ones that collapse to nothing.
// Rules, in order: lower-case; replace every rune outside [a-z0-9] with '-';
// collapse runs of '-'; trim leading/trailing '-'; drop empty results.
// The output contains no duplicates and no empty strings.
func Sanitize(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, label := range raw {
		slug := slugify(label)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

func slugify(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	lastDash := true // swallows leading dashes
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxLabelLength {
		slug = strings.TrimRight(slug[:maxLabelLength], "-")
	}
	return slug
}
