package records

import "regexp"

// maxTitleRunes is how much of the source title feeds the filename.
const maxTitleRunes = 100

var (
	disallowed     = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SafeTitle derives a filesystem-safe stem from a paper title: the title
// is truncated to 100 runes, characters outside [\w\s-] are removed, and
// whitespace runs collapse to single hyphens.
func SafeTitle(title string) string {
	runes := []rune(title)
	if len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}
	title = disallowed.ReplaceAllString(title, "")
	return whitespaceRuns.ReplaceAllString(title, "-")
}
