package notice

import (
	"net/url"
	"regexp"
	"strings"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// CleanText collapses all whitespace runs to single spaces and trims the ends.
func CleanText(value string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(value, " "))
}

// NormalizeLabel cleans a table header cell and strips the half- and
// full-width colons the source appends to its labels.
func NormalizeLabel(value string) string {
	cleaned := CleanText(value)
	return strings.NewReplacer(":", "", "：", "").Replace(cleaned)
}

// AbsoluteURL resolves href against base. It returns "" when href is empty or
// either URL fails to parse; callers treat "" as explicit absence.
func AbsoluteURL(href, base string) string {
	if href == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
