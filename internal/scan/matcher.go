package scan

import "strings"

// Match returns the visible network names containing keyword,
// case-insensitively. A blank or whitespace-only keyword matches nothing,
// so an unconfigured tracker never records every network in sight.
//
// Output preserves the input order and original casing and is not
// deduplicated. Blank SSIDs (hidden networks) are skipped.
func Match(keyword string, visible []string) []string {
	if strings.TrimSpace(keyword) == "" {
		return nil
	}
	kw := strings.ToLower(keyword)

	var matched []string
	for _, name := range visible {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if strings.Contains(strings.ToLower(name), kw) {
			matched = append(matched, name)
		}
	}
	return matched
}
