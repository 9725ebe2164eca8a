package social

import "strings"

// collapseWhitespace flattens newlines and runs of spaces in post text
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
