package models

import "strings"

// SplitList splits delimited text into trimmed, non-empty segments, keeping
// their original order.
func SplitList(text, sep string) []string {
	items := []string{}
	if strings.TrimSpace(text) == "" {
		return items
	}
	for _, part := range strings.Split(text, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// ParseTechnologies parses a comma-separated technology list.
func ParseTechnologies(text string) []string {
	return SplitList(text, ",")
}

// ParseFeatures parses a newline-separated feature list. Windows line endings
// are tolerated because admin forms submit them.
func ParseFeatures(text string) []string {
	return SplitList(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
