package registry

import (
	"strings"
)

// splitLines breaks text into lines, accepting \n and \r\n endings and
// dropping a leading byte order mark.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

// SplitQuoted splits a CSV line on commas that are outside double-quoted
// spans, so "Doe, John",123 yields two fields. Every field is trimmed and
// has its quote characters removed.
func SplitQuoted(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, cleanCell(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, cleanCell(current.String()))
}

// splitRaw splits on every comma. Legacy exports never quote their cells.
func splitRaw(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = cleanCell(p)
	}
	return parts
}

// cleanCell trims whitespace and strips every double quote.
func cleanCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}
