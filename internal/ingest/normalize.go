package ingest

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W`)

// NormalizeKey lowercases an identifier and replaces every non-alphanumeric
// character with an underscore. Column names and identifier cells are
// normalized this way before the core sees them, so "Sample Name" and
// "sample_name" address the same column and "ISRS_1" and "isrs_1" the same
// sample.
func NormalizeKey(s string) string {
	return nonWord.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = NormalizeKey(h)
	}
	return out
}

// columnIndex locates required columns in a normalized header, reporting
// every missing column at once.
func columnIndex(header []string, required []string) (map[string]int, []string) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return idx, missing
}
