package extractor

import "strings"

// lineStats counts total, comment, and blank lines. isComment receives each
// trimmed line.
func lineStats(content string, isComment func(trimmed string) bool) (total, comments, blanks int) {
	if content == "" {
		return 0, 0, 0
	}
	lines := strings.Split(content, "\n")
	// A trailing newline produces one empty trailing element, not a line.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blanks++
		case isComment(trimmed):
			comments++
		}
	}
	return len(lines), comments, blanks
}
