// Package detector classifies changed files into language tags.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/prlens/prlens/internal/domain"
)

// extLanguages is the primary classification table.
var extLanguages = map[string]domain.Language{
	".py":  domain.LangPython,
	".pyw": domain.LangPython,
	".pyi": domain.LangPython,
	".ts":  domain.LangTypeScript,
	".tsx": domain.LangTypeScript,
	".mts": domain.LangTypeScript,
	".cts": domain.LangTypeScript,
}

// sniffLines bounds how much content the keyword heuristics inspect.
const sniffLines = 50

// LanguageDetector implements domain.LanguageDetector by extension lookup
// with a content-sniffing fallback. It is total: unrecognized input yields
// LangUnknown, never an error.
type LanguageDetector struct{}

func New() *LanguageDetector {
	return &LanguageDetector{}
}

func (d *LanguageDetector) Detect(path, content string) domain.Language {
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return sniff(content)
}

// sniff classifies by shebang line and characteristic keyword density.
func sniff(content string) domain.Language {
	if content == "" {
		return domain.LangUnknown
	}

	lines := strings.SplitN(content, "\n", sniffLines+1)
	if len(lines) > sniffLines {
		lines = lines[:sniffLines]
	}

	if strings.HasPrefix(lines[0], "#!") && strings.Contains(lines[0], "python") {
		return domain.LangPython
	}

	pyScore, tsScore := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "def ") && strings.HasSuffix(trimmed, ":"),
			strings.HasPrefix(trimmed, "class ") && strings.HasSuffix(trimmed, ":"),
			strings.HasPrefix(trimmed, "elif "),
			strings.HasPrefix(trimmed, "from ") && strings.Contains(trimmed, " import "):
			pyScore += 2
		case strings.HasPrefix(trimmed, "import ") && !strings.Contains(trimmed, "from"):
			pyScore++
		case strings.Contains(trimmed, "self."), strings.HasPrefix(trimmed, "#"):
			pyScore++
		}
		switch {
		case strings.HasPrefix(trimmed, "interface "),
			strings.HasPrefix(trimmed, "export "),
			strings.Contains(trimmed, ": string"), strings.Contains(trimmed, ": number"):
			tsScore += 2
		case strings.Contains(trimmed, "=>"),
			strings.HasPrefix(trimmed, "const "), strings.HasPrefix(trimmed, "let "),
			strings.HasPrefix(trimmed, "function "),
			strings.HasPrefix(trimmed, "//"):
			tsScore++
		}
	}

	switch {
	case pyScore >= 2 && pyScore > tsScore:
		return domain.LangPython
	case tsScore >= 2 && tsScore > pyScore:
		return domain.LangTypeScript
	default:
		return domain.LangUnknown
	}
}
