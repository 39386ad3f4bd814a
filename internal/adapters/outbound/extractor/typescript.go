package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prlens/prlens/internal/domain"
)

// Declaration patterns recognized by the scanner. Constructs that match none
// of these are skipped rather than guessed at.
var (
	tsFunctionRe = regexp.MustCompile(`^(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)
	tsArrowRe    = regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)[^=]*=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*(?::[^=]+)?=>`)
	tsClassRe    = regexp.MustCompile(`^(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	tsImportRe   = regexp.MustCompile(`^import\s+(?:type\s+)?(?:[^'"]*\s+from\s+)?['"]([^'"]+)['"]`)
	tsBranchRe   = regexp.MustCompile(`\bif\b|\bfor\b|\bwhile\b|\bcase\b|\bcatch\b|&&|\|\|`)
)

// TypeScriptExtractor implements domain.Extractor by pattern-based scanning.
// There is no full TypeScript parser in this runtime, so nesting depth comes
// from bracket counting and every summary is marked heuristic: the method
// cannot guarantee structural correctness on all valid inputs.
type TypeScriptExtractor struct {
	maxBytes int
}

// NewTypeScript creates a TypeScript extractor with the given size ceiling.
func NewTypeScript(maxBytes int) *TypeScriptExtractor {
	return &TypeScriptExtractor{maxBytes: maxBytes}
}

func (e *TypeScriptExtractor) Extract(content string) (*domain.StructuralSummary, error) {
	if len(content) > e.maxBytes {
		return nil, &domain.ExtractionError{
			Kind:    domain.ExtractTooLarge,
			Message: fmt.Sprintf("content is %d bytes (ceiling %d)", len(content), e.maxBytes),
		}
	}

	total, comments, blanks := lineStats(content, isTSComment)
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{},
		Complexity:   map[string]int{},
		TotalLines:   total,
		CommentLines: comments,
		BlankLines:   blanks,
		Confidence:   domain.ConfidenceHeuristic,
	}
	if strings.TrimSpace(content) == "" {
		return summary, nil
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	type openDecl struct {
		idx        int
		entryDepth int
	}
	var open []openDecl
	depth := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !isTSComment(trimmed) {
			if decl, ok := matchDecl(trimmed, i+1, depth); ok {
				summary.Declarations = append(summary.Declarations, decl)
				if decl.Kind != domain.DeclImport && strings.Contains(line, "{") {
					open = append(open, openDecl{idx: len(summary.Declarations) - 1, entryDepth: depth})
				}
			}
		}

		opens, closes := countBraces(line)
		newDepth := depth + opens - closes
		if newDepth < 0 {
			newDepth = 0
		}
		for len(open) > 0 && newDepth <= open[len(open)-1].entryDepth {
			summary.Declarations[open[len(open)-1].idx].EndLine = i + 1
			open = open[:len(open)-1]
		}
		depth = newDepth
	}
	// Unbalanced braces at EOF: close whatever is still open at the last line.
	for _, od := range open {
		summary.Declarations[od.idx].EndLine = len(lines)
	}

	for _, d := range summary.Declarations {
		if d.Kind != domain.DeclFunction {
			continue
		}
		summary.Complexity[d.Name] = estimateComplexity(lines, d.StartLine, d.EndLine)
	}

	return summary, nil
}

// matchDecl recognizes one declaration on a trimmed line. Ambiguous lines
// yield no declaration.
func matchDecl(trimmed string, lineNo, depth int) (domain.Declaration, bool) {
	if m := tsFunctionRe.FindStringSubmatch(trimmed); m != nil {
		return domain.Declaration{Kind: domain.DeclFunction, Name: m[1], StartLine: lineNo, EndLine: lineNo, Depth: depth}, true
	}
	if m := tsArrowRe.FindStringSubmatch(trimmed); m != nil {
		return domain.Declaration{Kind: domain.DeclFunction, Name: m[1], StartLine: lineNo, EndLine: lineNo, Depth: depth}, true
	}
	if m := tsClassRe.FindStringSubmatch(trimmed); m != nil {
		return domain.Declaration{Kind: domain.DeclClass, Name: m[1], StartLine: lineNo, EndLine: lineNo, Depth: depth}, true
	}
	if m := tsImportRe.FindStringSubmatch(trimmed); m != nil {
		return domain.Declaration{Kind: domain.DeclImport, Name: m[1], StartLine: lineNo, EndLine: lineNo, Depth: depth}, true
	}
	return domain.Declaration{}, false
}

// countBraces counts braces outside string literals and line comments.
func countBraces(line string) (opens, closes int) {
	var quote byte
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return opens, closes
		case c == '{':
			opens++
		case c == '}':
			closes++
		}
	}
	return opens, closes
}

// estimateComplexity counts branching keywords within the line range.
func estimateComplexity(lines []string, start, end int) int {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	count := 1
	for i := start - 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if isTSComment(trimmed) {
			continue
		}
		count += len(tsBranchRe.FindAllString(lines[i], -1))
	}
	return count
}

func isTSComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}
