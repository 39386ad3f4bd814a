package checker

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/prlens/prlens/internal/domain"
)

// Thresholds for the in-process rules.
const (
	complexityWarn    = 10
	complexityError   = 20
	blankRatioLimit   = 0.4
	blankRatioMinSize = 20
	commentRatioFloor = 0.02
	commentMinSize    = 50
)

// PythonChecker implements domain.Checker with in-process analysis: line
// shape rules come straight from the content, complexity and documentation
// rules from the structural summary when extraction produced one.
type PythonChecker struct {
	maxLineLength int
}

// NewPython creates the in-process checker.
func NewPython(cfg domain.Config) *PythonChecker {
	return &PythonChecker{maxLineLength: cfg.MaxLineLength}
}

func (c *PythonChecker) Check(_ context.Context, change domain.FileChange, summary *domain.StructuralSummary) ([]domain.Finding, error) {
	findings := []domain.Finding{}

	lines := strings.Split(change.Content, "\n")
	blanks := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			continue
		}
		if len(line) > c.maxLineLength {
			findings = append(findings, domain.Finding{
				Line:     i + 1,
				Severity: domain.SeverityWarning,
				RuleID:   "style/line-length",
				Message:  fmt.Sprintf("line is %d characters (limit %d)", len(line), c.maxLineLength),
			})
		}
		if trailing := strings.TrimRight(line, " \t"); trailing != line {
			findings = append(findings, domain.Finding{
				Line:         i + 1,
				Severity:     domain.SeverityInfo,
				RuleID:       "style/trailing-whitespace",
				Message:      "line has trailing whitespace",
				SuggestedFix: trailing,
			})
		}
	}

	if len(lines) >= blankRatioMinSize && float64(blanks)/float64(len(lines)) > blankRatioLimit {
		findings = append(findings, domain.Finding{
			Line:     1,
			Severity: domain.SeverityInfo,
			RuleID:   "style/blank-ratio",
			Message:  fmt.Sprintf("%d of %d lines are blank", blanks, len(lines)),
		})
	}

	if summary != nil {
		findings = append(findings, c.summaryFindings(summary)...)
	}

	domain.SortFindings(findings)
	return findings, nil
}

// summaryFindings derives complexity, documentation, and naming findings
// from the structural summary.
func (c *PythonChecker) summaryFindings(summary *domain.StructuralSummary) []domain.Finding {
	var findings []domain.Finding

	for _, d := range summary.Declarations {
		switch d.Kind {
		case domain.DeclFunction:
			cx := summary.Complexity[d.Name]
			switch {
			case cx > complexityError:
				findings = append(findings, domain.Finding{
					Line:     d.StartLine,
					Severity: domain.SeverityError,
					RuleID:   "complexity/function",
					Message:  fmt.Sprintf("function %s has estimated complexity %d (limit %d)", d.Name, cx, complexityWarn),
				})
			case cx > complexityWarn:
				findings = append(findings, domain.Finding{
					Line:     d.StartLine,
					Severity: domain.SeverityWarning,
					RuleID:   "complexity/function",
					Message:  fmt.Sprintf("function %s has estimated complexity %d (limit %d)", d.Name, cx, complexityWarn),
				})
			}
			if fix, bad := snakeCaseFix(baseName(d.Name)); bad {
				findings = append(findings, domain.Finding{
					Line:         d.StartLine,
					Severity:     domain.SeverityInfo,
					RuleID:       "naming/snake-case",
					Message:      fmt.Sprintf("function %s is not snake_case", baseName(d.Name)),
					SuggestedFix: fix,
				})
			}
		case domain.DeclClass:
			if strings.Contains(baseName(d.Name), "_") {
				findings = append(findings, domain.Finding{
					Line:     d.StartLine,
					Severity: domain.SeverityInfo,
					RuleID:   "naming/cap-words",
					Message:  fmt.Sprintf("class %s is not CapWords", baseName(d.Name)),
				})
			}
		}
	}

	nonBlank := summary.TotalLines - summary.BlankLines
	if summary.TotalLines >= commentMinSize && nonBlank > 0 &&
		float64(summary.CommentLines)/float64(nonBlank) < commentRatioFloor {
		findings = append(findings, domain.Finding{
			Line:     1,
			Severity: domain.SeverityInfo,
			RuleID:   "docs/low-comment-density",
			Message:  fmt.Sprintf("%d comment lines across %d non-blank lines", summary.CommentLines, nonBlank),
		})
	}

	return findings
}

// snakeCaseFix splits a camelCase identifier into its snake_case form.
// Dunder and single-word lowercase names pass unchanged.
func snakeCaseFix(name string) (string, bool) {
	hasUpper := false
	for _, r := range name {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return "", false
	}

	words := camelcase.Split(name)
	if len(words) < 2 {
		return "", false
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_"), true
}

// baseName strips the qualifying scope from a dotted declaration name.
func baseName(qualified string) string {
	if idx := strings.LastIndexByte(qualified, '.'); idx >= 0 {
		return qualified[idx+1:]
	}
	return qualified
}
