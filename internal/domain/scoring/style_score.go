// Package scoring derives the per-file StyleScore from structural summaries
// and style findings via a fixed, externally overridable weighting.
package scoring

import (
	"fmt"
	"strings"

	"github.com/prlens/prlens/internal/domain"
)

// Complexity thresholds: at or below full credit, at or below
// twice that half credit, above that none.
const maxFunctionComplexity = 10

// Comment-density target: a file documenting at least this ratio of its
// non-blank lines earns full documentation credit.
const targetCommentRatio = 0.10

// Severity deduction points per finding, scaled by file size.
const (
	pointsError   = 3.0
	pointsWarning = 1.0
	pointsInfo    = 0.25
)

// maxPenalty caps the severity deduction so a single pathological file
// cannot push the score below zero before clamping does.
const maxPenalty = 80.0

// Compute derives the weighted style score for one file. Components that
// need a structural summary are skipped when extraction failed, and the
// remaining weights are renormalized; every component and the severity
// deduction appear in the result so the computation is auditable.
//
// An empty file scores the maximum: no violations are possible on it.
func Compute(summary *domain.StructuralSummary, findings []domain.Finding, totalLines int, weights map[string]float64) domain.StyleScore {
	if totalLines <= 0 {
		return domain.StyleScore{Overall: 100}
	}

	var components []domain.ScoreComponent
	if summary != nil {
		components = append(components, scoreComplexity(summary, weights[domain.ComponentComplexity]))
	}
	components = append(components, scoreLineLength(findings, totalLines, weights[domain.ComponentLineLength]))
	if summary != nil {
		components = append(components, scoreDocumentation(summary, weights[domain.ComponentDocumentation]))
	}

	var weighted, totalWeight float64
	for _, c := range components {
		weighted += c.Score * c.Weight
		totalWeight += c.Weight
	}

	base := 100.0
	if totalWeight > 0 {
		base = weighted / totalWeight
	}

	penalty := severityPenalty(findings, totalLines)
	components = append(components, domain.ScoreComponent{
		Name:   "findings_penalty",
		Score:  penalty,
		Weight: 0,
		Detail: "deducted from the weighted base, scaled by finding severity and file size",
	})

	return domain.StyleScore{
		Overall:    domain.ClampScore(base - penalty),
		Components: components,
	}
}

// scoreComplexity rates functions against the cyclomatic ceiling:
// at or below full credit, at or below double partial credit, above none.
func scoreComplexity(summary *domain.StructuralSummary, weight float64) domain.ScoreComponent {
	c := domain.ScoreComponent{Name: domain.ComponentComplexity, Weight: weight}

	total, earned := 0, 0.0
	for _, cx := range summary.Complexity {
		total++
		switch {
		case cx <= maxFunctionComplexity:
			earned += 1.0
		case cx <= maxFunctionComplexity*2:
			earned += 0.5
		}
	}
	if total == 0 {
		c.Score = 100
		c.Detail = "no functions found"
		return c
	}

	ratio := earned / float64(total)
	c.Score = ratio * 100
	c.Detail = fmt.Sprintf("%.0f%% of %d functions within complexity limit (max %d)", ratio*100, total, maxFunctionComplexity)
	return c
}

// scoreLineLength rates the file by the fraction of lines free of
// line-length findings, regardless of which checker produced them.
func scoreLineLength(findings []domain.Finding, totalLines int, weight float64) domain.ScoreComponent {
	c := domain.ScoreComponent{Name: domain.ComponentLineLength, Weight: weight}

	violations := 0
	for _, f := range findings {
		if isLineLengthRule(f.RuleID) {
			violations++
		}
	}
	if violations > totalLines {
		violations = totalLines
	}

	ratio := 1 - float64(violations)/float64(totalLines)
	c.Score = ratio * 100
	c.Detail = fmt.Sprintf("%d of %d lines over the length limit", violations, totalLines)
	return c
}

// scoreDocumentation rates comment density against the target ratio. Credit
// starts at half so sparsely commented but otherwise clean files are not
// dragged far from the maximum.
func scoreDocumentation(summary *domain.StructuralSummary, weight float64) domain.ScoreComponent {
	c := domain.ScoreComponent{Name: domain.ComponentDocumentation, Weight: weight}

	if len(summary.Declarations) == 0 {
		c.Score = 100
		c.Detail = "no declarations to document"
		return c
	}

	nonBlank := summary.TotalLines - summary.BlankLines
	if nonBlank < 1 {
		nonBlank = 1
	}
	ratio := float64(summary.CommentLines) / float64(nonBlank)
	if ratio > targetCommentRatio {
		ratio = targetCommentRatio
	}

	c.Score = 50 + ratio/targetCommentRatio*50
	c.Detail = fmt.Sprintf("%d comment lines across %d non-blank lines", summary.CommentLines, nonBlank)
	return c
}

// severityPenalty converts finding severities into a deduction scaled by
// file size, capped at maxPenalty.
func severityPenalty(findings []domain.Finding, totalLines int) float64 {
	points := 0.0
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityError:
			points += pointsError
		case domain.SeverityWarning:
			points += pointsWarning
		case domain.SeverityInfo:
			points += pointsInfo
		}
	}

	penalty := points / float64(totalLines) * 100
	if penalty > maxPenalty {
		penalty = maxPenalty
	}
	return penalty
}

func isLineLengthRule(ruleID string) bool {
	return ruleID == "style/line-length" || strings.HasSuffix(ruleID, "max-len")
}
