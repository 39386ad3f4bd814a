package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prlens/prlens/internal/domain"
	"github.com/prlens/prlens/internal/domain/scoring"
)

func defaultWeights() map[string]float64 {
	return domain.DefaultConfig().Weights
}

func TestCompute_EmptyFileScoresMaximum(t *testing.T) {
	score := scoring.Compute(nil, nil, 0, defaultWeights())
	assert.Equal(t, 100.0, score.Overall)
}

func TestCompute_CleanFileNearMaximum(t *testing.T) {
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{
			{Kind: domain.DeclFunction, Name: "load", StartLine: 3, EndLine: 10},
		},
		Complexity:   map[string]int{"load": 2},
		TotalLines:   40,
		CommentLines: 5,
		BlankLines:   4,
		Confidence:   domain.ConfidenceExact,
	}

	score := scoring.Compute(summary, nil, 40, defaultWeights())

	assert.GreaterOrEqual(t, score.Overall, 90.0)
	assert.LessOrEqual(t, score.Overall, 100.0)
}

func TestCompute_ErrorOnEveryLineNearMinimum(t *testing.T) {
	var findings []domain.Finding
	for i := 1; i <= 30; i++ {
		findings = append(findings, domain.Finding{
			Line: i, Severity: domain.SeverityError, RuleID: "no-undef",
		})
	}

	score := scoring.Compute(nil, findings, 30, defaultWeights())

	assert.LessOrEqual(t, score.Overall, 25.0)
	assert.GreaterOrEqual(t, score.Overall, 0.0)
}

func TestCompute_AlwaysInRange(t *testing.T) {
	summary := &domain.StructuralSummary{
		Complexity: map[string]int{"f": 50, "g": 1},
		TotalLines: 5,
	}
	findings := []domain.Finding{
		{Line: 1, Severity: domain.SeverityError, RuleID: "a"},
		{Line: 2, Severity: domain.SeverityError, RuleID: "b"},
		{Line: 3, Severity: domain.SeverityError, RuleID: "c"},
	}

	score := scoring.Compute(summary, findings, 5, defaultWeights())

	assert.GreaterOrEqual(t, score.Overall, 0.0)
	assert.LessOrEqual(t, score.Overall, 100.0)
}

func TestCompute_NilSummarySkipsStructuralComponents(t *testing.T) {
	findings := []domain.Finding{
		{Line: 1, Severity: domain.SeverityWarning, RuleID: "style/line-length"},
	}

	score := scoring.Compute(nil, findings, 10, defaultWeights())

	names := componentNames(score)
	assert.NotContains(t, names, domain.ComponentComplexity)
	assert.NotContains(t, names, domain.ComponentDocumentation)
	assert.Contains(t, names, domain.ComponentLineLength)
}

func TestCompute_ComplexityPartialCredit(t *testing.T) {
	summary := &domain.StructuralSummary{
		Complexity: map[string]int{"simple": 5, "borderline": 15, "gnarly": 30},
		TotalLines: 100,
	}

	score := scoring.Compute(summary, nil, 100, map[string]float64{domain.ComponentComplexity: 1})

	component := findComponent(t, score, domain.ComponentComplexity)
	assert.InDelta(t, 50.0, component.Score, 0.001)
}

func TestCompute_LineLengthComponentCountsViolations(t *testing.T) {
	findings := []domain.Finding{
		{Line: 1, Severity: domain.SeverityWarning, RuleID: "style/line-length"},
		{Line: 2, Severity: domain.SeverityWarning, RuleID: "max-len"},
		{Line: 3, Severity: domain.SeverityWarning, RuleID: "no-unused-vars"},
	}

	score := scoring.Compute(nil, findings, 10, map[string]float64{domain.ComponentLineLength: 1})

	component := findComponent(t, score, domain.ComponentLineLength)
	assert.InDelta(t, 80.0, component.Score, 0.001)
}

func TestCompute_DocumentationFullCreditAtTarget(t *testing.T) {
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{{Kind: domain.DeclFunction, Name: "f"}},
		Complexity:   map[string]int{"f": 1},
		TotalLines:   100,
		CommentLines: 10,
	}

	score := scoring.Compute(summary, nil, 100, map[string]float64{domain.ComponentDocumentation: 1})

	component := findComponent(t, score, domain.ComponentDocumentation)
	assert.InDelta(t, 100.0, component.Score, 0.001)
}

func TestCompute_PenaltyComponentRecorded(t *testing.T) {
	findings := []domain.Finding{
		{Line: 1, Severity: domain.SeverityError, RuleID: "x"},
	}

	score := scoring.Compute(nil, findings, 10, defaultWeights())

	component := findComponent(t, score, "findings_penalty")
	assert.Zero(t, component.Weight)
	assert.Greater(t, component.Score, 0.0)
}

func componentNames(score domain.StyleScore) []string {
	var names []string
	for _, c := range score.Components {
		names = append(names, c.Name)
	}
	return names
}

func findComponent(t *testing.T, score domain.StyleScore, name string) domain.ScoreComponent {
	t.Helper()
	for _, c := range score.Components {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "component not found", "no component named %q", name)
	return domain.ScoreComponent{}
}
