package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prlens/prlens/internal/application"
	"github.com/prlens/prlens/internal/domain"
)

func TestFormat_StampsRunMetadata(t *testing.T) {
	report := &domain.Report{Files: []domain.AnalysisResult{}}

	first := application.NewFormatService().Format(report)
	second := application.NewFormatService().Format(report)

	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.False(t, first.Timestamp.IsZero())
}

func TestFormat_AggregateMeanOverScoredFilesOnly(t *testing.T) {
	report := &domain.Report{Files: []domain.AnalysisResult{
		{Path: "a.py", Lines: 10, Findings: []domain.Finding{}, Score: &domain.StyleScore{Overall: 80}},
		{Path: "b.py", Lines: 10, Findings: []domain.Finding{}, Score: &domain.StyleScore{Overall: 60}},
		{Path: "c.md", Lines: 10, Findings: []domain.Finding{}},
	}}

	validated := application.NewFormatService().Format(report)

	assert.InDelta(t, 70.0, validated.Aggregate.MeanStyleScore, 0.001)
}

func TestFormat_CountsFindingsBySeverity(t *testing.T) {
	report := &domain.Report{Files: []domain.AnalysisResult{
		{Path: "a.py", Lines: 10, Findings: []domain.Finding{
			{Line: 1, Severity: domain.SeverityError, RuleID: "x"},
			{Line: 2, Severity: domain.SeverityWarning, RuleID: "y"},
			{Line: 3, Severity: domain.SeverityWarning, RuleID: "z"},
		}},
	}}

	validated := application.NewFormatService().Format(report)

	assert.Equal(t, 1, validated.Aggregate.FindingsBySeverity[domain.SeverityError])
	assert.Equal(t, 2, validated.Aggregate.FindingsBySeverity[domain.SeverityWarning])
	assert.Equal(t, 0, validated.Aggregate.FindingsBySeverity[domain.SeverityInfo])
}

func TestFormat_CoercionsFlaggedWithPath(t *testing.T) {
	report := &domain.Report{Files: []domain.AnalysisResult{
		{Path: "weird.py", Lines: 5, Findings: []domain.Finding{
			{Line: 99, Severity: domain.SeverityInfo, RuleID: "ghost"},
		}, Score: &domain.StyleScore{Overall: 150}},
	}}

	validated := application.NewFormatService().Format(report)

	require.Len(t, validated.Coercions, 2)
	assert.Contains(t, validated.Coercions[0], "weird.py: ")
	assert.Equal(t, 100.0, validated.Files[0].Score.Overall)
	assert.Empty(t, validated.Files[0].Findings)
}

func TestFormat_EmptyReport(t *testing.T) {
	validated := application.NewFormatService().Format(&domain.Report{})

	assert.Zero(t, validated.Aggregate.MeanStyleScore)
	assert.Len(t, validated.Aggregate.FindingsBySeverity, 3)
	assert.Empty(t, validated.Coercions)
}
