package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prlens/prlens/internal/domain"
)

func TestSortFindings_ByLineThenRule(t *testing.T) {
	findings := []domain.Finding{
		{Line: 10, RuleID: "style/line-length"},
		{Line: 2, RuleID: "style/trailing-whitespace"},
		{Line: 2, RuleID: "complexity/function"},
		{Line: 7, RuleID: "no-unused-vars"},
	}

	domain.SortFindings(findings)

	assert.Equal(t, 2, findings[0].Line)
	assert.Equal(t, "complexity/function", findings[0].RuleID)
	assert.Equal(t, 2, findings[1].Line)
	assert.Equal(t, "style/trailing-whitespace", findings[1].RuleID)
	assert.Equal(t, 7, findings[2].Line)
	assert.Equal(t, 10, findings[3].Line)
}

func TestSortFindings_Stable(t *testing.T) {
	findings := []domain.Finding{
		{Line: 3, RuleID: "a", Message: "first"},
		{Line: 3, RuleID: "a", Message: "second"},
	}

	domain.SortFindings(findings)

	assert.Equal(t, "first", findings[0].Message)
	assert.Equal(t, "second", findings[1].Message)
}

func TestSeverity_Valid(t *testing.T) {
	assert.True(t, domain.SeverityInfo.Valid())
	assert.True(t, domain.SeverityWarning.Valid())
	assert.True(t, domain.SeverityError.Valid())
	assert.False(t, domain.Severity("critical").Valid())
	assert.False(t, domain.Severity("").Valid())
}

func TestGradeFor(t *testing.T) {
	assert.Equal(t, "A+", domain.GradeFor(95))
	assert.Equal(t, "A+", domain.GradeFor(90))
	assert.Equal(t, "A", domain.GradeFor(85))
	assert.Equal(t, "B", domain.GradeFor(72))
	assert.Equal(t, "C", domain.GradeFor(60))
	assert.Equal(t, "D", domain.GradeFor(55))
	assert.Equal(t, "F", domain.GradeFor(49.9))
	assert.Equal(t, "F", domain.GradeFor(0))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, domain.ClampScore(-3))
	assert.Equal(t, 100.0, domain.ClampScore(120))
	assert.Equal(t, 42.5, domain.ClampScore(42.5))
}

func TestStructuralSummary_Functions(t *testing.T) {
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{
			{Kind: domain.DeclImport, Name: "os"},
			{Kind: domain.DeclFunction, Name: "main"},
			{Kind: domain.DeclClass, Name: "Widget"},
			{Kind: domain.DeclFunction, Name: "Widget.render"},
		},
	}

	fns := summary.Functions()
	assert.Len(t, fns, 2)
	assert.Equal(t, "main", fns[0].Name)
	assert.Equal(t, "Widget.render", fns[1].Name)
}
