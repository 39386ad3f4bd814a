package checker_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prlens/prlens/internal/adapters/outbound/checker"
	"github.com/prlens/prlens/internal/domain"
)

func pythonChecker() *checker.PythonChecker {
	return checker.NewPython(domain.DefaultConfig())
}

func pyChange(content string) domain.FileChange {
	return domain.FileChange{Path: "src/app.py", Language: domain.LangPython, Content: content}
}

func ruleIDs(findings []domain.Finding) []string {
	var ids []string
	for _, f := range findings {
		ids = append(ids, f.RuleID)
	}
	return ids
}

func TestPythonCheck_CleanFileNoFindings(t *testing.T) {
	findings, err := pythonChecker().Check(context.Background(), pyChange("x = 1\ny = 2\n"), nil)

	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestPythonCheck_LineLength(t *testing.T) {
	long := "x = '" + strings.Repeat("a", 120) + "'\n"
	findings, err := pythonChecker().Check(context.Background(), pyChange(long), nil)

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "style/line-length", findings[0].RuleID)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
}

func TestPythonCheck_TrailingWhitespaceWithFix(t *testing.T) {
	findings, err := pythonChecker().Check(context.Background(), pyChange("x = 1   \n"), nil)

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "style/trailing-whitespace", findings[0].RuleID)
	assert.Equal(t, domain.SeverityInfo, findings[0].Severity)
	assert.Equal(t, "x = 1", findings[0].SuggestedFix)
}

func TestPythonCheck_BlankRatio(t *testing.T) {
	content := strings.Repeat("\n", 15) + strings.Repeat("x = 1\n", 10)
	findings, err := pythonChecker().Check(context.Background(), pyChange(content), nil)

	require.NoError(t, err)
	assert.Contains(t, ruleIDs(findings), "style/blank-ratio")
}

func TestPythonCheck_ComplexityThresholds(t *testing.T) {
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{
			{Kind: domain.DeclFunction, Name: "fine", StartLine: 1},
			{Kind: domain.DeclFunction, Name: "warned", StartLine: 5},
			{Kind: domain.DeclFunction, Name: "failed", StartLine: 9},
		},
		Complexity: map[string]int{"fine": 10, "warned": 11, "failed": 21},
	}

	findings, err := pythonChecker().Check(context.Background(), pyChange("x = 1\n"), summary)
	require.NoError(t, err)

	var complexity []domain.Finding
	for _, f := range findings {
		if f.RuleID == "complexity/function" {
			complexity = append(complexity, f)
		}
	}
	require.Len(t, complexity, 2)

	sort.Slice(complexity, func(i, j int) bool { return complexity[i].Line < complexity[j].Line })
	assert.Equal(t, 5, complexity[0].Line)
	assert.Equal(t, domain.SeverityWarning, complexity[0].Severity)
	assert.Equal(t, 9, complexity[1].Line)
	assert.Equal(t, domain.SeverityError, complexity[1].Severity)
}

func TestPythonCheck_SnakeCaseFix(t *testing.T) {
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{
			{Kind: domain.DeclFunction, Name: "Widget.renderFast", StartLine: 4},
		},
		Complexity: map[string]int{"Widget.renderFast": 1},
	}

	findings, err := pythonChecker().Check(context.Background(), pyChange("x = 1\n"), summary)
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, "naming/snake-case", findings[0].RuleID)
	assert.Equal(t, "render_fast", findings[0].SuggestedFix)
}

func TestPythonCheck_SnakeCaseAcceptsDunder(t *testing.T) {
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{
			{Kind: domain.DeclFunction, Name: "Widget.__init__", StartLine: 2},
			{Kind: domain.DeclFunction, Name: "load_all", StartLine: 8},
		},
		Complexity: map[string]int{},
	}

	findings, err := pythonChecker().Check(context.Background(), pyChange("x = 1\n"), summary)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestPythonCheck_ClassCapWords(t *testing.T) {
	summary := &domain.StructuralSummary{
		Declarations: []domain.Declaration{
			{Kind: domain.DeclClass, Name: "http_client", StartLine: 3},
		},
	}

	findings, err := pythonChecker().Check(context.Background(), pyChange("x = 1\n"), summary)
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, "naming/cap-words", findings[0].RuleID)
}

func TestPythonCheck_LowCommentDensity(t *testing.T) {
	summary := &domain.StructuralSummary{
		TotalLines:   120,
		CommentLines: 1,
		BlankLines:   10,
	}

	findings, err := pythonChecker().Check(context.Background(), pyChange("x = 1\n"), summary)
	require.NoError(t, err)

	assert.Contains(t, ruleIDs(findings), "docs/low-comment-density")
}

func TestPythonCheck_FindingsSorted(t *testing.T) {
	long := strings.Repeat("a", 120)
	content := "x = 1 \n" + long + "\ny = 2  \n"

	findings, err := pythonChecker().Check(context.Background(), pyChange(content), nil)
	require.NoError(t, err)

	require.Len(t, findings, 3)
	assert.True(t, sort.SliceIsSorted(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].RuleID < findings[j].RuleID
	}))
}
