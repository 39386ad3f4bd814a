package domain

import (
	"sort"
	"time"
)

// Language identifies the programming language of a changed file.
type Language string

const (
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
	LangUnknown    Language = "unknown"
)

// HunkKind marks a diff hunk as added or removed lines.
type HunkKind string

const (
	HunkAdded   HunkKind = "added"
	HunkRemoved HunkKind = "removed"
)

// Hunk is one contiguous changed region of a file, in new-file line numbers.
type Hunk struct {
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Kind      HunkKind `json:"kind"`
}

// FileChange is one file's changed content plus diff metadata.
// It is immutable once ingested.
type FileChange struct {
	Path     string   `json:"path"`
	Language Language `json:"language,omitempty"`
	Content  string   `json:"content"`
	Hunks    []Hunk   `json:"hunks,omitempty"`
}

// DeclKind classifies a declaration found in source text.
type DeclKind string

const (
	DeclFunction DeclKind = "function"
	DeclClass    DeclKind = "class"
	DeclImport   DeclKind = "import"
)

// Declaration is one named construct with its position and nesting depth.
type Declaration struct {
	Kind      DeclKind `json:"kind"`
	Name      string   `json:"name"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Depth     int      `json:"nested_depth"`
}

// Confidence distinguishes guaranteed-correct extraction from heuristic
// pattern scanning, so downstream consumers can weigh the summary accordingly.
type Confidence string

const (
	ConfidenceExact     Confidence = "exact"
	ConfidenceHeuristic Confidence = "heuristic"
)

// StructuralSummary is the language-neutral shape of a source file.
// Produced once by an extractor and read-only thereafter.
type StructuralSummary struct {
	Declarations []Declaration  `json:"declarations"`
	Complexity   map[string]int `json:"complexity,omitempty"`
	TotalLines   int            `json:"total_lines"`
	CommentLines int            `json:"comment_lines"`
	BlankLines   int            `json:"blank_lines"`
	Confidence   Confidence     `json:"confidence"`
}

// Functions returns the function declarations in the summary.
func (s *StructuralSummary) Functions() []Declaration {
	var fns []Declaration
	for _, d := range s.Declarations {
		if d.Kind == DeclFunction {
			fns = append(fns, d)
		}
	}
	return fns
}

// Severity of a style finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Severities enumerates all valid severities.
var Severities = []Severity{SeverityInfo, SeverityWarning, SeverityError}

// Valid reports whether the severity is drawn from the fixed enum.
func (s Severity) Valid() bool {
	for _, v := range Severities {
		if s == v {
			return true
		}
	}
	return false
}

// Finding is one style/quality issue anchored to a line.
type Finding struct {
	Line         int      `json:"line"`
	Severity     Severity `json:"severity"`
	RuleID       string   `json:"rule_id"`
	Message      string   `json:"message"`
	SuggestedFix string   `json:"suggested_fix,omitempty"`
}

// SortFindings orders findings by ascending line number,
// ties broken by rule id.
func SortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return fs[i].RuleID < fs[j].RuleID
	})
}

// ScoreComponent is one weighted sub-score of a StyleScore, kept so the
// computation is auditable.
type ScoreComponent struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Detail string  `json:"detail,omitempty"`
}

// StyleScore is the numeric quality signal for one file, in [0,100].
type StyleScore struct {
	Overall    float64          `json:"overall"`
	Components []ScoreComponent `json:"components,omitempty"`
}

// Grade returns the letter grade for the score.
func (s StyleScore) Grade() string { return GradeFor(s.Overall) }

// GradeFor maps a 0-100 score to a letter grade.
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// ClampScore forces a score into the valid [0,100] range.
func ClampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// AnalysisResult is one file's combined structural and style outcome,
// including any per-file error. Frozen once placed in a Report.
type AnalysisResult struct {
	Path     string             `json:"path"`
	Language Language           `json:"language"`
	Lines    int                `json:"lines"`
	Summary  *StructuralSummary `json:"structural_summary,omitempty"`
	Findings []Finding          `json:"findings"`
	Score    *StyleScore        `json:"style_score,omitempty"`
	Err      *AnalysisError     `json:"error,omitempty"`
}

// Report is the complete, path-ordered set of AnalysisResults for a batch.
// Every FileChange in the input set has exactly one entry, including files
// whose analysis failed.
type Report struct {
	Files []AnalysisResult `json:"files"`
}

// Aggregate holds batch-level metrics derived from a report.
type Aggregate struct {
	MeanStyleScore     float64          `json:"mean_style_score"`
	FindingsBySeverity map[Severity]int `json:"findings_by_severity"`
}

// ValidatedReport is the terminal artifact: a schema-checked report with
// aggregate metrics and run metadata. Non-conforming results are coerced to
// safe values and listed under Coercions, never passed through silently.
type ValidatedReport struct {
	RunID      string           `json:"run_id"`
	Timestamp  time.Time        `json:"timestamp"`
	CommitHash string           `json:"commit_hash,omitempty"`
	Files      []AnalysisResult `json:"files"`
	Aggregate  Aggregate        `json:"aggregate"`
	Coercions  []string         `json:"coercions,omitempty"`
}
