package domain

import "fmt"

// ExtractionErrorKind classifies structural extraction failures.
type ExtractionErrorKind string

const (
	ExtractSyntaxError ExtractionErrorKind = "syntax_error"
	ExtractTooLarge    ExtractionErrorKind = "too_large"
)

// ExtractionError is a recoverable per-file extraction failure. The rest of
// the pipeline still produces a report entry for the file.
type ExtractionError struct {
	Kind    ExtractionErrorKind `json:"kind"`
	Line    int                 `json:"line,omitempty"`
	Message string              `json:"message"`
}

func (e *ExtractionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("extraction failed (%s) at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}

// CheckErrorKind classifies style-check failures.
type CheckErrorKind string

const (
	CheckTimeout         CheckErrorKind = "timeout"
	CheckOutputTooLarge  CheckErrorKind = "output_too_large"
	CheckToolNotFound    CheckErrorKind = "tool_not_found"
	CheckMalformedOutput CheckErrorKind = "malformed_output"
)

// CheckError is a recoverable per-file style-check failure. It never aborts
// sibling analyses or the batch.
type CheckError struct {
	Kind    CheckErrorKind `json:"kind"`
	Message string         `json:"message"`
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("style check failed (%s): %s", e.Kind, e.Message)
}

// AnalysisError records which pipeline stages failed for one file. A result
// may carry a partial summary or findings alongside it: a syntax error in
// extraction does not prevent style checking, and vice versa.
type AnalysisError struct {
	Extraction *ExtractionError `json:"extraction,omitempty"`
	Check      *CheckError      `json:"check,omitempty"`
	Internal   string           `json:"internal,omitempty"`
}

func (e *AnalysisError) Error() string {
	switch {
	case e.Internal != "":
		return e.Internal
	case e.Extraction != nil && e.Check != nil:
		return e.Extraction.Error() + "; " + e.Check.Error()
	case e.Extraction != nil:
		return e.Extraction.Error()
	case e.Check != nil:
		return e.Check.Error()
	default:
		return "analysis failed"
	}
}
