package domain

import "fmt"

// CoerceResult checks one AnalysisResult against the output schema and
// coerces non-conforming fields to safe values in place: scores are clamped
// to [0,100], findings with unknown severities or out-of-bounds line numbers
// are dropped, and ordering is restored. It returns a flag per coercion so
// nothing is silently rewritten.
func CoerceResult(r *AnalysisResult) []string {
	var flags []string

	if r.Score != nil && (r.Score.Overall < 0 || r.Score.Overall > 100) {
		flags = append(flags, fmt.Sprintf("style score %.2f clamped to [0,100]", r.Score.Overall))
		r.Score.Overall = ClampScore(r.Score.Overall)
	}

	kept := r.Findings[:0]
	for _, f := range r.Findings {
		if !f.Severity.Valid() {
			flags = append(flags, fmt.Sprintf("finding %s dropped: unknown severity %q", f.RuleID, f.Severity))
			continue
		}
		if f.Line < 1 || (r.Lines > 0 && f.Line > r.Lines) {
			flags = append(flags, fmt.Sprintf("finding %s dropped: line %d outside file bounds", f.RuleID, f.Line))
			continue
		}
		kept = append(kept, f)
	}
	r.Findings = kept
	if r.Findings == nil {
		r.Findings = []Finding{}
	}
	SortFindings(r.Findings)

	return flags
}
