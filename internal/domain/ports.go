package domain

import "context"

// LanguageDetector classifies a changed file into a Language tag. It is a
// classification, not a parse: it must be total over all inputs and returns
// LangUnknown rather than failing.
type LanguageDetector interface {
	Detect(path, content string) Language
}

// Extractor parses source text into a StructuralSummary. Recoverable
// failures are reported as *ExtractionError.
type Extractor interface {
	Extract(content string) (*StructuralSummary, error)
}

// Checker runs style analysis for one file. summary may be nil when
// extraction failed; checkers degrade to content-only rules in that case.
// Recoverable failures are reported as *CheckError.
type Checker interface {
	Check(ctx context.Context, change FileChange, summary *StructuralSummary) ([]Finding, error)
}

// Capability bundles the per-language implementations behind one
// registry entry.
type Capability struct {
	Extractor Extractor
	Checker   Checker
}

// Registry maps a language to its analysis capability, eliminating
// per-language special-casing in the coordinator.
type Registry map[Language]Capability

// ConfigLoader loads the analysis configuration for a project.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// ChangeSource produces the FileChange set for a project. Implementations
// make no assumption about how callers use the changes.
type ChangeSource interface {
	Changes(projectPath string) ([]FileChange, error)
}
