// Package checker provides the per-language style checkers: an in-process
// checker for languages with a native structural model and a subprocess
// checker driving an external linter.
package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/prlens/prlens/internal/domain"
)

// eslintFile mirrors one entry of ESLint's JSON formatter output.
type eslintFile struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID   string  `json:"ruleId"`
	Severity int     `json:"severity"`
	Message  string  `json:"message"`
	Line     int     `json:"line"`
	Fatal    bool    `json:"fatal"`
	Fix      *struct {
		Text string `json:"text"`
	} `json:"fix"`
}

// ESLintChecker implements domain.Checker by invoking an external linter on
// a scratch copy of the file. The subprocess runs under a hard wall-clock
// timeout with a bounded stdout; every failure mode is a per-file
// CheckError, never a batch abort.
type ESLintChecker struct {
	cfg domain.LintConfig
	log *zap.Logger
}

// NewESLint creates the subprocess-backed checker.
func NewESLint(cfg domain.LintConfig, log *zap.Logger) *ESLintChecker {
	if log == nil {
		log = zap.NewNop()
	}
	return &ESLintChecker{cfg: cfg, log: log}
}

func (c *ESLintChecker) Check(ctx context.Context, change domain.FileChange, _ *domain.StructuralSummary) ([]domain.Finding, error) {
	ext := filepath.Ext(change.Path)
	if ext == "" {
		ext = ".ts"
	}

	var findings []domain.Finding
	err := withScratchFile(change.Content, ext, func(path string) error {
		timeout := time.Duration(c.cfg.TimeoutMs) * time.Millisecond
		result, err := runCommand(ctx, timeout, c.cfg.MaxOutputBytes, c.log,
			c.cfg.Command, "--format", "json", "--no-ignore", path)
		if err != nil {
			return err
		}

		// ESLint exits 0 when clean and 1 when findings exist; both emit
		// the JSON document. Any other exit code is a tool failure.
		if result.ExitCode > 1 {
			return &domain.CheckError{
				Kind:    domain.CheckMalformedOutput,
				Message: fmt.Sprintf("%s exited %d: %s", c.cfg.Command, result.ExitCode, firstLine(result.Stderr)),
			}
		}

		parsed, perr := parseESLintOutput(result.Stdout)
		if perr != nil {
			return perr
		}
		findings = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	domain.SortFindings(findings)
	return findings, nil
}

// parseESLintOutput converts the JSON formatter document into findings.
func parseESLintOutput(out []byte) ([]domain.Finding, error) {
	var files []eslintFile
	if err := json.Unmarshal(out, &files); err != nil {
		return nil, &domain.CheckError{
			Kind:    domain.CheckMalformedOutput,
			Message: fmt.Sprintf("parsing linter output: %v", err),
		}
	}

	findings := []domain.Finding{}
	for _, f := range files {
		for _, m := range f.Messages {
			finding := domain.Finding{
				Line:     m.Line,
				Severity: eslintSeverity(m),
				RuleID:   m.RuleID,
				Message:  m.Message,
			}
			if finding.RuleID == "" {
				finding.RuleID = "eslint/fatal"
			}
			if finding.Line < 1 {
				finding.Line = 1
			}
			if m.Fix != nil {
				finding.SuggestedFix = m.Fix.Text
			}
			findings = append(findings, finding)
		}
	}
	return findings, nil
}

func eslintSeverity(m eslintMessage) domain.Severity {
	if m.Fatal || m.Severity >= 2 {
		return domain.SeverityError
	}
	if m.Severity == 1 {
		return domain.SeverityWarning
	}
	return domain.SeverityInfo
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}
