// Package application wires ports together into use cases.
package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prlens/prlens/internal/domain"
	"github.com/prlens/prlens/internal/domain/scoring"
)

// AnalyzeService runs the per-file pipeline over a change set with a bounded
// worker pool and merges the outcomes into one validated report. Per-file
// failures are recorded in place; the only fatal condition is an invalid
// configuration, which is rejected at construction.
type AnalyzeService struct {
	detector domain.LanguageDetector
	registry domain.Registry
	cfg      domain.Config
	log      *zap.Logger
}

// NewAnalyzeService validates cfg and builds the coordinator.
func NewAnalyzeService(detector domain.LanguageDetector, registry domain.Registry, cfg domain.Config, log *zap.Logger) (*AnalyzeService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyzeService{detector: detector, registry: registry, cfg: cfg, log: log}, nil
}

// Analyze produces exactly one result per change, in ascending path order
// regardless of input order or completion order.
func (s *AnalyzeService) Analyze(ctx context.Context, changes []domain.FileChange) (*domain.ValidatedReport, error) {
	results := make([]domain.AnalysisResult, len(changes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.PoolSize())
	for i, change := range changes {
		g.Go(func() error {
			results[i] = s.analyzeOne(gctx, change)
			return nil
		})
	}
	// Workers never return errors; failures live inside results.
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	report := &domain.Report{Files: results}
	return NewFormatService().Format(report), nil
}

// analyzeOne runs detect, extract, check, and score for a single file.
// A panic in any stage is contained here and surfaced as the file's error.
func (s *AnalyzeService) analyzeOne(ctx context.Context, change domain.FileChange) (result domain.AnalysisResult) {
	result = domain.AnalysisResult{
		Path:     change.Path,
		Language: change.Language,
		Lines:    countLines(change.Content),
		Findings: []domain.Finding{},
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("analysis panicked", zap.String("path", change.Path), zap.Any("panic", r))
			result.Summary = nil
			result.Score = nil
			result.Findings = []domain.Finding{}
			result.Err = &domain.AnalysisError{Internal: fmt.Sprintf("panic: %v", r)}
		}
	}()

	if result.Language == "" {
		result.Language = s.detector.Detect(change.Path, change.Content)
	}
	change.Language = result.Language

	capability, ok := s.registry[result.Language]
	if !ok {
		s.log.Debug("no capability for language",
			zap.String("path", change.Path),
			zap.String("language", string(result.Language)))
		return result
	}

	summary, extractErr := capability.Extractor.Extract(change.Content)
	if extractErr != nil {
		var ee *domain.ExtractionError
		if errors.As(extractErr, &ee) {
			result.Err = &domain.AnalysisError{Extraction: ee}
		} else {
			result.Err = &domain.AnalysisError{Internal: extractErr.Error()}
		}
	} else {
		result.Summary = summary
	}

	// Checking proceeds on the raw content even when extraction failed;
	// the summary is simply absent.
	findings, checkErr := capability.Checker.Check(ctx, change, result.Summary)
	if checkErr != nil {
		var ce *domain.CheckError
		if result.Err == nil {
			result.Err = &domain.AnalysisError{}
		}
		if errors.As(checkErr, &ce) {
			result.Err.Check = ce
		} else {
			result.Err.Internal = checkErr.Error()
		}
		return result
	}
	result.Findings = findings

	score := scoring.Compute(result.Summary, findings, result.Lines, s.cfg.EffectiveWeights())
	result.Score = &score
	return result
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(content, "\n"), "\n") + 1
}
