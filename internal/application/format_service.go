package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prlens/prlens/internal/domain"
)

// FormatService turns a raw Report into the terminal ValidatedReport. Every
// report passes through here before leaving the pipeline; there is no raw
// output path.
type FormatService struct{}

func NewFormatService() *FormatService {
	return &FormatService{}
}

// Format validates each result against the output schema, collects coercion
// flags, and computes the batch aggregate.
func (s *FormatService) Format(report *domain.Report) *domain.ValidatedReport {
	validated := &domain.ValidatedReport{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Files:     report.Files,
	}

	for i := range validated.Files {
		for _, flag := range domain.CoerceResult(&validated.Files[i]) {
			validated.Coercions = append(validated.Coercions, fmt.Sprintf("%s: %s", validated.Files[i].Path, flag))
		}
	}

	validated.Aggregate = computeAggregate(validated.Files)
	return validated
}

func computeAggregate(files []domain.AnalysisResult) domain.Aggregate {
	agg := domain.Aggregate{
		FindingsBySeverity: map[domain.Severity]int{
			domain.SeverityInfo:    0,
			domain.SeverityWarning: 0,
			domain.SeverityError:   0,
		},
	}

	scored := 0
	total := 0.0
	for _, f := range files {
		if f.Score != nil {
			total += f.Score.Overall
			scored++
		}
		for _, finding := range f.Findings {
			agg.FindingsBySeverity[finding.Severity]++
		}
	}
	if scored > 0 {
		agg.MeanStyleScore = total / float64(scored)
	}
	return agg
}
