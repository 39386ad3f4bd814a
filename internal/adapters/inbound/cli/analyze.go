package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prlens/prlens/internal/adapters/outbound/changes"
	"github.com/prlens/prlens/internal/adapters/outbound/checker"
	"github.com/prlens/prlens/internal/adapters/outbound/config"
	"github.com/prlens/prlens/internal/adapters/outbound/detector"
	"github.com/prlens/prlens/internal/adapters/outbound/extractor"
	"github.com/prlens/prlens/internal/adapters/outbound/tui"
	"github.com/prlens/prlens/internal/application"
	"github.com/prlens/prlens/internal/domain"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		minScore   float64
		verbose    bool
		fullTree   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze the changed files of a project",
		Long:  "Analyze the files changed since HEAD (or the whole tree with --dir) and produce per-file findings and style scores.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			log, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			svc, err := application.NewAnalyzeService(detector.New(), buildRegistry(cfg, log), cfg, log)
			if err != nil {
				return err
			}

			git := changes.NewGitSource()
			var source domain.ChangeSource = git
			if fullTree || !git.IsGitRepo(absPath) {
				source = changes.NewDirSource()
			}

			changeSet, err := source.Changes(absPath)
			if err != nil {
				return fmt.Errorf("collecting changes: %w", err)
			}

			report, err := svc.Analyze(cmd.Context(), changeSet)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if hash, herr := git.CommitHash(absPath); herr == nil {
				report.CommitHash = hash
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode && report.Aggregate.MeanStyleScore < minScore {
				return fmt.Errorf("mean style score %.1f is below minimum %.1f",
					report.Aggregate.MeanStyleScore, minScore)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if mean score below --min")
	cmd.Flags().Float64Var(&minScore, "min", 0, "Minimum mean style score for CI mode")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&fullTree, "dir", false, "Analyze the whole tree instead of the git diff")

	return cmd
}

// buildRegistry maps each supported language to its extractor and checker.
func buildRegistry(cfg domain.Config, log *zap.Logger) domain.Registry {
	return domain.Registry{
		domain.LangPython: {
			Extractor: extractor.NewPython(cfg.MaxFileBytes),
			Checker:   checker.NewPython(cfg),
		},
		domain.LangTypeScript: {
			Extractor: extractor.NewTypeScript(cfg.MaxFileBytes),
			Checker:   checker.NewESLint(cfg.Lint, log),
		},
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return logCfg.Build()
}

func renderJSON(cmd *cobra.Command, report *domain.ValidatedReport) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
