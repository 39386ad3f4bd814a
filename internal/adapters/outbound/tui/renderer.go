// Package tui renders a validated report for the terminal.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prlens/prlens/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats the full validated report.
func RenderReport(report *domain.ValidatedReport) string {
	var b strings.Builder

	// ── Header ──
	mean := report.Aggregate.MeanStyleScore
	grade := domain.GradeFor(mean)
	title := headerStyle.Render("prlens")
	subtitle := dimStyle.Render("Change Analysis Report")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%.1f / 100", mean))
	gradeStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(grade)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled))
	b.WriteString("\n\n")

	// ── Files ──
	for _, file := range report.Files {
		renderFile(&b, file)
	}

	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Totals ──
	bySev := report.Aggregate.FindingsBySeverity
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d files", len(report.Files))))
	b.WriteString("  ")
	if n := bySev[domain.SeverityError]; n > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", n)))
		b.WriteString("  ")
	}
	if n := bySev[domain.SeverityWarning]; n > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", n)))
		b.WriteString("  ")
	}
	if n := bySev[domain.SeverityInfo]; n > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", n)))
	}
	b.WriteString("\n")

	if len(report.Coercions) > 0 {
		b.WriteString("\n")
		for _, c := range report.Coercions {
			b.WriteString("  " + faintStyle.Render("coerced: "+c) + "\n")
		}
	}

	if report.CommitHash != "" {
		hash := report.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		b.WriteString("\n  " + faintStyle.Render(fmt.Sprintf("run %s at %s", hash, report.Timestamp.Format("2006-01-02 15:04"))) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderFile(b *strings.Builder, file domain.AnalysisResult) {
	name := titleStyle.Render(shortenPath(file.Path))

	switch {
	case file.Language == domain.LangUnknown:
		fmt.Fprintf(b, "  %s %s  %s\n\n", skipStyle.Render("○"), name, skipStyle.Render("skipped (unknown language)"))
		return
	case file.Score != nil:
		grade := file.Score.Grade()
		scoreStyled := lipgloss.NewStyle().
			Bold(true).
			Foreground(gradeColor(grade)).
			Render(fmt.Sprintf("%.0f", file.Score.Overall))
		bar := coloredBar(int(file.Score.Overall), 20)
		fmt.Fprintf(b, "  %s %s  %s %s\n", statusIcon(file), name, bar, scoreStyled)
	default:
		fmt.Fprintf(b, "  %s %s\n", statusIcon(file), name)
	}

	if file.Err != nil {
		fmt.Fprintf(b, "    %s %s\n", failStyle.Render("✗"), dimStyle.Render(file.Err.Error()))
	}

	for _, f := range file.Findings {
		fmt.Fprintf(b, "    %s %s %s\n",
			severityTag(f.Severity),
			fileStyle.Render(fmt.Sprintf("L%d", f.Line)),
			dimStyle.Render(f.RuleID+": "+f.Message))
	}
	b.WriteString("\n")
}

func statusIcon(file domain.AnalysisResult) string {
	switch {
	case file.Err != nil:
		return failStyle.Render("●")
	case len(file.Findings) == 0:
		return passStyle.Render("●")
	default:
		return warnTagStyle.Render("●")
	}
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 4 {
		return strings.Join(parts[len(parts)-4:], "/")
	}
	return path
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}
