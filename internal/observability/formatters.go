// Package observability provides verbose console output, Prometheus metrics and the
// metrics endpoint for interview runs.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Graceson27/interview-bot/internal/feedback"
	"github.com/Graceson27/interview-bot/internal/interview"
	"github.com/Graceson27/interview-bot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items under a heading, then a "... and N more" line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for i := 0; i < min(len(items), limit); i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResumeProfile outputs a human-readable summary of the structured resume.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}
	if profile.IsEmpty() {
		p.printBox("RESUME PROFILE", "No structured resume data; questions will be generic.")
		return
	}

	var sb strings.Builder
	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)

	projects := make([]string, 0, len(profile.Projects))
	for _, proj := range profile.Projects {
		line := proj.Name
		if len(proj.Technologies) > 0 {
			line += " [" + strings.Join(proj.Technologies, ", ") + "]"
		}
		projects = append(projects, line)
	}
	writeList(&sb, "Projects", projects, maxItemsToShow)

	internships := make([]string, 0, len(profile.Internships))
	for _, in := range profile.Internships {
		line := in.Company
		if in.Role != "" {
			line += " (" + in.Role + ")"
		}
		internships = append(internships, line)
	}
	writeList(&sb, "Internships", internships, 3)

	education := make([]string, 0, len(profile.Education))
	for _, e := range profile.Education {
		education = append(education, strings.TrimSpace(e.Degree+" "+e.Institution))
	}
	writeList(&sb, "Education", education, 3)
	writeList(&sb, "Domain knowledge", profile.DomainSpecificKnowledge, 3)

	p.printBox("RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintClassification outputs the detected domain and experience level.
func (p *Printer) PrintClassification(domain string, level types.ExperienceLevel) {
	p.printBox("CANDIDATE CLASSIFICATION",
		fmt.Sprintf("Domain:      %s\nExperience:  %s", domain, level))
}

// PrintTurn outputs a one-line trace of a selector decision.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTurn(turn int, sel interview.Selection) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[turn %d] topic=%s intent=%s tier=%s", turn, sel.Topic, sel.Intent, sel.Tier))
	if sel.Project != "" {
		sb.WriteString(fmt.Sprintf(" project=%q", sel.Project))
	}
	if sel.Escalated {
		sb.WriteString(" ↑escalated")
	}
	fmt.Fprintln(p.out, sb.String())
}

// PrintScore outputs the score given to the previous answer.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintScore(topic types.Topic, score float64) {
	fmt.Fprintf(p.out, "[score] topic=%s score=%.2f\n", topic, score)
}

// PrintReport outputs the final hiring report.
func (p *Printer) PrintReport(report feedback.Report) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Domain:               %s\n", report.Domain))
	sb.WriteString(fmt.Sprintf("Experience level:     %s\n", report.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("Questions asked:      %d\n", report.TotalQuestions))
	sb.WriteString(fmt.Sprintf("Final difficulty:     %s\n", report.Tier))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Technical knowledge:  %.3f\n", report.Scores.TechnicalKnowledge))
	sb.WriteString(fmt.Sprintf("Problem solving:      %.3f\n", report.Scores.ProblemSolving))
	sb.WriteString(fmt.Sprintf("Communication:        %.3f\n", report.Scores.Communication))
	sb.WriteString(fmt.Sprintf("Experience relevance: %.3f\n", report.Scores.ExperienceRelevance))
	sb.WriteString(fmt.Sprintf("Overall:              %.3f\n", report.Overall))
	sb.WriteString(fmt.Sprintf("Recommendation:       %s\n", feedback.Recommendation(report.Overall)))

	if len(report.PerformanceScores) > 0 {
		sb.WriteString("\nBy topic:\n")
		for _, ts := range report.PerformanceScores {
			sb.WriteString(fmt.Sprintf("  • %-12s %.2f\n", ts.Topic, ts.Score))
		}
	}

	p.printBox("INTERVIEW REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
