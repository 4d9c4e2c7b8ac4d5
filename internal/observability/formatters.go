// Package observability provides tracing setup and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
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
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the box's inner width, counting runes.
func pad(line string) string {
	inner := boxWidth - 4
	if n := utf8.RuneCountInString(line); n > inner {
		return string([]rune(line)[:inner-3]) + "..."
	} else if n < inner {
		return line + strings.Repeat(" ", inner-n)
	}
	return line
}

// writeList writes up to maxItemsToShow items under heading.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintRoadmap outputs each milestone with its resources and certificate.
func (p *Printer) PrintRoadmap(roadmap *types.Roadmap) {
	if roadmap == nil {
		return
	}

	var sb strings.Builder
	if len(roadmap.Milestones) == 0 {
		sb.WriteString("No milestones.\n")
	}
	for i, m := range roadmap.Milestones {
		sb.WriteString(fmt.Sprintf("Step %d: %s\n", i+1, m.Title))
		if m.Description != "" {
			sb.WriteString("  " + m.Description + "\n")
		}
		for _, r := range m.Resources {
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", r.Title, r.URL))
		}
		if m.Certificate != "" {
			sb.WriteString("  Certificate: " + m.Certificate + "\n")
		}
		if i < len(roadmap.Milestones)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LEARNING ROADMAP", sb.String())
}

// PrintSkillGap outputs the skills a learner has, needs and what to do next.
func (p *Printer) PrintSkillGap(gap *types.SkillGap) {
	if gap == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Have", gap.Have)
	writeList(&sb, "Need", gap.Need)
	writeList(&sb, "Recommendations", gap.Recommendations)
	if sb.Len() == 0 {
		sb.WriteString("Nothing to report.\n")
	}

	p.printBox("SKILL GAP", sb.String())
}

// PrintRecommendations outputs the suggested careers.
func (p *Printer) PrintRecommendations(recs *types.Recommendations) {
	if recs == nil {
		return
	}

	var sb strings.Builder
	for i, c := range recs.Careers {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, c.Title))
		if c.FutureScope != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", c.FutureScope))
		}
		sb.WriteString("\n")
		if c.Description != "" {
			sb.WriteString("   " + c.Description + "\n")
		}
	}
	if len(recs.Careers) == 0 {
		sb.WriteString("No careers suggested.\n")
	}

	p.printBox("CAREER RECOMMENDATIONS", sb.String())
}
