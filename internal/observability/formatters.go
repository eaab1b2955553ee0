// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/careerconnect/internal/types"
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
		for _, part := range wrapLine(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, part)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrapLine splits a line into pieces that fit the box, breaking after a
// comma where one falls inside the width, else at a space. Nothing gets
// truncated, so suffixes like the omitted-items note stay visible.
func wrapLine(line string, width int) []string {
	if len(line) <= width {
		return []string{line}
	}
	var parts []string
	for len(line) > width {
		cut := strings.LastIndex(line[:width+1], ", ")
		if cut >= 0 {
			cut++ // keep the comma on the upper line
		} else {
			cut = strings.LastIndex(line[:width+1], " ")
		}
		if cut <= 0 {
			cut = width
		}
		parts = append(parts, strings.TrimRight(line[:cut], " "))
		line = strings.TrimLeft(line[cut:], " ")
	}
	if line != "" {
		parts = append(parts, line)
	}
	return parts
}

// PrintProfile outputs a human-readable summary of the derived candidate
// profile.
func (p *Printer) PrintProfile(prof *types.CandidateProfile) {
	if prof == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", prof.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Skills:     %s\n", joinCapped(prof.Skills)))
	if len(prof.JobTitles) > 0 {
		sb.WriteString(fmt.Sprintf("Titles:     %s\n", joinCapped(prof.JobTitles)))
	}
	sb.WriteString(fmt.Sprintf("Text:       %d chars", len(prof.RawProfileText)))

	p.printBox("CANDIDATE PROFILE", sb.String())
}

// PrintRecommendations outputs the ranked result list, one line per job.
func (p *Printer) PrintRecommendations(results []types.MatchResult) {
	if len(results) == 0 {
		p.printBox("RECOMMENDATIONS", "No matching jobs found.")
		return
	}

	var sb strings.Builder
	for i, r := range results {
		origin := "internal"
		if r.IsExternal {
			origin = r.Source
		}
		sb.WriteString(fmt.Sprintf("%2d. [%3d] %s - %s (%s)", i+1, r.Score, r.Title, r.CompanyName, origin))
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RECOMMENDATIONS (%d)", len(results)), sb.String())
}

// joinCapped joins up to maxItemsToShow items, noting how many were
// omitted.
func joinCapped(items []string) string {
	if len(items) <= maxItemsToShow {
		return strings.Join(items, ", ")
	}
	shown := strings.Join(items[:maxItemsToShow], ", ")
	return fmt.Sprintf("%s (+%d more)", shown, len(items)-maxItemsToShow)
}
