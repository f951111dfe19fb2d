// Package report renders score reports as plain text for delivery.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/sheet-scorer/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Summary is everything needed to render one scored response sheet.
type Summary struct {
	Administration string
	Report         *scoring.Report
	Skipped        int
}

// Text renders the summary message: total, outcome counts and one line per band.
func Text(s Summary) string {
	if s.Report == nil {
		return ""
	}
	r := s.Report

	var sb strings.Builder
	if s.Administration != "" {
		fmt.Fprintf(&sb, "Administration: %s\n", s.Administration)
	}
	fmt.Fprintf(&sb, "TOTAL: %d/%d\n\n", r.Total, r.Max)
	fmt.Fprintf(&sb, "Correct: %d\n", r.Correct)
	fmt.Fprintf(&sb, "Incorrect: %d\n", r.Incorrect)
	fmt.Fprintf(&sb, "Attempted: %d\n", r.Attempted)
	fmt.Fprintf(&sb, "Unattempted: %d\n", r.Unattempted)

	if len(r.Bands) > 0 {
		sb.WriteString("\n")
		for _, b := range r.Bands {
			fmt.Fprintf(&sb, "%s: %d/%d\n", b.Label, b.Score, b.Max)
		}
	}

	if s.Skipped > 0 {
		noun, verb := "blocks", "were"
		if s.Skipped == 1 {
			noun, verb = "block", "was"
		}
		fmt.Fprintf(&sb, "\nNote: %d question %s could not be read and %s left out.\n", s.Skipped, noun, verb)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// Printer handles the per-question breakdown for verbose output
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
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQuestions outputs one box per band listing each question's outcome.
func (p *Printer) PrintQuestions(r *scoring.Report) {
	if r == nil {
		return
	}

	groups := map[int][]scoring.QuestionResult{}
	order := []int{}
	for _, q := range r.Questions {
		if _, ok := groups[q.Band]; !ok {
			order = append(order, q.Band)
		}
		groups[q.Band] = append(groups[q.Band], q)
	}

	for _, band := range order {
		title := "Questions"
		if band >= 0 && band < len(r.Bands) {
			title = fmt.Sprintf("%s (%d/%d)", r.Bands[band].Label, r.Bands[band].Score, r.Bands[band].Max)
		}

		var sb strings.Builder
		for _, q := range groups[band] {
			marked := q.Record.MarkedValue()
			if marked == "" {
				marked = "--"
			}
			correct := "?"
			if q.Correct != nil {
				correct = *q.Correct
			}
			fmt.Fprintf(&sb, "%-12s %-7s marked %-10s key %-10s %+d\n",
				q.Record.ID, q.Record.Kind, marked, correct, q.Points)
		}
		p.printBox(title, strings.TrimRight(sb.String(), "\n"))
	}
}
