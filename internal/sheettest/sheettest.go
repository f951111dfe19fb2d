// Package sheettest builds synthetic response sheet pages for tests.
package sheettest

import (
	"fmt"
	"html"
	"strings"
)

// Question describes one question block on a synthetic sheet.
type Question struct {
	Type    string // "MCQ" or anything else for numeric entry
	ID      string
	Options []string // MCQ option ids; four are generated when empty
	Status  string
	Answer  string // Chosen option or typed value; "--" for not attempted
	Broken  bool   // Emit a truncated block with only the type row
}

// Sheet describes a synthetic response sheet.
type Sheet struct {
	Candidate string
	Date      string
	Time      string
	Questions []Question
	// HeaderRows overrides the generated header rows when non-nil.
	HeaderRows [][2]string
}

// MCQ returns a multiple-choice question with the given chosen option.
func MCQ(id, answer string) Question {
	return Question{Type: "MCQ", ID: id, Answer: answer}
}

// Numeric returns a numeric-entry question with the given typed value.
func Numeric(id, answer string) Question {
	return Question{Type: "SA", ID: id, Answer: answer}
}

// HTML renders the sheet in the published response sheet layout.
func (s Sheet) HTML() string {
	var sb strings.Builder
	sb.WriteString("<html><body>\n")

	rows := s.HeaderRows
	if rows == nil {
		candidate := s.Candidate
		if candidate == "" {
			candidate = "Test Candidate"
		}
		rows = [][2]string{
			{"Application No", "250310000000"},
			{"Candidate Name", candidate},
			{"Roll No", "UP01000000"},
			{"Test Date", s.Date},
			{"Test Time", s.Time},
			{"Subject", "B.E./B.Tech"},
		}
	}
	sb.WriteString("<table class=\"main-info-pnl\"><tbody>\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "<tr><td>%s</td><td>%s</td></tr>\n", html.EscapeString(r[0]), html.EscapeString(r[1]))
	}
	sb.WriteString("</tbody></table>\n")

	for _, q := range s.Questions {
		sb.WriteString(q.html())
	}

	sb.WriteString("</body></html>\n")
	return sb.String()
}

func (q Question) html() string {
	var sb strings.Builder
	sb.WriteString("<table class=\"menu-tbl\"><tbody>\n")
	row := func(label, value string) {
		fmt.Fprintf(&sb, "<tr><td align=\"right\">%s :</td><td class=\"bold\">%s</td></tr>\n",
			html.EscapeString(label), html.EscapeString(value))
	}

	row("Question Type", q.Type)
	if q.Broken {
		sb.WriteString("</tbody></table>\n")
		return sb.String()
	}
	row("Question ID", q.ID)

	status := q.Status
	if status == "" {
		status = "Answered"
		if q.Answer == "--" || strings.TrimSpace(q.Answer) == "" {
			status = "Not Answered"
		}
	}

	if q.Type == "MCQ" {
		opts := q.Options
		if len(opts) == 0 {
			opts = []string{q.ID + "1", q.ID + "2", q.ID + "3", q.ID + "4"}
		}
		for i, o := range opts {
			row(fmt.Sprintf("Option %d ID", i+1), o)
		}
		row("Status", status)
		row("Chosen Option", q.Answer)
	} else {
		row("Status", status)
		row("Given Answer", q.Answer)
	}

	sb.WriteString("</tbody></table>\n")
	return sb.String()
}
