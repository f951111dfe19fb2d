// Package types provides type definitions for structured data shared across the scoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// QuestionKind identifies the table layout a question block was rendered with.
type QuestionKind string

const (
	// KindMCQ is a multiple-choice question with four option rows
	KindMCQ QuestionKind = "MCQ"
	// KindNumeric is a numeric-entry question
	KindNumeric QuestionKind = "NUMERIC"
)

// QuestionRecord is one normalized question block from a response sheet.
// Marked is nil when the candidate did not attempt the question.
type QuestionRecord struct {
	ID      string       `json:"id"`
	Kind    QuestionKind `json:"kind"`
	Marked  *string      `json:"marked,omitempty"`
	Status  string       `json:"status,omitempty"`
	Options []string     `json:"options,omitempty"`
}

// Attempted reports whether the candidate recorded an answer.
func (q QuestionRecord) Attempted() bool {
	return q.Marked != nil
}

// MarkedValue returns the marked answer or the empty string.
func (q QuestionRecord) MarkedValue() string {
	if q.Marked == nil {
		return ""
	}
	return *q.Marked
}
