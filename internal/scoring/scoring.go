// Package scoring applies a marking scheme to extracted question records.
// Everything here is pure: identical inputs produce identical reports.
package scoring

import (
	"github.com/jonathan/sheet-scorer/internal/types"
)

// Outcome is the result of comparing one marked answer against the key.
type Outcome string

const (
	OutcomeCorrect     Outcome = "correct"
	OutcomeIncorrect   Outcome = "incorrect"
	OutcomeUnattempted Outcome = "unattempted"
)

// MarkingScheme holds the points awarded for each outcome.
type MarkingScheme struct {
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	Unattempted int `json:"unattempted"`
}

// DefaultScheme is the +4 / -1 / 0 marking scheme.
var DefaultScheme = MarkingScheme{Correct: 4, Incorrect: -1, Unattempted: 0}

// Points returns the score for an outcome.
func (m MarkingScheme) Points(o Outcome) int {
	switch o {
	case OutcomeCorrect:
		return m.Correct
	case OutcomeIncorrect:
		return m.Incorrect
	default:
		return m.Unattempted
	}
}

// BandConfig partitions the ordinal question sequence into subject bands.
type BandConfig struct {
	Size   int      `json:"size"`
	Labels []string `json:"labels"`
}

// DefaultBands is three bands of 25 questions for a 75-question paper.
func DefaultBands() BandConfig {
	return BandConfig{Size: 25, Labels: []string{"Physics", "Chemistry", "Mathematics"}}
}

// Index returns the band for zero-based position i. Positions past the last
// band are clipped into it. It returns -1 when the config has no bands.
func (b BandConfig) Index(i int) int {
	if b.Size <= 0 || len(b.Labels) == 0 || i < 0 {
		return -1
	}
	return min(i/b.Size, len(b.Labels)-1)
}

// Classify compares a record's marked value with the key.
func Classify(record types.QuestionRecord, key types.AnswerKey) Outcome {
	if record.Marked == nil {
		return OutcomeUnattempted
	}
	if correct, ok := key.Lookup(record.ID); ok && *record.Marked == correct {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}

// QuestionResult is one record with its outcome.
type QuestionResult struct {
	Record  types.QuestionRecord `json:"record"`
	Correct *string              `json:"correct,omitempty"`
	Outcome Outcome              `json:"outcome"`
	Points  int                  `json:"points"`
	Band    int                  `json:"band"`
}

// BandScore is the aggregate for one subject band.
type BandScore struct {
	Label     string `json:"label"`
	Score     int    `json:"score"`
	Max       int    `json:"max"`
	Questions int    `json:"questions"`
}

// Report is the complete result of one scoring run.
type Report struct {
	Total       int              `json:"total"`
	Max         int              `json:"max"`
	Correct     int              `json:"correct"`
	Incorrect   int              `json:"incorrect"`
	Unattempted int              `json:"unattempted"`
	Attempted   int              `json:"attempted"`
	Bands       []BandScore      `json:"bands"`
	Questions   []QuestionResult `json:"questions"`
}

// Band returns the score of the band with the given label.
func (r *Report) Band(label string) (BandScore, bool) {
	for _, b := range r.Bands {
		if b.Label == label {
			return b, true
		}
	}
	return BandScore{}, false
}

// Score scores records with the default marking scheme.
func Score(records []types.QuestionRecord, key types.AnswerKey, bands BandConfig) *Report {
	return DefaultScheme.Score(records, key, bands)
}

// Score classifies every record, sums points overall and per band.
func (m MarkingScheme) Score(records []types.QuestionRecord, key types.AnswerKey, bands BandConfig) *Report {
	report := &Report{
		Max:       m.Correct * len(records),
		Questions: make([]QuestionResult, 0, len(records)),
	}

	if bands.Index(0) >= 0 {
		report.Bands = make([]BandScore, len(bands.Labels))
		for i, label := range bands.Labels {
			report.Bands[i] = BandScore{Label: label, Max: m.Correct * bands.Size}
		}
	}

	for i, record := range records {
		outcome := Classify(record, key)
		points := m.Points(outcome)

		result := QuestionResult{
			Record:  record,
			Outcome: outcome,
			Points:  points,
			Band:    bands.Index(i),
		}
		if correct, ok := key.Lookup(record.ID); ok {
			result.Correct = &correct
		}
		report.Questions = append(report.Questions, result)

		report.Total += points
		switch outcome {
		case OutcomeCorrect:
			report.Correct++
		case OutcomeIncorrect:
			report.Incorrect++
		default:
			report.Unattempted++
		}

		if result.Band >= 0 {
			report.Bands[result.Band].Score += points
			report.Bands[result.Band].Questions++
		}
	}

	report.Attempted = report.Correct + report.Incorrect
	return report
}
