// Package extract turns question-block tables into normalized question records.
// Both published layouts (multiple choice and numeric entry) are described by
// a Layout value and read by a single routine.
package extract

import (
	"fmt"
	"strings"

	"github.com/jonathan/sheet-scorer/internal/document"
	"github.com/jonathan/sheet-scorer/internal/types"
)

// DefaultSentinel is the marked-value text for an unattempted question.
const DefaultSentinel = "--"

// Layout gives the row offsets of each field within one block layout.
// StatusRow is -1 when the layout has no status row.
type Layout struct {
	Kind       types.QuestionKind
	IDRow      int
	StatusRow  int
	MarkedRow  int
	OptionRows []int
}

// MinRows is the number of rows a block needs for every field to be present.
func (l Layout) MinRows() int {
	need := max(l.IDRow, l.StatusRow, l.MarkedRow)
	for _, r := range l.OptionRows {
		need = max(need, r)
	}
	return need + 1
}

// Schema describes how to classify and read question blocks.
type Schema struct {
	TypeRow  int
	MCQLabel string
	MCQ      Layout
	Numeric  Layout
	Sentinel string
}

// DefaultSchema matches the published response sheet: type and id first,
// then four option ids, status and chosen option for MCQ, or status and
// given answer for numeric entry.
func DefaultSchema() Schema {
	return Schema{
		TypeRow:  0,
		MCQLabel: "MCQ",
		MCQ: Layout{
			Kind:       types.KindMCQ,
			IDRow:      1,
			OptionRows: []int{2, 3, 4, 5},
			StatusRow:  6,
			MarkedRow:  7,
		},
		Numeric: Layout{
			Kind:      types.KindNumeric,
			IDRow:     1,
			StatusRow: 2,
			MarkedRow: 3,
		},
		Sentinel: DefaultSentinel,
	}
}

// Warning records a question block that was skipped as structurally malformed.
type Warning struct {
	Block  int    `json:"block"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("block %d: %s", w.Block, w.Reason)
}

// Result is the ordered record sequence plus any skipped-block warnings.
type Result struct {
	Records  []types.QuestionRecord
	Warnings []Warning
}

// ExtractionError reports that no question block could be read.
type ExtractionError struct {
	Blocks  int
	Skipped int
}

func (e *ExtractionError) Error() string {
	if e.Blocks == 0 {
		return "empty document: no question blocks found"
	}
	return fmt.Sprintf("empty document: all %d question blocks were malformed", e.Skipped)
}

// Extract reads every question block with the default schema.
func Extract(doc *document.Document) (*Result, error) {
	return DefaultSchema().Extract(doc)
}

// Extract reads every question block of doc in document order. Malformed
// blocks are skipped and reported as warnings; the call fails only when no
// block yields a record.
func (s Schema) Extract(doc *document.Document) (*Result, error) {
	if doc == nil {
		return nil, &ExtractionError{}
	}

	result := &Result{}

	for i, block := range doc.Blocks {
		record, reason := s.read(block)
		if reason != "" {
			result.Warnings = append(result.Warnings, Warning{Block: i, Reason: reason})
			continue
		}
		result.Records = append(result.Records, record)
	}

	if len(result.Records) == 0 {
		return nil, &ExtractionError{Blocks: len(doc.Blocks), Skipped: len(result.Warnings)}
	}
	return result, nil
}

func (s Schema) read(block document.Table) (types.QuestionRecord, string) {
	label, ok := block.Cell(s.TypeRow)
	if !ok {
		return types.QuestionRecord{}, "missing type row"
	}

	layout := s.Numeric
	if label == s.MCQLabel {
		layout = s.MCQ
	}

	if len(block) < layout.MinRows() {
		return types.QuestionRecord{}, fmt.Sprintf("%s block has %d rows, need %d", layout.Kind, len(block), layout.MinRows())
	}

	id, _ := block.Cell(layout.IDRow)
	if id == "" {
		return types.QuestionRecord{}, "empty question id"
	}

	record := types.QuestionRecord{ID: id, Kind: layout.Kind}

	if layout.StatusRow >= 0 {
		record.Status, _ = block.Cell(layout.StatusRow)
	}
	for _, r := range layout.OptionRows {
		opt, _ := block.Cell(r)
		record.Options = append(record.Options, opt)
	}

	marked, _ := block.Cell(layout.MarkedRow)
	marked = strings.TrimSpace(marked)
	if marked != "" && marked != s.Sentinel {
		record.Marked = &marked
	}

	return record, ""
}
