// Package admin resolves which test administration (date and shift) a
// response sheet belongs to.
package admin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/sheet-scorer/internal/document"
)

// Shift is the session of an administration day.
type Shift int

const (
	// ShiftFirst is the morning session
	ShiftFirst Shift = 1
	// ShiftSecond is the afternoon session
	ShiftSecond Shift = 2
)

func (s Shift) String() string {
	switch s {
	case ShiftFirst:
		return "first"
	case ShiftSecond:
		return "second"
	default:
		return fmt.Sprintf("Shift(%d)", int(s))
	}
}

// Key identifies one administration.
type Key struct {
	Period string
	Shift  Shift
}

// String returns the canonical "<period>s<1|2>" form used by the answer key registry.
func (k Key) String() string {
	return fmt.Sprintf("%ss%d", k.Period, int(k.Shift))
}

// Mode controls how strictly the period token is checked.
type Mode string

const (
	// ModeLenient accepts any non-empty leading date segment
	ModeLenient Mode = "lenient"
	// ModeStrict requires the leading segment to be a day of month in 1..31
	ModeStrict Mode = "strict"
)

// Layout gives the header row offsets holding the date and shift cells.
type Layout struct {
	DateRow  int
	ShiftRow int
}

// DefaultLayout matches the published header: date on the fourth row, time on the fifth.
func DefaultLayout() Layout {
	return Layout{DateRow: 3, ShiftRow: 4}
}

// Reason classifies a resolution failure.
type Reason string

const (
	ReasonNoHeader      Reason = "no header table"
	ReasonShortHeader   Reason = "header table too short"
	ReasonEmptyDate     Reason = "empty date cell"
	ReasonEmptyShift    Reason = "empty shift cell"
	ReasonInvalidPeriod Reason = "invalid period"
)

// ResolutionError reports a header that does not identify an administration.
// Every ResolutionError is a malformed-header failure.
type ResolutionError struct {
	Reason Reason
	Detail string
}

func (e *ResolutionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed header: %s: %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("malformed header: %s", e.Reason)
}

// Resolver derives administration keys from parsed documents.
type Resolver struct {
	Layout Layout
	Mode   Mode
}

// NewResolver creates a resolver; an unknown mode is treated as lenient.
func NewResolver(layout Layout, mode Mode) *Resolver {
	if mode != ModeStrict {
		mode = ModeLenient
	}
	return &Resolver{Layout: layout, Mode: mode}
}

// Resolve reads the administration key from the document header.
func (r *Resolver) Resolve(doc *document.Document) (Key, error) {
	if doc == nil || !doc.HasHeader {
		return Key{}, &ResolutionError{Reason: ReasonNoHeader}
	}

	need := max(r.Layout.DateRow, r.Layout.ShiftRow) + 1
	if len(doc.Header) < need {
		return Key{}, &ResolutionError{
			Reason: ReasonShortHeader,
			Detail: fmt.Sprintf("have %d rows, need %d", len(doc.Header), need),
		}
	}

	date, _ := doc.Header.Cell(r.Layout.DateRow)
	period := strings.TrimSpace(strings.Split(date, "/")[0])
	if period == "" {
		return Key{}, &ResolutionError{Reason: ReasonEmptyDate}
	}

	label, _ := doc.Header.Cell(r.Layout.ShiftRow)
	if strings.TrimSpace(label) == "" {
		return Key{}, &ResolutionError{Reason: ReasonEmptyShift}
	}

	if r.Mode == ModeStrict {
		if err := checkPeriod(period); err != nil {
			return Key{}, err
		}
	}

	return Key{Period: period, Shift: ParseShift(label)}, nil
}

// ParseShift maps a time-of-day label to a shift: any "am" marks the first shift.
func ParseShift(label string) Shift {
	if strings.Contains(strings.ToLower(label), "am") {
		return ShiftFirst
	}
	return ShiftSecond
}

func checkPeriod(period string) error {
	day, err := strconv.Atoi(period)
	if err != nil || day < 1 || day > 31 {
		return &ResolutionError{Reason: ReasonInvalidPeriod, Detail: period}
	}
	return nil
}
