package admin

import (
	"testing"

	"github.com/jonathan/sheet-scorer/internal/document"
	"github.com/jonathan/sheet-scorer/internal/sheettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, sheet sheettest.Sheet) *document.Document {
	t.Helper()
	doc, err := document.ParseString(sheet.HTML(), document.DefaultSelectors())
	require.NoError(t, err)
	return doc
}

func TestResolve_ForenoonRoundTrip(t *testing.T) {
	doc := parse(t, sheettest.Sheet{Date: "29/01/2025", Time: "Forenoon (AM)"})

	key, err := NewResolver(DefaultLayout(), ModeLenient).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, "29s1", key.String())
	assert.Equal(t, ShiftFirst, key.Shift)
}

func TestResolve_AfternoonShift(t *testing.T) {
	doc := parse(t, sheettest.Sheet{Date: "04/04/2025", Time: "3:00 PM - 6:00 PM"})

	key, err := NewResolver(DefaultLayout(), ModeLenient).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, "04s2", key.String())
}

func TestResolve_ShortHeader(t *testing.T) {
	doc := parse(t, sheettest.Sheet{HeaderRows: [][2]string{
		{"Application No", "1"},
		{"Candidate Name", "X"},
	}})

	_, err := NewResolver(DefaultLayout(), ModeLenient).Resolve(doc)
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, ReasonShortHeader, resErr.Reason)
	assert.Contains(t, err.Error(), "malformed header")
}

func TestResolve_NoHeader(t *testing.T) {
	_, err := NewResolver(DefaultLayout(), ModeLenient).Resolve(&document.Document{})

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, ReasonNoHeader, resErr.Reason)
}

func TestResolve_EmptyCells(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		time   string
		reason Reason
	}{
		{"empty date", "", "9:00 AM", ReasonEmptyDate},
		{"date with empty leading segment", "/01/2025", "9:00 AM", ReasonEmptyDate},
		{"empty shift", "29/01/2025", "", ReasonEmptyShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, sheettest.Sheet{Date: tt.date, Time: tt.time})
			_, err := NewResolver(DefaultLayout(), ModeLenient).Resolve(doc)

			var resErr *ResolutionError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, tt.reason, resErr.Reason)
		})
	}
}

func TestResolve_LenientAcceptsAnyPeriod(t *testing.T) {
	doc := parse(t, sheettest.Sheet{Date: "99/13/2025", Time: "AM"})

	key, err := NewResolver(DefaultLayout(), ModeLenient).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, "99s1", key.String())
}

func TestResolve_StrictRejectsInvalidPeriod(t *testing.T) {
	for _, date := range []string{"99/01/2025", "Jan 29", "00/01/2025"} {
		doc := parse(t, sheettest.Sheet{Date: date, Time: "AM"})
		_, err := NewResolver(DefaultLayout(), ModeStrict).Resolve(doc)

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr, date)
		assert.Equal(t, ReasonInvalidPeriod, resErr.Reason)
	}

	doc := parse(t, sheettest.Sheet{Date: "01/02/2025", Time: "PM"})
	key, err := NewResolver(DefaultLayout(), ModeStrict).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, "01s2", key.String())
}

func TestNewResolver_UnknownModeIsLenient(t *testing.T) {
	r := NewResolver(DefaultLayout(), Mode("bogus"))
	assert.Equal(t, ModeLenient, r.Mode)
}

func TestParseShift(t *testing.T) {
	assert.Equal(t, ShiftFirst, ParseShift("9:00 am - 12:00 pm"))
	assert.Equal(t, ShiftFirst, ParseShift("FORENOON (AM)"))
	assert.Equal(t, ShiftSecond, ParseShift("3:00 PM - 6:00 PM"))
	assert.Equal(t, ShiftSecond, ParseShift("Afternoon"))
}

func TestShift_String(t *testing.T) {
	assert.Equal(t, "first", ShiftFirst.String())
	assert.Equal(t, "second", ShiftSecond.String())
	assert.Equal(t, "Shift(7)", Shift(7).String())
}
