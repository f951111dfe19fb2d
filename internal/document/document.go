// Package document parses a rendered response sheet into a typed table model.
// Parsing happens once per request; the resulting Document holds only
// trimmed cell text and carries no reference to the underlying HTML tree.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors locates the structural parts of a response sheet.
type Selectors struct {
	HeaderTable   string // First match is the administration header table
	QuestionBlock string // Every match is one question block, in document order
}

// DefaultSelectors returns the selectors for the published response sheet layout.
func DefaultSelectors() Selectors {
	return Selectors{
		HeaderTable:   "table:not(.menu-tbl)",
		QuestionBlock: "table.menu-tbl",
	}
}

// Row is the trimmed text of each cell in a table row.
type Row []string

// Last returns the text of the final cell, which holds the value in
// label/value rows. It returns "" for a row without cells.
func (r Row) Last() string {
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

// Table is an ordered list of rows.
type Table []Row

// Cell returns the value cell of row i, or false when the row is absent.
func (t Table) Cell(i int) (string, bool) {
	if i < 0 || i >= len(t) {
		return "", false
	}
	return t[i].Last(), true
}

// Document is the parsed response sheet.
type Document struct {
	Header    Table
	HasHeader bool
	Blocks    []Table
}

// ParseError represents a failure to read or parse the response sheet markup
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Parse reads HTML from r and builds a Document using sel.
func Parse(r io.Reader, sel Selectors) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	out := &Document{}

	header := doc.Find(sel.HeaderTable).First()
	if header.Length() > 0 {
		out.HasHeader = true
		out.Header = tableRows(header)
	}

	doc.Find(sel.QuestionBlock).Each(func(_ int, s *goquery.Selection) {
		out.Blocks = append(out.Blocks, tableRows(s))
	})

	return out, nil
}

// ParseString is Parse over an in-memory HTML string.
func ParseString(html string, sel Selectors) (*Document, error) {
	return Parse(strings.NewReader(html), sel)
}

// tableRows collects the rows owned directly by table, skipping rows of nested tables.
func tableRows(table *goquery.Selection) Table {
	var rows Table
	table.ChildrenFiltered("tbody, thead, tfoot").ChildrenFiltered("tr").
		AddSelection(table.ChildrenFiltered("tr")).
		Each(func(_ int, tr *goquery.Selection) {
			var row Row
			tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
				row = append(row, cleanText(td.Text()))
			})
			rows = append(rows, row)
		})
	return rows
}

// cleanText collapses whitespace runs; strings.Fields also splits on U+00A0.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
