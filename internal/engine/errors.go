package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/sheet-scorer/internal/admin"
	"github.com/jonathan/sheet-scorer/internal/answerkey"
	"github.com/jonathan/sheet-scorer/internal/document"
	"github.com/jonathan/sheet-scorer/internal/extract"
)

// Kind classifies a terminal pipeline failure.
type Kind string

const (
	KindInvalidURL       Kind = "invalid_url"
	KindFetch            Kind = "fetch_error"
	KindMalformedHeader  Kind = "malformed_header"
	KindKeyNotRegistered Kind = "key_not_registered"
	KindKeyParse         Kind = "key_parse_error"
	KindEmptyDocument    Kind = "empty_document"
	KindCanceled         Kind = "canceled"
)

// Source names the resource a fetch error refers to.
type Source string

const (
	SourceDocument  Source = "response_sheet"
	SourceAnswerKey Source = "answer_key"
)

// Error is a terminal failure of one scoring request.
type Error struct {
	Kind           Kind
	Source         Source // Set for fetch errors
	Administration string // Set once the administration is known
	Cause          error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Source != "" {
		msg += " (" + string(e.Source) + ")"
	}
	if e.Administration != "" {
		msg += " [" + e.Administration + "]"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns an actionable sentence for the person who sent the sheet.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindInvalidURL:
		return "Please send a valid response sheet link starting with http:// or https://."
	case KindFetch:
		if e.Source == SourceAnswerKey {
			return "Couldn't reach the answer key server. Please try again in a few minutes."
		}
		return "Couldn't download your response sheet. Check that the link opens in a browser and try again."
	case KindMalformedHeader:
		return "Couldn't read your test date and shift from the response sheet."
	case KindKeyNotRegistered:
		if e.Administration != "" {
			return fmt.Sprintf("We don't have the answer key for this test (%s) yet.", e.Administration)
		}
		return "We don't have the answer key for this test yet."
	case KindKeyParse:
		return "The answer key for this test could not be read. Please try again later."
	case KindEmptyDocument:
		return "No questions were found in the response sheet. Make sure the link opens your complete response sheet."
	case KindCanceled:
		return "The request was cancelled before scoring finished."
	default:
		return "Failed to process the response sheet. Please check the URL and try again."
	}
}

// KindOf returns the kind of a pipeline error, or "" for other errors.
func KindOf(err error) Kind {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.Kind
	}
	return ""
}

// UserMessage returns the user-facing message for any error.
func UserMessage(err error) string {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.UserMessage()
	}
	return (&Error{}).UserMessage()
}

func fetchError(ctx context.Context, source Source, cause error) *Error {
	if errors.Is(cause, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return &Error{Kind: KindCanceled, Source: source, Cause: cause}
	}
	return &Error{Kind: KindFetch, Source: source, Cause: cause}
}

// classify maps component errors onto the pipeline taxonomy.
func classify(ctx context.Context, administration string, err error) *Error {
	var resErr *admin.ResolutionError
	var provErr *answerkey.ProviderError
	var extErr *extract.ExtractionError
	var docErr *document.ParseError

	switch {
	case errors.As(err, &docErr), errors.As(err, &resErr):
		return &Error{Kind: KindMalformedHeader, Cause: err}
	case errors.As(err, &extErr):
		return &Error{Kind: KindEmptyDocument, Administration: administration, Cause: err}
	case errors.As(err, &provErr):
		switch provErr.Kind {
		case answerkey.KindKeyNotRegistered:
			return &Error{Kind: KindKeyNotRegistered, Administration: provErr.Key, Cause: err}
		case answerkey.KindFetchFailed:
			e := fetchError(ctx, SourceAnswerKey, err)
			e.Administration = provErr.Key
			return e
		default:
			return &Error{Kind: KindKeyParse, Administration: provErr.Key, Cause: err}
		}
	default:
		return &Error{Kind: KindEmptyDocument, Administration: administration, Cause: err}
	}
}
