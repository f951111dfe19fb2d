package answerkey

import (
	"fmt"
	"strings"
)

// Kind classifies a provider failure.
type Kind string

const (
	// KindKeyNotRegistered means the registry has no source for the administration
	KindKeyNotRegistered Kind = "key_not_registered"
	// KindFetchFailed means the source could not be retrieved
	KindFetchFailed Kind = "fetch_failed"
	// KindParseFailed means the source did not contain a flat id-to-option mapping
	KindParseFailed Kind = "parse_failed"
)

// ProviderError represents a failure to load an answer key
type ProviderError struct {
	Kind  Kind
	Key   string
	URL   string
	Cause error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("answer key %s: %s", e.Key, e.Kind)
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// FieldError is a single schema violation in an answer key document
type FieldError struct {
	Field   string
	Message string
}

// ShapeError lists the schema violations of an answer key document
type ShapeError struct {
	Errors []FieldError
}

func (e *ShapeError) Error() string {
	var sb strings.Builder
	sb.WriteString("answer key is not a flat mapping:")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}
