package server

import (
	"net/http"

	"github.com/jonathan/sheet-scorer/internal/engine"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error
func HTTPStatus(err error) int {
	switch engine.KindOf(err) {
	case engine.KindInvalidURL:
		return http.StatusBadRequest
	case engine.KindMalformedHeader, engine.KindEmptyDocument:
		return http.StatusUnprocessableEntity
	case engine.KindKeyNotRegistered:
		return http.StatusNotFound
	case engine.KindFetch, engine.KindKeyParse:
		return http.StatusBadGateway
	case engine.KindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
