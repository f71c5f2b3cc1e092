package model

import "errors"

var (
	// ErrDataUnavailable means the upstream fetch failed or returned an
	// unexpected shape. Nothing partial is ever built from such a response.
	ErrDataUnavailable = errors.New("upstream data unavailable")

	// ErrNotFound means an identifier did not resolve. Callers fall back
	// to the raw identifier instead of failing the request.
	ErrNotFound = errors.New("not found")

	// ErrRenderFailure means a chart, CSV, or PDF could not be produced
	// or delivered.
	ErrRenderFailure = errors.New("render failure")

	// ErrPersistenceUnavailable means the annotation store is not
	// configured or a read/write against it failed.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
