// Package binder decodes JSON request bodies for the API handlers.
//
// Decoding is deliberately lenient where clients are heterogeneous: an empty
// body binds to the zero value (field validation reports what is missing),
// and unknown fields are ignored. A declared non-JSON media type is still
// rejected.
package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

var (
	// ErrUnsupportedMediaType is returned when the declared content type is
	// not JSON.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrInvalidJSON is returned for bodies that do not parse as a single
	// JSON value.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// JSON decodes the request body into v.
func JSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, ct)
		}
	}

	if r.Body == nil {
		return nil
	}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty body binds to the zero value.
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	// Reject trailing garbage after the JSON value.
	if err := decoder.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}

	return nil
}
