// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Local guard errors (no network call was made).
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrMissingConfiguration = errors.New("no saved configuration")

	// Secret store errors.
	ErrProfileIncomplete = errors.New("stored profile is incomplete")
)
