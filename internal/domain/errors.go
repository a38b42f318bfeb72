package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed is returned when a source page cannot be retrieved
	// (transport failure or non-success status)
	ErrFetchFailed = errors.New("source fetch failed")

	// ErrModelFailed is returned when the extraction model call fails
	ErrModelFailed = errors.New("model call failed")

	// ErrMalformedResponse is returned when the model reply cannot be parsed
	// or is missing the required menu_items array
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrDuplicateSubscription is returned when a (source, target) pair is
	// already registered
	ErrDuplicateSubscription = errors.New("subscription already exists")

	// ErrNotificationFailed is returned when delivery to a single
	// notification target fails; logged by the sweep, never propagated
	ErrNotificationFailed = errors.New("notification delivery failed")

	// ErrCacheMiss is returned when no cached menu exists for a (source, date) pair
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)

// PipelineError wraps the first failure of a summarization run with the
// source it was processing and the stage that failed, so logs can tell
// fetch trouble apart from model or parse trouble.
type PipelineError struct {
	SourceURL string
	Stage     string // "fetch", "model", "parse" or "cache"
	Err       error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("summarize %s: stage %s: %v", e.SourceURL, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
