package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrEmptyPage          = errors.New("page produced no usable text")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrNoAPIKey           = errors.New("no API key configured")
	ErrEmptyCompletion    = errors.New("completion returned no text")
	ErrUnsupportedFormat  = errors.New("unsupported report format")
	ErrUnsupportedFetcher = errors.New("unsupported fetcher type")
)

// FetchError wraps errors that occur during fetching.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError wraps errors that occur while extracting page text.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CompletionError wraps a failed answer for a single question.
type CompletionError struct {
	Question string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion error (%s): %v", e.Question, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// StorageError wraps errors that occur during report export.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
