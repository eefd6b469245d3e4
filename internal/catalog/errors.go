package catalog

import (
	"errors"
	"fmt"
)

// ErrNotAList is returned when the catalog payload is not a JSON array of records
var ErrNotAList = errors.New("catalog payload is not a list")

// FetchError reports a failed catalog list fetch. The message is generic;
// the cause is available through Unwrap.
type FetchError struct {
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	return "failed to fetch pets"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Detail describes the cause for diagnostics
func (e *FetchError) Detail() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status=%d", e.StatusCode)
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return "unknown"
}

// ImageError reports a failed image retrieval for a single pet
type ImageError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ImageError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("image retrieval failed: %s: status=%d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("image retrieval failed: %s: %v", e.URL, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx HTTP response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}

	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}
