package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is matched by every transport-level failure (see FetchError).
	ErrNetwork = errors.New("network error")
	// ErrInvalidUsername is returned for usernames reddit wouldn't allow.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidStatusCode is returned when a response is not 200 OK.
	ErrInvalidStatusCode = errors.New("invalid status code")
	// ErrParse is returned when a response body is not the JSON we expect.
	ErrParse = errors.New("unexpected response body")
	// ErrMalformedFeed is returned when the listing has no data.children array.
	ErrMalformedFeed = errors.New("malformed feed")
	// ErrMalformedItem is returned when a feed item lacks a required field.
	ErrMalformedItem = errors.New("malformed feed item")
	// ErrUnsupportedPlatform is returned for hosting platforms we know about but can't resolve.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrCannotResolve is returned when there is no way to get a direct media URL for a post.
	ErrCannotResolve = errors.New("cannot resolve media URL")
)

var _ error = &FetchError{}

// FetchError contains data about errors that occurred when fetching data from some url.
type FetchError struct {
	err error
	url string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching from %s failed: %v", e.url, e.err)
}

func (e *FetchError) Unwrap() error {
	return e.err
}

// Is makes every FetchError match ErrNetwork.
func (e *FetchError) Is(target error) bool {
	return target == ErrNetwork
}

func newFetchError(err error, url string) *FetchError {
	return &FetchError{
		err: err,
		url: url,
	}
}
