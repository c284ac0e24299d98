package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed fetch
type Kind int

const (
	// KindNetwork means no response was received
	KindNetwork Kind = iota
	// KindHTTP means the backend answered with a non-2xx status
	KindHTTP
	// KindParse means the body could not be decoded
	KindParse
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by FetchError.Is
var (
	ErrNetwork = errors.New("network error")
	ErrHTTP    = errors.New("http error")
	ErrParse   = errors.New("parse error")
)

// FetchError is returned by every Client call that fails
type FetchError struct {
	Endpoint   string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %s error: %v", e.Endpoint, e.Kind, e.Err)
	}
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrHTTP:
		return e.Kind == KindHTTP
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

// StatusCode extracts the HTTP status of a failed fetch, 0 if there was none
func StatusCode(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
