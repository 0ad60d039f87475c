// Package domain defines domain-level errors for the candles feature.
package domain

import (
	"errors"
	"fmt"
)

// ErrNoCandleData is returned when the response parsed but carried no candles,
// either because the list was empty or because it was absent.
var ErrNoCandleData = errors.New("No candle data received")

// NetworkError wraps a transport failure reaching the candle endpoint.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError is returned when the endpoint answered with a non-2xx status.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// MalformedResponseError is returned when the body is not valid JSON or lacks
// the expected shape.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
