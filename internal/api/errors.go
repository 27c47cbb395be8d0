package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind separates a server rejection (we got a response) from a
// network-level failure (we did not).
type Kind int

const (
	KindServer Kind = iota
	KindNetwork
)

// Error is the structured failure surfaced for any non-2xx response or
// transport failure. Status and Body are only set for KindServer.
type Error struct {
	Kind    Kind
	Status  int
	Body    json.RawMessage
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("network error: %v", e.Cause)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *Error) Unwrap() error { return e.Cause }

// IsNetwork reports whether err is a transport-level failure with no response.
func IsNetwork(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindNetwork
}

// StatusOf extracts the HTTP status carried by err, or 0 if none.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
