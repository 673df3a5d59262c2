package invoice

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested invoice does not exist (HTTP 404)
	ErrNotFound = errors.New("invoice not found")

	// ErrServiceUnavailable is returned when the Plisio API cannot be reached (connectivity, timeout)
	ErrServiceUnavailable = errors.New("plisio api unavailable")

	// ErrUnexpectedResponse is returned when a response is neither a valid payload nor a structured error
	ErrUnexpectedResponse = errors.New("unexpected plisio response")
)

// NotFoundError carries the URL that answered 404.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Request '%s' returned status 404 Not Found", e.URL)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// APIError is the structured error payload of a failed Plisio call.
type APIError struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Name != "":
		return e.Name
	default:
		return fmt.Sprintf("plisio api error %d", e.Code)
	}
}

// ResponseTextError keeps the raw body of a response that could not be decoded.
type ResponseTextError struct {
	Cause        error
	ResponseText string
}

func (e *ResponseTextError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnexpectedResponse, e.Cause)
}

func (e *ResponseTextError) Unwrap() error { return e.Cause }

func (e *ResponseTextError) Is(target error) bool { return target == ErrUnexpectedResponse }

func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}
