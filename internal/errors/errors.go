// Package errors provides the error taxonomy for the redact/query pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrBusy     = errors.New("a submission is already in flight")
	ErrClosed   = errors.New("session is closed")
	ErrNoText   = errors.New("no text in response")
	ErrEndpoint = errors.New("invalid endpoint")
)

// Pipeline stages
const (
	StageRedact = "redact"
	StageQuery  = "query"
)

// PipelineError reports a collaborator that answered but broke its contract,
// e.g. a missing or empty text field. Error returns Message verbatim since
// it is shown to the user as "Error: <Message>".
type PipelineError struct {
	Stage   string
	Message string
}

func (e *PipelineError) Error() string {
	return e.Message
}

// Is matches ErrNoText and any other PipelineError
func (e *PipelineError) Is(target error) bool {
	if target == ErrNoText {
		return true
	}
	_, ok := target.(*PipelineError)
	return ok
}

// NewPipelineError creates a new PipelineError
func NewPipelineError(stage, message string) *PipelineError {
	return &PipelineError{Stage: stage, Message: message}
}

// APIError represents a non-2xx answer from a collaborator
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates a new APIError keeping the raw response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	e := NewAPIError(statusCode, endpoint, message)
	e.Body = body
	return e
}

// NetworkError represents a collaborator that could not be reached
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s request to %s failed", e.Operation, e.Endpoint)
	}
	return fmt.Sprintf("%s request to %s failed: %v", e.Operation, e.Endpoint, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Cause: cause}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Endpoint string
	Message  string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(endpoint, message string) *TimeoutError {
	return &TimeoutError{Endpoint: endpoint, Message: message}
}

// IsPipelineError reports whether err is a contract violation
func IsPipelineError(err error) bool {
	var pe *PipelineError
	return errors.As(err, &pe)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsTimeoutError reports whether err is a timeout
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsAPIError reports whether err is a non-2xx answer
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint an error was raised for, if known
func GetEndpoint(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Endpoint
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return te.Endpoint
	}
	return ""
}

// GetResponseBody returns the raw body of a failed response, if any
func GetResponseBody(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Body
	}
	return ""
}

// GetStage returns the pipeline stage of a contract violation, if any
func GetStage(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}
