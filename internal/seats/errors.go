package seats

import (
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ConfigurationError  ErrorKind = "CONFIGURATION_ERROR"
	AuthenticationError ErrorKind = "AUTHENTICATION_ERROR"
	UpstreamFetchError  ErrorKind = "UPSTREAM_FETCH_ERROR"
	MockDataError       ErrorKind = "MOCK_DATA_ERROR"
)

// RequestError is a failure that ends a seats request. Message is the
// plain-text body returned to the caller.
type RequestError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func errInvalidScope(scope Scope) *RequestError {
	return &RequestError{
		Kind:    ConfigurationError,
		Status:  http.StatusBadRequest,
		Message: "Invalid configuration/parameters for the request",
		Err:     fmt.Errorf("unsupported scope %q", scope),
	}
}

func errNoAuthentication() *RequestError {
	return &RequestError{
		Kind:    AuthenticationError,
		Status:  http.StatusUnauthorized,
		Message: "No Authentication provided",
	}
}

func errUpstream(status int, err error) *RequestError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &RequestError{
		Kind:    UpstreamFetchError,
		Status:  status,
		Message: "Error fetching seats data. Error: " + err.Error(),
		Err:     err,
	}
}

func errMockData(err error) *RequestError {
	return &RequestError{
		Kind:    MockDataError,
		Status:  http.StatusInternalServerError,
		Message: "Error reading mocked seats data. Error: " + err.Error(),
		Err:     err,
	}
}
