package client

import "fmt"

// TransportError covers everything that keeps a response from being usable:
// rejected requests, unexpected statuses, malformed bodies and images that
// fail to parse.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a failure reported by the generator itself in the
// "error" field of an otherwise well-formed response.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func transportErr(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}
