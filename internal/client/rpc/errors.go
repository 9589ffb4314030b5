package rpc

import "fmt"

// TransportError reports an HTTP-level failure: a non-2xx status or a
// network error before any envelope could be decoded. Not retried
// automatically; callers treat it as a connectivity failure.
type TransportError struct {
	StatusCode int // zero when the request never reached the server
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("transport error: http status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports an RPC-level error carried inside a 2xx response
// envelope. Message prefers the server's nested detail message over the
// top-level one.
type ProtocolError struct {
	Code    int64
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("server error: %s", e.Message)
}
