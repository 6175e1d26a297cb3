package checkclient

import (
	"errors"
	"fmt"
)

// FailureKind distinguishes how a /check call failed.
type FailureKind string

const (
	KindStatus    FailureKind = "status"
	KindTransport FailureKind = "transport"
	KindDecode    FailureKind = "decode"
)

// RequestFailure is returned for any /check call that did not yield a
// complete, well-formed result set.
type RequestFailure struct {
	Kind   FailureKind
	Status int
	Err    error
}

func (e *RequestFailure) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("check: backend returned status %d", e.Status)
	case KindDecode:
		return fmt.Sprintf("check: malformed response: %v", e.Err)
	}
	return fmt.Sprintf("check: request failed: %v", e.Err)
}

func (e *RequestFailure) Unwrap() error { return e.Err }

const (
	connectionNotice = "Security Error or Connection Lost. Please ensure the backend is active on port 8000."
	decodeNotice     = "The eligibility service returned a response that could not be read. Please try again later."
)

// UserMessage is the blocking notice shown for err. Malformed bodies get their
// own wording; every other failure keeps the connection notice.
func UserMessage(err error) string {
	var rf *RequestFailure
	if errors.As(err, &rf) && rf.Kind == KindDecode {
		return decodeNotice
	}
	return connectionNotice
}
