package client

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers everything that kept us from getting a decodable
	// envelope: unreachable host, broken connection, non-JSON body.
	ErrTransport = errors.New("network or server error")
	// ErrUnauthorized matches rejections flagged with auth:true.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMalformed is a success envelope missing a field the call needs.
	ErrMalformed = errors.New("malformed response")
)

// RejectedError is a business-rule failure: the backend answered with
// success:false. Message is the server's msg, possibly empty.
type RejectedError struct {
	Endpoint string
	Message  string
	Auth     bool
}

func (e *RejectedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request rejected"
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, msg)
}

// Is lets errors.Is(err, ErrUnauthorized) single out auth-flagged rejections.
func (e *RejectedError) Is(target error) bool {
	return e.Auth && target == ErrUnauthorized
}
