package flow

import (
	"errors"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/client"
	"github.com/dmitrijs2005/vakwetoweya/internal/validate"
)

var (
	// ErrBusy is returned while a previous Submit is still running.
	ErrBusy = errors.New("a request is already in progress")
	// ErrInvalidState is returned for transitions the current state does not
	// offer, e.g. switching mode from the code step.
	ErrInvalidState = errors.New("action not available in current state")
)

const (
	MsgFallback  = "Something went wrong. Please try again."
	MsgTransport = "Network or server error. Please try again."
)

// ValidationError lists the fields that kept a Submit from reaching the
// network.
type ValidationError struct {
	Fields validate.FieldErrors
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Fields.Error()
}

// UserMessage turns a Submit error into the line shown to the user: the
// server's msg for a rejection, or a generic line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var rej *client.RejectedError
	var verr *ValidationError
	switch {
	case errors.As(err, &rej):
		if rej.Message != "" {
			return rej.Message
		}
		return MsgFallback
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, ErrBusy), errors.Is(err, ErrInvalidState):
		return err.Error()
	case errors.Is(err, client.ErrTransport), errors.Is(err, client.ErrMalformed):
		return MsgTransport
	default:
		return MsgFallback
	}
}
