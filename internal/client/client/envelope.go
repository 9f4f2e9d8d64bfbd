package client

import (
	"encoding/json"
)

// Envelope is the JSON shape every backend endpoint answers with.
type Envelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg,omitempty"`
	Auth    *bool           `json:"auth,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`

	// Status is the HTTP status the envelope arrived with. Informational.
	Status int `json:"-"`
}

// IsAuthError reports a failure the backend flagged as an
// authentication/authorization problem.
func (e *Envelope) IsAuthError() bool {
	return !e.Success && e.Auth != nil && *e.Auth
}

// Result is the decoded outcome of an envelope: either Ok with a payload, or
// Err with a message and the auth flag.
type Result struct {
	ok        bool
	payload   json.RawMessage
	message   string
	authError bool
}

func Ok(payload json.RawMessage) Result {
	return Result{ok: true, payload: payload}
}

func Err(message string, authError bool) Result {
	return Result{message: message, authError: authError}
}

func (r Result) IsOk() bool               { return r.ok }
func (r Result) Payload() json.RawMessage { return r.payload }
func (r Result) Message() string          { return r.message }
func (r Result) IsAuthError() bool        { return r.authError }

// Err converts a failed Result into a *RejectedError; an Ok result gives nil.
func (r Result) Err(endpoint string) error {
	if r.ok {
		return nil
	}
	return &RejectedError{Endpoint: endpoint, Message: r.message, Auth: r.authError}
}

// Result decodes the envelope once at the client boundary.
func (e *Envelope) Result() Result {
	if e.Success {
		return Ok(e.Data)
	}
	return Err(e.Msg, e.IsAuthError())
}
