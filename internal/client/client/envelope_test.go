package client

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) *Envelope {
	t.Helper()
	var e Envelope
	require.NoError(t, json.Unmarshal([]byte(s), &e))
	return &e
}

func TestEnvelope_Result(t *testing.T) {
	ok := decode(t, `{"success":true,"data":{"id":"1"}}`).Result()
	assert.True(t, ok.IsOk())
	assert.JSONEq(t, `{"id":"1"}`, string(ok.Payload()))
	assert.NoError(t, ok.Err("/x"))

	bad := decode(t, `{"success":false,"msg":"Email already registered"}`).Result()
	assert.False(t, bad.IsOk())
	assert.Equal(t, "Email already registered", bad.Message())
	assert.False(t, bad.IsAuthError())

	auth := decode(t, `{"success":false,"auth":true}`).Result()
	assert.True(t, auth.IsAuthError())
	assert.Empty(t, auth.Message())

	// auth on a success envelope means nothing
	assert.False(t, decode(t, `{"success":true,"auth":true}`).IsAuthError())
}

func TestRejectedError(t *testing.T) {
	err := Err("", true).Err("/bnb")
	assert.EqualError(t, err, "/bnb: request rejected")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	err = Err("nope", false).Err("/users/login")
	assert.EqualError(t, err, "/users/login: nope")
	assert.False(t, errors.Is(err, ErrUnauthorized))
}
