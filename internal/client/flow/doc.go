// Package flow drives the login / signup / forgot-password screens as a state
// machine independent of any UI.
//
// A Controller owns the mode, the signup step and the in-memory registration
// draft. Callers edit the draft, call Submit, and render State afterwards.
// Only one Submit may be in flight at a time; a second one fails fast with
// ErrBusy so a double tap cannot issue two logins.
package flow
