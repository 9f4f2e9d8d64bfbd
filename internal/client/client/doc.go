// Package client is the API client helper of the booking backend.
//
// # Overview
//
//  1. Client: the transport-agnostic contract (generic Request plus typed
//     calls for the users, provinces, hosts, tours and bnb endpoints).
//  2. HTTPClient: the HTTP/JSON implementation. It reads the session token
//     through a TokenSource before every call, sends it as a bearer token and
//     decodes the JSON envelope.
//  3. Envelope and Result: the wire shape and its decoded Ok/Err form.
//
// # Error Handling
//
//   - ErrTransport: no decodable envelope (network failure, non-JSON body).
//   - *RejectedError: success:false. errors.Is(err, ErrUnauthorized) holds
//     when the envelope carried auth:true, or when it came with HTTP 401/403
//     and no auth field.
//   - ErrMalformed: success:true but a required field is missing.
//
// Nothing is retried.
package client
