package devserver

import (
	"encoding/json"
	"net/http"
)

type envelope map[string]any

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error(r.Context(), "write json response failed", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) ok(w http.ResponseWriter, r *http.Request, extra envelope) {
	body := envelope{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	s.writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) data(w http.ResponseWriter, r *http.Request, v any) {
	s.ok(w, r, envelope{"data": v})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, envelope{"success": false, "msg": msg})
}

func (s *Server) failAuth(w http.ResponseWriter, r *http.Request, msg string) {
	s.writeJSON(w, r, http.StatusUnauthorized, envelope{"success": false, "msg": msg, "auth": true})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}
