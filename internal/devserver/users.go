package devserver

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/validate"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgBadRequest      = "Invalid request body"
	msgInvalidLogin    = "Invalid email or password"
	msgEmailTaken      = "Email already registered"
	msgInvalidEmail    = "A valid email is required"
	msgMissingProfile  = "Name, surname, email and password are required"
	msgPasswordTooLong = "Password is too long"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type checkEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type registrationRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

func normEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (a *account) profile() *models.User {
	return &models.User{ID: a.ID, Name: a.Name, Surname: a.Surname, Email: a.Email}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if validate.Struct(req) != nil {
		s.fail(w, r, http.StatusOK, msgInvalidLogin)
		return
	}

	s.mu.RLock()
	acc := s.accounts[normEmail(req.Email)]
	s.mu.RUnlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)) != nil {
		s.fail(w, r, http.StatusOK, msgInvalidLogin)
		return
	}

	token, err := s.issueToken(acc.ID)
	if err != nil {
		s.log.Error(r.Context(), "issue token", "error", err)
		s.fail(w, r, http.StatusInternalServerError, "Could not create session")
		return
	}
	s.ok(w, r, envelope{"token": token, "user": acc.profile()})
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var req checkEmailRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if validate.Struct(req) != nil {
		s.fail(w, r, http.StatusOK, msgInvalidEmail)
		return
	}

	s.mu.RLock()
	_, taken := s.accounts[normEmail(req.Email)]
	s.mu.RUnlock()

	if taken {
		s.fail(w, r, http.StatusOK, msgEmailTaken)
		return
	}
	s.ok(w, r, nil)
}

func (s *Server) handleCompleteRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		if fe, isFE := err.(validate.FieldErrors); isFE && len(fe) == 1 && fe["password"] == "is too long" {
			s.fail(w, r, http.StatusOK, msgPasswordTooLong)
			return
		}
		s.fail(w, r, http.StatusOK, msgMissingProfile)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "Could not create account")
		return
	}

	key := normEmail(req.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.accounts[key]; taken {
		s.fail(w, r, http.StatusOK, msgEmailTaken)
		return
	}
	s.accounts[key] = &account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Email:        key,
		PasswordHash: hash,
	}
	s.ok(w, r, nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	s.mu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.mu.Unlock()
	s.ok(w, r, nil)
}

// AddAccount registers an account directly, bypassing the signup endpoints.
func (s *Server) AddAccount(name, surname, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[normEmail(email)] = &account{
		ID:           uuid.NewString(),
		Name:         name,
		Surname:      surname,
		Email:        normEmail(email),
		PasswordHash: hash,
	}
	return nil
}
