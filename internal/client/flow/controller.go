package flow

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
	"github.com/dmitrijs2005/vakwetoweya/internal/validate"
)

const (
	NoticeRegistered = "Account created. Please sign in."
	NoticeResetSent  = "If the email is registered, a recovery link is on its way."
)

// Auth is the part of services.AuthService the flow needs.
type Auth interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	CheckEmail(ctx context.Context, email string) error
	CompleteRegistration(ctx context.Context, reg models.Registration) error
}

type Option func(*Controller)

// OnAuthenticated registers fn to run after each successful login, once the
// session has been persisted.
func OnAuthenticated(fn func(*models.User)) Option {
	return func(c *Controller) { c.onAuth = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

type Controller struct {
	auth   Auth
	log    logging.Logger
	onAuth func(*models.User)

	mu     sync.Mutex
	mode   Mode
	step   Step
	draft  Draft
	busy   bool
	notice string
}

// New returns a controller in login mode at the first step.
func New(auth Auth, opts ...Option) *Controller {
	c := &Controller{
		auth: auth,
		log:  logging.Discard(),
		mode: ModeLogin,
		step: StepEmail,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{Mode: c.mode, Step: c.step, Draft: c.draft, Busy: c.busy, Notice: c.notice}
}

// Edit applies fn to the draft. BirthDate is normalized with FormatBirthDate.
func (c *Controller) Edit(fn func(d *Draft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	fn(&c.draft)
	c.draft.BirthDate = FormatBirthDate(c.draft.BirthDate)
	return nil
}

// Back leaves forgot for login, or moves signup one step back. Elsewhere it
// does nothing.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.notice = ""
	switch {
	case c.mode == ModeForgot:
		c.mode = ModeLogin
	case c.mode == ModeSignup && c.step > StepEmail:
		c.step--
	}
	return nil
}

// SwitchMode follows the "create account" / "sign in" link. It is only
// offered at the first step and never from forgot. Leaving signup discards
// the draft.
func (c *Controller) SwitchMode(to Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	if to == ModeForgot || !c.stateLocked().CanSwitchMode() {
		return ErrInvalidState
	}
	c.notice = ""
	if c.mode == ModeSignup && to == ModeLogin {
		c.resetLocked()
	}
	c.mode = to
	return nil
}

// Forgot opens the password recovery form from login.
func (c *Controller) Forgot() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	if c.mode != ModeLogin {
		return ErrInvalidState
	}
	c.notice = ""
	c.mode = ModeForgot
	return nil
}

// resetLocked clears the signup draft and rewinds to the first step.
func (c *Controller) resetLocked() {
	c.draft = Draft{}
	c.step = StepEmail
}

// Submit performs the primary action of the current screen. Validation
// failures come back as *ValidationError without touching the network; any
// failure leaves mode and step as they were.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	mode, step, d := c.mode, c.step, c.draft
	c.busy = true
	c.notice = ""
	c.mu.Unlock()

	next, err := c.submit(ctx, mode, step, d)

	c.mu.Lock()
	c.busy = false
	if err == nil {
		next.apply(c)
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Debug(ctx, "submit failed", "mode", mode, "step", int(step), "error", err)
		return err
	}
	if next.user != nil && c.onAuth != nil {
		c.onAuth(next.user)
	}
	return nil
}

// transition is applied under the lock after a successful submit. user is
// set when the submit logged someone in.
type transition struct {
	apply func(c *Controller)
	user  *models.User
}

func (c *Controller) submit(ctx context.Context, mode Mode, step Step, d Draft) (transition, error) {
	switch mode {
	case ModeLogin:
		return c.submitLogin(ctx, d)
	case ModeSignup:
		switch step {
		case StepEmail:
			return c.submitEmail(ctx, d)
		case StepCode:
			return c.submitCode(d)
		case StepProfile:
			return c.submitProfile(ctx, d)
		}
	case ModeForgot:
		return transition{apply: func(c *Controller) {
			c.mode = ModeLogin
			c.notice = NoticeResetSent
		}}, nil
	}
	return transition{}, ErrInvalidState
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type emailForm struct {
	Email string `json:"email" validate:"required,email"`
}

type codeForm struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type profileForm struct {
	Name      string `json:"name" validate:"required"`
	Surname   string `json:"surname" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Confirm   string `json:"confirm" validate:"eqfield=Password"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=02/01/2006"`
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	if fe, ok := err.(validate.FieldErrors); ok {
		return &ValidationError{Fields: fe}
	}
	return err
}

func (c *Controller) submitLogin(ctx context.Context, d Draft) (transition, error) {
	email := strings.TrimSpace(d.Email)
	if err := check(loginForm{Email: email, Password: d.Password}); err != nil {
		return transition{}, err
	}

	u, err := c.auth.Login(ctx, email, d.Password)
	if err != nil {
		return transition{}, err
	}
	c.log.Info(ctx, "authenticated", "email", email)

	if u == nil {
		u = &models.User{Email: email}
	}
	return transition{apply: func(c *Controller) { c.draft = Draft{} }, user: u}, nil
}

func (c *Controller) submitEmail(ctx context.Context, d Draft) (transition, error) {
	email := strings.TrimSpace(d.Email)
	if err := check(emailForm{Email: email}); err != nil {
		return transition{}, err
	}
	if err := c.auth.CheckEmail(ctx, email); err != nil {
		return transition{}, err
	}
	return transition{apply: func(c *Controller) { c.step = StepCode }}, nil
}

// submitCode only checks the shape of the code. The backend has no
// verification endpoint, so any six digits pass.
func (c *Controller) submitCode(d Draft) (transition, error) {
	if err := check(codeForm{Code: d.Code}); err != nil {
		return transition{}, err
	}
	return transition{apply: func(c *Controller) { c.step = StepProfile }}, nil
}

func (c *Controller) submitProfile(ctx context.Context, d Draft) (transition, error) {
	form := profileForm{
		Name:      strings.TrimSpace(d.Name),
		Surname:   strings.TrimSpace(d.Surname),
		Password:  d.Password,
		Confirm:   d.Confirm,
		Gender:    d.Gender,
		BirthDate: d.BirthDate,
	}
	if err := check(form); err != nil {
		return transition{}, err
	}

	reg := models.Registration{
		Name:     form.Name,
		Surname:  form.Surname,
		Email:    strings.TrimSpace(d.Email),
		Password: d.Password,
	}
	if err := c.auth.CompleteRegistration(ctx, reg); err != nil {
		return transition{}, err
	}

	return transition{apply: func(c *Controller) {
		c.resetLocked()
		c.mode = ModeLogin
		c.notice = NoticeRegistered
	}}, nil
}
