package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/flow"
	"github.com/dmitrijs2005/vakwetoweya/internal/common"
)

// backInput at a signup text prompt returns to the previous step; at the first
// step it abandons the signup.
const backInput = "<"

var errCancelled = errors.New("cancelled")

// readSecret reads a password and hands it out as a string, wiping the
// buffer it came in.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Login prompts for credentials and submits them through the login flow. On
// success the token and profile are persisted by the AuthService.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in. Use logout first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Enter password")
	if err != nil {
		return err
	}

	fl := a.newFlow()
	if err := fl.Edit(func(d *flow.Draft) {
		d.Email = email
		d.Password = password
	}); err != nil {
		return err
	}
	if err := fl.Submit(ctx); err != nil {
		return err
	}

	if name := a.currentUser(); name != "" {
		fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	} else {
		fmt.Fprintln(a.out, "Logged in.")
	}
	return nil
}

// Signup walks the three signup steps: email check, one-time code, profile.
// A failed step is shown and asked again; "<" goes back one step.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in. Use logout first.")
		return nil
	}

	fl := a.newFlow()
	if err := fl.SwitchMode(flow.ModeSignup); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Type %s at a text prompt to go back.\n", backInput)

	for {
		st := fl.State()
		if st.Mode != flow.ModeSignup {
			fmt.Fprintln(a.out, st.Notice)
			return nil
		}

		err := a.fillStep(fl, st)
		if errors.Is(err, errCancelled) {
			if st.Step == flow.StepEmail {
				fmt.Fprintln(a.out, "Signup cancelled.")
				return nil
			}
			if err := fl.Back(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if err := fl.Submit(ctx); err != nil {
			report(err)
		}
	}
}

func (a *App) fillStep(fl *flow.Controller, st flow.State) error {
	switch st.Step {
	case flow.StepEmail:
		email, err := a.prompt("Enter email")
		if err != nil {
			return err
		}
		return fl.Edit(func(d *flow.Draft) { d.Email = email })

	case flow.StepCode:
		code, err := a.prompt(fmt.Sprintf("Enter the %d-digit code sent to %s", flow.CodeLength, st.Draft.Email))
		if err != nil {
			return err
		}
		return fl.Edit(func(d *flow.Draft) { d.Code = code })

	case flow.StepProfile:
		name, err := a.prompt("First name")
		if err != nil {
			return err
		}
		surname, err := a.prompt("Last name")
		if err != nil {
			return err
		}
		gender, err := a.prompt("Gender (male, female, other; empty to skip)")
		if err != nil {
			return err
		}
		birth, err := a.prompt("Birth date dd/mm/yyyy (empty to skip)")
		if err != nil {
			return err
		}
		password, err := a.readSecret("Choose a password")
		if err != nil {
			return err
		}
		confirm, err := a.readSecret("Repeat the password")
		if err != nil {
			return err
		}
		return fl.Edit(func(d *flow.Draft) {
			d.Name, d.Surname = name, surname
			d.Gender, d.BirthDate = gender, birth
			d.Password, d.Confirm = password, confirm
		})
	}
	return flow.ErrInvalidState
}

// prompt reads one line, mapping backInput to errCancelled.
func (a *App) prompt(text string) (string, error) {
	v, err := getSimpleText(a.reader, text, a.out)
	if err != nil {
		return "", err
	}
	if v == backInput {
		return "", errCancelled
	}
	return v, nil
}

// Forgot runs the password recovery form. The backend has no recovery
// endpoint yet, so only the confirmation is shown.
func (a *App) Forgot(ctx context.Context) error {
	fl := a.newFlow()
	if err := fl.Forgot(); err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter the email of your account", a.out)
	if err != nil {
		return err
	}
	if err := fl.Edit(func(d *flow.Draft) { d.Email = email }); err != nil {
		return err
	}
	if err := fl.Submit(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, fl.State().Notice)
	return nil
}

// Logout ends the session. The local session is removed even when the
// server could not be told.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	err := a.authService.Logout(ctx)

	a.mu.Lock()
	a.userName = ""
	a.mu.Unlock()

	if err != nil {
		fmt.Fprintln(a.out, "Logged out locally; the server could not be reached.")
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Status describes the stored session.
func (a *App) Status(ctx context.Context) error {
	st, err := a.authService.Status(ctx)
	if err != nil {
		return err
	}
	if !st.Authenticated {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	who := st.User.DisplayName()
	if who == "" {
		who = "unknown user"
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", who)

	if st.Token.JWT && !st.Token.ExpiresAt.IsZero() {
		state := "valid until"
		if st.Token.Expired(time.Now()) {
			state = "expired at"
		}
		fmt.Fprintf(a.out, "Token %s %s\n", state, st.Token.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) currentUser() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName
}
