package flow

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
	ModeForgot
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeSignup:
		return "signup"
	case ModeForgot:
		return "forgot"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Step numbers the signup screens: email, one-time code, profile.
type Step int

const (
	StepEmail Step = iota + 1
	StepCode
	StepProfile
)

const CodeLength = 6

// Draft is the form content. It lives only in memory.
type Draft struct {
	Email     string
	Password  string
	Code      string
	Name      string
	Surname   string
	Confirm   string
	Gender    string
	BirthDate string
}

// State is a read-only snapshot of a Controller.
type State struct {
	Mode  Mode
	Step  Step
	Draft Draft
	Busy  bool
	// Notice is an informational line to show after a transition, e.g. after
	// a successful registration.
	Notice string
}

// CanSwitchMode reports whether the "create account / sign in" link is
// available.
func (s State) CanSwitchMode() bool {
	return s.Mode != ModeForgot && s.Step == StepEmail
}

// CanGoBack reports whether Back changes anything.
func (s State) CanGoBack() bool {
	return s.Mode == ModeForgot || (s.Mode == ModeSignup && s.Step > StepEmail)
}

// FormatBirthDate keeps up to 8 digits of raw and lays them out as dd/mm/yyyy
// as they are typed: "0", "01/0", "01/02/19".
func FormatBirthDate(raw string) string {
	digits := make([]rune, 0, 8)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == 8 {
				break
			}
		}
	}

	var b strings.Builder
	for i, r := range digits {
		if i == 2 || i == 4 {
			b.WriteByte('/')
		}
		b.WriteRune(r)
	}
	return b.String()
}
