package tui

import "github.com/charmbracelet/huh"

// loginForm is the lock screen form. The bound values live behind a
// pointer so the form keeps writing to them as the model is copied.
type loginForm struct {
	user string
	pin  string
	form *huh.Form
}

func newLoginForm(user string) *loginForm {
	l := &loginForm{user: user}
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User").
				Value(&l.user),
			huh.NewInput().
				Title("PIN").
				EchoMode(huh.EchoModePassword).
				Value(&l.pin),
		),
	).WithShowHelp(false).WithWidth(30)
	return l
}
