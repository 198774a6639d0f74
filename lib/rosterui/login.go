// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roster-project/roster/lib/studentapi"
)

// Messages shown by the public screens.
const (
	incompleteFormMessage    = "Please fill in all fields"
	loginSucceededMessage    = "Login Successful!"
	loginFailedMessage       = "Invalid Credentials"
	registerSucceededMessage = "Registration Successful! Redirecting..."
	registerFailedMessage    = "Registration failed"
)

const (
	loginEmail = iota
	loginPassword
)

type loginView struct {
	form    form
	pending bool
}

func newLoginView() loginView {
	return loginView{form: newForm(
		fieldSpec{label: "Email"},
		fieldSpec{label: "Password", secret: true},
	)}
}

func (view loginView) view(theme Theme) string {
	body := theme.title().Render("Login") + "\n\n" + view.form.view(theme)
	if view.pending {
		body += "\n\n" + theme.faint().Render("Signing in...")
	}
	return theme.panel().Render(body)
}

func (model Model) updateLogin(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.GoRegister):
		return model.navigate(PathRegister)
	case key.Matches(message, model.keys.NextField):
		model.login.form.next()
		return model, nil
	case key.Matches(message, model.keys.PrevField):
		model.login.form.previous()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		return model.submitLogin()
	}

	var cmd tea.Cmd
	model.login.form, cmd = model.login.form.update(message)
	return model, cmd
}

func (model Model) submitLogin() (tea.Model, tea.Cmd) {
	if model.login.pending {
		return model, nil
	}
	if !model.login.form.complete() {
		return model.showFlash(flashError, incompleteFormMessage)
	}

	model.login.pending = true
	ctx, client := model.ctx, model.client
	email := model.login.form.value(loginEmail)
	password := model.login.form.value(loginPassword)
	return model, func() tea.Msg {
		_, err := client.Login(ctx, email, password)
		return loginResultMsg{err: err}
	}
}

func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	if model.route.Screen != ScreenLogin {
		return model, nil
	}
	model.login.pending = false

	if message.err != nil {
		model.logFailure("login", message.err)
		return model.showFlash(flashError, studentapi.UserMessage(message.err, loginFailedMessage))
	}

	model, navigateCmd := model.navigate(PathHome)
	model, flashCmd := model.showFlash(flashSuccess, loginSucceededMessage)
	return model, tea.Batch(navigateCmd, flashCmd)
}
