// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roster-project/roster/lib/studentapi"
)

// Field order shared by the registration form and the dashboard
// editor.
const (
	studentName = iota
	studentEmail
	studentPassword
	studentCourse
)

func newStudentForm() form {
	return newForm(
		fieldSpec{label: "Name"},
		fieldSpec{label: "Email"},
		fieldSpec{label: "Password", secret: true},
		fieldSpec{label: "Course"},
	)
}

func studentInput(f form) studentapi.StudentInput {
	return studentapi.StudentInput{
		Name:     f.value(studentName),
		Email:    f.value(studentEmail),
		Password: f.value(studentPassword),
		Course:   f.value(studentCourse),
	}
}

type registerView struct {
	form form

	// pending is set while the request is in flight; redirecting once
	// it succeeded, until the delayed move to "/home".
	pending     bool
	redirecting bool
}

func newRegisterView() registerView {
	return registerView{form: newStudentForm()}
}

func (view registerView) view(theme Theme) string {
	body := theme.title().Render("Register") + "\n\n" + view.form.view(theme)
	if view.pending {
		body += "\n\n" + theme.faint().Render("Registering...")
	}
	return theme.panel().Render(body)
}

func (model Model) updateRegister(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.GoLogin):
		return model.navigate(PathLogin)
	case key.Matches(message, model.keys.NextField):
		model.register.form.next()
		return model, nil
	case key.Matches(message, model.keys.PrevField):
		model.register.form.previous()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		return model.submitRegister()
	}

	var cmd tea.Cmd
	model.register.form, cmd = model.register.form.update(message)
	return model, cmd
}

func (model Model) submitRegister() (tea.Model, tea.Cmd) {
	if model.register.pending || model.register.redirecting {
		return model, nil
	}
	if !model.register.form.complete() {
		return model.showFlash(flashError, incompleteFormMessage)
	}

	model.register.pending = true
	ctx, client := model.ctx, model.client
	input := studentInput(model.register.form)
	return model, func() tea.Msg {
		registration, err := client.CreateStudent(ctx, input)
		return registerResultMsg{registration: registration, err: err}
	}
}

func (model Model) handleRegisterResult(message registerResultMsg) (tea.Model, tea.Cmd) {
	if model.route.Screen != ScreenRegister {
		return model, nil
	}
	model.register.pending = false

	if message.err != nil {
		model.logFailure("register", message.err)
		return model.showFlash(flashError, studentapi.UserMessage(message.err, registerFailedMessage))
	}

	// The session is already stored; the screen stays until the
	// redirect fires.
	model.register.redirecting = true
	model.snapshot = model.auth.Snapshot()
	model, flashCmd := model.showFlash(flashSuccess, registerSucceededMessage)
	return model, tea.Batch(flashCmd, model.after(model.redirectDelay, navigateMsg{path: PathHome}))
}
