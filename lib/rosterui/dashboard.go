// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roster-project/roster/lib/studentapi"
)

// Messages shown by the dashboard.
const (
	createSucceededMessage = "Student registered successfully!"
	updateSucceededMessage = "Student updated successfully!"
	deleteSucceededMessage = "Student deleted successfully!"
	fetchFailedMessage     = "Failed to fetch students"
	createFailedMessage    = "Failed to register student"
	updateFailedMessage    = "Failed to update student"
	deleteFailedMessage    = "Failed to delete student"
	logoutFailedMessage    = "Failed to log out"
)

type dashboardMode int

const (
	modeBrowse dashboardMode = iota
	modeCreate
	modeEdit
	modeConfirmDelete
)

type dashboardView struct {
	table    table.Model
	students []studentapi.Student
	loaded   bool
	loading  bool

	mode   dashboardMode
	editor form

	// target is the record being edited or deleted.
	target studentapi.Student

	// pending is set while a mutation is in flight.
	pending bool
}

var studentColumns = []table.Column{
	{Title: "ID", Width: 6},
	{Title: "Name", Width: 20},
	{Title: "Email", Width: 28},
	{Title: "Course", Width: 20},
}

func newDashboardView(theme Theme, width, height int) dashboardView {
	view := dashboardView{
		table: table.New(
			table.WithColumns(studentColumns),
			table.WithFocused(true),
			table.WithHeight(height),
		),
		loading: true,
	}
	view.table.SetStyles(theme.tableStyles())
	view.resize(width, height)
	return view
}

func (view *dashboardView) resize(width, height int) {
	if width > 0 {
		view.table.SetWidth(width)
	}
	if height > 0 {
		view.table.SetHeight(height)
	}
}

func (view *dashboardView) setStudents(students []studentapi.Student) {
	view.students = students
	view.loaded = true
	rows := make([]table.Row, len(students))
	for i, student := range students {
		rows[i] = table.Row{strconv.Itoa(student.ID), student.Name, student.Email, student.Course}
	}
	view.table.SetRows(rows)
	if cursor := view.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		view.table.SetCursor(len(rows) - 1)
	}
}

// selected returns the student under the table cursor.
func (view dashboardView) selected() (studentapi.Student, bool) {
	cursor := view.table.Cursor()
	if cursor < 0 || cursor >= len(view.students) {
		return studentapi.Student{}, false
	}
	return view.students[cursor], true
}

func (view dashboardView) helpKeys(keys KeyMap) screenHelp {
	switch view.mode {
	case modeCreate, modeEdit:
		return keys.editorHelp()
	case modeConfirmDelete:
		return keys.confirmHelp()
	default:
		return keys.browseHelp()
	}
}

func (view dashboardView) view(theme Theme) string {
	body := theme.title().Render("Students") + "\n\n"
	switch {
	case !view.loaded && view.loading:
		body += theme.faint().Render("Loading students...")
	case len(view.students) == 0:
		body += theme.faint().Render("No students found.")
	default:
		body += view.table.View()
	}
	body = theme.panel().Render(body)

	switch view.mode {
	case modeCreate:
		body += "\n" + theme.panel().Render(theme.title().Render("New student")+"\n\n"+view.editor.view(theme))
	case modeEdit:
		title := fmt.Sprintf("Edit student #%d", view.target.ID)
		body += "\n" + theme.panel().Render(theme.title().Render(title)+"\n\n"+view.editor.view(theme))
	case modeConfirmDelete:
		prompt := fmt.Sprintf("Delete student #%d (%s)? y to confirm, Esc to cancel", view.target.ID, view.target.Name)
		body += "\n" + theme.panel().Render(prompt)
	}
	return body
}

func (model Model) updateDashboard(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.dashboard.mode {
	case modeCreate, modeEdit:
		return model.updateEditor(message)
	case modeConfirmDelete:
		return model.updateConfirm(message)
	}

	switch {
	case key.Matches(message, model.keys.Create):
		model.dashboard.mode = modeCreate
		model.dashboard.editor = newStudentForm()
		return model, nil

	case key.Matches(message, model.keys.Edit):
		student, ok := model.dashboard.selected()
		if !ok {
			return model, nil
		}
		model.dashboard.mode = modeEdit
		model.dashboard.target = student
		model.dashboard.editor = newStudentForm()
		model.dashboard.editor.setValues(student.Name, student.Email, student.Password, student.Course)
		return model, nil

	case key.Matches(message, model.keys.Delete):
		student, ok := model.dashboard.selected()
		if !ok {
			return model, nil
		}
		model.dashboard.mode = modeConfirmDelete
		model.dashboard.target = student
		return model, nil

	case key.Matches(message, model.keys.Refresh):
		model.dashboard.loading = true
		return model, model.fetchStudents()

	case key.Matches(message, model.keys.Logout):
		return model.logout()
	}

	var cmd tea.Cmd
	model.dashboard.table, cmd = model.dashboard.table.Update(message)
	return model, cmd
}

func (model Model) updateEditor(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.dashboard.mode = modeBrowse
		return model, nil
	case key.Matches(message, model.keys.NextField):
		model.dashboard.editor.next()
		return model, nil
	case key.Matches(message, model.keys.PrevField):
		model.dashboard.editor.previous()
		return model, nil
	case key.Matches(message, model.keys.Submit):
		return model.submitEditor()
	}

	var cmd tea.Cmd
	model.dashboard.editor, cmd = model.dashboard.editor.update(message)
	return model, cmd
}

func (model Model) submitEditor() (tea.Model, tea.Cmd) {
	if model.dashboard.pending {
		return model, nil
	}
	if !model.dashboard.editor.complete() {
		return model.showFlash(flashError, incompleteFormMessage)
	}

	model.dashboard.pending = true
	ctx, client := model.ctx, model.client
	input := studentInput(model.dashboard.editor)

	if model.dashboard.mode == modeCreate {
		return model, func() tea.Msg {
			registration, err := client.CreateStudent(ctx, input)
			return studentCreatedMsg{registration: registration, err: err}
		}
	}
	id := model.dashboard.target.ID
	return model, func() tea.Msg {
		student, err := client.UpdateStudent(ctx, id, input)
		return studentUpdatedMsg{student: student, err: err}
	}
}

func (model Model) updateConfirm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.dashboard.mode = modeBrowse
		return model, nil
	case key.Matches(message, model.keys.Confirm):
		if model.dashboard.pending {
			return model, nil
		}
		model.dashboard.pending = true
		ctx, client := model.ctx, model.client
		id := model.dashboard.target.ID
		return model, func() tea.Msg {
			return studentDeletedMsg{id: id, err: client.DeleteStudent(ctx, id)}
		}
	}
	return model, nil
}

func (model Model) fetchStudents() tea.Cmd {
	ctx, client := model.ctx, model.client
	return func() tea.Msg {
		students, err := client.ListStudents(ctx)
		return studentsFetchedMsg{students: students, err: err}
	}
}

func (model Model) logout() (tea.Model, tea.Cmd) {
	if err := model.auth.Logout(); err != nil {
		model.logger.Error("logout failed", "error", err)
		return model.showFlash(flashError, logoutFailedMessage)
	}
	return model.navigate(PathRoot)
}

func (model Model) handleStudentsFetched(message studentsFetchedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(message.err, studentapi.ErrSessionEnded) {
		return model.endSession("list")
	}
	if model.route.Screen != ScreenDashboard {
		return model, nil
	}
	model.dashboard.loading = false

	if message.err != nil {
		model.logFailure("list", message.err)
		return model.showFlash(flashError, failureMessage(message.err, fetchFailedMessage))
	}
	model.dashboard.setStudents(message.students)
	return model, nil
}

func (model Model) handleStudentCreated(message studentCreatedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(message.err, studentapi.ErrSessionEnded) {
		return model.endSession("create")
	}
	if model.route.Screen != ScreenDashboard {
		return model, nil
	}
	model.dashboard.pending = false

	if message.err != nil {
		model.logFailure("create", message.err)
		return model.showFlash(flashError, studentapi.UserMessage(message.err, createFailedMessage))
	}

	// Registering logs in as the new student.
	model.snapshot = model.auth.Snapshot()
	model.dashboard.mode = modeBrowse
	model, flashCmd := model.showFlash(flashSuccess, createSucceededMessage)
	return model, tea.Batch(flashCmd, model.fetchStudents())
}

func (model Model) handleStudentUpdated(message studentUpdatedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(message.err, studentapi.ErrSessionEnded) {
		return model.endSession("update")
	}
	if model.route.Screen != ScreenDashboard {
		return model, nil
	}
	model.dashboard.pending = false

	if message.err != nil {
		model.logFailure("update", message.err)
		return model.showFlash(flashError, failureMessage(message.err, updateFailedMessage))
	}

	model.dashboard.mode = modeBrowse
	model, flashCmd := model.showFlash(flashSuccess, updateSucceededMessage)
	return model, tea.Batch(flashCmd, model.fetchStudents())
}

func (model Model) handleStudentDeleted(message studentDeletedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(message.err, studentapi.ErrSessionEnded) {
		return model.endSession("delete")
	}
	if model.route.Screen != ScreenDashboard {
		return model, nil
	}
	model.dashboard.pending = false
	model.dashboard.mode = modeBrowse

	if message.err != nil {
		model.logFailure("delete", message.err)
		return model.showFlash(flashError, failureMessage(message.err, deleteFailedMessage))
	}

	model, flashCmd := model.showFlash(flashSuccess, deleteSucceededMessage)
	return model, tea.Batch(flashCmd, model.fetchStudents())
}
