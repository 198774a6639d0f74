// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roster-project/roster/lib/authstate"
	"github.com/roster-project/roster/lib/studentapi"
)

// Default delays.
const (
	DefaultMessageTimeout = 3 * time.Second
	DefaultRedirectDelay  = 1500 * time.Millisecond
)

// Config configures a Model.
type Config struct {
	// Client performs every request. Its store should be Auth, so that
	// logins and 401 teardowns move the auth state. Required.
	Client *studentapi.Client

	// Auth is the session state the guards consult. Required.
	Auth *authstate.Context

	// InitialRoute is the first path shown. Default: "/"
	InitialRoute string

	// MessageTimeout is how long a flash message stays visible.
	// Default: 3s
	MessageTimeout time.Duration

	// RedirectDelay is the pause between a successful registration and
	// the move to "/home". Default: 1.5s
	RedirectDelay time.Duration

	// Theme and Keys default to DefaultTheme and DefaultKeyMap.
	Theme *Theme
	Keys  *KeyMap

	// After returns a command that delivers msg once d has passed. Nil
	// means tea.Tick.
	After func(d time.Duration, msg tea.Msg) tea.Cmd

	// Logger receives request outcomes. Nil discards them; the
	// terminal is never a log destination while the program draws.
	Logger *slog.Logger
}

// Model is the bubbletea model for the whole application.
type Model struct {
	ctx            context.Context
	client         *studentapi.Client
	auth           *authstate.Context
	theme          Theme
	keys           KeyMap
	after          func(time.Duration, tea.Msg) tea.Cmd
	logger         *slog.Logger
	messageTimeout time.Duration
	redirectDelay  time.Duration

	route    Route
	snapshot authstate.Snapshot

	flash    flash
	flashSeq int

	login     loginView
	register  registerView
	dashboard dashboardView

	help   help.Model
	width  int
	height int
}

// New creates the model and resolves the initial route against the
// current session.
func New(ctx context.Context, config Config) (Model, error) {
	if config.Client == nil {
		return Model{}, errors.New("rosterui: Client is required")
	}
	if config.Auth == nil {
		return Model{}, errors.New("rosterui: Auth is required")
	}

	model := Model{
		ctx:            ctx,
		client:         config.Client,
		auth:           config.Auth,
		theme:          DefaultTheme,
		keys:           DefaultKeyMap,
		after:          config.After,
		logger:         config.Logger,
		messageTimeout: config.MessageTimeout,
		redirectDelay:  config.RedirectDelay,
		help:           help.New(),
	}
	if config.Theme != nil {
		model.theme = *config.Theme
	}
	if config.Keys != nil {
		model.keys = *config.Keys
	}
	if model.after == nil {
		model.after = func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		}
	}
	if model.logger == nil {
		model.logger = slog.New(slog.DiscardHandler)
	}
	if model.messageTimeout <= 0 {
		model.messageTimeout = DefaultMessageTimeout
	}
	if model.redirectDelay <= 0 {
		model.redirectDelay = DefaultRedirectDelay
	}
	model.help.Styles.ShortKey = model.theme.help().Bold(true)
	model.help.Styles.ShortDesc = model.theme.help()
	model.help.Styles.ShortSeparator = model.theme.help()

	initial := config.InitialRoute
	if initial == "" {
		initial = PathRoot
	}
	model.resolve(initial)
	return model, nil
}

// Route returns the route currently shown.
func (model Model) Route() Route { return model.route }

// Init implements tea.Model. Entering the dashboard fetches students.
func (model Model) Init() tea.Cmd {
	return model.enterCmd()
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if key.Matches(message, model.keys.Quit) {
			return model, tea.Quit
		}
		switch model.route.Screen {
		case ScreenLogin:
			return model.updateLogin(message)
		case ScreenRegister:
			return model.updateRegister(message)
		case ScreenDashboard:
			return model.updateDashboard(message)
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.help.Width = message.Width
		model.dashboard.resize(message.Width, model.tableHeight())

	case AuthChangedMsg:
		model.snapshot = message.Snapshot

	case flashExpiredMsg:
		if message.seq == model.flash.seq {
			model.flash = flash{}
		}

	case navigateMsg:
		return model.navigate(message.path)

	case loginResultMsg:
		return model.handleLoginResult(message)

	case registerResultMsg:
		return model.handleRegisterResult(message)

	case studentsFetchedMsg:
		return model.handleStudentsFetched(message)

	case studentCreatedMsg:
		return model.handleStudentCreated(message)

	case studentUpdatedMsg:
		return model.handleStudentUpdated(message)

	case studentDeletedMsg:
		return model.handleStudentDeleted(message)
	}
	return model, nil
}

// resolve re-derives the session state and moves to the route path
// resolves to, resetting that screen.
func (model *Model) resolve(path string) {
	model.snapshot = model.auth.Init()
	model.route = Resolve(path, model.snapshot.LoggedIn())

	switch model.route.Screen {
	case ScreenLogin:
		model.login = newLoginView()
	case ScreenRegister:
		model.register = newRegisterView()
	case ScreenDashboard:
		model.dashboard = newDashboardView(model.theme, model.width, model.tableHeight())
	}
}

func (model Model) navigate(path string) (Model, tea.Cmd) {
	from := model.route.Path
	model.resolve(path)
	model.logger.Debug("navigate", "requested", path, "from", from, "to", model.route.Path)
	return model, model.enterCmd()
}

func (model Model) enterCmd() tea.Cmd {
	if model.route.Screen == ScreenDashboard {
		return model.fetchStudents()
	}
	return nil
}

// endSession handles a request that the server answered with 401: the
// client has already cleared the session, so the model goes to "/".
func (model Model) endSession(operation string) (Model, tea.Cmd) {
	model.logger.Info("session ended by server", "operation", operation)
	return model.navigate(PathRoot)
}

func (model Model) showFlash(kind flashKind, text string) (Model, tea.Cmd) {
	model.flashSeq++
	model.flash = flash{text: text, kind: kind, seq: model.flashSeq}
	return model, model.after(model.messageTimeout, flashExpiredMsg{seq: model.flashSeq})
}

// failureMessage is the text for a failed request that only reports a
// fixed message: the connection message for transport failures and
// fallback for everything else.
func failureMessage(err error, fallback string) string {
	var transport *studentapi.TransportError
	if errors.As(err, &transport) {
		return studentapi.ConnectionFailedMessage
	}
	return fallback
}

func (model Model) logFailure(operation string, err error) {
	if studentapi.IsTransient(err) {
		model.logger.Warn("request failed", "operation", operation, "error", err)
		return
	}
	model.logger.Info("request rejected", "operation", operation, "error", err)
}

// View implements tea.Model.
func (model Model) View() string {
	var sections []string

	header := model.theme.title().Render("Student Management")
	if model.snapshot.LoggedIn() {
		header += "  " + model.theme.faint().Render("Logged in as "+model.snapshot.Email)
	}
	sections = append(sections, header)

	if model.flash.text != "" {
		sections = append(sections, model.theme.flash(model.flash.kind).Render(model.flash.text))
	} else {
		sections = append(sections, "")
	}

	var helpKeys screenHelp
	switch model.route.Screen {
	case ScreenLogin:
		sections = append(sections, model.login.view(model.theme))
		helpKeys = model.keys.loginHelp()
	case ScreenRegister:
		sections = append(sections, model.register.view(model.theme))
		helpKeys = model.keys.registerHelp()
	case ScreenDashboard:
		sections = append(sections, model.dashboard.view(model.theme))
		helpKeys = model.dashboard.helpKeys(model.keys)
	}

	sections = append(sections, "", model.help.View(helpKeys))
	return strings.Join(sections, "\n")
}

// chromeHeight is the number of lines outside the dashboard table:
// header, flash, title, blank line before help, help, and the editor
// or confirmation panel.
const chromeHeight = 14

func (model Model) tableHeight() int {
	if model.height == 0 {
		return 10
	}
	return max(model.height-chromeHeight, 3)
}

func (model Model) String() string {
	return fmt.Sprintf("rosterui.Model{route: %s, state: %s}", model.route.Path, model.snapshot.State)
}
