// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import "strings"

// Screen is one of the application's views.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Route paths.
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathHome      = "/home"
	PathDashboard = "/dashboard"
)

// Route is where a requested path ends up after guards and redirects.
type Route struct {
	// Path is the canonical path that is displayed.
	Path   string
	Screen Screen
}

// Resolve maps a requested path to the route that is shown, given
// whether the user holds a valid session. "/" and unknown paths
// redirect to "/login", the public screens redirect a logged-in user
// to "/home", and the dashboard paths redirect everyone else to
// "/login".
func Resolve(path string, loggedIn bool) Route {
	switch normalizePath(path) {
	case PathRegister:
		if loggedIn {
			return Route{Path: PathHome, Screen: ScreenDashboard}
		}
		return Route{Path: PathRegister, Screen: ScreenRegister}
	case PathHome:
		if loggedIn {
			return Route{Path: PathHome, Screen: ScreenDashboard}
		}
		return Route{Path: PathLogin, Screen: ScreenLogin}
	case PathDashboard:
		if loggedIn {
			return Route{Path: PathDashboard, Screen: ScreenDashboard}
		}
		return Route{Path: PathLogin, Screen: ScreenLogin}
	default:
		// "/", "/login", and anything unrecognized.
		if loggedIn {
			return Route{Path: PathHome, Screen: ScreenDashboard}
		}
		return Route{Path: PathLogin, Screen: ScreenLogin}
	}
}

// normalizePath trims whitespace, adds a leading slash, drops trailing
// slashes, and lowercases the path.
func normalizePath(path string) string {
	path = strings.ToLower(strings.TrimSpace(path))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return PathRoot
}
