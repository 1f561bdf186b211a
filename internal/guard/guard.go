// Package guard decides whether the current session may render a requested
// view. It is a pure decision function: it never mutates the session and
// never navigates itself, it only returns where the router should go.
package guard

import "carewatch/internal/session"

// Scope is the role a route demands.
type Scope string

const (
	ScopeRoot    Scope = "root" // unscoped entry point
	ScopePublic  Scope = "public"
	ScopePatient Scope = "patient"
	ScopeDoctor  Scope = "doctor"
	ScopeAdmin   Scope = "admin"
)

const (
	LoginRoute    = "/login"
	PatientRoute  = "/patient"
	DoctorRoute   = "/doctor"
	HospitalRoute = "/hospital"
)

type Action int

const (
	Render Action = iota
	Redirect
)

type Decision struct {
	Action Action
	Target string // redirect target when Action == Redirect
}

func render() Decision            { return Decision{Action: Render} }
func redirect(to string) Decision { return Decision{Action: Redirect, Target: to} }

// DashboardRoute maps a session role to its dashboard. The second return is
// false for roles the client does not know.
func DashboardRoute(role string) (string, bool) {
	switch role {
	case "patient":
		return PatientRoute, true
	case "doctor":
		return DoctorRoute, true
	case "admin":
		return HospitalRoute, true
	default:
		return "", false
	}
}

// Evaluate applies the access table: public renders always; the root entry
// forwards an authenticated session to its role's dashboard; protected
// scopes render only when the session role matches; everything else,
// including unknown scopes, falls back to the login redirect (default-deny).
func Evaluate(scope Scope, s session.Session) Decision {
	if scope == ScopePublic {
		return render()
	}
	if !s.Authenticated() {
		return redirect(LoginRoute)
	}

	switch scope {
	case ScopeRoot:
		if route, ok := DashboardRoute(s.Role); ok {
			return redirect(route)
		}
		return redirect(LoginRoute)
	case ScopePatient, ScopeDoctor, ScopeAdmin:
		if s.Role == string(scope) {
			return render()
		}
		return redirect(LoginRoute)
	default:
		return redirect(LoginRoute)
	}
}
