// Package guard is the route authorization gate evaluated before every
// navigation. It consults the session store and resolves to exactly one of
// proceed, redirect-to-login, or redirect-home-with-denial.
package guard

import (
	"context"
	"log/slog"

	"github.com/Anbokor/megastation/internal/domain"
)

// Route describes the authorization requirements of one destination.
// Route values are static configuration, immutable at runtime.
type Route struct {
	Path         string
	RequiresAuth bool
	AllowedRoles []domain.Role
}

// Outcome is the terminal result of a guard evaluation.
type Outcome int

const (
	// Proceed allows the navigation.
	Proceed Outcome = iota
	// RedirectLogin sends the visitor to login, preserving the original
	// target for post-login return.
	RedirectLogin
	// RedirectHome denies the navigation with a user-visible notice.
	RedirectHome
)

// Decision carries the outcome plus its context.
type Decision struct {
	Outcome Outcome
	// Target is the original destination, set for RedirectLogin.
	Target string
	// Notice is the denial message, set for RedirectHome.
	Notice string
}

// Session is the read-only view of the session store the guard needs.
type Session interface {
	IsAuthenticated() bool
	Current() *domain.Profile
	Role() domain.Role
	FetchUser(ctx context.Context) error
}

// Guard evaluates routes against the session.
type Guard struct {
	session Session
	logger  *slog.Logger
}

// New creates a guard over the given session store.
func New(session Session, logger *slog.Logger) *Guard {
	return &Guard{session: session, logger: logger}
}

// Resolve runs the guard rules in order, short-circuiting at the first
// applicable one:
//
//  1. A token without a profile forces a profile fetch; failure resolves to
//     RedirectLogin immediately, the remaining rules never see a
//     known-stale session.
//  2. RequiresAuth without an authenticated session resolves to
//     RedirectLogin carrying the original target.
//  3. A role-gated route with a non-member (or absent) role resolves to
//     RedirectHome with a denial notice.
//  4. Otherwise the navigation proceeds.
//
// Rule 2 runs strictly before rule 3, so an unauthenticated visitor of a
// role-gated route that requires authentication is asked to log in rather
// than shown a generic denial.
func (g *Guard) Resolve(ctx context.Context, route Route) Decision {
	if g.session.IsAuthenticated() && g.session.Current() == nil {
		if err := g.session.FetchUser(ctx); err != nil {
			g.logger.Debug("profile fetch failed during navigation",
				"path", route.Path, "error", err)
			return Decision{Outcome: RedirectLogin, Target: route.Path}
		}
	}

	if route.RequiresAuth && !g.session.IsAuthenticated() {
		return Decision{Outcome: RedirectLogin, Target: route.Path}
	}

	if len(route.AllowedRoles) > 0 {
		if !g.session.IsAuthenticated() || !g.session.Role().In(route.AllowedRoles) {
			return Decision{
				Outcome: RedirectHome,
				Notice:  "you do not have permission to access " + route.Path,
			}
		}
	}

	return Decision{Outcome: Proceed}
}
