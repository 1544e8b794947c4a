package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/guard"
)

// routes is the static route table consulted by the navigation guard.
// Keys are command paths (without the binary name); values mirror the
// storefront's view paths. Commands without an entry are public.
//
// Role-gated destinations always set RequiresAuth as well, which makes the
// guard's precedence deterministic: an anonymous visitor is asked to log
// in, only an authenticated visitor with the wrong role sees a denial.
var routes = map[string]guard.Route{
	"catalog": {Path: "/catalog"},
	"product": {Path: "/product"},
	"cart":    {Path: "/cart"},

	// The local cart is public; the server-side mirror needs a session.
	"cart remote": {Path: "/cart/remote", RequiresAuth: true},

	"whoami":   {Path: "/me", RequiresAuth: true},
	"checkout": {Path: "/checkout", RequiresAuth: true},
	"orders":   {Path: "/orders", RequiresAuth: true},

	"orders staff": {
		Path:         "/orders/staff",
		RequiresAuth: true,
		AllowedRoles: []domain.Role{domain.RoleSuperuser, domain.RoleAdmin, domain.RoleStoreAdmin, domain.RoleSeller},
	},
	"invoices": {
		Path:         "/invoices",
		RequiresAuth: true,
		AllowedRoles: []domain.Role{domain.RoleSuperuser, domain.RoleAdmin, domain.RoleStoreAdmin},
	},
	"stock": {
		Path:         "/stock",
		RequiresAuth: true,
		AllowedRoles: []domain.Role{domain.RoleSuperuser, domain.RoleAdmin, domain.RoleStoreAdmin, domain.RoleSeller},
	},
	"users": {
		Path:         "/admin/users",
		RequiresAuth: true,
		AllowedRoles: []domain.Role{domain.RoleSuperuser, domain.RoleAdmin},
	},
}

// routeForCommand finds the most specific route for a command: the full
// command path first (e.g. "orders staff"), then each parent. Subcommands
// inherit their parent's route unless they declare their own.
func routeForCommand(cmd *cobra.Command) (guard.Route, bool) {
	path := commandPath(cmd)
	for path != "" {
		if route, ok := routes[path]; ok {
			return route, true
		}
		idx := strings.LastIndex(path, " ")
		if idx < 0 {
			break
		}
		path = path[:idx]
	}
	return guard.Route{}, false
}

// commandPath returns the command path without the root command name.
func commandPath(cmd *cobra.Command) string {
	full := cmd.CommandPath()
	root := cmd.Root().Name()
	return strings.TrimSpace(strings.TrimPrefix(full, root))
}
