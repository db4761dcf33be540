package guard

import (
	"net/url"
	"strings"
	"sync"

	campusfound "github.com/campusfound/campusfound-go"
)

// Well-known destinations. The table in [DefaultRoutes] binds each to its
// policy; anything outside the table is treated as unrestricted.
const (
	PathLogin     = "/login"
	PathBrowse    = "/lost-items"
	PathProfile   = "/profile"
	PathMyItems   = "/admin/my-items"
	PathSuperHome = "/admin/super"
	PathNotFound  = "/not-found"
)

// Policy declares what a destination demands of the session. A zero Policy
// admits everyone. Roles is only consulted when non-empty and implies
// RequiresAuth.
type Policy struct {
	RequiresAuth bool
	Roles        []campusfound.Role
}

func (p Policy) satisfiedBy(role campusfound.Role) bool {
	if len(p.Roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RouteTable maps destination paths to their policies.
type RouteTable map[string]Policy

// DefaultRoutes returns the standard destination set: a public browse
// surface, an authenticated profile page, the two admin surfaces, the login
// page, and a not-found fallback.
func DefaultRoutes() RouteTable {
	return RouteTable{
		PathLogin:    {},
		PathBrowse:   {},
		PathNotFound: {},
		PathProfile:  {RequiresAuth: true},
		PathMyItems: {
			RequiresAuth: true,
			Roles:        []campusfound.Role{campusfound.RoleLostItemAdmin, campusfound.RoleSuperAdmin},
		},
		PathSuperHome: {
			RequiresAuth: true,
			Roles:        []campusfound.Role{campusfound.RoleSuperAdmin},
		},
	}
}

// RoleHome returns the default landing destination for a role. Unknown roles
// land on the public browse surface.
func RoleHome(role campusfound.Role) string {
	switch role {
	case campusfound.RoleSuperAdmin:
		return PathSuperHome
	case campusfound.RoleLostItemAdmin:
		return PathMyItems
	default:
		return PathBrowse
	}
}

// Session is the read-only view the guard consumes. *campusfound.Client
// satisfies it.
type Session interface {
	IsAuthenticated() bool
	Role() campusfound.Role
}

// Decision is the outcome of one evaluation. Exactly one of Allowed or a
// non-empty RedirectTo is set.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Notice is a permission-denied message queued during a role-mismatch
// redirect. It is deferred: the redirect is decided first and the notice is
// drained by the presentation layer after the transition completes.
type Notice struct {
	Path string
	Role campusfound.Role
}

// Guard admits or redirects navigation intents. Safe for concurrent use.
type Guard struct {
	session Session
	routes  RouteTable

	mu      sync.Mutex
	notices []Notice
}

// New builds a Guard over session. A nil routes table falls back to
// [DefaultRoutes].
func New(session Session, routes RouteTable) *Guard {
	if routes == nil {
		routes = DefaultRoutes()
	}
	return &Guard{session: session, routes: routes}
}

// Evaluate decides one navigation intent to path. It never fails: a path
// with no registered policy is admitted.
func (g *Guard) Evaluate(path string) Decision {
	policy := g.routes[path]
	authed := g.session.IsAuthenticated()
	role := g.session.Role()

	// An authenticated visitor has no business on the login page.
	if path == PathLogin && authed {
		return Decision{RedirectTo: RoleHome(role)}
	}

	needsAuth := policy.RequiresAuth || len(policy.Roles) > 0
	if needsAuth && !authed {
		return Decision{RedirectTo: loginRedirect(path)}
	}

	if !policy.satisfiedBy(role) {
		g.queueNotice(Notice{Path: path, Role: role})
		return Decision{RedirectTo: RoleHome(role)}
	}

	return Decision{Allowed: true}
}

// DrainNotices returns and clears the queued permission notices, oldest
// first.
func (g *Guard) DrainNotices() []Notice {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.notices
	g.notices = nil
	return out
}

func (g *Guard) queueNotice(n Notice) {
	g.mu.Lock()
	g.notices = append(g.notices, n)
	g.mu.Unlock()
}

// loginRedirect escapes the resume path for the query string, keeping the
// slashes readable.
func loginRedirect(path string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
	return PathLogin + "?redirect=" + escaped
}
