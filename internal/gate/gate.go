// ABOUTME: Access gate deciding whether a navigation target is reachable
// ABOUTME: Pure decisions from route plus session state; no side effects

package gate

// Route names a navigation target. RouteProjects is the default protected
// route; RouteAuth is the entry point for unauthenticated sessions.
type Route string

const (
	RouteLoading  Route = "loading"
	RouteAuth     Route = "auth"
	RouteProjects Route = "projects"
	RouteProject  Route = "project"
)

// State is the session snapshot a decision is made against.
type State struct {
	Restoring     bool
	Authenticated bool
}

// Decision either allows the requested route or names the redirect target.
type Decision struct {
	Allow    bool
	Redirect Route
}

// Decide resolves a navigation request. While restoration is in progress
// every protected route goes to the loading screen, never to the auth
// page, so a restorable session never flashes through login. Unknown
// routes land on the default protected route.
func Decide(route Route, s State) Decision {
	if !known(route) {
		route = RouteProjects
	}

	if route == RouteAuth {
		if s.Authenticated {
			return Decision{Redirect: RouteProjects}
		}
		return Decision{Allow: true}
	}

	// Protected routes from here on.
	if s.Restoring {
		return Decision{Redirect: RouteLoading}
	}
	if !s.Authenticated {
		return Decision{Redirect: RouteAuth}
	}
	if route == RouteLoading {
		// Restoration is over; nothing left to wait for.
		return Decision{Redirect: RouteProjects}
	}
	return Decision{Allow: true}
}

func known(route Route) bool {
	switch route {
	case RouteLoading, RouteAuth, RouteProjects, RouteProject:
		return true
	}
	return false
}
