// ABOUTME: Tests for access gate decisions
// ABOUTME: Decision table across route and session state combinations

package gate

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		state State
		want  Decision
	}{
		{
			name:  "protected route while restoring goes to loading",
			route: RouteProjects,
			state: State{Restoring: true},
			want:  Decision{Redirect: RouteLoading},
		},
		{
			name:  "restoring never redirects to auth",
			route: RouteProject,
			state: State{Restoring: true},
			want:  Decision{Redirect: RouteLoading},
		},
		{
			name:  "protected route unauthenticated goes to auth",
			route: RouteProjects,
			state: State{},
			want:  Decision{Redirect: RouteAuth},
		},
		{
			name:  "protected route authenticated is allowed",
			route: RouteProjects,
			state: State{Authenticated: true},
			want:  Decision{Allow: true},
		},
		{
			name:  "project detail authenticated is allowed",
			route: RouteProject,
			state: State{Authenticated: true},
			want:  Decision{Allow: true},
		},
		{
			name:  "auth route unauthenticated is allowed",
			route: RouteAuth,
			state: State{},
			want:  Decision{Allow: true},
		},
		{
			name:  "auth route while restoring is allowed",
			route: RouteAuth,
			state: State{Restoring: true},
			want:  Decision{Allow: true},
		},
		{
			name:  "auth route authenticated redirects to projects",
			route: RouteAuth,
			state: State{Authenticated: true},
			want:  Decision{Redirect: RouteProjects},
		},
		{
			name:  "loading after restoration redirects to projects",
			route: RouteLoading,
			state: State{Authenticated: true},
			want:  Decision{Redirect: RouteProjects},
		},
		{
			name:  "loading unauthenticated after restoration goes to auth",
			route: RouteLoading,
			state: State{},
			want:  Decision{Redirect: RouteAuth},
		},
		{
			name:  "unknown route treated as default protected route",
			route: Route("settings"),
			state: State{Authenticated: true},
			want:  Decision{Allow: true},
		},
		{
			name:  "unknown route unauthenticated goes to auth",
			route: Route("settings"),
			state: State{},
			want:  Decision{Redirect: RouteAuth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.route, tt.state)
			if got != tt.want {
				t.Errorf("Decide(%q, %+v) = %+v, want %+v", tt.route, tt.state, got, tt.want)
			}
		})
	}
}
