package session

import (
	"context"
	"net/http"
	"strings"
)

// Role is the caller's role as asserted by the auth gateway in front of this
// service. Authentication itself happens outside; this package only reads the
// identity headers the gateway injects and makes them an explicit value that
// gets passed into view code, never read ambiently from globals.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleBusiness Role = "business"
	RoleNone     Role = ""
)

const (
	roleHeader = "X-User-Role"
	shopHeader = "X-Shop-Id"
)

// Session identifies the caller for the duration of one request. ShopID is set
// only for business-owner sessions and scopes the business dashboard.
type Session struct {
	Role   Role   `json:"role"`
	ShopID string `json:"shopId,omitempty"`
}

// FromRequest builds a Session from the gateway headers. Unknown roles map to
// RoleNone so downstream role checks fail closed.
func FromRequest(r *http.Request) Session {
	s := Session{ShopID: r.Header.Get(shopHeader)}
	switch Role(strings.ToLower(r.Header.Get(roleHeader))) {
	case RoleAdmin:
		s.Role = RoleAdmin
	case RoleBusiness:
		s.Role = RoleBusiness
	default:
		s.Role = RoleNone
	}
	return s
}

// LandingPath is where the SPA should route a fresh login for this session.
func (s Session) LandingPath() string {
	switch s.Role {
	case RoleAdmin:
		return "/"
	case RoleBusiness:
		return "/business-dashboard"
	default:
		return "/login"
	}
}

// Allows reports whether the session's role is one of the given roles.
func (s Session) Allows(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

type contextKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(contextKey{}).(Session); ok {
		return s
	}
	return Session{}
}
