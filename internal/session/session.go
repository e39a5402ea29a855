// Package session holds the authenticated user's token and role and
// persists them between runs as the "token" and "role" cookies.
package session

import (
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

var logger = loggo.GetLogger("printa.session")

// Role is the lower-cased role claim of the access token.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleSalesUser Role = "salesuser"
)

// ParseRole lower-cases s and checks it names a known role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleUser, RoleSalesUser:
		return r, nil
	}
	return "", errors.NotValidf("role %q", s)
}

// Home is the landing page for the role after login.
func (r Role) Home() string {
	if r == RoleAdmin {
		return "/dashboard/dashboard"
	}
	return "/dashboard/prospact"
}

// Context is the authentication state passed to the REST client and to
// role-gated operations.
type Context struct {
	Token string `json:"-"`
	Role  Role   `json:"role"`
}

// Authenticated reports whether a token is present.
func (c Context) Authenticated() bool { return c.Token != "" }

// IsAdmin reports whether the caller may perform admin-only operations.
func (c Context) IsAdmin() bool { return c.Role == RoleAdmin }

// RoleFromToken reads the role claim of a JWT without verifying its
// signature. The server checks the token on every request.
func RoleFromToken(token string) (Role, error) {
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", errors.Annotate(err, "decoding access token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.NotValidf("token claims")
	}
	raw, ok := claims["role"]
	if !ok {
		return "", errors.NotFoundf("role claim")
	}
	return ParseRole(fmt.Sprint(raw))
}

// Store loads and saves the session.
type Store interface {
	Load() (Context, error)
	Save(Context) error
	Clear() error
}

// Credentials adapts a Store to the REST client's credential source. A store
// that fails to load yields no token; the request is still attempted.
func Credentials(s Store) rest.CredentialSource {
	return rest.CredentialFunc(func() string {
		c, err := s.Load()
		if err != nil {
			logger.Warningf("loading session: %v", err)
			return ""
		}
		return c.Token
	})
}
