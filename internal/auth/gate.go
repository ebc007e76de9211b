package auth

import (
	"context"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
)

// ErrForbidden is returned when a valid identity lacks the required role.
var ErrForbidden = apperrors.New(apperrors.KindForbidden, "FORBIDDEN", "admin role required")

// TokenVerifier verifies access tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// RoleLookup returns the current role of a user from storage.
type RoleLookup func(ctx context.Context, userID uint) (model.Role, error)

// Gate decides whether a bearer token grants access to a route.
//
// By default the role embedded in the token is trusted until the token
// expires, so a promotion or demotion takes effect on the next login. With a
// RoleLookup configured, admin checks re-read the role from storage instead.
type Gate struct {
	verifier TokenVerifier
	lookup   RoleLookup
}

// NewGate builds a Gate. lookup may be nil.
func NewGate(verifier TokenVerifier, lookup RoleLookup) *Gate {
	return &Gate{verifier: verifier, lookup: lookup}
}

// RequireAuthenticated returns the claims of a valid token.
func (g *Gate) RequireAuthenticated(token string) (*Claims, error) {
	return g.verifier.Verify(token)
}

// RequireAdmin returns the claims of a valid admin token.
func (g *Gate) RequireAdmin(ctx context.Context, token string) (*Claims, error) {
	claims, err := g.RequireAuthenticated(token)
	if err != nil {
		return nil, err
	}
	if err := g.AuthorizeAdmin(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// AuthorizeAdmin checks already verified claims for the admin role.
func (g *Gate) AuthorizeAdmin(ctx context.Context, claims *Claims) error {
	role := claims.Role
	if g.lookup != nil {
		current, err := g.lookup(ctx, claims.UserID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return ErrForbidden
			}
			return err
		}
		role = current
	}
	if role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
