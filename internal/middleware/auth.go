package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"homefinder/internal/auth"
	apperrors "homefinder/internal/errors"
)

// IdentityKey is the echo context key holding the verified *auth.Claims.
const IdentityKey = "identity"

// Authenticated rejects requests without a valid bearer token and stores the
// verified claims under IdentityKey.
func Authenticated(gate *auth.Gate, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  IdentityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return gate.RequireAuthenticated(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var ae *apperrors.AppError
			if !errors.As(err, &ae) {
				err = auth.ErrTokenMissing
			}
			log.Info("request rejected",
				zap.String("path", c.Path()),
				zap.String("reason", codeOf(err)),
			)
			return toHTTPError(err)
		},
	})
}

// RequireAdmin allows only identities with the admin role. It must run after
// Authenticated.
func RequireAdmin(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Identity(c)
			if !ok {
				return toHTTPError(auth.ErrTokenMissing)
			}
			if err := gate.AuthorizeAdmin(c.Request().Context(), claims); err != nil {
				return toHTTPError(err)
			}
			return next(c)
		}
	}
}

// Identity returns the claims stored by Authenticated.
func Identity(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(IdentityKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func toHTTPError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func codeOf(err error) string {
	return apperrors.MapErrorToHTTP(err).Code
}
