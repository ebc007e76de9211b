package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
)

// DefaultTokenTTL is the lifetime of an access token when none is configured.
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrTokenMissing is returned when a request carries no bearer token.
	ErrTokenMissing = apperrors.New(apperrors.KindUnauthorized, "TOKEN_MISSING", "missing bearer token")
	// ErrTokenMalformed is returned when the token cannot be parsed.
	ErrTokenMalformed = apperrors.New(apperrors.KindUnauthorized, "TOKEN_MALFORMED", "malformed token")
	// ErrTokenBadSignature is returned when the signature does not verify.
	ErrTokenBadSignature = apperrors.New(apperrors.KindUnauthorized, "TOKEN_BAD_SIGNATURE", "invalid token signature")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = apperrors.New(apperrors.KindUnauthorized, "TOKEN_EXPIRED", "token has expired")
)

// Identity is the user information embedded in every access token. It is the
// same whether the user signed in with a password or through OAuth.
type Identity struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// IdentityOf builds the token payload for a stored user.
func IdentityOf(u *model.User) Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Claims represents JWT claims.
type Claims struct {
	UserID uint       `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the user part of the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Name: c.Name, Email: c.Email, Role: c.Role}
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for identity that expires after the configured TTL.
func (s *JWTService) Issue(identity Identity) (string, error) {
	return s.IssueWithTTL(identity, s.ttl)
}

// IssueWithTTL signs a token for identity that expires after ttl.
func (s *JWTService) IssueWithTTL(identity Identity, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(identity.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims unchanged.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// classify maps jwt validation failures onto the three token error kinds.
// The signature is checked before expiry so a forged expired token is
// reported as forged.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperrors.Wrap(ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(ErrTokenExpired, err)
	default:
		return apperrors.Wrap(ErrTokenMalformed, err)
	}
}
