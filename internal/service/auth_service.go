package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"homefinder/internal/auth"
	apperrors "homefinder/internal/errors"
	"homefinder/internal/model"
	"homefinder/internal/oauth"
	"homefinder/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = apperrors.New(apperrors.KindUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = apperrors.Conflict("USER_ALREADY_EXISTS", "user already exists")
	// ErrOAuthFailed is the only error the OAuth login path reports to callers.
	ErrOAuthFailed = apperrors.New(apperrors.KindUnauthorized, "OAUTH_FAILED", "oauth_failed")
)

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken string, user *model.User, err error)
	OAuthLoginURL(ctx context.Context) (string, error)
	LoginWithOAuth(ctx context.Context, state, code string) (accessToken string, user *model.User, err error)
	EnsureAdmin(ctx context.Context, name, email, password string) (user *model.User, created bool, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	hasher     auth.PasswordHasher
	bridge     oauth.Bridge
	states     auth.StateStoreInterface
	log        *zap.Logger
}

// NewAuthService creates a new authentication service. bridge and states may
// be nil when Google sign-in is not configured.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	hasher auth.PasswordHasher,
	bridge oauth.Bridge,
	states auth.StateStoreInterface,
	log *zap.Logger,
) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
		bridge:     bridge,
		states:     states,
		log:        log,
	}
}

// Register creates a new user with role user. It does not sign the user in.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := requireFields("name", name, "email", email, "password", password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(fmt.Errorf("check user existence: %w", err))
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hashed,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index settles concurrent registrations of one email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, apperrors.Internal(fmt.Errorf("create user: %w", err))
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// Login authenticates a user by password and returns an access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, apperrors.Internal(fmt.Errorf("find user: %w", err))
	}

	if !user.HasPassword() || !s.hasher.Verify(password, *user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(auth.IdentityOf(user))
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}
	return token, user, nil
}

// OAuthLoginURL returns the provider consent URL with a fresh state nonce.
func (s *authService) OAuthLoginURL(ctx context.Context) (string, error) {
	if s.bridge == nil || s.states == nil {
		s.log.Warn("oauth login requested but google sign-in is not configured")
		return "", ErrOAuthFailed
	}
	state, err := s.states.NewState(ctx)
	if err != nil {
		s.log.Error("oauth state store failed", zap.Error(err))
		return "", ErrOAuthFailed
	}
	return s.bridge.AuthCodeURL(state), nil
}

// LoginWithOAuth completes the provider callback. The user is found by email
// or created without a password, and receives the same token a password
// login would issue. Any failure is reported as ErrOAuthFailed; the cause is
// only logged.
func (s *authService) LoginWithOAuth(ctx context.Context, state, code string) (string, *model.User, error) {
	if s.bridge == nil || s.states == nil {
		return "", nil, ErrOAuthFailed
	}
	if err := s.states.ConsumeState(ctx, state); err != nil {
		s.log.Warn("oauth state rejected", zap.Error(err))
		return "", nil, ErrOAuthFailed
	}
	if code == "" {
		s.log.Warn("oauth callback without code")
		return "", nil, ErrOAuthFailed
	}

	identity, err := s.bridge.Exchange(ctx, code)
	if err != nil {
		s.log.Warn("oauth exchange failed", zap.Error(err))
		return "", nil, ErrOAuthFailed
	}

	user, err := s.findOrCreateOAuthUser(ctx, identity)
	if err != nil {
		s.log.Error("oauth user provisioning failed", zap.Error(err))
		return "", nil, ErrOAuthFailed
	}

	token, err := s.jwtService.Issue(auth.IdentityOf(user))
	if err != nil {
		s.log.Error("oauth token issue failed", zap.Error(err))
		return "", nil, ErrOAuthFailed
	}
	return token, user, nil
}

func (s *authService) findOrCreateOAuthUser(ctx context.Context, identity *oauth.Identity) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	user = &model.User{
		Name:  identity.Name,
		Email: identity.Email,
		Role:  model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent first login.
			return s.userRepo.FindByEmail(ctx, identity.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user created from oauth", zap.Uint("user_id", user.ID))
	return user, nil
}

// EnsureAdmin creates an admin account, or promotes and re-passwords an
// existing account with the same email.
func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) (*model.User, bool, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := requireFields("name", name, "email", email, "password", password); err != nil {
		return nil, false, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user.Role = model.RoleAdmin
		user.PasswordHash = &hashed
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, false, apperrors.Internal(fmt.Errorf("promote user: %w", err))
		}
		return user, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{Name: name, Email: email, PasswordHash: &hashed, Role: model.RoleAdmin}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, false, apperrors.Internal(fmt.Errorf("create admin: %w", err))
		}
		return user, true, nil
	default:
		return nil, false, apperrors.Internal(fmt.Errorf("find user: %w", err))
	}
}

// requireFields takes name/value pairs and reports the first empty value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return apperrors.Validation("missing required field: " + pairs[i])
		}
	}
	return nil
}
