package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var (
	// ErrEmailNotVerified is returned when the provider has not verified the email.
	ErrEmailNotVerified = errors.New("provider email not verified")
	// ErrMissingEmail is returned when the provider did not share an email.
	ErrMissingEmail = errors.New("provider returned no email")
)

// Identity is what the provider vouches for about the signed-in user.
type Identity struct {
	Email string
	Name  string
}

// Bridge exchanges a provider authorization code for a verified identity.
type Bridge interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// GoogleBridge implements Bridge with Google's OAuth2/OpenID Connect endpoints.
type GoogleBridge struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewGoogleBridge creates a bridge for the given client credentials.
func NewGoogleBridge(clientID, clientSecret, redirectURL string) *GoogleBridge {
	return &GoogleBridge{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// AuthCodeURL returns the consent page URL carrying state.
func (b *GoogleBridge) AuthCodeURL(state string) string {
	return b.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type userInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

// Exchange trades code for a token and fetches the user's profile with it.
func (b *GoogleBridge) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := b.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := b.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status code: %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return identityFrom(info)
}

func identityFrom(info userInfo) (*Identity, error) {
	if info.Email == "" {
		return nil, ErrMissingEmail
	}
	if !info.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	name := info.Name
	if name == "" {
		name = info.GivenName
	}
	if name == "" {
		name = info.Email
	}
	return &Identity{Email: info.Email, Name: name}, nil
}
