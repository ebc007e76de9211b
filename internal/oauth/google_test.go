package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestBridge(t *testing.T, info map[string]interface{}, userInfoStatus int) *GoogleBridge {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userInfoStatus)
		_ = json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &GoogleBridge{
		config: &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/auth",
				TokenURL: srv.URL + "/token",
			},
		},
		userInfoURL: srv.URL + "/userinfo",
	}
}

func TestGoogleBridge_AuthCodeURL(t *testing.T) {
	b := NewGoogleBridge("client-id", "secret", "http://localhost:8080/api/auth/oauth/callback")

	raw := b.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "http://localhost:8080/api/auth/oauth/callback", q.Get("redirect_uri"))
}

func TestGoogleBridge_Exchange(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		info        map[string]interface{}
		status      int
		expected    *Identity
		expectedErr error
		wantErr     bool
	}{
		{
			name:     "verified email",
			code:     "good-code",
			info:     map[string]interface{}{"email": "bob@example.com", "email_verified": true, "name": "Bob"},
			status:   http.StatusOK,
			expected: &Identity{Email: "bob@example.com", Name: "Bob"},
		},
		{
			name:     "name falls back to given name",
			code:     "good-code",
			info:     map[string]interface{}{"email": "bob@example.com", "email_verified": true, "given_name": "Bobby"},
			status:   http.StatusOK,
			expected: &Identity{Email: "bob@example.com", Name: "Bobby"},
		},
		{
			name:        "unverified email",
			code:        "good-code",
			info:        map[string]interface{}{"email": "bob@example.com", "email_verified": false},
			status:      http.StatusOK,
			expectedErr: ErrEmailNotVerified,
		},
		{
			name:        "no email",
			code:        "good-code",
			info:        map[string]interface{}{"name": "Bob"},
			status:      http.StatusOK,
			expectedErr: ErrMissingEmail,
		},
		{
			name:    "rejected code",
			code:    "bad-code",
			status:  http.StatusOK,
			wantErr: true,
		},
		{
			name:    "userinfo failure",
			code:    "good-code",
			info:    map[string]interface{}{},
			status:  http.StatusInternalServerError,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBridge(t, tt.info, tt.status)
			identity, err := b.Exchange(context.Background(), tt.code)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, identity)
			case tt.wantErr:
				assert.Error(t, err)
				assert.Nil(t, identity)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, identity)
			}
		})
	}
}

func TestIdentityFrom_EmailAsName(t *testing.T) {
	identity, err := identityFrom(userInfo{Email: "x@example.com", EmailVerified: true})
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", identity.Name)
}
