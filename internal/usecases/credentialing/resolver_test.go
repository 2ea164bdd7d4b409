package credentialing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/meta/metaclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository/mocks"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

type fakeExchanger struct {
	token string
	err   error
	calls int
}

func (f *fakeExchanger) ExchangeLongLivedToken(_ context.Context, _ string) (*metaclient.TokenResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &metaclient.TokenResponse{AccessToken: f.token}, nil
}

func tokenServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "stored-refresh", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func googleConfig(tokenURL string) Config {
	return Config{
		Google: config.Google{
			DeveloperToken:    "dev-token",
			OAuthClientID:     "client",
			OAuthClientSecret: "secret",
			OAuthTokenURL:     tokenURL,
		},
	}
}

func googleIntegration() *domain.Integration {
	return &domain.Integration{
		ID:                    "int-g",
		Platform:              domain.PlatformGoogle,
		RefreshTokenRef:       strPtr("ref-refresh"),
		GoogleCustomerID:      strPtr("123-456-7890"),
		GoogleLoginCustomerID: strPtr("111-222-3333"),
	}
}

func TestResolver_Google(t *testing.T) {
	server := tokenServer(t, http.StatusOK, `{"access_token":"fresh-access","token_type":"Bearer","expires_in":3600}`)

	ctrl := gomock.NewController(t)
	secrets := mocks.NewMockSecretRepository(ctrl)
	secrets.EXPECT().GetSecret(gomock.Any(), "ref-refresh").Return("stored-refresh", nil)

	resolver := NewResolver(googleConfig(server.URL), secrets, nil)
	credential, err := resolver.Resolve(context.Background(), googleIntegration())

	require.NoError(t, err)
	assert.Equal(t, "fresh-access", credential.AccessToken)
	assert.Equal(t, "dev-token", credential.DeveloperToken)
	assert.Equal(t, "1234567890", credential.CustomerID)
	assert.Equal(t, "1112223333", credential.LoginCustomerID)
}

func TestResolver_GoogleRevokedRefreshToken(t *testing.T) {
	server := tokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`)

	ctrl := gomock.NewController(t)
	secrets := mocks.NewMockSecretRepository(ctrl)
	secrets.EXPECT().GetSecret(gomock.Any(), "ref-refresh").Return("stored-refresh", nil)

	resolver := NewResolver(googleConfig(server.URL), secrets, nil)
	_, err := resolver.Resolve(context.Background(), googleIntegration())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)

	var credentialErr *domain.CredentialError
	require.True(t, errors.As(err, &credentialErr))
	assert.Equal(t, "refresh_token", credentialErr.Field)
}

func TestResolver_MissingFields(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		integration *domain.Integration
		secret      string
		field       string
	}{
		{
			name:        "google sem refresh token",
			cfg:         googleConfig("http://unused"),
			integration: &domain.Integration{ID: "1", Platform: domain.PlatformGoogle, GoogleCustomerID: strPtr("123")},
			field:       "refresh_token",
		},
		{
			name:        "google sem customer id",
			cfg:         googleConfig("http://unused"),
			integration: &domain.Integration{ID: "2", Platform: domain.PlatformGoogle, RefreshTokenRef: strPtr("ref")},
			field:       "google_customer_id",
		},
		{
			name:        "meta com segredo vazio",
			integration: &domain.Integration{ID: "3", Platform: domain.PlatformMeta, AccessTokenRef: strPtr("ref-meta"), MetaAdAccountID: strPtr("act")},
			secret:      "ref-meta",
			field:       "access_token",
		},
		{
			name:        "meta sem conta",
			integration: &domain.Integration{ID: "4", Platform: domain.PlatformMeta, AccessTokenRef: strPtr("ref-meta")},
			field:       "meta_ad_account_id",
		},
		{
			name:        "naver sem chave da organização",
			integration: &domain.Integration{ID: "5", Platform: domain.PlatformNaver, NaverCustomerID: strPtr("42")},
			field:       "naver_api_key",
		},
		{
			name:        "naver sem cliente",
			cfg:         Config{Naver: config.Naver{APIKey: "k", SecretKey: "s"}},
			integration: &domain.Integration{ID: "6", Platform: domain.PlatformNaver},
			field:       "naver_customer_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			secrets := mocks.NewMockSecretRepository(ctrl)
			if tt.secret != "" {
				secrets.EXPECT().GetSecret(gomock.Any(), tt.secret).Return("", nil)
			}

			_, err := NewResolver(tt.cfg, secrets, nil).Resolve(context.Background(), tt.integration)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCredentialMissing)

			var credentialErr *domain.CredentialError
			require.True(t, errors.As(err, &credentialErr))
			assert.Equal(t, tt.field, credentialErr.Field)
			assert.Equal(t, tt.integration.ID, credentialErr.IntegrationID)
		})
	}
}

func TestResolver_MetaExchange(t *testing.T) {
	integration := &domain.Integration{ID: "m", Platform: domain.PlatformMeta, AccessTokenRef: strPtr("ref-meta"), MetaAdAccountID: strPtr("act_1")}

	t.Run("troca habilitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		secrets := mocks.NewMockSecretRepository(ctrl)
		secrets.EXPECT().GetSecret(gomock.Any(), "ref-meta").Return("short", nil)
		exchanger := &fakeExchanger{token: "long"}

		resolver := NewResolver(Config{Meta: config.Meta{ExchangeToken: true}}, secrets, exchanger)
		credential, err := resolver.Resolve(context.Background(), integration)

		require.NoError(t, err)
		assert.Equal(t, "long", credential.AccessToken)
		assert.Equal(t, "act_1", credential.AdAccountID)
		assert.Equal(t, 1, exchanger.calls)
	})

	t.Run("falha na troca mantém o token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		secrets := mocks.NewMockSecretRepository(ctrl)
		secrets.EXPECT().GetSecret(gomock.Any(), "ref-meta").Return("short", nil)
		exchanger := &fakeExchanger{err: errors.New("boom")}

		resolver := NewResolver(Config{Meta: config.Meta{ExchangeToken: true}}, secrets, exchanger)
		credential, err := resolver.Resolve(context.Background(), integration)

		require.NoError(t, err)
		assert.Equal(t, "short", credential.AccessToken)
	})

	t.Run("troca desabilitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		secrets := mocks.NewMockSecretRepository(ctrl)
		secrets.EXPECT().GetSecret(gomock.Any(), "ref-meta").Return("short", nil)
		exchanger := &fakeExchanger{token: "long"}

		credential, err := NewResolver(Config{}, secrets, exchanger).Resolve(context.Background(), integration)

		require.NoError(t, err)
		assert.Equal(t, "short", credential.AccessToken)
		assert.Zero(t, exchanger.calls)
	})
}

func TestResolver_Naver(t *testing.T) {
	cfg := Config{Naver: config.Naver{APIKey: "org-key", SecretKey: "org-secret"}}
	integration := &domain.Integration{ID: "n", Platform: domain.PlatformNaver, NaverCustomerID: strPtr("42")}

	credential, err := NewResolver(cfg, nil, nil).Resolve(context.Background(), integration)

	require.NoError(t, err)
	assert.Equal(t, "org-key", credential.APIKey)
	assert.Equal(t, "org-secret", credential.SecretKey)
	assert.Equal(t, "42", credential.NaverCustomerID)
}
