package credentialing

import (
	"context"
	"errors"
	"fmt"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/google/googleclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/meta/metaclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Resolver monta a credencial de uma integração a cada execução de job.
// Tokens de acesso não são reaproveitados entre jobs.
type Resolver interface {
	Resolve(ctx context.Context, integration *domain.Integration) (*domain.Credential, error)
}

// TokenExchanger troca o token do Meta por um de longa duração
type TokenExchanger interface {
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*metaclient.TokenResponse, error)
}

type Config struct {
	Google config.Google
	Meta   config.Meta
	Naver  config.Naver
}

type credentialResolver struct {
	cfg       Config
	secrets   repository.SecretRepository
	exchanger TokenExchanger
	oauth     *oauth2.Config
}

func NewResolver(cfg Config, secrets repository.SecretRepository, exchanger TokenExchanger) Resolver {
	endpoint := google.Endpoint
	if cfg.Google.OAuthTokenURL != "" {
		endpoint = oauth2.Endpoint{
			AuthURL:   google.Endpoint.AuthURL,
			TokenURL:  cfg.Google.OAuthTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		}
	}

	return &credentialResolver{
		cfg:       cfg,
		secrets:   secrets,
		exchanger: exchanger,
		oauth: &oauth2.Config{
			ClientID:     cfg.Google.OAuthClientID,
			ClientSecret: cfg.Google.OAuthClientSecret,
			Endpoint:     endpoint,
		},
	}
}

func (r *credentialResolver) Resolve(ctx context.Context, integration *domain.Integration) (*domain.Credential, error) {
	if integration == nil {
		return nil, domain.NewCredentialError(nil, "integration", nil)
	}

	switch integration.Platform {
	case domain.PlatformGoogle:
		return r.resolveGoogle(ctx, integration)
	case domain.PlatformMeta:
		return r.resolveMeta(ctx, integration)
	case domain.PlatformNaver:
		return r.resolveNaver(integration)
	}

	return nil, domain.ValidationErrorf("plataforma %s sem resolvedor de credencial", integration.Platform)
}

func (r *credentialResolver) resolveGoogle(ctx context.Context, integration *domain.Integration) (*domain.Credential, error) {
	customerID := googleclient.NormalizeCustomerID(domain.StringValue(integration.GoogleCustomerID))
	if customerID == "" {
		return nil, domain.NewCredentialError(integration, "google_customer_id", nil)
	}
	if r.cfg.Google.DeveloperToken == "" {
		return nil, domain.NewCredentialError(integration, "developer_token", nil)
	}
	if r.cfg.Google.OAuthClientID == "" || r.cfg.Google.OAuthClientSecret == "" {
		return nil, domain.NewCredentialError(integration, "oauth_client", nil)
	}

	refreshToken, err := r.secret(ctx, integration, integration.RefreshTokenRef, "refresh_token")
	if err != nil {
		return nil, err
	}

	token, err := r.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return nil, domain.NewCredentialError(integration, "refresh_token", err)
		}
		return nil, &domain.UpstreamError{Platform: domain.PlatformGoogle, Op: "oauth2/token", Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"expiry":         token.Expiry,
	}).Debug("Token de acesso do Google renovado")

	return &domain.Credential{
		Platform:        domain.PlatformGoogle,
		AccessToken:     token.AccessToken,
		DeveloperToken:  r.cfg.Google.DeveloperToken,
		CustomerID:      customerID,
		LoginCustomerID: googleclient.NormalizeCustomerID(domain.StringValue(integration.GoogleLoginCustomerID)),
	}, nil
}

func (r *credentialResolver) resolveMeta(ctx context.Context, integration *domain.Integration) (*domain.Credential, error) {
	accountID := domain.StringValue(integration.MetaAdAccountID)
	if accountID == "" {
		return nil, domain.NewCredentialError(integration, "meta_ad_account_id", nil)
	}

	accessToken, err := r.secret(ctx, integration, integration.AccessTokenRef, "access_token")
	if err != nil {
		return nil, err
	}

	if r.cfg.Meta.ExchangeToken && r.exchanger != nil {
		exchanged, err := r.exchanger.ExchangeLongLivedToken(ctx, accessToken)
		if err != nil {
			// Mantém o token atual; a expiração aparece como erro de chunk
			logrus.WithError(err).WithField("integration_id", integration.ID).Warn("Falha ao trocar token do Meta por um de longa duração")
		} else {
			accessToken = exchanged.AccessToken
		}
	}

	return &domain.Credential{
		Platform:    domain.PlatformMeta,
		AccessToken: accessToken,
		AdAccountID: accountID,
	}, nil
}

// resolveNaver usa a chave da organização com o cliente do anunciante
func (r *credentialResolver) resolveNaver(integration *domain.Integration) (*domain.Credential, error) {
	if r.cfg.Naver.APIKey == "" {
		return nil, domain.NewCredentialError(integration, "naver_api_key", nil)
	}
	if r.cfg.Naver.SecretKey == "" {
		return nil, domain.NewCredentialError(integration, "naver_secret_key", nil)
	}

	customerID := domain.StringValue(integration.NaverCustomerID)
	if customerID == "" {
		return nil, domain.NewCredentialError(integration, "naver_customer_id", nil)
	}

	return &domain.Credential{
		Platform:        domain.PlatformNaver,
		APIKey:          r.cfg.Naver.APIKey,
		SecretKey:       r.cfg.Naver.SecretKey,
		NaverCustomerID: customerID,
	}, nil
}

func (r *credentialResolver) secret(ctx context.Context, integration *domain.Integration, ref *string, field string) (string, error) {
	refValue := domain.StringValue(ref)
	if refValue == "" {
		return "", domain.NewCredentialError(integration, field, nil)
	}

	value, err := r.secrets.GetSecret(ctx, refValue)
	if err != nil {
		return "", fmt.Errorf("erro ao ler %s: %w", field, err)
	}
	if value == "" {
		return "", domain.NewCredentialError(integration, field, nil)
	}

	return value, nil
}
