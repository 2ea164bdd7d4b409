package domain

import (
	"fmt"
	"strings"
	"time"
)

type Platform string

const (
	PlatformGoogle Platform = "Google"
	PlatformMeta   Platform = "Meta"
	PlatformNaver  Platform = "Naver"
)

var Platforms = []Platform{PlatformGoogle, PlatformMeta, PlatformNaver}

// ParsePlatform aceita o nome da plataforma sem diferenciar maiúsculas
func ParsePlatform(value string) (Platform, error) {
	normalized := strings.TrimSpace(value)
	for _, p := range Platforms {
		if strings.EqualFold(string(p), normalized) {
			return p, nil
		}
	}

	switch strings.ToLower(normalized) {
	case "google ads", "googleads":
		return PlatformGoogle, nil
	case "facebook", "meta ads":
		return PlatformMeta, nil
	case "naver ads", "naversearchad":
		return PlatformNaver, nil
	}

	return "", fmt.Errorf("%w: plataforma desconhecida %q", ErrValidation, value)
}

type IntegrationStatus string

const (
	IntegrationStatusActive   IntegrationStatus = "active"
	IntegrationStatusInactive IntegrationStatus = "inactive"
	IntegrationStatusDeleted  IntegrationStatus = "deleted"
)

// Integration é o vínculo de credencial entre um anunciante e uma plataforma.
// As referências de credencial são opacas e resolvidas pelo credentialing.
type Integration struct {
	ID             string            `json:"id"`
	AdvertiserID   string            `json:"advertiser_id"`
	OrganizationID *string           `json:"organization_id"`
	Platform       Platform          `json:"platform"`
	Status         IntegrationStatus `json:"status"`

	RefreshTokenRef *string `json:"-"`
	AccessTokenRef  *string `json:"-"`

	// Identificadores da conta em cada plataforma
	GoogleCustomerID      *string `json:"google_customer_id,omitempty"`
	GoogleLoginCustomerID *string `json:"google_login_customer_id,omitempty"`
	MetaAdAccountID       *string `json:"meta_ad_account_id,omitempty"`
	NaverCustomerID       *string `json:"naver_customer_id,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CredentialFilter descreve qual referência de credencial é obrigatória por plataforma.
// Naver usa credencial da organização, portanto não exige nenhuma coluna.
type CredentialFilter string

const (
	CredentialFilterNone         CredentialFilter = ""
	CredentialFilterRefreshToken CredentialFilter = "refresh_token_ref"
	CredentialFilterAccessToken  CredentialFilter = "access_token_ref"
)

func CredentialFilterFor(p Platform) CredentialFilter {
	switch p {
	case PlatformGoogle:
		return CredentialFilterRefreshToken
	case PlatformMeta:
		return CredentialFilterAccessToken
	}
	return CredentialFilterNone
}

func hasValue(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
