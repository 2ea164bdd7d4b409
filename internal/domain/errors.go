package domain

import (
	"errors"
	"fmt"
)

// Taxonomia de erros do pipeline de coleta
var (
	ErrCredentialMissing     = errors.New("credential missing")
	ErrUpstreamRequest       = errors.New("upstream request error")
	ErrChunkPartialFailure   = errors.New("chunk partial failure")
	ErrStorageWrite          = errors.New("storage write error")
	ErrValidation            = errors.New("validation error")
	ErrUnsupportedCollection = errors.New("unsupported collection type")
	ErrIntegrationNotFound   = errors.New("integration not found")
	ErrJobNotFound           = errors.New("job not found")
	ErrJobAlreadyClaimed     = errors.New("job already claimed")
	ErrJobClaimLost          = errors.New("job claim lost")
	ErrJobTimeout            = errors.New("job timeout")
)

// UpstreamError representa uma resposta não 2xx ou payload inválido de uma plataforma
type UpstreamError struct {
	Platform     Platform
	Op           string
	StatusCode   int
	Body         string
	TokenExpired bool
	Err          error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Platform, e.Op)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.TokenExpired {
		msg += " (token expired)"
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, truncate(e.Body, 300))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstreamRequest, e.Err}
	}
	return []error{ErrUpstreamRequest}
}

// CredentialError detalha qual campo de credencial está ausente
type CredentialError struct {
	IntegrationID string
	Platform      Platform
	Field         string
	Err           error
}

func (e *CredentialError) Error() string {
	msg := fmt.Sprintf("%s: integration %s (%s) has no %s", ErrCredentialMissing, e.IntegrationID, e.Platform, e.Field)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CredentialError) Unwrap() error {
	return ErrCredentialMissing
}

func NewCredentialError(integration *Integration, field string, cause error) *CredentialError {
	ce := &CredentialError{Field: field, Err: cause}
	if integration != nil {
		ce.IntegrationID = integration.ID
		ce.Platform = integration.Platform
	}
	return ce
}

// ValidationErrorf cria um erro de validação para requisições malformadas
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
