package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/triggering"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/apiErrors"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/log"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// errorCode classifica o erro do caso de uso no código da API
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnsupportedCollection):
		return apiErrors.ErrInvalidRequest
	case errors.Is(err, domain.ErrIntegrationNotFound), errors.Is(err, domain.ErrJobNotFound):
		return apiErrors.ErrResourceNotFound
	case errors.Is(err, triggering.ErrAlreadyRunning), errors.Is(err, domain.ErrJobAlreadyClaimed), errors.Is(err, domain.ErrJobClaimLost):
		return apiErrors.ErrConflict
	case errors.Is(err, domain.ErrStorageWrite):
		return apiErrors.ErrDatabaseOperation
	case errors.Is(err, domain.ErrUpstreamRequest), errors.Is(err, domain.ErrCredentialMissing):
		return apiErrors.ErrExternalService
	default:
		return apiErrors.ErrInternalServer
	}
}

func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorCode(err)

	logger := log.ForContext(r.Context()).WithError(err)
	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.Error("Erro ao processar requisição de coleta")
	} else {
		logger.Warn("Requisição de coleta rejeitada")
	}

	apiErrors.WriteError(w, code, err.Error(), nil)
}

// decodeBody lê o corpo JSON; corpo vazio é aceito e mantém os valores zero
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.ValidationErrorf("corpo JSON inválido: %v", err)
	}
	return nil
}
