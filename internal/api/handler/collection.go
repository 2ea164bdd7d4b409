package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/jobrunning"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/triggering"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/apiErrors"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/log"
	"github.com/julienschmidt/httprouter"
)

const (
	defaultJobListLimit = 50
	maxJobListLimit     = 500
)

type triggerRequest struct {
	Platform       string `json:"platform"`
	CollectionType string `json:"collection_type"`
}

type executeJobRequest struct {
	IntegrationID  string `json:"integration_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Mode           string `json:"mode"`
	CollectionType string `json:"collection_type"`
}

type runPendingResponse struct {
	Message   string `json:"message"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Skipped   bool   `json:"skipped,omitempty"`
}

// TriggerCollection dispara a coleta de "ontem" para uma plataforma
func TriggerCollection(trigger triggering.Trigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body triggerRequest
		if err := decodeBody(r, &body); err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		if body.Platform == "" || body.CollectionType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "platform e collection_type são obrigatórios", nil)
			return
		}

		platform, err := domain.ParsePlatform(body.Platform)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}
		collectionType, err := domain.ParseCollectionType(body.CollectionType)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"platform":        platform,
			"collection_type": collectionType,
		}).Info("Disparo de coleta solicitado")

		summary, err := trigger.Trigger(r.Context(), platform, collectionType)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	})
}

// RunPendingJobs executa uma rodada do job runner de forma síncrona
func RunPendingJobs(runner jobrunning.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		summary, err := runner.RunPending(r.Context())
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		message := "Jobs pendentes processados"
		if summary.Skipped {
			message = "Job runner já em execução, ciclo ignorado"
		}

		writeJSON(w, r, http.StatusOK, runPendingResponse{
			Message:   message,
			Total:     summary.Total,
			Processed: summary.Processed,
			Skipped:   summary.Skipped,
		})
	})
}

// ExecuteJob cria (ou reaproveita) e executa um único job. Qualquer desfecho
// que atualize o registro do job responde 200, inclusive partial e failed.
func ExecuteJob(runner jobrunning.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body executeJobRequest
		if err := decodeBody(r, &body); err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		req, err := body.toDomain()
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		job, err := runner.ExecuteJob(r.Context(), req)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, job)
	})
}

func (b executeJobRequest) toDomain() (domain.NewJobRequest, error) {
	req := domain.NewJobRequest{
		IntegrationID:  b.IntegrationID,
		CollectionType: domain.CollectionTypeDaily,
	}

	var err error
	if b.CollectionType != "" {
		if req.CollectionType, err = domain.ParseCollectionType(b.CollectionType); err != nil {
			return req, err
		}
	}
	// Sem mode o job é tratado como carga inicial
	if req.Mode, err = domain.ParseJobMode(b.Mode); err != nil {
		return req, err
	}
	if req.StartDate, err = parseDay("start_date", b.StartDate); err != nil {
		return req, err
	}
	if req.EndDate, err = parseDay("end_date", b.EndDate); err != nil {
		return req, err
	}

	return req, req.Validate()
}

func parseDay(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, domain.ValidationErrorf("%s deve estar no formato YYYY-MM-DD, recebido %q", field, value)
	}
	return day, nil
}

// ListJobs lista os registros de job para a tela de monitoramento
func ListJobs(runner jobrunning.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filters := domain.JobFilters{Limit: defaultJobListLimit}

		if raw := query.Get("status"); raw != "" {
			status := domain.JobStatus(raw)
			switch status {
			case domain.JobStatusPending, domain.JobStatusRunning, domain.JobStatusCompleted,
				domain.JobStatusFailed, domain.JobStatusPartial:
				filters.Status = &status
			default:
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "status inválido: "+raw, nil)
				return
			}
		}

		if integrationID := query.Get("integration_id"); integrationID != "" {
			filters.IntegrationID = &integrationID
		}

		if raw := query.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			filters.Limit = min(limit, maxJobListLimit)
		}

		jobs, err := runner.ListJobs(r.Context(), filters)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, jobs)
	})
}

func GetJob(runner jobrunning.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		job, err := runner.GetJob(r.Context(), jobID)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, job)
	})
}

// RetryJob recria um job finalizado como pendente; a execução fica com o runner
func RetryJob(runner jobrunning.Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		job, err := runner.Retry(r.Context(), jobID)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusAccepted, job)
	})
}
