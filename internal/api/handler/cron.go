package handler

import (
	"net/http"

	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/apiErrors"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// Tipos de cron que podem ser executados manualmente
const (
	CronJobTypeDailyTrigger = "daily-trigger"
	CronJobTypeJobRunner    = "job-runner"
)

// CronJob é um agendador que aceita disparo manual
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os agendadores expostos pela API
type CronJobServices struct {
	DailyTrigger CronJob
	JobRunner    CronJob
}

func (s CronJobServices) byType(cronType string) (CronJob, bool) {
	switch cronType {
	case CronJobTypeDailyTrigger:
		return s.DailyTrigger, s.DailyTrigger != nil
	case CronJobTypeJobRunner:
		return s.JobRunner, s.JobRunner != nil
	}
	return nil, false
}

// RunCronJob executa manualmente uma cron em background
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		job, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily-trigger, job-runner", nil)
			return
		}

		if !job.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrConflict, "Cron job já em andamento", nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Cron job iniciada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, 2)
		if services.DailyTrigger != nil {
			status[CronJobTypeDailyTrigger] = services.DailyTrigger.GetStatus()
		}
		if services.JobRunner != nil {
			status[CronJobTypeJobRunner] = services.JobRunner.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
