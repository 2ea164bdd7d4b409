package handler

import (
	"net/http"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/api/handler/router"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/jobrunning"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/triggering"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/middleware"
)

func Healthcheck(deps map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(deps),
		},
	}
}

func Collection(trigger triggering.Trigger, runner jobrunning.Runner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/collection/trigger",
			Method:      http.MethodPost,
			Handler:     TriggerCollection(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOrAdmin()},
		},
		{
			Path:        "/v1/collection/run",
			Method:      http.MethodPost,
			Handler:     RunPendingJobs(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOrAdmin()},
		},
		{
			Path:        "/v1/collection/jobs",
			Method:      http.MethodPost,
			Handler:     ExecuteJob(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOrAdmin()},
		},
		{
			Path:        "/v1/collection/jobs",
			Method:      http.MethodGet,
			Handler:     ListJobs(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/collection/jobs/:id",
			Method:      http.MethodGet,
			Handler:     GetJob(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/collection/jobs/:id/retry",
			Method:      http.MethodPost,
			Handler:     RetryJob(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOrAdmin()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
