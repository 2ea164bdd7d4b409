package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger é uma dependência verificada pelo healthcheck (Postgres, Redis)
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(deps map[string]Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(deps))
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				logrus.WithError(err).WithField("dependency", name).Warn("healthcheck: dependência indisponível")
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		writeJSON(w, r, status, map[string]any{
			"time":   time.Now().UTC().Format(time.RFC3339),
			"checks": checks,
		})
	})
}
