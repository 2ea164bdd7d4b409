package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/jobrunning"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

// PendingRunner é o ciclo de polling dos jobs pendentes
type PendingRunner interface {
	RunPending(ctx context.Context) (*jobrunning.RunSummary, error)
}

// JobRunnerService agenda o processamento periódico dos jobs pendentes
type JobRunnerService struct {
	scheduler *gocron.Scheduler
	config    config.JobRunner
	runner    PendingRunner
	state     runState
	baseCtx   context.Context
	now       func() time.Time

	summaryMu   sync.Mutex
	lastSummary *jobrunning.RunSummary
	lastError   string
}

func NewJobRunnerService(cfg config.JobRunner, runner PendingRunner) *JobRunnerService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.CronSchedule,
		"batch_size":    cfg.BatchSize,
		"job_delay":     cfg.JobDelay.String(),
		"job_timeout":   cfg.JobTimeout.String(),
		"stale_after":   cfg.StaleAfter.String(),
		"sync_enabled":  cfg.Enabled,
	}).Info("Configuração do processador de jobs de coleta carregada")

	return &JobRunnerService{
		scheduler: gocron.NewScheduler(utils.KST),
		config:    cfg,
		runner:    runner,
		baseCtx:   context.Background(),
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *JobRunnerService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.Enabled {
		logrus.Info("Processador de jobs de coleta desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do processador de jobs de coleta")

	// Uma execução longa não deve empilhar outra do mesmo agendador
	s.scheduler.SingletonModeAll()

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runPending(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar processador de jobs de coleta: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do processador de jobs de coleta")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *JobRunnerService) runPending(ctx context.Context) {
	if !s.state.begin(s.now()) {
		logrus.Info("Processador de jobs de coleta já em andamento, ignorando")
		return
	}
	defer func() { s.state.end(s.now()) }()

	startTime := s.now()
	summary, err := s.runner.RunPending(ctx)

	s.summaryMu.Lock()
	s.lastSummary = summary
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.summaryMu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logrus.Warn("Processador de jobs de coleta interrompido pelo cancelamento do contexto")
			return
		}
		logrus.WithError(err).Error("Erro ao processar jobs de coleta pendentes")
		return
	}

	logrus.WithFields(logrus.Fields{
		"duration":  s.now().Sub(startTime).String(),
		"total":     summary.Total,
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
	}).Info("Processamento de jobs de coleta concluído")
}

// TriggerManualSync inicia uma rodada fora do horário; retorna false se já houver uma em andamento
func (s *JobRunnerService) TriggerManualSync() bool {
	if s.state.isRunning() {
		logrus.Info("Processador de jobs de coleta já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando processamento manual de jobs de coleta")
	go s.runPending(s.baseCtx)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *JobRunnerService) GetStatus() map[string]any {
	running, startedAt, completedAt := s.state.snapshot()

	s.summaryMu.Lock()
	summary := s.lastSummary
	lastError := s.lastError
	s.summaryMu.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"batch_size":             s.config.BatchSize,
		"job_timeout":            s.config.JobTimeout.String(),
		"running":                running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
		"last_summary":           summary,
		"last_error":             lastError,
	}
}
