package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/triggering"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

// triggerTarget é um par plataforma/tipo de coleta disparado a cada execução
type triggerTarget struct {
	Platform       domain.Platform
	CollectionType domain.CollectionType
}

// DailyTriggerService agenda o disparo diário da coleta de "ontem" (UTC+9)
type DailyTriggerService struct {
	scheduler *gocron.Scheduler
	config    config.DailyTrigger
	trigger   triggering.Trigger
	targets   []triggerTarget
	state     runState
	baseCtx   context.Context
	now       func() time.Time

	summariesMu  sync.Mutex
	lastSummary  []*triggering.Summary
	lastFailures map[string]string
}

// NewDailyTriggerService valida os pares configurados e cria o agendador em KST
func NewDailyTriggerService(cfg config.DailyTrigger, trigger triggering.Trigger) (*DailyTriggerService, error) {
	targets := make([]triggerTarget, 0, len(cfg.Platforms)*len(cfg.CollectionTypes))
	for _, rawPlatform := range cfg.Platforms {
		platform, err := domain.ParsePlatform(rawPlatform)
		if err != nil {
			return nil, fmt.Errorf("DAILY_TRIGGER_PLATFORMS: %w", err)
		}
		for _, rawType := range cfg.CollectionTypes {
			collectionType, err := domain.ParseCollectionType(rawType)
			if err != nil {
				return nil, fmt.Errorf("DAILY_TRIGGER_COLLECTION_TYPES: %w", err)
			}
			targets = append(targets, triggerTarget{Platform: platform, CollectionType: collectionType})
		}
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":     cfg.CronSchedule,
		"platforms":         cfg.Platforms,
		"collection_types":  cfg.CollectionTypes,
		"integration_delay": cfg.IntegrationDelay.String(),
		"sync_enabled":      cfg.Enabled,
	}).Info("Configuração do disparo diário de coleta carregada")

	return &DailyTriggerService{
		scheduler: gocron.NewScheduler(utils.KST),
		config:    cfg,
		trigger:   trigger,
		targets:   targets,
		baseCtx:   context.Background(),
		now:       time.Now,
	}, nil
}

// Start agenda o disparo; o agendador para quando o contexto é cancelado
func (s *DailyTriggerService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.Enabled {
		logrus.Info("Disparo diário de coleta desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do disparo diário de coleta")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar disparo diário de coleta: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do disparo diário de coleta")
		s.scheduler.Stop()
	}()

	return nil
}

// runAll dispara cada par configurado em sequência; a falha de um par não interrompe os demais
func (s *DailyTriggerService) runAll(ctx context.Context) {
	if !s.state.begin(s.now()) {
		logrus.Info("Disparo diário de coleta já em andamento, ignorando")
		return
	}

	startTime := s.now()
	summaries := make([]*triggering.Summary, 0, len(s.targets))
	failures := make(map[string]string)

	defer func() {
		s.summariesMu.Lock()
		s.lastSummary = summaries
		s.lastFailures = failures
		s.summariesMu.Unlock()

		s.state.end(s.now())
	}()

	logrus.WithField("targets", len(s.targets)).Info("Iniciando disparo diário de coleta")

	for _, target := range s.targets {
		if ctx.Err() != nil {
			logrus.Warn("Disparo diário de coleta interrompido pelo cancelamento do contexto")
			return
		}

		fields := logrus.Fields{
			"platform":        target.Platform,
			"collection_type": target.CollectionType,
		}

		summary, err := s.trigger.Trigger(ctx, target.Platform, target.CollectionType)
		if err != nil {
			failures[fmt.Sprintf("%s:%s", target.Platform, target.CollectionType)] = err.Error()
			logrus.WithFields(fields).WithError(err).Error("Erro no disparo diário de coleta")
			continue
		}

		summaries = append(summaries, summary)
		logrus.WithFields(fields).WithFields(logrus.Fields{
			"date":      summary.Date,
			"total":     summary.Total,
			"processed": summary.Processed,
		}).Info("Disparo diário de coleta concluído para plataforma")
	}

	logrus.WithField("duration", s.now().Sub(startTime).String()).Info("Disparo diário de coleta concluído")
}

// TriggerManualSync inicia o disparo fora do horário; retorna false se já houver um em andamento
func (s *DailyTriggerService) TriggerManualSync() bool {
	if s.state.isRunning() {
		logrus.Info("Disparo diário de coleta já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando disparo manual da coleta diária")
	go s.runAll(s.baseCtx)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *DailyTriggerService) GetStatus() map[string]any {
	running, startedAt, completedAt := s.state.snapshot()

	s.summariesMu.Lock()
	summaries := s.lastSummary
	failures := s.lastFailures
	s.summariesMu.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_timezone":          utils.KST.String(),
		"platforms":              s.config.Platforms,
		"collection_types":       s.config.CollectionTypes,
		"running":                running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
		"last_summaries":         summaries,
		"last_failures":          failures,
	}
}
