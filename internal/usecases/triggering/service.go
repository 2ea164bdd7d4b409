package triggering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/lock"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

const triggerLeaseTTL = 6 * time.Hour

// ErrAlreadyRunning indica outro disparo em andamento para a mesma chave
var ErrAlreadyRunning = errors.New("trigger already running")

// JobExecutor é o caminho de execução de um único job
type JobExecutor interface {
	ExecuteJob(ctx context.Context, req domain.NewJobRequest) (*domain.CollectionJob, error)
}

type Trigger interface {
	// Trigger coleta "ontem" (UTC+9) para todas as integrações coletáveis da plataforma
	Trigger(ctx context.Context, platform domain.Platform, collectionType domain.CollectionType) (*Summary, error)
}

type Summary struct {
	Platform       domain.Platform       `json:"platform"`
	CollectionType domain.CollectionType `json:"collection_type"`
	Date           string                `json:"date"`
	Total          int                   `json:"total"`
	Processed      int                   `json:"processed"`
}

type Service struct {
	cfg          config.DailyTrigger
	integrations repository.IntegrationRepository
	registry     *collecting.Registry
	executor     JobExecutor
	locker       lock.Locker
	now          func() time.Time
}

func NewService(
	cfg config.DailyTrigger,
	integrations repository.IntegrationRepository,
	registry *collecting.Registry,
	executor JobExecutor,
	locker lock.Locker,
) *Service {
	return &Service{
		cfg:          cfg,
		integrations: integrations,
		registry:     registry,
		executor:     executor,
		locker:       locker,
		now:          time.Now,
	}
}

func (s *Service) Trigger(ctx context.Context, platform domain.Platform, collectionType domain.CollectionType) (*Summary, error) {
	if _, err := s.registry.Resolve(platform, collectionType); err != nil {
		return nil, err
	}

	yesterday := utils.YesterdayKST(s.now())
	summary := &Summary{
		Platform:       platform,
		CollectionType: collectionType,
		Date:           yesterday.Format(time.DateOnly),
	}

	key := fmt.Sprintf("collection:daily-trigger:%s:%s:%s", platform, collectionType, summary.Date)
	lease, err := s.locker.TryLock(ctx, key, triggerLeaseTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, key)
		}
		return nil, err
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			logrus.WithError(err).Warn("Falha ao liberar o lock do trigger diário")
		}
	}()

	integrations, err := s.integrations.ListCollectable(ctx, platform)
	if err != nil {
		return nil, err
	}
	summary.Total = len(integrations)

	logger := logrus.WithFields(logrus.Fields{
		"platform":        platform,
		"collection_type": collectionType,
		"date":            summary.Date,
	})
	logger.Infof("Trigger diário encontrou %d integrações", len(integrations))

	for i, integration := range integrations {
		if i > 0 {
			if err := utils.Sleep(ctx, s.cfg.IntegrationDelay); err != nil {
				return summary, err
			}
		}

		job, err := s.executor.ExecuteJob(ctx, domain.NewJobRequest{
			IntegrationID:  integration.ID,
			CollectionType: collectionType,
			Mode:           domain.JobModeDaily,
			StartDate:      yesterday,
			EndDate:        yesterday,
		})
		if err != nil {
			logger.WithError(err).WithField("integration_id", integration.ID).Error("Falha ao disparar coleta da integração")
			continue
		}

		summary.Processed++
		logger.WithFields(logrus.Fields{
			"integration_id": integration.ID,
			"job_id":         job.ID,
			"status":         job.Status,
		}).Info("Coleta diária executada")
	}

	logger.Infof("Trigger diário finalizado: %d de %d integrações processadas", summary.Processed, summary.Total)

	return summary, nil
}
