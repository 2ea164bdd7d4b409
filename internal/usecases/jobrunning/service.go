package jobrunning

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
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/credentialing"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

const runnerLockKey = "collection:job-runner"

// Runner executa jobs de coleta, um de cada vez
type Runner interface {
	// ExecuteJob reaproveita ou cria o job e o executa até um status final.
	// Só retorna erro para requisições inválidas ou falhas ao gravar o job.
	ExecuteJob(ctx context.Context, req domain.NewJobRequest) (*domain.CollectionJob, error)
	// RunPending processa até BatchSize jobs pendentes, do mais antigo ao mais novo
	RunPending(ctx context.Context) (*RunSummary, error)
	// Retry cria um novo job pendente com o mesmo intervalo de um job finalizado
	Retry(ctx context.Context, jobID string) (*domain.CollectionJob, error)
	GetJob(ctx context.Context, jobID string) (*domain.CollectionJob, error)
	ListJobs(ctx context.Context, filters domain.JobFilters) ([]*domain.CollectionJob, error)
}

type RunSummary struct {
	Total     int  `json:"total"`
	Processed int  `json:"processed"`
	Skipped   bool `json:"skipped,omitempty"`
}

type Service struct {
	cfg          config.JobRunner
	jobs         repository.CollectionJobRepository
	integrations repository.IntegrationRepository
	registry     *collecting.Registry
	resolver     credentialing.Resolver
	locker       lock.Locker
	now          func() time.Time
}

func NewService(
	cfg config.JobRunner,
	jobs repository.CollectionJobRepository,
	integrations repository.IntegrationRepository,
	registry *collecting.Registry,
	resolver credentialing.Resolver,
	locker lock.Locker,
) *Service {
	return &Service{
		cfg:          cfg,
		jobs:         jobs,
		integrations: integrations,
		registry:     registry,
		resolver:     resolver,
		locker:       locker,
		now:          time.Now,
	}
}

func (s *Service) ExecuteJob(ctx context.Context, req domain.NewJobRequest) (*domain.CollectionJob, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	integration, err := s.integrations.GetByID(ctx, req.IntegrationID)
	if err != nil {
		return nil, err
	}

	collector, err := s.registry.Resolve(integration.Platform, req.CollectionType)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.FindPending(ctx, req.Key())
	if err != nil {
		return nil, err
	}

	if job == nil {
		job, err = s.jobs.Create(ctx, req, integration.Platform)
		if err != nil {
			return nil, err
		}
		logrus.WithFields(jobFields(job)).Info("Job de coleta criado")
	} else {
		logrus.WithFields(jobFields(job)).Info("Reaproveitando job pendente")
	}

	return s.run(ctx, job, integration, collector)
}

func (s *Service) RunPending(ctx context.Context) (*RunSummary, error) {
	lease, err := s.locker.TryLock(ctx, runnerLockKey, s.leaseTTL())
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			logrus.Info("Job runner já em execução em outro processo, ignorando ciclo")
			return &RunSummary{Skipped: true}, nil
		}
		return nil, err
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			logrus.WithError(err).Warn("Falha ao liberar o lock do job runner")
		}
	}()

	if s.cfg.StaleAfter > 0 {
		requeued, err := s.jobs.RequeueStale(ctx, s.now().Add(-s.cfg.StaleAfter))
		if err != nil {
			logrus.WithError(err).Error("Falha ao devolver jobs travados para a fila")
		} else if requeued > 0 {
			logrus.Warnf("%d jobs travados em running voltaram para pending", requeued)
		}
	}

	pending, err := s.jobs.ListPending(ctx, s.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{Total: len(pending)}
	logrus.Infof("Job runner encontrou %d jobs pendentes", len(pending))

	for i, job := range pending {
		if i > 0 {
			if err := utils.Sleep(ctx, s.cfg.JobDelay); err != nil {
				return summary, err
			}
		}

		finished, err := s.run(ctx, job, nil, nil)
		if err != nil {
			if errors.Is(err, domain.ErrJobAlreadyClaimed) || errors.Is(err, domain.ErrJobClaimLost) {
				logrus.WithFields(jobFields(job)).Info("Job já assumido por outro executor")
				continue
			}
			logrus.WithError(err).WithFields(jobFields(job)).Error("Erro ao executar job pendente")
			continue
		}

		summary.Processed++
		logrus.WithFields(jobFields(finished)).Infof("Job finalizado com status %s", finished.Status)
	}

	return summary, nil
}

func (s *Service) Retry(ctx context.Context, jobID string) (*domain.CollectionJob, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !job.Status.IsTerminal() {
		return nil, domain.ValidationErrorf("job %s está %s e não pode ser reprocessado", job.ID, job.Status)
	}

	req := domain.NewJobRequest{
		IntegrationID:  job.IntegrationID,
		CollectionType: job.CollectionType,
		Mode:           job.Mode,
		StartDate:      job.StartDate,
		EndDate:        job.EndDate,
	}

	pending, err := s.jobs.FindPending(ctx, req.Key())
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return pending, nil
	}

	retried, err := s.jobs.Create(ctx, req, job.Platform)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(jobFields(retried)).WithField("retry_of", job.ID).Info("Job recriado para reprocessamento")

	return retried, nil
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*domain.CollectionJob, error) {
	return s.jobs.GetByID(ctx, jobID)
}

func (s *Service) ListJobs(ctx context.Context, filters domain.JobFilters) ([]*domain.CollectionJob, error) {
	return s.jobs.List(ctx, filters)
}

// run assume o job e o leva a um status final. Depois do Claim, qualquer
// falha fica registrada no próprio job.
func (s *Service) run(ctx context.Context, job *domain.CollectionJob, integration *domain.Integration, collector collecting.Collector) (*domain.CollectionJob, error) {
	claimed, err := s.jobs.Claim(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	logger := logrus.WithFields(jobFields(claimed))
	logger.Info("Iniciando job de coleta")

	if integration == nil {
		integration, err = s.integrations.GetByID(ctx, claimed.IntegrationID)
		if err != nil {
			return s.finish(ctx, claimed, domain.JobStatusFailed, domain.ChunkProgress{}, 0, err)
		}
	}

	if collector == nil {
		collector, err = s.registry.Resolve(integration.Platform, claimed.CollectionType)
		if err != nil {
			return s.finish(ctx, claimed, domain.JobStatusFailed, domain.ChunkProgress{}, 0, err)
		}
	}

	credential, err := s.resolver.Resolve(ctx, integration)
	if err != nil {
		logger.WithError(err).Error("Falha ao resolver credencial")
		return s.finish(ctx, claimed, domain.JobStatusFailed, domain.ChunkProgress{}, 0, err)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.cfg.JobTimeout > 0 {
		var cancelTimeout context.CancelFunc
		jobCtx, cancelTimeout = context.WithTimeout(jobCtx, s.cfg.JobTimeout)
		defer cancelTimeout()
	}

	tracker := newJobTracker(s.jobs, claimed.ID, claimToken(claimed), cancel)
	result, collectErr := collector.Collect(jobCtx, collecting.Request{
		JobID:          claimed.ID,
		Integration:    integration,
		Credential:     credential,
		CollectionType: claimed.CollectionType,
		StartDate:      claimed.StartDate,
		EndDate:        claimed.EndDate,
		Tracker:        tracker,
	})

	progress, rows := tracker.snapshot()
	if result != nil {
		progress, rows = result.ChunkProgress, result.RowsWritten
	}

	if collectErr != nil {
		if ctx.Err() == nil && errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
			collectErr = fmt.Errorf("%w: excedeu %s após %d de %d chunks", domain.ErrJobTimeout, s.cfg.JobTimeout, progress.Completed+progress.Failed, progress.Total)
		}
		logger.WithError(collectErr).Error("Coleta interrompida")
		return s.finish(ctx, claimed, domain.JobStatusFailed, progress, rows, collectErr)
	}

	if result == nil {
		result = &domain.CollectionResult{ChunkProgress: progress, RowsWritten: rows}
	}

	return s.finish(ctx, claimed, result.DeriveStatus(), progress, rows, result.Err())
}

func (s *Service) finish(ctx context.Context, job *domain.CollectionJob, status domain.JobStatus, progress domain.ChunkProgress, rows int, cause error) (*domain.CollectionJob, error) {
	var message *string
	if cause != nil {
		text := cause.Error()
		message = &text
	}

	// A gravação final não depende do contexto da requisição
	writeCtx := context.WithoutCancel(ctx)
	if err := s.jobs.Finish(writeCtx, job.ID, claimToken(job), status, progress, rows, message); err != nil {
		return nil, fmt.Errorf("erro ao finalizar job %s: %w", job.ID, err)
	}

	finished, err := s.jobs.GetByID(writeCtx, job.ID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(jobFields(finished)).WithFields(logrus.Fields{
		"status":           finished.Status,
		"chunks_total":     finished.ChunksTotal,
		"chunks_completed": finished.ChunksCompleted,
		"chunks_failed":    finished.ChunksFailed,
		"rows_written":     finished.RowsWritten,
	}).Info("Job de coleta finalizado")

	return finished, nil
}

// leaseTTL cobre o pior caso de um lote inteiro
func (s *Service) leaseTTL() time.Duration {
	perJob := s.cfg.JobTimeout + s.cfg.JobDelay
	if perJob <= 0 {
		perJob = time.Hour
	}
	batch := s.cfg.BatchSize
	if batch <= 0 {
		batch = 1
	}
	return perJob*time.Duration(batch) + time.Minute
}

func claimToken(job *domain.CollectionJob) string {
	if job.ClaimToken == nil {
		return ""
	}
	return *job.ClaimToken
}

func jobFields(job *domain.CollectionJob) logrus.Fields {
	return logrus.Fields{
		"job_id":          job.ID,
		"integration_id":  job.IntegrationID,
		"platform":        job.Platform,
		"collection_type": job.CollectionType,
		"mode":            job.Mode,
		"start_date":      job.StartDate.Format(time.DateOnly),
		"end_date":        job.EndDate.Format(time.DateOnly),
	}
}
