package jobrunning

import (
	"context"
	"errors"
	"sync"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/sirupsen/logrus"
)

// jobTracker grava os contadores do job à medida que os chunks terminam.
// A gravação também renova o heartbeat do job. Se o claim foi perdido a
// coleta é cancelada por onLost.
type jobTracker struct {
	mu         sync.Mutex
	jobs       repository.CollectionJobRepository
	jobID      string
	claimToken string
	onLost     func()
	progress   domain.ChunkProgress
	rows       int
}

func newJobTracker(jobs repository.CollectionJobRepository, jobID, claimToken string, onLost func()) *jobTracker {
	return &jobTracker{
		jobs:       jobs,
		jobID:      jobID,
		claimToken: claimToken,
		onLost:     onLost,
	}
}

func (t *jobTracker) AddTotal(ctx context.Context, n int) {
	t.update(ctx, func() { t.progress.Total += n })
}

func (t *jobTracker) ChunkSucceeded(ctx context.Context, rows int) {
	t.update(ctx, func() {
		t.progress.Completed++
		t.rows += rows
	})
}

func (t *jobTracker) ChunkFailed(ctx context.Context, _ error) {
	t.update(ctx, func() { t.progress.Failed++ })
}

func (t *jobTracker) snapshot() (domain.ChunkProgress, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress, t.rows
}

func (t *jobTracker) update(ctx context.Context, apply func()) {
	t.mu.Lock()
	apply()
	progress, rows := t.progress, t.rows
	t.mu.Unlock()

	if !progress.Valid() {
		logrus.WithField("job_id", t.jobID).Warnf("Contadores inválidos ignorados: %+v", progress)
		return
	}

	err := t.jobs.UpdateProgress(ctx, t.jobID, t.claimToken, progress, rows)
	if errors.Is(err, domain.ErrJobClaimLost) {
		logrus.WithField("job_id", t.jobID).Warn("Job assumido por outro executor, interrompendo a coleta")
		if t.onLost != nil {
			t.onLost()
		}
		return
	}
	if err != nil {
		// O progresso final é gravado de novo no Finish
		logrus.WithError(err).WithField("job_id", t.jobID).Warn("Falha ao atualizar o progresso do job")
	}
}
