package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
)

const (
	collectionJobsTable = "collection_jobs"
	defaultJobListLimit = 50
)

var collectionJobColumns = []string{
	"id", "integration_id", "platform", "collection_type", "mode", "start_date", "end_date",
	"status", "chunks_total", "chunks_completed", "chunks_failed", "rows_written",
	"error_message", "claim_token", "heartbeat_at", "created_at", "started_at", "completed_at",
}

type CollectionJobRepository interface {
	Create(ctx context.Context, req domain.NewJobRequest, platform domain.Platform) (*domain.CollectionJob, error)
	GetByID(ctx context.Context, jobID string) (*domain.CollectionJob, error)
	// FindPending retorna um job pendente equivalente, ou nil
	FindPending(ctx context.Context, key domain.JobKey) (*domain.CollectionJob, error)
	// ListPending lista jobs pendentes do mais antigo para o mais novo
	ListPending(ctx context.Context, limit int) ([]*domain.CollectionJob, error)
	List(ctx context.Context, filters domain.JobFilters) ([]*domain.CollectionJob, error)
	// Claim move o job de pending para running; falha com ErrJobAlreadyClaimed
	// se outro executor chegou antes
	Claim(ctx context.Context, jobID string) (*domain.CollectionJob, error)
	// UpdateProgress e Finish só gravam enquanto claimToken for o token do
	// Claim vigente; caso contrário retornam ErrJobClaimLost
	UpdateProgress(ctx context.Context, jobID, claimToken string, progress domain.ChunkProgress, rowsWritten int) error
	Finish(ctx context.Context, jobID, claimToken string, status domain.JobStatus, progress domain.ChunkProgress, rowsWritten int, errorMessage *string) error
	// RequeueStale devolve para pending os jobs running sem heartbeat desde olderThan
	RequeueStale(ctx context.Context, olderThan time.Time) (int, error)
}

type collectionJobRepository struct {
	conn *postgres.Connection
	now  func() time.Time
}

func NewCollectionJobRepository(conn *postgres.Connection) CollectionJobRepository {
	return &collectionJobRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *collectionJobRepository) Create(ctx context.Context, req domain.NewJobRequest, platform domain.Platform) (*domain.CollectionJob, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do job: %w", err)
	}

	job := &domain.CollectionJob{
		ID:             id,
		IntegrationID:  req.IntegrationID,
		Platform:       platform,
		CollectionType: req.CollectionType,
		Mode:           req.Mode,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         domain.JobStatusPending,
		CreatedAt:      r.now().UTC(),
	}

	sqlQuery, args, err := squirrel.
		Insert(collectionJobsTable).
		Columns("id", "integration_id", "platform", "collection_type", "mode", "start_date", "end_date",
			"status", "chunks_total", "chunks_completed", "chunks_failed", "rows_written", "created_at").
		Values(job.ID, job.IntegrationID, string(job.Platform), string(job.CollectionType), string(job.Mode),
			job.StartDate.Format(time.DateOnly), job.EndDate.Format(time.DateOnly),
			string(job.Status), 0, 0, 0, 0, job.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("%w: criar job: %w", domain.ErrStorageWrite, wrapDatabaseError(err))
	}

	return job, nil
}

func (r *collectionJobRepository) GetByID(ctx context.Context, jobID string) (*domain.CollectionJob, error) {
	job, err := r.getOne(ctx, squirrel.Eq{"id": jobID})
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	return job, nil
}

func (r *collectionJobRepository) FindPending(ctx context.Context, key domain.JobKey) (*domain.CollectionJob, error) {
	return r.getOne(ctx, squirrel.Eq{
		"integration_id":  key.IntegrationID,
		"collection_type": string(key.CollectionType),
		"mode":            string(key.Mode),
		"start_date":      key.StartDate.Format(time.DateOnly),
		"end_date":        key.EndDate.Format(time.DateOnly),
		"status":          string(domain.JobStatusPending),
	})
}

func (r *collectionJobRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.CollectionJob, error) {
	sqlQuery, args, err := squirrel.
		Select(collectionJobColumns...).
		From(collectionJobsTable).
		Where(where).
		OrderBy("created_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	job, err := scanCollectionJob(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDatabaseError(err)
	}

	return job, nil
}

func (r *collectionJobRepository) ListPending(ctx context.Context, limit int) ([]*domain.CollectionJob, error) {
	status := domain.JobStatusPending
	return r.List(ctx, domain.JobFilters{Status: &status, Limit: limit})
}

func (r *collectionJobRepository) List(ctx context.Context, filters domain.JobFilters) ([]*domain.CollectionJob, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultJobListLimit
	}

	queryBuilder := squirrel.
		Select(collectionJobColumns...).
		From(collectionJobsTable).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if filters.Status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": string(*filters.Status)})
	}
	if filters.IntegrationID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"integration_id": *filters.IntegrationID})
	}

	// A fila é FIFO; a listagem de monitoramento mostra os mais recentes primeiro
	if filters.Status != nil && *filters.Status == domain.JobStatusPending {
		queryBuilder = queryBuilder.OrderBy("created_at ASC")
	} else {
		queryBuilder = queryBuilder.OrderBy("created_at DESC")
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	jobs := make([]*domain.CollectionJob, 0)
	for rows.Next() {
		job, err := scanCollectionJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func (r *collectionJobRepository) Claim(ctx context.Context, jobID string) (*domain.CollectionJob, error) {
	now := r.now().UTC()
	token := uuid.NewString()

	sqlQuery, args, err := squirrel.
		Update(collectionJobsTable).
		Set("status", string(domain.JobStatusRunning)).
		Set("claim_token", token).
		Set("started_at", now).
		Set("heartbeat_at", now).
		Where(squirrel.Eq{"id": jobID, "status": string(domain.JobStatusPending)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: claim job: %w", domain.ErrStorageWrite, wrapDatabaseError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobAlreadyClaimed, jobID)
	}

	job, err := r.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	job.ClaimToken = &token

	return job, nil
}

func (r *collectionJobRepository) UpdateProgress(ctx context.Context, jobID, claimToken string, progress domain.ChunkProgress, rowsWritten int) error {
	sqlQuery, args, err := squirrel.
		Update(collectionJobsTable).
		Set("chunks_total", progress.Total).
		Set("chunks_completed", progress.Completed).
		Set("chunks_failed", progress.Failed).
		Set("rows_written", rowsWritten).
		Set("heartbeat_at", r.now().UTC()).
		Where(squirrel.Eq{"id": jobID, "status": string(domain.JobStatusRunning), "claim_token": claimToken}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("%w: progresso do job: %w", domain.ErrStorageWrite, wrapDatabaseError(err))
	}

	return claimedWrite(result, jobID)
}

func (r *collectionJobRepository) Finish(
	ctx context.Context,
	jobID string,
	claimToken string,
	status domain.JobStatus,
	progress domain.ChunkProgress,
	rowsWritten int,
	errorMessage *string,
) error {
	if !status.IsTerminal() {
		return domain.ValidationErrorf("status final inválido %q", status)
	}

	sqlQuery, args, err := squirrel.
		Update(collectionJobsTable).
		Set("status", string(status)).
		Set("chunks_total", progress.Total).
		Set("chunks_completed", progress.Completed).
		Set("chunks_failed", progress.Failed).
		Set("rows_written", rowsWritten).
		Set("error_message", errorMessage).
		Set("claim_token", nil).
		Set("completed_at", r.now().UTC()).
		Where(squirrel.Eq{"id": jobID, "status": string(domain.JobStatusRunning), "claim_token": claimToken}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("%w: finalizar job: %w", domain.ErrStorageWrite, wrapDatabaseError(err))
	}

	return claimedWrite(result, jobID)
}

// claimedWrite trata zero linhas afetadas como claim perdido: o job voltou
// para pending ou foi assumido por outro executor
func claimedWrite(result sql.Result, jobID string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobClaimLost, jobID)
	}
	return nil
}

func (r *collectionJobRepository) RequeueStale(ctx context.Context, olderThan time.Time) (int, error) {
	sqlQuery, args, err := squirrel.
		Update(collectionJobsTable).
		Set("status", string(domain.JobStatusPending)).
		Set("claim_token", nil).
		Set("started_at", nil).
		Set("heartbeat_at", nil).
		Set("chunks_total", 0).
		Set("chunks_completed", 0).
		Set("chunks_failed", 0).
		Set("rows_written", 0).
		Where(squirrel.Eq{"status": string(domain.JobStatusRunning)}).
		Where(squirrel.Lt{"heartbeat_at": olderThan.UTC()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: requeue: %w", domain.ErrStorageWrite, wrapDatabaseError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(affected), nil
}

func scanCollectionJob(row scanner) (*domain.CollectionJob, error) {
	job := &domain.CollectionJob{}
	var platform, collectionType, mode, status string

	if err := row.Scan(
		&job.ID,
		&job.IntegrationID,
		&platform,
		&collectionType,
		&mode,
		&job.StartDate,
		&job.EndDate,
		&status,
		&job.ChunksTotal,
		&job.ChunksCompleted,
		&job.ChunksFailed,
		&job.RowsWritten,
		&job.ErrorMessage,
		&job.ClaimToken,
		&job.HeartbeatAt,
		&job.CreatedAt,
		&job.StartedAt,
		&job.CompletedAt,
	); err != nil {
		return nil, err
	}

	job.Platform = domain.Platform(platform)
	job.CollectionType = domain.CollectionType(collectionType)
	job.Mode = domain.JobMode(mode)
	job.Status = domain.JobStatus(status)

	return job, nil
}
