package domain

import (
	"fmt"
	"strings"
	"time"
)

type CollectionType string

const (
	CollectionTypeAds          CollectionType = "ads"
	CollectionTypeDemographics CollectionType = "demographics"
	CollectionTypeCreatives    CollectionType = "creatives"
	CollectionTypeDaily        CollectionType = "daily"
)

func ParseCollectionType(value string) (CollectionType, error) {
	switch t := CollectionType(strings.ToLower(strings.TrimSpace(value))); t {
	case CollectionTypeAds, CollectionTypeDemographics, CollectionTypeCreatives, CollectionTypeDaily:
		return t, nil
	}
	return "", ValidationErrorf("collection_type inválido %q (ads, demographics, creatives, daily)", value)
}

type JobMode string

const (
	JobModeInitial JobMode = "initial"
	JobModeDaily   JobMode = "daily"
)

func ParseJobMode(value string) (JobMode, error) {
	switch m := JobMode(strings.ToLower(strings.TrimSpace(value))); m {
	case JobModeInitial, JobModeDaily:
		return m, nil
	case "":
		return JobModeInitial, nil
	}
	return "", ValidationErrorf("mode inválido %q (initial, daily)", value)
}

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusPartial   JobStatus = "partial"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusPartial
}

// CollectionJob é o registro de auditoria de uma execução de coleta
type CollectionJob struct {
	ID              string         `json:"id"`
	IntegrationID   string         `json:"integration_id"`
	Platform        Platform       `json:"platform"`
	CollectionType  CollectionType `json:"collection_type"`
	Mode            JobMode        `json:"mode"`
	StartDate       time.Time      `json:"start_date"`
	EndDate         time.Time      `json:"end_date"`
	Status          JobStatus      `json:"status"`
	ChunksTotal     int            `json:"chunks_total"`
	ChunksCompleted int            `json:"chunks_completed"`
	ChunksFailed    int            `json:"chunks_failed"`
	RowsWritten     int            `json:"rows_written"`
	ErrorMessage    *string        `json:"error_message"`
	ClaimToken      *string        `json:"-"`
	HeartbeatAt     *time.Time     `json:"heartbeat_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	StartedAt       *time.Time     `json:"started_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
}

// JobKey identifica jobs equivalentes para reaproveitamento
type JobKey struct {
	IntegrationID  string
	CollectionType CollectionType
	Mode           JobMode
	StartDate      time.Time
	EndDate        time.Time
}

// NewJobRequest é a entrada da execução de um único job
type NewJobRequest struct {
	IntegrationID  string
	CollectionType CollectionType
	Mode           JobMode
	StartDate      time.Time
	EndDate        time.Time
}

func (r NewJobRequest) Key() JobKey {
	return JobKey{
		IntegrationID:  r.IntegrationID,
		CollectionType: r.CollectionType,
		Mode:           r.Mode,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
	}
}

func (r NewJobRequest) Validate() error {
	if strings.TrimSpace(r.IntegrationID) == "" {
		return ValidationErrorf("integration_id é obrigatório")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return ValidationErrorf("start_date e end_date são obrigatórios")
	}
	if r.StartDate.After(r.EndDate) {
		return ValidationErrorf("start_date %s é posterior a end_date %s",
			r.StartDate.Format(time.DateOnly), r.EndDate.Format(time.DateOnly))
	}
	if _, err := ParseCollectionType(string(r.CollectionType)); err != nil {
		return err
	}
	if _, err := ParseJobMode(string(r.Mode)); err != nil {
		return err
	}
	return nil
}

// ChunkProgress são os contadores de chunks de um job
type ChunkProgress struct {
	Total     int
	Completed int
	Failed    int
}

// Valid verifica o invariante completed + failed <= total
func (p ChunkProgress) Valid() bool {
	return p.Total >= 0 && p.Completed >= 0 && p.Failed >= 0 && p.Completed+p.Failed <= p.Total
}

// DeriveStatus calcula o status final a partir dos contadores:
// completed sem falhas e com todos os chunks concluídos, failed quando nenhum
// chunk teve sucesso, partial nos demais casos.
func (p ChunkProgress) DeriveStatus() JobStatus {
	if p.Failed == 0 && p.Completed == p.Total {
		return JobStatusCompleted
	}
	if p.Completed == 0 {
		return JobStatusFailed
	}
	return JobStatusPartial
}

// CollectionResult é o retorno de um coletor de plataforma
type CollectionResult struct {
	RowsWritten int
	ChunkProgress
	FirstError error
}

func (r *CollectionResult) Summary() string {
	if r == nil || r.Failed == 0 {
		return ""
	}
	msg := fmt.Sprintf("%d of %d chunks failed", r.Failed, r.Total)
	if r.FirstError != nil {
		msg = fmt.Sprintf("%s: %v", msg, r.FirstError)
	}
	return msg
}

// Err classifica o resultado com falha de chunks como ErrChunkPartialFailure
func (r *CollectionResult) Err() error {
	summary := r.Summary()
	if summary == "" {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrChunkPartialFailure, summary)
}

type JobFilters struct {
	Status        *JobStatus
	IntegrationID *string
	Limit         int
}
