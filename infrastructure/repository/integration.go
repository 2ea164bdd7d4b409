package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
)

const integrationsTable = "integrations i"

var integrationColumns = []string{
	"i.id", "i.advertiser_id", "i.organization_id", "i.platform", "i.status",
	"i.refresh_token_ref", "i.access_token_ref",
	"i.google_customer_id", "i.google_login_customer_id", "i.meta_ad_account_id", "i.naver_customer_id",
	"i.created_at", "i.deleted_at",
}

type IntegrationRepository interface {
	GetByID(ctx context.Context, integrationID string) (*domain.Integration, error)
	// ListCollectable retorna as integrações ativas, não removidas e com a
	// credencial exigida pela plataforma
	ListCollectable(ctx context.Context, platform domain.Platform) ([]*domain.Integration, error)
}

type integrationRepository struct {
	conn *postgres.Connection
}

func NewIntegrationRepository(conn *postgres.Connection) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

func (r *integrationRepository) GetByID(ctx context.Context, integrationID string) (*domain.Integration, error) {
	sqlQuery, args, err := squirrel.
		Select(integrationColumns...).
		From(integrationsTable).
		Where(squirrel.Eq{"i.id": integrationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	integration, err := scanIntegration(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIntegrationNotFound, integrationID)
		}
		return nil, wrapDatabaseError(err)
	}

	return integration, nil
}

func (r *integrationRepository) ListCollectable(ctx context.Context, platform domain.Platform) ([]*domain.Integration, error) {
	queryBuilder := squirrel.
		Select(integrationColumns...).
		From(integrationsTable).
		Where(squirrel.Eq{
			"i.platform":   string(platform),
			"i.status":     string(domain.IntegrationStatusActive),
			"i.deleted_at": nil,
		}).
		OrderBy("i.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if column := domain.CredentialFilterFor(platform); column != domain.CredentialFilterNone {
		queryBuilder = queryBuilder.Where(squirrel.NotEq{"i." + string(column): nil})
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

	integrations := make([]*domain.Integration, 0)
	for rows.Next() {
		integration, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		integrations = append(integrations, integration)
	}

	return integrations, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIntegration(row scanner) (*domain.Integration, error) {
	i := &domain.Integration{}
	var platform, status string

	if err := row.Scan(
		&i.ID,
		&i.AdvertiserID,
		&i.OrganizationID,
		&platform,
		&status,
		&i.RefreshTokenRef,
		&i.AccessTokenRef,
		&i.GoogleCustomerID,
		&i.GoogleLoginCustomerID,
		&i.MetaAdAccountID,
		&i.NaverCustomerID,
		&i.CreatedAt,
		&i.DeletedAt,
	); err != nil {
		return nil, err
	}

	i.Platform = domain.Platform(platform)
	i.Status = domain.IntegrationStatus(status)

	return i, nil
}
