package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
)

const secretsTable = "integration_secrets"

// SecretRepository resolve referências opacas de credencial para o valor guardado
type SecretRepository interface {
	// GetSecret retorna "" quando a referência não existe
	GetSecret(ctx context.Context, ref string) (string, error)
}

type secretRepository struct {
	conn *postgres.Connection
}

func NewSecretRepository(conn *postgres.Connection) SecretRepository {
	return &secretRepository{
		conn: conn,
	}
}

func (r *secretRepository) GetSecret(ctx context.Context, ref string) (string, error) {
	sqlQuery, args, err := squirrel.
		Select("value").
		From(secretsTable).
		Where(squirrel.Eq{"ref": ref}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", err
	}

	var value sql.NullString
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", wrapDatabaseError(err)
	}

	return value.String, nil
}
