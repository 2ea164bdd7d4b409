package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/lib/pq"
)

// Limite de linhas por INSERT; o Postgres aceita no máximo 65535 parâmetros
const upsertBatchSize = 500

// upsertStatement descreve um INSERT ... ON CONFLICT (chave natural) DO UPDATE
type upsertStatement struct {
	table       string
	columns     []string
	conflictKey []string
	updateSet   []string
}

func (s upsertStatement) build(values [][]interface{}) (string, []interface{}, error) {
	query := squirrel.StatementBuilder.
		Insert(s.table).
		Columns(s.columns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, v := range values {
		query = query.Values(v...)
	}

	query = query.Suffix(fmt.Sprintf(
		"ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(s.conflictKey, ", "),
		strings.Join(s.updateSet, ", "),
	))

	return query.ToSql()
}

// excluded monta "col = EXCLUDED.col" para cada coluna
func excluded(columns ...string) []string {
	set := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return append(set, "updated_at = NOW()")
}

// runUpsert grava todas as linhas numa única transação: ou o lote inteiro é
// aplicado ou nada é, e o erro sempre carrega domain.ErrStorageWrite.
func runUpsert(ctx context.Context, conn *postgres.Connection, stmt upsertStatement, values [][]interface{}) (int, error) {
	if len(values) == 0 {
		return 0, nil
	}

	written := 0
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(values); start += upsertBatchSize {
			end := min(start+upsertBatchSize, len(values))

			sqlQuery, args, err := stmt.build(values[start:end])
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			result, err := tx.ExecContext(ctx, sqlQuery, args...)
			if err != nil {
				return wrapDatabaseError(err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
			}
			written += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrStorageWrite, stmt.table, err)
	}

	return written, nil
}

// dedupeByKey mantém uma linha por chave natural (a última vence), preservando
// a ordem da primeira ocorrência. Um mesmo INSERT não pode tocar a mesma linha duas vezes.
func dedupeByKey[T any](rows []T, key func(T) string) []T {
	index := make(map[string]int, len(rows))
	out := make([]T, 0, len(rows))

	for _, r := range rows {
		k := key(r)
		if i, ok := index[k]; ok {
			out[i] = r
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}

	return out
}

func wrapDatabaseError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
