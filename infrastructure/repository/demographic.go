package repository

import (
	"context"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
)

var demographicUpsert = upsertStatement{
	table: "ad_demographics",
	columns: []string{
		"advertiser_id", "date", "gender", "age_bracket", "source",
		"cost", "impressions", "clicks", "conversions", "conversion_value",
	},
	conflictKey: []string{"advertiser_id", "date", "gender", "age_bracket", "source"},
	updateSet:   excluded("cost", "impressions", "clicks", "conversions", "conversion_value"),
}

type DemographicRepository interface {
	Upsert(ctx context.Context, rows []*domain.DemographicRow) (int, error)
}

type demographicRepository struct {
	conn *postgres.Connection
}

func NewDemographicRepository(conn *postgres.Connection) DemographicRepository {
	return &demographicRepository{
		conn: conn,
	}
}

func (r *demographicRepository) Upsert(ctx context.Context, rows []*domain.DemographicRow) (int, error) {
	rows = dedupeByKey(rows, func(row *domain.DemographicRow) string { return row.NaturalKey() })

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, []interface{}{
			row.AdvertiserID,
			row.Date.Format(time.DateOnly),
			row.Gender,
			row.AgeBracket,
			string(row.Source),
			row.Cost,
			row.Impressions,
			row.Clicks,
			row.Conversions,
			row.ConversionValue,
		})
	}

	return runUpsert(ctx, r.conn, demographicUpsert, values)
}
