package repository

import (
	"context"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/lib/pq"
)

var adPerformanceUpsert = upsertStatement{
	table: "ad_performance",
	columns: []string{
		"advertiser_id", "source", "ad_id", "date", "level",
		"campaign_id", "campaign_name", "ad_group_id", "ad_group_name", "ad_name",
		"cost", "impressions", "clicks", "conversions", "conversion_value",
		"average_rank", "cost_per_click", "data_issues",
	},
	conflictKey: []string{"advertiser_id", "source", "ad_id", "date"},
	updateSet: excluded(
		"level", "campaign_id", "campaign_name", "ad_group_id", "ad_group_name", "ad_name",
		"cost", "impressions", "clicks", "conversions", "conversion_value",
		"average_rank", "cost_per_click", "data_issues",
	),
}

type AdPerformanceRepository interface {
	// Upsert grava as linhas pela chave natural (advertiser_id, source, ad_id, date)
	Upsert(ctx context.Context, rows []*domain.PerformanceRow) (int, error)
}

type adPerformanceRepository struct {
	conn *postgres.Connection
}

func NewAdPerformanceRepository(conn *postgres.Connection) AdPerformanceRepository {
	return &adPerformanceRepository{
		conn: conn,
	}
}

func (r *adPerformanceRepository) Upsert(ctx context.Context, rows []*domain.PerformanceRow) (int, error) {
	rows = dedupeByKey(rows, func(row *domain.PerformanceRow) string { return row.NaturalKey() })

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		issues := row.Issues
		if issues == nil {
			issues = []string{}
		}

		values = append(values, []interface{}{
			row.AdvertiserID,
			string(row.Source),
			row.AdID,
			row.Date.Format(time.DateOnly),
			string(row.Level),
			row.CampaignID,
			row.CampaignName,
			row.AdGroupID,
			row.AdGroupName,
			row.AdName,
			row.Cost,
			row.Impressions,
			row.Clicks,
			row.Conversions,
			row.ConversionValue,
			row.AverageRank,
			row.CostPerClick,
			pq.Array(issues),
		})
	}

	return runUpsert(ctx, r.conn, adPerformanceUpsert, values)
}
