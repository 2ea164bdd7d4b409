package repository

import (
	"context"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/database/postgres"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
)

var creativeUpsert = upsertStatement{
	table: "ad_creatives",
	columns: []string{
		"advertiser_id", "ad_id", "source", "ad_name", "campaign_name", "ad_group_name",
		"media_url", "thumbnail_url", "media_type", "headline", "status",
	},
	conflictKey: []string{"advertiser_id", "ad_id"},
	updateSet: excluded(
		"source", "ad_name", "campaign_name", "ad_group_name",
		"media_url", "thumbnail_url", "media_type", "headline", "status",
	),
}

type CreativeRepository interface {
	Upsert(ctx context.Context, rows []*domain.CreativeRow) (int, error)
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

func (r *creativeRepository) Upsert(ctx context.Context, rows []*domain.CreativeRow) (int, error) {
	rows = dedupeByKey(rows, func(row *domain.CreativeRow) string { return row.NaturalKey() })

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, []interface{}{
			row.AdvertiserID,
			row.AdID,
			string(row.Source),
			row.AdName,
			row.CampaignName,
			row.AdGroupName,
			row.MediaURL,
			row.ThumbnailURL,
			row.MediaType,
			row.Headline,
			row.Status,
		})
	}

	return runUpsert(ctx, r.conn, creativeUpsert, values)
}
