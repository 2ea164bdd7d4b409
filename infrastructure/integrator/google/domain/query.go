package googledomain

import (
	"fmt"
	"time"
)

func between(start, end time.Time) string {
	return fmt.Sprintf("segments.date BETWEEN '%s' AND '%s'", start.Format(time.DateOnly), end.Format(time.DateOnly))
}

// AdMetricsQuery traz as métricas de veiculação por anúncio e data
func AdMetricsQuery(start, end time.Time) string {
	return "SELECT campaign.id, campaign.name, ad_group.id, ad_group.name, ad_group_ad.ad.id, ad_group_ad.ad.name, " +
		"segments.date, metrics.impressions, metrics.clicks, metrics.cost_micros " +
		"FROM ad_group_ad WHERE " + between(start, end)
}

// AdConversionsQuery traz as conversões atribuídas pela data da conversão
func AdConversionsQuery(start, end time.Time) string {
	return "SELECT ad_group_ad.ad.id, segments.date, " +
		"metrics.conversions_by_conversion_date, metrics.conversions_value_by_conversion_date " +
		"FROM ad_group_ad WHERE " + between(start, end)
}

// AssetGroupMetricsQuery cobre campanhas Performance Max, que não têm nível de anúncio
func AssetGroupMetricsQuery(start, end time.Time) string {
	return "SELECT campaign.id, campaign.name, campaign.advertising_channel_type, asset_group.id, asset_group.name, " +
		"segments.date, metrics.impressions, metrics.clicks, metrics.cost_micros " +
		"FROM asset_group WHERE campaign.advertising_channel_type = '" + ChannelPerformanceMax + "' AND " + between(start, end)
}

func AssetGroupConversionsQuery(start, end time.Time) string {
	return "SELECT asset_group.id, segments.date, " +
		"metrics.conversions_by_conversion_date, metrics.conversions_value_by_conversion_date " +
		"FROM asset_group WHERE campaign.advertising_channel_type = '" + ChannelPerformanceMax + "' AND " + between(start, end)
}

func GenderQuery(start, end time.Time) string {
	return "SELECT ad_group_criterion.gender.type, segments.date, metrics.impressions, metrics.clicks, " +
		"metrics.cost_micros, metrics.conversions, metrics.conversions_value " +
		"FROM gender_view WHERE " + between(start, end)
}

func AgeRangeQuery(start, end time.Time) string {
	return "SELECT ad_group_criterion.age_range.type, segments.date, metrics.impressions, metrics.clicks, " +
		"metrics.cost_micros, metrics.conversions, metrics.conversions_value " +
		"FROM age_range_view WHERE " + between(start, end)
}
