package google

import (
	"context"
	"strings"
	"time"

	googledomain "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/google/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/google/googleclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

type GoogleIntegrator struct {
	cfg    config.Google
	Client googleclient.Client
	sinks  collecting.Sinks
}

func New(cfg config.Google, client googleclient.Client, sinks collecting.Sinks) *GoogleIntegrator {
	return &GoogleIntegrator{
		cfg:    cfg,
		Client: client,
		sinks:  sinks,
	}
}

func (s *GoogleIntegrator) Platform() domain.Platform {
	return domain.PlatformGoogle
}

func (s *GoogleIntegrator) Supports(collectionType domain.CollectionType) bool {
	switch collectionType {
	case domain.CollectionTypeAds, domain.CollectionTypeDemographics, domain.CollectionTypeDaily:
		return true
	}
	return false
}

func (s *GoogleIntegrator) Collect(ctx context.Context, req collecting.Request) (*domain.CollectionResult, error) {
	kinds := collecting.ExpandCollectionType(s, req.CollectionType)
	plan := collecting.PlanChunks(kinds, func(domain.CollectionType) []collecting.DateRange {
		return collecting.SplitRange(req.StartDate, req.EndDate, s.cfg.ChunkDays)
	})

	logrus.WithFields(req.Fields()).WithField("chunks", len(plan)).Info("google: starting collection")

	account := googleclient.Account{
		AccessToken:     req.Credential.AccessToken,
		DeveloperToken:  req.Credential.DeveloperToken,
		CustomerID:      req.Credential.CustomerID,
		LoginCustomerID: req.Credential.LoginCustomerID,
	}

	return collecting.RunChunks(ctx, req, plan, s.cfg.RequestDelay, func(ctx context.Context, chunk collecting.Chunk) (int, error) {
		switch chunk.Kind {
		case domain.CollectionTypeAds:
			return s.collectAds(ctx, req, account, chunk.Range)
		case domain.CollectionTypeDemographics:
			return s.collectDemographics(ctx, req, account, chunk.Range)
		}
		return 0, domain.ValidationErrorf("google: tipo de coleta %s não suportado", chunk.Kind)
	})
}

// collectAds junta as métricas de veiculação (anúncio e asset group) com as
// conversões por data de conversão e grava tudo num único upsert
func (s *GoogleIntegrator) collectAds(ctx context.Context, req collecting.Request, account googleclient.Account, r collecting.DateRange) (int, error) {
	queries := []struct {
		query string
		apply func(*performanceMerge, []googledomain.SearchRow)
	}{
		{googledomain.AdMetricsQuery(r.Start, r.End), (*performanceMerge).addAdMetrics},
		{googledomain.AssetGroupMetricsQuery(r.Start, r.End), (*performanceMerge).addAssetGroupMetrics},
		{googledomain.AdConversionsQuery(r.Start, r.End), (*performanceMerge).addAdConversions},
		{googledomain.AssetGroupConversionsQuery(r.Start, r.End), (*performanceMerge).addAssetGroupConversions},
	}

	merge := newPerformanceMerge(req.Integration.AdvertiserID)
	for i, q := range queries {
		if i > 0 {
			if err := utils.Sleep(ctx, s.cfg.RequestDelay); err != nil {
				return 0, err
			}
		}

		rows, err := s.Client.Search(ctx, account, q.query)
		if err != nil {
			return 0, err
		}
		q.apply(merge, rows)
	}

	return s.sinks.Performance.Upsert(ctx, collecting.PreparePerformance(merge.rows()))
}

func (s *GoogleIntegrator) collectDemographics(ctx context.Context, req collecting.Request, account googleclient.Account, r collecting.DateRange) (int, error) {
	genderRows, err := s.Client.Search(ctx, account, googledomain.GenderQuery(r.Start, r.End))
	if err != nil {
		return 0, err
	}

	if err := utils.Sleep(ctx, s.cfg.RequestDelay); err != nil {
		return 0, err
	}

	ageRows, err := s.Client.Search(ctx, account, googledomain.AgeRangeQuery(r.Start, r.End))
	if err != nil {
		return 0, err
	}

	rows := FactoryDemographicRows(req.Integration.AdvertiserID, genderRows, ageRows)
	return s.sinks.Demographics.Upsert(ctx, collecting.PrepareDemographics(rows))
}

// performanceMerge acumula linhas por (ad_id, date)
type performanceMerge struct {
	advertiserID string
	byKey        map[string]*domain.PerformanceRow
	order        []string
}

func newPerformanceMerge(advertiserID string) *performanceMerge {
	return &performanceMerge{
		advertiserID: advertiserID,
		byKey:        make(map[string]*domain.PerformanceRow),
	}
}

func (m *performanceMerge) row(adID string, day time.Time, level domain.RowLevel) *domain.PerformanceRow {
	key := adID + "|" + day.Format(time.DateOnly)
	if row, ok := m.byKey[key]; ok {
		return row
	}

	row := &domain.PerformanceRow{
		AdvertiserID: m.advertiserID,
		Source:       domain.PlatformGoogle,
		AdID:         adID,
		Date:         day,
		Level:        level,
	}
	m.byKey[key] = row
	m.order = append(m.order, key)
	return row
}

func (m *performanceMerge) addAdMetrics(rows []googledomain.SearchRow) {
	for _, r := range rows {
		day, ok := parseDate(r.Segments.Date)
		if !ok || r.AdGroupAd == nil || r.AdGroupAd.Ad.ID == "" {
			continue
		}

		row := m.row(r.AdGroupAd.Ad.ID, day, domain.RowLevelAd)
		if r.Campaign != nil {
			row.CampaignID = collecting.OptionalString(r.Campaign.ID)
			row.CampaignName = collecting.OptionalString(r.Campaign.Name)
		}
		if r.AdGroup != nil {
			row.AdGroupID = collecting.OptionalString(r.AdGroup.ID)
			row.AdGroupName = collecting.OptionalString(r.AdGroup.Name)
		}
		row.AdName = collecting.OptionalString(r.AdGroupAd.Ad.Name)
		addServing(row, r.Metrics)
	}
}

func (m *performanceMerge) addAssetGroupMetrics(rows []googledomain.SearchRow) {
	for _, r := range rows {
		day, ok := parseDate(r.Segments.Date)
		if !ok || r.AssetGroup == nil || r.AssetGroup.ID == "" {
			continue
		}

		row := m.row(r.AssetGroup.ID, day, domain.RowLevelAssetGroup)
		if r.Campaign != nil {
			row.CampaignID = collecting.OptionalString(r.Campaign.ID)
			row.CampaignName = collecting.OptionalString(r.Campaign.Name)
		}
		// Asset group ocupa o lugar do grupo de anúncios e do anúncio
		row.AdGroupID = collecting.OptionalString(r.AssetGroup.ID)
		row.AdGroupName = collecting.OptionalString(r.AssetGroup.Name)
		row.AdName = collecting.OptionalString(r.AssetGroup.Name)
		addServing(row, r.Metrics)
	}
}

func (m *performanceMerge) addAdConversions(rows []googledomain.SearchRow) {
	for _, r := range rows {
		day, ok := parseDate(r.Segments.Date)
		if !ok || r.AdGroupAd == nil || r.AdGroupAd.Ad.ID == "" {
			continue
		}
		addConversions(m.row(r.AdGroupAd.Ad.ID, day, domain.RowLevelAd), r.Metrics)
	}
}

func (m *performanceMerge) addAssetGroupConversions(rows []googledomain.SearchRow) {
	for _, r := range rows {
		day, ok := parseDate(r.Segments.Date)
		if !ok || r.AssetGroup == nil || r.AssetGroup.ID == "" {
			continue
		}
		addConversions(m.row(r.AssetGroup.ID, day, domain.RowLevelAssetGroup), r.Metrics)
	}
}

func (m *performanceMerge) rows() []*domain.PerformanceRow {
	out := make([]*domain.PerformanceRow, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.byKey[key])
	}
	return out
}

func addServing(row *domain.PerformanceRow, metrics googledomain.Metrics) {
	row.Impressions += metrics.Impressions
	row.Clicks += metrics.Clicks
	row.Cost += metrics.Cost()
}

func addConversions(row *domain.PerformanceRow, metrics googledomain.Metrics) {
	row.Conversions += metrics.ConversionsByConversionDate
	row.ConversionValue += metrics.ConversionsValueByConversionDate
}

// FactoryDemographicRows grava gênero com idade "all" e idade com gênero "all",
// pois o Google não cruza as duas dimensões
func FactoryDemographicRows(advertiserID string, genderRows, ageRows []googledomain.SearchRow) []*domain.DemographicRow {
	byKey := make(map[string]*domain.DemographicRow)
	order := make([]string, 0)

	add := func(r googledomain.SearchRow, gender, age string) {
		day, ok := parseDate(r.Segments.Date)
		if !ok {
			return
		}

		row := &domain.DemographicRow{
			AdvertiserID: advertiserID,
			Source:       domain.PlatformGoogle,
			Date:         day,
			Gender:       gender,
			AgeBracket:   age,
		}
		key := row.NaturalKey()
		if existing, ok := byKey[key]; ok {
			row = existing
		} else {
			byKey[key] = row
			order = append(order, key)
		}

		row.Cost += r.Metrics.Cost()
		row.Impressions += r.Metrics.Impressions
		row.Clicks += r.Metrics.Clicks
		row.Conversions += r.Metrics.Conversions
		row.ConversionValue += r.Metrics.ConversionsValue
	}

	for _, r := range genderRows {
		if r.AdGroupCriterion == nil || r.AdGroupCriterion.Gender == nil {
			continue
		}
		add(r, NormalizeGender(r.AdGroupCriterion.Gender.Type), domain.AgeAll)
	}
	for _, r := range ageRows {
		if r.AdGroupCriterion == nil || r.AdGroupCriterion.AgeRange == nil {
			continue
		}
		add(r, domain.GenderAll, NormalizeAgeRange(r.AdGroupCriterion.AgeRange.Type))
	}

	rows := make([]*domain.DemographicRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, byKey[key])
	}
	return rows
}

func NormalizeGender(t string) string {
	switch strings.ToUpper(t) {
	case "MALE":
		return domain.GenderMale
	case "FEMALE":
		return domain.GenderFemale
	}
	return domain.GenderUnknown
}

// NormalizeAgeRange converte AGE_RANGE_25_34 em 25-34 e AGE_RANGE_65_UP em 65+
func NormalizeAgeRange(t string) string {
	t = strings.TrimPrefix(strings.ToUpper(t), "AGE_RANGE_")
	switch {
	case t == "" || t == "UNDETERMINED" || t == "UNKNOWN" || t == "UNSPECIFIED":
		return domain.AgeUnknown
	case strings.HasSuffix(t, "_UP"):
		return strings.TrimSuffix(t, "_UP") + "+"
	}
	return strings.ReplaceAll(t, "_", "-")
}

func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse(time.DateOnly, s)
	return d, err == nil
}
