package meta

import (
	"context"
	"strings"
	"time"

	metadomain "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/meta/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/meta/metaclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

type MetaIntegrator struct {
	cfg             config.Meta
	Client          metaclient.Client
	sinks           collecting.Sinks
	conversionTypes []string
}

func New(cfg config.Meta, client metaclient.Client, sinks collecting.Sinks) *MetaIntegrator {
	types := make([]string, 0, len(cfg.ConversionTypes))
	for _, t := range cfg.ConversionTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}

	return &MetaIntegrator{
		cfg:             cfg,
		Client:          client,
		sinks:           sinks,
		conversionTypes: types,
	}
}

func (s *MetaIntegrator) Platform() domain.Platform {
	return domain.PlatformMeta
}

func (s *MetaIntegrator) Supports(collectionType domain.CollectionType) bool {
	switch collectionType {
	case domain.CollectionTypeAds, domain.CollectionTypeDemographics, domain.CollectionTypeCreatives, domain.CollectionTypeDaily:
		return true
	}
	return false
}

func (s *MetaIntegrator) Collect(ctx context.Context, req collecting.Request) (*domain.CollectionResult, error) {
	kinds := collecting.ExpandCollectionType(s, req.CollectionType)

	plan := collecting.PlanChunks(kinds, func(kind domain.CollectionType) []collecting.DateRange {
		// A listagem de criativos não depende do período
		if kind == domain.CollectionTypeCreatives {
			return []collecting.DateRange{{Start: req.StartDate, End: req.EndDate}}
		}
		return collecting.SplitRange(req.StartDate, req.EndDate, s.cfg.ChunkDays)
	})

	logrus.WithFields(req.Fields()).WithField("chunks", len(plan)).Info("meta: starting collection")

	return collecting.RunChunks(ctx, req, plan, s.cfg.RequestDelay, func(ctx context.Context, chunk collecting.Chunk) (int, error) {
		switch chunk.Kind {
		case domain.CollectionTypeAds:
			return s.collectAds(ctx, req, chunk.Range)
		case domain.CollectionTypeDemographics:
			return s.collectDemographics(ctx, req, chunk.Range)
		case domain.CollectionTypeCreatives:
			return s.collectCreatives(ctx, req)
		}
		return 0, domain.ValidationErrorf("meta: tipo de coleta %s não suportado", chunk.Kind)
	})
}

func (s *MetaIntegrator) collectAds(ctx context.Context, req collecting.Request, r collecting.DateRange) (int, error) {
	insights, err := s.Client.GetAdInsights(ctx, req.Credential.AccessToken, req.Credential.AdAccountID, metaclient.InsightsParams{
		StartDate: r.Start,
		EndDate:   r.End,
	})
	if err != nil {
		return 0, err
	}

	rows := collecting.PreparePerformance(FactoryPerformanceRows(req.Integration.AdvertiserID, insights, s.conversionTypes))
	return s.sinks.Performance.Upsert(ctx, rows)
}

func (s *MetaIntegrator) collectDemographics(ctx context.Context, req collecting.Request, r collecting.DateRange) (int, error) {
	insights, err := s.Client.GetAdInsights(ctx, req.Credential.AccessToken, req.Credential.AdAccountID, metaclient.InsightsParams{
		StartDate:  r.Start,
		EndDate:    r.End,
		Breakdowns: []string{"age", "gender"},
	})
	if err != nil {
		return 0, err
	}

	rows := collecting.PrepareDemographics(FactoryDemographicRows(req.Integration.AdvertiserID, insights, s.conversionTypes))
	return s.sinks.Demographics.Upsert(ctx, rows)
}

func (s *MetaIntegrator) collectCreatives(ctx context.Context, req collecting.Request) (int, error) {
	ads, err := s.Client.GetAds(ctx, req.Credential.AccessToken, req.Credential.AdAccountID)
	if err != nil {
		return 0, err
	}

	return s.sinks.Creatives.Upsert(ctx, FactoryCreativeRows(req.Integration.AdvertiserID, ads))
}

// FactoryPerformanceRows converte as linhas de insights (level=ad, time_increment=1)
func FactoryPerformanceRows(advertiserID string, insights []metadomain.AdInsight, conversionTypes []string) []*domain.PerformanceRow {
	rows := make([]*domain.PerformanceRow, 0, len(insights))

	for _, in := range insights {
		day, err := time.Parse(time.DateOnly, in.DateStart)
		if err != nil || in.AdID == "" {
			logrus.WithFields(logrus.Fields{"ad_id": in.AdID, "date_start": in.DateStart}).
				Warn("meta: skipping insight without ad id or date")
			continue
		}

		rows = append(rows, &domain.PerformanceRow{
			AdvertiserID:    advertiserID,
			Source:          domain.PlatformMeta,
			AdID:            in.AdID,
			Date:            day,
			Level:           domain.RowLevelAd,
			CampaignID:      collecting.OptionalString(in.CampaignID),
			CampaignName:    collecting.OptionalString(in.CampaignName),
			AdGroupID:       collecting.OptionalString(in.AdsetID),
			AdGroupName:     collecting.OptionalString(in.AdsetName),
			AdName:          collecting.OptionalString(in.AdName),
			Cost:            utils.ParseFloat(in.Spend),
			Impressions:     utils.ParseInt(in.Impressions),
			Clicks:          utils.ParseInt(in.Clicks),
			Conversions:     metadomain.FirstAction(in.Actions, conversionTypes, utils.ParseFloat),
			ConversionValue: metadomain.FirstAction(in.ActionValues, conversionTypes, utils.ParseFloat),
		})
	}

	return rows
}

// FactoryDemographicRows agrega os breakdowns de idade e gênero por data
func FactoryDemographicRows(advertiserID string, insights []metadomain.AdInsight, conversionTypes []string) []*domain.DemographicRow {
	byKey := make(map[string]*domain.DemographicRow)
	order := make([]string, 0)

	for _, in := range insights {
		day, err := time.Parse(time.DateOnly, in.DateStart)
		if err != nil {
			continue
		}

		row := &domain.DemographicRow{
			AdvertiserID: advertiserID,
			Source:       domain.PlatformMeta,
			Date:         day,
			Gender:       NormalizeGender(in.Gender),
			AgeBracket:   NormalizeAge(in.Age),
		}

		key := row.NaturalKey()
		if existing, ok := byKey[key]; ok {
			row = existing
		} else {
			byKey[key] = row
			order = append(order, key)
		}

		row.Cost += utils.ParseFloat(in.Spend)
		row.Impressions += utils.ParseInt(in.Impressions)
		row.Clicks += utils.ParseInt(in.Clicks)
		row.Conversions += metadomain.FirstAction(in.Actions, conversionTypes, utils.ParseFloat)
		row.ConversionValue += metadomain.FirstAction(in.ActionValues, conversionTypes, utils.ParseFloat)
	}

	rows := make([]*domain.DemographicRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, byKey[key])
	}
	return rows
}

func FactoryCreativeRows(advertiserID string, ads []metadomain.Ad) []*domain.CreativeRow {
	rows := make([]*domain.CreativeRow, 0, len(ads))

	for _, ad := range ads {
		if ad.ID == "" {
			continue
		}

		row := &domain.CreativeRow{
			AdvertiserID: advertiserID,
			AdID:         ad.ID,
			Source:       domain.PlatformMeta,
			AdName:       collecting.OptionalString(ad.Name),
			Status:       collecting.OptionalString(ad.EffectiveStatus),
		}
		if ad.Campaign != nil {
			row.CampaignName = collecting.OptionalString(ad.Campaign.Name)
		}
		if ad.Adset != nil {
			row.AdGroupName = collecting.OptionalString(ad.Adset.Name)
		}

		mediaType := domain.MediaTypeText
		if c := ad.Creative; c != nil {
			row.Headline = collecting.OptionalString(c.Title)
			row.ThumbnailURL = collecting.OptionalString(c.ThumbnailURL)
			row.MediaURL = collecting.OptionalString(c.ImageURL)

			switch {
			case c.VideoID != "":
				mediaType = domain.MediaTypeVideo
			case strings.EqualFold(c.ObjectType, "CAROUSEL"):
				mediaType = domain.MediaTypeCarousel
			case c.ImageURL != "" || c.ThumbnailURL != "":
				mediaType = domain.MediaTypeImage
			}
			if row.MediaURL == nil {
				row.MediaURL = row.ThumbnailURL
			}
		}
		row.MediaType = &mediaType

		rows = append(rows, row)
	}

	return rows
}

func NormalizeGender(g string) string {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "male":
		return domain.GenderMale
	case "female":
		return domain.GenderFemale
	}
	return domain.GenderUnknown
}

func NormalizeAge(a string) string {
	a = strings.TrimSpace(a)
	if a == "" || strings.EqualFold(a, "unknown") {
		return domain.AgeUnknown
	}
	return a
}
