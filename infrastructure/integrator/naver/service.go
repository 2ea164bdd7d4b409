package naver

import (
	"context"
	"time"

	naverdomain "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/naver/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/integrator/naver/naverclient"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
)

type NaverIntegrator struct {
	cfg    config.Naver
	Client naverclient.Client
	sinks  collecting.Sinks
}

func New(cfg config.Naver, client naverclient.Client, sinks collecting.Sinks) *NaverIntegrator {
	return &NaverIntegrator{
		cfg:    cfg,
		Client: client,
		sinks:  sinks,
	}
}

func (s *NaverIntegrator) Platform() domain.Platform {
	return domain.PlatformNaver
}

func (s *NaverIntegrator) Supports(collectionType domain.CollectionType) bool {
	switch collectionType {
	case domain.CollectionTypeAds, domain.CollectionTypeCreatives, domain.CollectionTypeDaily:
		return true
	}
	return false
}

// Collect lista a hierarquia uma única vez; se isso falhar o job falha antes
// de qualquer chunk
func (s *NaverIntegrator) Collect(ctx context.Context, req collecting.Request) (*domain.CollectionResult, error) {
	account := naverclient.Account{
		APIKey:     req.Credential.APIKey,
		SecretKey:  req.Credential.SecretKey,
		CustomerID: req.Credential.NaverCustomerID,
	}

	logrus.WithFields(req.Fields()).Info("naver: listing ad hierarchy")

	hierarchy, err := s.ListHierarchy(ctx, account)
	if err != nil {
		return nil, err
	}

	kinds := collecting.ExpandCollectionType(s, req.CollectionType)
	plan := collecting.PlanChunks(kinds, func(kind domain.CollectionType) []collecting.DateRange {
		if kind == domain.CollectionTypeCreatives {
			return []collecting.DateRange{{Start: req.StartDate, End: req.EndDate}}
		}
		return collecting.SplitRange(req.StartDate, req.EndDate, 1)
	})

	logrus.WithFields(req.Fields()).WithFields(logrus.Fields{
		"chunks": len(plan),
		"ads":    len(hierarchy.Ads),
	}).Info("naver: starting collection")

	return collecting.RunChunks(ctx, req, plan, s.cfg.RequestDelay, func(ctx context.Context, chunk collecting.Chunk) (int, error) {
		switch chunk.Kind {
		case domain.CollectionTypeAds:
			return s.collectDay(ctx, req, account, hierarchy, chunk.Range.Start)
		case domain.CollectionTypeCreatives:
			rows := FactoryCreativeRows(req.Integration.AdvertiserID, hierarchy)
			return s.sinks.Creatives.Upsert(ctx, rows)
		}
		return 0, domain.ValidationErrorf("naver: tipo de coleta %s não suportado", chunk.Kind)
	})
}

// ListHierarchy percorre campanhas → grupos → anúncios com o atraso entre
// todas as requisições
func (s *NaverIntegrator) ListHierarchy(ctx context.Context, account naverclient.Account) (*naverdomain.Hierarchy, error) {
	campaigns, err := s.Client.ListCampaigns(ctx, account)
	if err != nil {
		return nil, err
	}

	hierarchy := &naverdomain.Hierarchy{}
	for _, campaign := range campaigns {
		if err := utils.Sleep(ctx, s.cfg.RequestDelay); err != nil {
			return nil, err
		}

		adGroups, err := s.Client.ListAdGroups(ctx, account, campaign.NccCampaignID)
		if err != nil {
			return nil, err
		}

		for _, adGroup := range adGroups {
			if err := utils.Sleep(ctx, s.cfg.RequestDelay); err != nil {
				return nil, err
			}

			ads, err := s.Client.ListAds(ctx, account, adGroup.NccAdgroupID)
			if err != nil {
				return nil, err
			}

			for _, ad := range ads {
				hierarchy.Ads = append(hierarchy.Ads, naverdomain.AdRef{
					Ad:           ad,
					CampaignID:   campaign.NccCampaignID,
					CampaignName: campaign.Name,
					AdGroupID:    adGroup.NccAdgroupID,
					AdGroupName:  adGroup.Name,
				})
			}
		}
	}

	return hierarchy, nil
}

func (s *NaverIntegrator) collectDay(ctx context.Context, req collecting.Request, account naverclient.Account, hierarchy *naverdomain.Hierarchy, day time.Time) (int, error) {
	ids := hierarchy.AdIDs()
	if len(ids) == 0 {
		return 0, nil
	}

	stats := make([]naverdomain.Stat, 0, len(ids))
	for i, batch := range batches(ids, s.cfg.StatsBatchSize) {
		if i > 0 {
			if err := utils.Sleep(ctx, s.cfg.RequestDelay); err != nil {
				return 0, err
			}
		}

		batchStats, err := s.Client.GetStats(ctx, account, batch, day)
		if err != nil {
			return 0, err
		}
		stats = append(stats, batchStats...)
	}

	rows := FactoryPerformanceRows(req.Integration.AdvertiserID, day, hierarchy, stats)
	return s.sinks.Performance.Upsert(ctx, collecting.PreparePerformance(rows))
}

// FactoryPerformanceRows converte as estatísticas de um dia em linhas,
// usando os nomes já resolvidos na hierarquia
func FactoryPerformanceRows(advertiserID string, day time.Time, hierarchy *naverdomain.Hierarchy, stats []naverdomain.Stat) []*domain.PerformanceRow {
	index := hierarchy.Index()

	rows := make([]*domain.PerformanceRow, 0, len(stats))
	for _, stat := range stats {
		if stat.ID == "" {
			continue
		}

		row := &domain.PerformanceRow{
			AdvertiserID:    advertiserID,
			Source:          domain.PlatformNaver,
			AdID:            stat.ID,
			Date:            day,
			Level:           domain.RowLevelAd,
			Cost:            stat.SalesAmt,
			Impressions:     int64(stat.ImpCnt),
			Clicks:          int64(stat.ClkCnt),
			Conversions:     stat.Ccnt,
			ConversionValue: stat.ConvAmt,
			AverageRank:     stat.AvgRnk,
			CostPerClick:    stat.Cpc,
		}

		if ref, ok := index[stat.ID]; ok {
			row.CampaignID = collecting.OptionalString(ref.CampaignID)
			row.CampaignName = collecting.OptionalString(ref.CampaignName)
			row.AdGroupID = collecting.OptionalString(ref.AdGroupID)
			row.AdGroupName = collecting.OptionalString(ref.AdGroupName)
			row.AdName = collecting.OptionalString(ref.Ad.Ad.Headline)
		}

		rows = append(rows, row)
	}

	return rows
}

func FactoryCreativeRows(advertiserID string, hierarchy *naverdomain.Hierarchy) []*domain.CreativeRow {
	mediaType := domain.MediaTypeText

	rows := make([]*domain.CreativeRow, 0, len(hierarchy.Ads))
	for _, ref := range hierarchy.Ads {
		row := &domain.CreativeRow{
			AdvertiserID: advertiserID,
			AdID:         ref.Ad.NccAdID,
			Source:       domain.PlatformNaver,
			AdName:       collecting.OptionalString(ref.Ad.Ad.Headline),
			CampaignName: collecting.OptionalString(ref.CampaignName),
			AdGroupName:  collecting.OptionalString(ref.AdGroupName),
			Headline:     collecting.OptionalString(ref.Ad.Ad.Headline),
			Status:       collecting.OptionalString(ref.Ad.Status),
			MediaType:    &mediaType,
		}

		if ref.Ad.Ad.Image != "" {
			row.MediaURL = collecting.OptionalString(ref.Ad.Ad.Image)
			image := domain.MediaTypeImage
			row.MediaType = &image
		}

		rows = append(rows, row)
	}

	return rows
}

func batches(ids []string, size int) [][]string {
	if size <= 0 {
		size = len(ids)
	}

	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
