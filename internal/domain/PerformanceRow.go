package domain

import (
	"fmt"
	"time"
)

type RowLevel string

const (
	RowLevelAd         RowLevel = "ad"
	RowLevelAssetGroup RowLevel = "asset_group"
)

// Marcadores de qualidade gravados junto da linha
const (
	IssueMissingCampaignName = "missing_campaign_name"
	IssueMissingAdGroupName  = "missing_ad_group_name"
	IssueMissingAdName       = "missing_ad_name"
)

// PerformanceRow é uma observação (anunciante, plataforma, anúncio, data).
// Chave natural: (advertiser_id, source, ad_id, date).
type PerformanceRow struct {
	AdvertiserID    string     `json:"advertiser_id"`
	Source          Platform   `json:"source"`
	AdID            string     `json:"ad_id"`
	Date            time.Time  `json:"date"`
	Level           RowLevel   `json:"level"`
	CampaignID      *string    `json:"campaign_id"`
	CampaignName    *string    `json:"campaign_name"`
	AdGroupID       *string    `json:"ad_group_id"`
	AdGroupName     *string    `json:"ad_group_name"`
	AdName          *string    `json:"ad_name"`
	Cost            float64    `json:"cost"`
	Impressions     int64      `json:"impressions"`
	Clicks          int64      `json:"clicks"`
	Conversions     float64    `json:"conversions"`
	ConversionValue float64    `json:"conversion_value"`
	AverageRank     *float64   `json:"average_rank"`
	CostPerClick    *float64   `json:"cost_per_click"`
	Issues          []string   `json:"issues"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

func (r *PerformanceRow) NaturalKey() string {
	return fmt.Sprintf("%s|%s|%s|%s", r.AdvertiserID, r.Source, r.AdID, r.Date.Format(time.DateOnly))
}

// IsZeroSignal indica uma linha sem impressões, cliques e conversões
func (r *PerformanceRow) IsZeroSignal() bool {
	return r.Impressions == 0 && r.Clicks == 0 && r.Conversions == 0
}

// TagIssues marca nomes desnormalizados ausentes sem descartar a linha
func (r *PerformanceRow) TagIssues() {
	r.Issues = nil
	if !hasValue(r.CampaignName) {
		r.Issues = append(r.Issues, IssueMissingCampaignName)
	}
	if !hasValue(r.AdGroupName) {
		r.Issues = append(r.Issues, IssueMissingAdGroupName)
	}
	if !hasValue(r.AdName) {
		r.Issues = append(r.Issues, IssueMissingAdName)
	}
}

// DemographicRow é uma observação (anunciante, data, gênero, faixa etária, plataforma)
type DemographicRow struct {
	AdvertiserID    string    `json:"advertiser_id"`
	Source          Platform  `json:"source"`
	Date            time.Time `json:"date"`
	Gender          string    `json:"gender"`
	AgeBracket      string    `json:"age_bracket"`
	Cost            float64   `json:"cost"`
	Impressions     int64     `json:"impressions"`
	Clicks          int64     `json:"clicks"`
	Conversions     float64   `json:"conversions"`
	ConversionValue float64   `json:"conversion_value"`
}

func (r *DemographicRow) NaturalKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", r.AdvertiserID, r.Date.Format(time.DateOnly), r.Gender, r.AgeBracket, r.Source)
}

func (r *DemographicRow) IsZeroSignal() bool {
	return r.Impressions == 0 && r.Clicks == 0 && r.Conversions == 0
}

// Valores canônicos de gênero e faixa etária
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"

	AgeUnknown = "unknown"

	// Usados quando a plataforma reporta gênero e idade em visões separadas
	GenderAll = "all"
	AgeAll    = "all"
)

// CreativeRow são os metadados de um anúncio. Chave natural: (advertiser_id, ad_id).
type CreativeRow struct {
	AdvertiserID string   `json:"advertiser_id"`
	AdID         string   `json:"ad_id"`
	Source       Platform `json:"source"`
	AdName       *string  `json:"ad_name"`
	CampaignName *string  `json:"campaign_name"`
	AdGroupName  *string  `json:"ad_group_name"`
	MediaURL     *string  `json:"media_url"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	MediaType    *string  `json:"media_type"`
	Headline     *string  `json:"headline"`
	Status       *string  `json:"status"`
}

func (r *CreativeRow) NaturalKey() string {
	return fmt.Sprintf("%s|%s", r.AdvertiserID, r.AdID)
}

const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeCarousel = "carousel"
	MediaTypeText     = "text"
)
