package googledomain

// SearchRow é um item de results da resposta de googleAds:search (REST, camelCase).
// Campos int64 chegam como string no JSON.
type SearchRow struct {
	Campaign         *Campaign         `json:"campaign,omitempty"`
	AdGroup          *Resource         `json:"adGroup,omitempty"`
	AdGroupAd        *AdGroupAd        `json:"adGroupAd,omitempty"`
	AssetGroup       *Resource         `json:"assetGroup,omitempty"`
	AdGroupCriterion *AdGroupCriterion `json:"adGroupCriterion,omitempty"`
	Segments         Segments          `json:"segments"`
	Metrics          Metrics           `json:"metrics"`
}

type Resource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Campaign struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	AdvertisingChannelType string `json:"advertisingChannelType"`
}

type AdGroupAd struct {
	Ad Resource `json:"ad"`
}

type AdGroupCriterion struct {
	Gender   *CriterionType `json:"gender,omitempty"`
	AgeRange *CriterionType `json:"ageRange,omitempty"`
}

type CriterionType struct {
	Type string `json:"type"`
}

type Segments struct {
	Date string `json:"date"`
}

type Metrics struct {
	Impressions                      int64   `json:"impressions,string"`
	Clicks                           int64   `json:"clicks,string"`
	CostMicros                       int64   `json:"costMicros,string"`
	Conversions                      float64 `json:"conversions"`
	ConversionsValue                 float64 `json:"conversionsValue"`
	ConversionsByConversionDate      float64 `json:"conversionsByConversionDate"`
	ConversionsValueByConversionDate float64 `json:"conversionsValueByConversionDate"`
}

// Cost converte micros para a moeda da conta
func (m Metrics) Cost() float64 {
	return float64(m.CostMicros) / 1e6
}

type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []SearchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken"`
}

// ErrorResponse é o envelope de erro da API REST do Google Ads
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

const ChannelPerformanceMax = "PERFORMANCE_MAX"
