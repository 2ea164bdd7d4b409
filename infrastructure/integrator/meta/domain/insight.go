package metadomain

// Action é uma entrada de actions / action_values do relatório de insights
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// AdInsight é uma linha de /insights com level=ad e time_increment=1
type AdInsight struct {
	AccountID    string   `json:"account_id"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	AdsetID      string   `json:"adset_id"`
	AdsetName    string   `json:"adset_name"`
	AdID         string   `json:"ad_id"`
	AdName       string   `json:"ad_name"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`

	// Preenchidos apenas com breakdowns=age,gender
	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// FirstAction retorna o valor do primeiro action_type presente, na ordem de
// prioridade de types. Os tipos de compra do Meta se sobrepõem (purchase já
// inclui offsite_conversion.fb_pixel_purchase), então eles não são somados.
func FirstAction(actions []Action, types []string, parse func(string) float64) float64 {
	for _, t := range types {
		for _, a := range actions {
			if a.ActionType == t {
				return parse(a.Value)
			}
		}
	}
	return 0
}

type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next"`
}

type InsightsResponse struct {
	Data   []AdInsight `json:"data"`
	Paging *Paging     `json:"paging,omitempty"`
}
