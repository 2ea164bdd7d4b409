package naverdomain

type Campaign struct {
	NccCampaignID string `json:"nccCampaignId"`
	Name          string `json:"name"`
	CampaignTp    string `json:"campaignTp"`
	Status        string `json:"status"`
}

type AdGroup struct {
	NccAdgroupID  string `json:"nccAdgroupId"`
	NccCampaignID string `json:"nccCampaignId"`
	Name          string `json:"name"`
	Status        string `json:"status"`
}

type Ad struct {
	NccAdID      string    `json:"nccAdId"`
	NccAdgroupID string    `json:"nccAdgroupId"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Ad           AdContent `json:"ad"`
}

type AdContent struct {
	Headline    string   `json:"headline"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Pc          *Landing `json:"pc,omitempty"`
	Mobile      *Landing `json:"mobile,omitempty"`
}

type Landing struct {
	Final string `json:"final"`
}

// AdRef é um anúncio com os nomes da hierarquia já resolvidos
type AdRef struct {
	Ad           Ad
	CampaignID   string
	CampaignName string
	AdGroupID    string
	AdGroupName  string
}

// Hierarchy é o resultado da listagem campanhas → grupos → anúncios
type Hierarchy struct {
	Ads []AdRef
}

func (h *Hierarchy) AdIDs() []string {
	ids := make([]string, 0, len(h.Ads))
	for _, a := range h.Ads {
		ids = append(ids, a.Ad.NccAdID)
	}
	return ids
}

func (h *Hierarchy) Index() map[string]AdRef {
	index := make(map[string]AdRef, len(h.Ads))
	for _, a := range h.Ads {
		index[a.Ad.NccAdID] = a
	}
	return index
}
