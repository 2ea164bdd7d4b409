package metadomain

// Ad é um anúncio de /act_{id}/ads com o criativo expandido
type Ad struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	EffectiveStatus string    `json:"effective_status"`
	Campaign        *NamedRef `json:"campaign,omitempty"`
	Adset           *NamedRef `json:"adset,omitempty"`
	Creative        *Creative `json:"creative,omitempty"`
}

type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Creative struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	VideoID      string `json:"video_id"`
	ObjectType   string `json:"object_type"`
}

// CreativeFields é o parâmetro fields da listagem de anúncios
const CreativeFields = "id,name,effective_status,campaign{id,name},adset{id,name}," +
	"creative{id,title,body,image_url,thumbnail_url,video_id,object_type}"

type AdsResponse struct {
	Data   []Ad    `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}
