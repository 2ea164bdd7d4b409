package naverdomain

// StatFields são os campos pedidos ao /stats
var StatFields = []string{"impCnt", "clkCnt", "salesAmt", "ccnt", "convAmt", "avgRnk", "cpc"}

type Stat struct {
	ID       string   `json:"id"`
	ImpCnt   float64  `json:"impCnt"`
	ClkCnt   float64  `json:"clkCnt"`
	SalesAmt float64  `json:"salesAmt"`
	Ccnt     float64  `json:"ccnt"`
	ConvAmt  float64  `json:"convAmt"`
	AvgRnk   *float64 `json:"avgRnk,omitempty"`
	Cpc      *float64 `json:"cpc,omitempty"`
}

type StatsResponse struct {
	Data []Stat `json:"data"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
