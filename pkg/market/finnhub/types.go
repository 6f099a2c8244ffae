package finnhub

// QuoteData mirrors the /quote endpoint payload.
// Finnhub returns an all-zero body for symbols it does not track.
type QuoteData struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// empty reports whether the quote carries no market data at all.
func (q *QuoteData) empty() bool {
	return q.Current == 0 && q.PrevClose == 0 && q.Timestamp == 0
}

// ProfileData mirrors the /stock/profile2 endpoint payload.
// Finnhub returns an empty object for unknown symbols.
type ProfileData struct {
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	// MarketCapitalization is reported in millions of the listing currency.
	MarketCapitalization float64 `json:"marketCapitalization"`
	SharesOutstanding    float64 `json:"shareOutstanding"`
	Industry             string  `json:"finnhubIndustry"`
	WebURL               string  `json:"weburl"`
	Logo                 string  `json:"logo"`
}

// MetricsData mirrors the subset of /stock/metric?metric=all we consume.
type MetricsData struct {
	Metric struct {
		PETTM *float64 `json:"peTTM"`
	} `json:"metric"`
}
