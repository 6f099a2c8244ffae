// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type AddWatchlistReq struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company,optional"`
}

type AddWatchlistResp struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
	AddedAt string `json:"addedAt"`
}

type RemoveWatchlistReq struct {
	Symbol string `path:"symbol"`
}

type MessageResp struct {
	Message string `json:"message"`
}

type WatchlistItem struct {
	Symbol          string   `json:"symbol"`
	Company         string   `json:"company"`
	AddedAt         string   `json:"addedAt"`
	CurrentPrice    float64  `json:"currentPrice"`
	PriceFormatted  string   `json:"priceFormatted"`
	ChangeFormatted string   `json:"changeFormatted"`
	ChangePercent   float64  `json:"changePercent"`
	MarketCap       string   `json:"marketCap"`
	PERatio         *float64 `json:"peRatio,omitempty"`
}

type GetWatchlistResp struct {
	Items []WatchlistItem `json:"items"`
}
