package coingecko

// ExchangeListing is one entry of the /exchanges listing. Field names follow
// the CoinGecko payload.
type ExchangeListing struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	YearEstablished    *int     `json:"year_established"`
	Country            *string  `json:"country"`
	Description        *string  `json:"description"`
	URL                string   `json:"url"`
	Image              string   `json:"image"`
	HasTradingIncentive *bool   `json:"has_trading_incentive"`
	TrustScore         *int     `json:"trust_score"`
	TrustScoreRank     *int     `json:"trust_score_rank"`
	TradeVolume24hBTC  *float64 `json:"trade_volume_24h_btc"`
}
