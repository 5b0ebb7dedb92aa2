package dto

import "github.com/guregu/null/v6"

// RankedReturn is one row of the top gainers or top losers leaderboard.
type RankedReturn struct {
	Symbol      string     `json:"symbol" example:"TATASTEEL"`
	Name        string     `json:"name" example:"Tata Steel Ltd"`
	DailyReturn null.Float `json:"daily_return" swaggertype:"number" example:"0.0472"`
}

// VolatilityLeader is one row of the volatility leaderboard.
type VolatilityLeader struct {
	Symbol        string     `json:"symbol" example:"ADANIENT"`
	Name          string     `json:"name" example:"Adani Enterprises Ltd"`
	Volatility30d null.Float `json:"volatility_30d" swaggertype:"number" example:"0.412"`
}

// SectorPerformance is the average daily return of one sector.
// AvgReturn is null when no company in the sector reported a return.
type SectorPerformance struct {
	Sector    string     `json:"sector" example:"Information Technology"`
	AvgReturn null.Float `json:"avg_return" swaggertype:"number" example:"0.0124"`
	Companies int        `json:"companies" example:"12"`
}
