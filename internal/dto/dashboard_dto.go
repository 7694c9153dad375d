package dto

// DashboardDTO dashboard overview
// DashboardDTO 仪表盘数据
type DashboardDTO struct {
	PortfolioOverview PortfolioOverviewDTO `json:"portfolioOverview"`
	WinLossTradeStats WinLossTradeStatsDTO `json:"winLossTradeStats"`
	RecentTrades      []RecentTradeDTO     `json:"recentTrades"`
	TradingPlan       *TradingPlanDTO      `json:"tradingPlan"`
	JournalTemplate   *JournalTemplateDTO  `json:"journalTemplate"`
}

type PortfolioOverviewDTO struct {
	TotalValue    float64          `json:"totalValue"`
	PnL           StatFieldDTO     `json:"pnl"`
	OverviewStats OverviewStatsDTO `json:"overviewStats"`
}

type StatFieldDTO struct {
	Value      string `json:"value"`
	Percentage string `json:"percentage"`
}

type OverviewStatsDTO struct {
	WinRate      StatFieldDTO  `json:"winRate"`
	ProfitFactor StatFieldDTO  `json:"profitFactor"`
	AvgReturn    StatFieldDTO  `json:"avgReturn"`
	MaxDrawdown  StatFieldDTO  `json:"maxDrawdown"`
	TradeStats   TradeStatsDTO `json:"tradeStats"`
}

type TradeStatsDTO struct {
	Open  float64 `json:"open"`
	Total float64 `json:"total"`
}

type WinLossTradeStatsDTO struct {
	TotalTrades int     `json:"totalTrades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	TotalRisk   float64 `json:"totalRisk"`
	TotalReward float64 `json:"totalReward"`
}

// RecentTradeDTO recent trade row
// RecentTradeDTO 最近交易
type RecentTradeDTO struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Date           string  `json:"date"`
	Account        string  `json:"account"`
	Direction      string  `json:"direction"` // Long / Short
	Status         string  `json:"status"`    // CLOSED / RUNNING
	ProjectedEntry float64 `json:"projectedEntry"`
	ActualEntry    float64 `json:"actualEntry"`
	ProjectedSL    float64 `json:"projectedSL"`
	ActualExit     float64 `json:"actualExit"`
	ActualPL       float64 `json:"actualPL"`
	MaxPossiblePL  float64 `json:"maxPossiblePL"`
	Balance        float64 `json:"balance"`
}
