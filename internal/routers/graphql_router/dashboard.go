package graphql_router

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/haierkeys/trade-journal-service/internal/dto"
)

type dashboardResolver struct {
	d *dto.DashboardDTO
}

func (r *dashboardResolver) PortfolioOverview() *portfolioResolver {
	return &portfolioResolver{p: &r.d.PortfolioOverview}
}

func (r *dashboardResolver) WinLossTradeStats() *winLossResolver {
	return &winLossResolver{s: &r.d.WinLossTradeStats}
}

func (r *dashboardResolver) RecentTrades() []*tradeResolver {
	out := make([]*tradeResolver, 0, len(r.d.RecentTrades))
	for i := range r.d.RecentTrades {
		out = append(out, &tradeResolver{t: &r.d.RecentTrades[i]})
	}
	return out
}

func (r *dashboardResolver) TradingPlan() *planResolver {
	return newPlanResolver(r.d.TradingPlan)
}

func (r *dashboardResolver) JournalTemplate() *templateResolver {
	if r.d.JournalTemplate == nil {
		return nil
	}
	return &templateResolver{t: r.d.JournalTemplate}
}

type portfolioResolver struct {
	p *dto.PortfolioOverviewDTO
}

func (r *portfolioResolver) TotalValue() float64 { return r.p.TotalValue }
func (r *portfolioResolver) Pnl() *statResolver  { return &statResolver{s: r.p.PnL} }
func (r *portfolioResolver) OverviewStats() *overviewResolver {
	return &overviewResolver{s: &r.p.OverviewStats}
}

// statResolver 同时用于 PnL 和 StatField
type statResolver struct {
	s dto.StatFieldDTO
}

func (r *statResolver) Value() string      { return r.s.Value }
func (r *statResolver) Percentage() string { return r.s.Percentage }

type overviewResolver struct {
	s *dto.OverviewStatsDTO
}

func (r *overviewResolver) WinRate() *statResolver      { return &statResolver{s: r.s.WinRate} }
func (r *overviewResolver) ProfitFactor() *statResolver { return &statResolver{s: r.s.ProfitFactor} }
func (r *overviewResolver) AvgReturn() *statResolver    { return &statResolver{s: r.s.AvgReturn} }
func (r *overviewResolver) MaxDrawdown() *statResolver  { return &statResolver{s: r.s.MaxDrawdown} }
func (r *overviewResolver) TradeStats() *tradeStatsResolver {
	return &tradeStatsResolver{s: r.s.TradeStats}
}

type tradeStatsResolver struct {
	s dto.TradeStatsDTO
}

func (r *tradeStatsResolver) Open() float64  { return r.s.Open }
func (r *tradeStatsResolver) Total() float64 { return r.s.Total }

type winLossResolver struct {
	s *dto.WinLossTradeStatsDTO
}

func (r *winLossResolver) TotalTrades() int32    { return int32(r.s.TotalTrades) }
func (r *winLossResolver) Wins() int32           { return int32(r.s.Wins) }
func (r *winLossResolver) Losses() int32         { return int32(r.s.Losses) }
func (r *winLossResolver) TotalRisk() float64    { return r.s.TotalRisk }
func (r *winLossResolver) TotalReward() float64  { return r.s.TotalReward }

type tradeResolver struct {
	t *dto.RecentTradeDTO
}

func (r *tradeResolver) ID() graphql.ID          { return graphql.ID(r.t.ID) }
func (r *tradeResolver) Symbol() string          { return r.t.Symbol }
func (r *tradeResolver) Date() string            { return r.t.Date }
func (r *tradeResolver) Account() string         { return r.t.Account }
func (r *tradeResolver) Direction() string       { return r.t.Direction }
func (r *tradeResolver) Status() string          { return r.t.Status }
func (r *tradeResolver) ProjectedEntry() float64 { return r.t.ProjectedEntry }
func (r *tradeResolver) ActualEntry() float64    { return r.t.ActualEntry }
func (r *tradeResolver) ProjectedSL() float64    { return r.t.ProjectedSL }
func (r *tradeResolver) ActualExit() float64     { return r.t.ActualExit }
func (r *tradeResolver) ActualPL() float64       { return r.t.ActualPL }
func (r *tradeResolver) MaxPossiblePL() float64  { return r.t.MaxPossiblePL }
func (r *tradeResolver) Balance() float64        { return r.t.Balance }

func (r *Resolver) Dashboard(ctx context.Context) (*dashboardResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	d, err := r.app.DashboardService.Get(ctx, uid)
	if err != nil {
		return nil, r.toGQLError(ctx, "dashboard", err)
	}
	return &dashboardResolver{d: d}, nil
}
