package service

import (
	"context"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// mockTrades 最近交易的演示数据，尚未接入真实成交记录
var mockTrades = []dto.RecentTradeDTO{
	{ID: "1", Symbol: "EURUSD", Date: "2024-03-20", Account: "FTMO FUNDED", Direction: "Long", Status: "CLOSED",
		ProjectedEntry: 1.085, ActualEntry: 1.0845, ProjectedSL: 1.082, ActualExit: 1.087, ActualPL: 25, MaxPossiblePL: 30, Balance: 12500},
	{ID: "2", Symbol: "GBPUSD", Date: "2024-03-19", Account: "GOATFUNDED DEMO", Direction: "Short", Status: "RUNNING",
		ProjectedEntry: 1.275, ActualEntry: 1.2745, ProjectedSL: 1.278, ActualExit: 1.272, ActualPL: 25, MaxPossiblePL: 30, Balance: 10000},
	{ID: "3", Symbol: "USDJPY", Date: "2024-03-18", Account: "FTMO CHALLENGE", Direction: "Long", Status: "CLOSED",
		ProjectedEntry: 151.5, ActualEntry: 151.45, ProjectedSL: 151.2, ActualExit: 151.8, ActualPL: 35, MaxPossiblePL: 40, Balance: 5000},
	{ID: "4", Symbol: "AUDUSD", Date: "2024-03-17", Account: "MYFUNDEDFX", Direction: "Short", Status: "RUNNING",
		ProjectedEntry: 0.655, ActualEntry: 0.6545, ProjectedSL: 0.658, ActualExit: 0.652, ActualPL: 25, MaxPossiblePL: 30, Balance: 7500},
	{ID: "5", Symbol: "USDCAD", Date: "2024-03-16", Account: "FTMO FUNDED", Direction: "Long", Status: "CLOSED",
		ProjectedEntry: 1.355, ActualEntry: 1.3545, ProjectedSL: 1.352, ActualExit: 1.357, ActualPL: 25, MaxPossiblePL: 30, Balance: 12500},
}

// DashboardService 仪表盘业务服务接口
type DashboardService interface {
	// Get 返回仪表盘数据，需要用户已有交易计划和日志模板
	Get(ctx context.Context, uid string) (*dto.DashboardDTO, error)
}

type dashboardService struct {
	planRepo     domain.TradingPlanRepository
	templateRepo domain.JournalTemplateRepository
	noteService  NoteService
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(planRepo domain.TradingPlanRepository, templateRepo domain.JournalTemplateRepository,
	noteService NoteService, logger *zap.Logger, config *ServiceConfig) DashboardService {
	return &dashboardService{
		planRepo:     planRepo,
		templateRepo: templateRepo,
		noteService:  noteService,
		logger:       logger,
		config:       config,
	}
}

func (s *dashboardService) Get(ctx context.Context, uid string) (*dto.DashboardDTO, error) {
	var (
		plan     *domain.TradingPlan
		template *domain.JournalTemplate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plan, err = s.planRepo.GetByUserID(gctx, uid)
		return err
	})
	g.Go(func() error {
		var err error
		template, err = s.templateRepo.GetByUserID(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		if isNotFound(err) {
			return nil, code.ErrorDashboardNotReady
		}
		return nil, dbError(s.logger, "load dashboard failed", err, zap.String("uid", uid))
	}

	d := mockDashboard(s.totalValue())
	d.TradingPlan = planToDTO(s.noteService, plan)
	d.JournalTemplate = templateToDTO(template)
	return d, nil
}

func (s *dashboardService) totalValue() float64 {
	if s.config == nil || s.config.Dashboard.TotalValue <= 0 {
		return 100000
	}
	return s.config.Dashboard.TotalValue
}

// mockDashboard 统计值为演示数据，交易计数取自 mockTrades
func mockDashboard(totalValue float64) *dto.DashboardDTO {
	var open, wins, losses int
	for _, t := range mockTrades {
		if t.Status == "RUNNING" {
			open++
		}
		if t.ActualPL > 0 {
			wins++
		} else {
			losses++
		}
	}

	trades := make([]dto.RecentTradeDTO, len(mockTrades))
	copy(trades, mockTrades)

	return &dto.DashboardDTO{
		PortfolioOverview: dto.PortfolioOverviewDTO{
			TotalValue: totalValue,
			PnL:        dto.StatFieldDTO{Value: "+5000", Percentage: "+5%"},
			OverviewStats: dto.OverviewStatsDTO{
				WinRate:      dto.StatFieldDTO{Value: "60%", Percentage: "+10%"},
				ProfitFactor: dto.StatFieldDTO{Value: "1.5", Percentage: "+5%"},
				AvgReturn:    dto.StatFieldDTO{Value: "2.3%", Percentage: "+1.2%"},
				MaxDrawdown:  dto.StatFieldDTO{Value: "-4%", Percentage: "-1%"},
				TradeStats:   dto.TradeStatsDTO{Open: float64(open), Total: float64(len(mockTrades))},
			},
		},
		WinLossTradeStats: dto.WinLossTradeStatsDTO{
			TotalTrades: len(mockTrades),
			Wins:        wins,
			Losses:      losses,
			TotalRisk:   200,
			TotalReward: 400,
		},
		RecentTrades: trades,
	}
}
