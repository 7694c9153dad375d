package graphql_router

import (
	"context"
	"strings"

	"github.com/graph-gophers/graphql-go"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/note"
)

type noteResolver struct {
	c note.Content
}

func (r *noteResolver) Raw() string    { return r.c.Raw }
func (r *noteResolver) HTML() string   { return r.c.HTML }
func (r *noteResolver) Format() string { return string(r.c.Format) }

type planResolver struct {
	p *dto.TradingPlanDTO
}

func (r *planResolver) ID() graphql.ID     { return graphql.ID(r.p.ID) }
func (r *planResolver) UserID() graphql.ID { return graphql.ID(r.p.UserID) }
func (r *planResolver) TradingStyle() string {
	return r.p.TradingStyle
}
func (r *planResolver) TradingSessions() []string {
	if r.p.TradingSessions == nil {
		return []string{}
	}
	return r.p.TradingSessions
}
func (r *planResolver) TimeZone() string       { return r.p.TimeZone }
func (r *planResolver) RiskRewardRatio() int32 { return int32(r.p.RiskRewardRatio) }
func (r *planResolver) IsOwner() bool          { return r.p.IsOwner }
func (r *planResolver) Note() *noteResolver {
	if r.p.Note == nil {
		return nil
	}
	return &noteResolver{c: *r.p.Note}
}
func (r *planResolver) CreatedAt() DateTime { return dateTime(r.p.CreatedAt) }
func (r *planResolver) UpdatedAt() DateTime { return dateTime(r.p.UpdatedAt) }

func newPlanResolver(p *dto.TradingPlanDTO) *planResolver {
	if p == nil {
		return nil
	}
	return &planResolver{p: p}
}

type planResponseResolver struct {
	res *dto.TradingPlanResultDTO
}

func (r *planResponseResolver) Success() bool       { return r.res.Success }
func (r *planResponseResolver) Message() string     { return r.res.Message }
func (r *planResponseResolver) Plan() *planResolver { return newPlanResolver(r.res.Plan) }

type sharedPlanResolver struct {
	s *dto.SharedPlanDTO
}

func (r *sharedPlanResolver) ID() graphql.ID             { return graphql.ID(r.s.ID) }
func (r *sharedPlanResolver) OriginalPlanID() graphql.ID { return graphql.ID(r.s.OriginalPlanID) }
func (r *sharedPlanResolver) SharedByUserID() graphql.ID { return graphql.ID(r.s.SharedByUserID) }
func (r *sharedPlanResolver) Visibility() string         { return r.s.Visibility }
func (r *sharedPlanResolver) Viewed() bool               { return r.s.Viewed }
func (r *sharedPlanResolver) ExpiresAt() DateTime        { return dateTime(r.s.ExpiresAt) }
func (r *sharedPlanResolver) CreatedAt() DateTime        { return dateTime(r.s.CreatedAt) }
func (r *sharedPlanResolver) Plan() *planResolver        { return newPlanResolver(r.s.Plan) }

type sharedPlanResponseResolver struct {
	res *dto.SharedPlanResultDTO
}

func (r *sharedPlanResponseResolver) Success() bool   { return r.res.Success }
func (r *sharedPlanResponseResolver) Message() string { return r.res.Message }
func (r *sharedPlanResponseResolver) SharedPlan() *sharedPlanResolver {
	if r.res.SharedPlan == nil {
		return nil
	}
	return &sharedPlanResolver{s: r.res.SharedPlan}
}

// tradingPlanInput renderAs 在 schema 中带默认值 HTML，graphql-go 按非空类型绑定，因此是 string
type tradingPlanInput struct {
	TradingStyle    string
	TradingSessions []string
	TimeZone        string
	RiskRewardRatio int32
	Note            *string
	RenderAs        string
}

func (in *tradingPlanInput) params() *dto.TradingPlanRequest {
	p := &dto.TradingPlanRequest{
		TradingStyle:    in.TradingStyle,
		TradingSessions: in.TradingSessions,
		TimeZone:        in.TimeZone,
		RiskRewardRatio: int(in.RiskRewardRatio),
		Note:            in.Note,
		RenderAs:        in.RenderAs,
	}
	return p
}

func (r *Resolver) GetTradingPlan(ctx context.Context) (*planResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	res, err := r.app.PlanService.Get(ctx, uid)
	if err != nil {
		return nil, r.toGQLError(ctx, "getTradingPlan", err)
	}
	return &planResponseResolver{res: res}, nil
}

// GetSharedTradingPlan 无需登录
func (r *Resolver) GetSharedTradingPlan(ctx context.Context, args struct{ ID graphql.ID }) (*sharedPlanResponseResolver, error) {
	res, err := r.app.PlanService.GetShared(ctx, string(args.ID))
	if err != nil {
		return nil, r.toGQLError(ctx, "getSharedTradingPlan", err)
	}
	return &sharedPlanResponseResolver{res: res}, nil
}

func (r *Resolver) CreateTradingPlan(ctx context.Context, args struct{ Input tradingPlanInput }) (*planResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	params := args.Input.params()
	if err := validate(params); err != nil {
		return nil, err
	}
	res, err := r.app.PlanService.Create(ctx, uid, params)
	if err != nil {
		return nil, r.toGQLError(ctx, "createTradingPlan", err)
	}
	return &planResponseResolver{res: res}, nil
}

func (r *Resolver) UpdateTradingPlan(ctx context.Context, args struct{ Input tradingPlanInput }) (*planResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	params := args.Input.params()
	if err := validate(params); err != nil {
		return nil, err
	}
	res, err := r.app.PlanService.Update(ctx, uid, params)
	if err != nil {
		return nil, r.toGQLError(ctx, "updateTradingPlan", err)
	}
	return &planResponseResolver{res: res}, nil
}

func (r *Resolver) UpdateTradingPlanNote(ctx context.Context, args struct{ Note JSON }) (*planResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	res, err := r.app.PlanService.UpdateNote(ctx, uid, args.Note.Value)
	if err != nil {
		return nil, r.toGQLError(ctx, "updateTradingPlanNote", err)
	}
	return &planResponseResolver{res: res}, nil
}

func (r *Resolver) ShareTradingPlan(ctx context.Context, args struct{ Visibility string }) (*sharedPlanResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	res, err := r.app.PlanService.Share(ctx, uid, strings.TrimSpace(args.Visibility))
	if err != nil {
		return nil, r.toGQLError(ctx, "shareTradingPlan", err)
	}
	return &sharedPlanResponseResolver{res: res}, nil
}
