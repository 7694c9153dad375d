package graphql_router

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
)

type accountResolver struct {
	a *dto.TradingAccountDTO
}

func (r *accountResolver) ID() graphql.ID          { return graphql.ID(r.a.ID) }
func (r *accountResolver) AccountID() string       { return r.a.AccountID }
func (r *accountResolver) UserID() string          { return r.a.UserID }
func (r *accountResolver) Goal() string            { return r.a.Goal }
func (r *accountResolver) PropFirm() *string       { return strPtr(r.a.PropFirm) }
func (r *accountResolver) Broker() *string         { return strPtr(r.a.Broker) }
func (r *accountResolver) AccountSize() float64    { return float64(r.a.AccountSize) }
func (r *accountResolver) AccountCurrency() string { return r.a.AccountCurrency }
func (r *accountResolver) AccountName() string     { return r.a.AccountName }
func (r *accountResolver) ExperienceLevel() *string {
	return strPtr(r.a.ExperienceLevel)
}
func (r *accountResolver) BiggestChallenge() *[]string {
	if r.a.BiggestChallenge == nil {
		return nil
	}
	return &r.a.BiggestChallenge
}
func (r *accountResolver) CreatedAt() string { return r.a.CreatedAt.String() }
func (r *accountResolver) UpdatedAt() string { return r.a.UpdatedAt.String() }
func (r *accountResolver) IsProp() bool      { return r.a.IsProp }
func (r *accountResolver) Funded() bool      { return r.a.Funded }
func (r *accountResolver) FundedAt() *string {
	if r.a.FundedAt == nil {
		return nil
	}
	s := r.a.FundedAt.String()
	return &s
}

type accountSetupInput struct {
	Goal             string
	PropFirm         *string
	Broker           string
	AccountSize      float64
	AccountCurrency  string
	AccountName      string
	ExperienceLevel  *string
	BiggestChallenge *[]string
}

func (in *accountSetupInput) params() *dto.AccountSetupRequest {
	p := &dto.AccountSetupRequest{
		Goal:            in.Goal,
		PropFirm:        in.PropFirm,
		Broker:          in.Broker,
		AccountSize:     in.AccountSize,
		AccountCurrency: in.AccountCurrency,
		AccountName:     in.AccountName,
		ExperienceLevel: in.ExperienceLevel,
	}
	if in.BiggestChallenge != nil {
		p.BiggestChallenge = *in.BiggestChallenge
	}
	return p
}

func (r *Resolver) TradingAccounts(ctx context.Context) ([]*accountResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.app.AccountService.List(ctx, uid)
	if err != nil {
		return nil, r.toGQLError(ctx, "tradingAccounts", err)
	}
	out := make([]*accountResolver, 0, len(list))
	for _, a := range list {
		out = append(out, &accountResolver{a: a})
	}
	return out, nil
}

func (r *Resolver) TradingAccount(ctx context.Context, args struct{ ID graphql.ID }) (*accountResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	a, err := r.app.AccountService.Get(ctx, uid, string(args.ID))
	if err != nil {
		return nil, r.toGQLError(ctx, "tradingAccount", err)
	}
	if a == nil {
		return nil, nil
	}
	return &accountResolver{a: a}, nil
}

func (r *Resolver) SetupAccount(ctx context.Context, args struct{ Input accountSetupInput }) (*accountResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	params := args.Input.params()
	if err := validate(params); err != nil {
		return nil, err
	}
	a, err := r.app.AccountService.Setup(ctx, uid, params)
	if err != nil {
		return nil, r.toGQLError(ctx, "setupAccount", err)
	}
	return &accountResolver{a: a}, nil
}

type safetyNetResolver struct {
	n *dto.SafetyNetDTO
}

func (r *safetyNetResolver) ID() graphql.ID           { return graphql.ID(r.n.ID) }
func (r *safetyNetResolver) UserID() string           { return r.n.UserID }
func (r *safetyNetResolver) MaxDailyRisk() int32      { return int32(r.n.MaxDailyRisk) }
func (r *safetyNetResolver) MaxDailyDrawdown() int32  { return int32(r.n.MaxDailyDrawdown) }
func (r *safetyNetResolver) MaxTotalDrawdown() int32  { return int32(r.n.MaxTotalDrawdown) }
func (r *safetyNetResolver) RiskPerTrade() int32      { return int32(r.n.RiskPerTrade) }
func (r *safetyNetResolver) MaxOpenTrades() int32     { return int32(r.n.MaxOpenTrades) }
func (r *safetyNetResolver) IsDefault() bool          { return r.n.IsDefault }
func (r *safetyNetResolver) CreatedAt() string        { return r.n.CreatedAt.String() }
func (r *safetyNetResolver) UpdatedAt() string        { return r.n.UpdatedAt.String() }

type safetyNetResponseResolver struct {
	net *dto.SafetyNetDTO
}

func (r *safetyNetResponseResolver) Success() bool   { return true }
func (r *safetyNetResponseResolver) Message() string { return code.SuccessSafetyNet.Msg() }
func (r *safetyNetResponseResolver) SafetyNet() *safetyNetResolver {
	return &safetyNetResolver{n: r.net}
}

type createSafetyNetInput struct {
	MaxDailyRisk     int32
	MaxDailyDrawdown int32
	MaxTotalDrawdown int32
	RiskPerTrade     int32
	MaxOpenTrades    int32
	IsDefault        *bool
}

func (r *Resolver) CreateSafetyNet(ctx context.Context, args struct{ Input createSafetyNetInput }) (*safetyNetResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	in := args.Input
	params := &dto.SafetyNetCreateRequest{
		MaxDailyRisk:     int(in.MaxDailyRisk),
		MaxDailyDrawdown: int(in.MaxDailyDrawdown),
		MaxTotalDrawdown: int(in.MaxTotalDrawdown),
		RiskPerTrade:     int(in.RiskPerTrade),
		MaxOpenTrades:    int(in.MaxOpenTrades),
		IsDefault:        in.IsDefault,
	}
	if err := validate(params); err != nil {
		return nil, err
	}
	net, err := r.app.SafetyNetService.Create(ctx, uid, params)
	if err != nil {
		return nil, r.toGQLError(ctx, "createSafetyNet", err)
	}
	return &safetyNetResponseResolver{net: net}, nil
}
