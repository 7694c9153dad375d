package graphql_router

import (
	"context"
	"encoding/json"

	"github.com/graph-gophers/graphql-go"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
)

type journalResolver struct {
	root *Resolver
	j    *dto.JournalDTO
}

func (r *journalResolver) ID() graphql.ID        { return graphql.ID(r.j.ID) }
func (r *journalResolver) AccountID() graphql.ID { return graphql.ID(r.j.AccountID) }
func (r *journalResolver) ExecutionStyle() string {
	return r.j.ExecutionStyle
}
func (r *journalResolver) Instrument() string          { return r.j.Instrument }
func (r *journalResolver) Side() string                { return r.j.Side }
func (r *journalResolver) Size() float64               { return r.j.Size }
func (r *journalResolver) PlannedEntryPrice() float64  { return r.j.PlannedEntryPrice }
func (r *journalResolver) PlannedStopLoss() float64    { return r.j.PlannedStopLoss }
func (r *journalResolver) PlannedTakeProfit() float64  { return r.j.PlannedTakeProfit }
func (r *journalResolver) Note() *JSON                 { return jsonValue(r.j.Note) }
func (r *journalResolver) ExecutedEntryPrice() *float64 { return r.j.ExecutedEntryPrice }
func (r *journalResolver) ExecutedStopLoss() *float64  { return r.j.ExecutedStopLoss }
func (r *journalResolver) ExecutionNotes() *JSON       { return jsonValue(r.j.ExecutionNotes) }
func (r *journalResolver) ExitPrice() *float64         { return r.j.ExitPrice }
func (r *journalResolver) TargetHit() *bool            { return r.j.TargetHit }
func (r *journalResolver) CreatedAt() DateTime         { return dateTime(r.j.CreatedAt) }
func (r *journalResolver) UpdatedAt() DateTime         { return dateTime(r.j.UpdatedAt) }

// Account 按需加载日志所属账户
func (r *journalResolver) Account(ctx context.Context) (*accountResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	a, err := r.root.app.AccountService.Get(ctx, uid, r.j.AccountID)
	if err != nil {
		return nil, r.root.toGQLError(ctx, "journal.account", err)
	}
	if a == nil {
		return nil, nil
	}
	return &accountResolver{a: a}, nil
}

func (r *Resolver) journals(list []*dto.JournalDTO) []*journalResolver {
	out := make([]*journalResolver, 0, len(list))
	for _, j := range list {
		out = append(out, &journalResolver{root: r, j: j})
	}
	return out
}

type journalResponseResolver struct {
	root *Resolver
	res  *dto.JournalResultDTO
}

func (r *journalResponseResolver) Success() bool   { return r.res.Success }
func (r *journalResponseResolver) Message() string { return r.res.Message }
func (r *journalResponseResolver) Journal() *journalResolver {
	if r.res.Journal == nil {
		return nil
	}
	return &journalResolver{root: r.root, j: r.res.Journal}
}
func (r *journalResponseResolver) Journals() *[]*journalResolver {
	if r.res.Journals == nil {
		return nil
	}
	list := r.root.journals(r.res.Journals)
	return &list
}

type templateResolver struct {
	t *dto.JournalTemplateDTO
}

func (r *templateResolver) ID() graphql.ID      { return graphql.ID(r.t.ID) }
func (r *templateResolver) Note() *noteResolver { return &noteResolver{c: r.t.Note} }
func (r *templateResolver) CreatedAt() DateTime { return dateTime(r.t.CreatedAt) }
func (r *templateResolver) UpdatedAt() DateTime { return dateTime(r.t.UpdatedAt) }

type createJournalInput struct {
	AccountID         *[]graphql.ID
	ExecutionStyle    string
	Instrument        string
	Side              string
	Size              float64
	PlannedEntryPrice float64
	PlannedStopLoss   float64
	PlannedTakeProfit float64
	Note              *JSON
}

type updateJournalInput struct {
	ID                 graphql.ID
	ExecutedEntryPrice *float64
	ExecutedStopLoss   *float64
	ExecutionNotes     *JSON
	ExitPrice          *float64
	TargetHit          *bool
	Note               *JSON
	PlannedEntryPrice  *float64
	PlannedStopLoss    *float64
	PlannedTakeProfit  *float64
	ExecutionStyle     *string
	Instrument         *string
	Side               *string
	Size               *float64
}

func rawOrError(j *JSON, field string) (json.RawMessage, error) {
	raw, err := j.Raw()
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(field, err.Error())
	}
	return raw, nil
}

func (in *createJournalInput) params() (*dto.JournalCreateRequest, error) {
	p := &dto.JournalCreateRequest{
		ExecutionStyle:    in.ExecutionStyle,
		Instrument:        in.Instrument,
		Side:              in.Side,
		Size:              in.Size,
		PlannedEntryPrice: in.PlannedEntryPrice,
		PlannedStopLoss:   in.PlannedStopLoss,
		PlannedTakeProfit: in.PlannedTakeProfit,
	}
	if in.AccountID != nil {
		for _, id := range *in.AccountID {
			p.AccountIDs = append(p.AccountIDs, string(id))
		}
	}
	raw, err := rawOrError(in.Note, "note")
	if err != nil {
		return nil, err
	}
	p.Note = raw
	return p, nil
}

func (in *updateJournalInput) params() (*dto.JournalUpdateRequest, error) {
	p := &dto.JournalUpdateRequest{
		ID:                 string(in.ID),
		ExecutedEntryPrice: in.ExecutedEntryPrice,
		ExecutedStopLoss:   in.ExecutedStopLoss,
		ExitPrice:          in.ExitPrice,
		TargetHit:          in.TargetHit,
		PlannedEntryPrice:  in.PlannedEntryPrice,
		PlannedStopLoss:    in.PlannedStopLoss,
		PlannedTakeProfit:  in.PlannedTakeProfit,
		ExecutionStyle:     in.ExecutionStyle,
		Instrument:         in.Instrument,
		Side:               in.Side,
		Size:               in.Size,
	}
	var err error
	if p.Note, err = rawOrError(in.Note, "note"); err != nil {
		return nil, err
	}
	if p.ExecutionNotes, err = rawOrError(in.ExecutionNotes, "executionNotes"); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Resolver) GetJournal(ctx context.Context, args struct{ ID graphql.ID }) (*journalResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	j, err := r.app.JournalService.Get(ctx, uid, string(args.ID))
	if err != nil {
		return nil, r.toGQLError(ctx, "getJournal", err)
	}
	return &journalResolver{root: r, j: j}, nil
}

func (r *Resolver) GetJournalsByAccount(ctx context.Context, args struct{ AccountID graphql.ID }) ([]*journalResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.app.JournalService.ListByAccount(ctx, uid, string(args.AccountID))
	if err != nil {
		return nil, r.toGQLError(ctx, "getJournalsByAccount", err)
	}
	return r.journals(list), nil
}

func (r *Resolver) GetLoggedJournals(ctx context.Context) ([]*journalResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.app.JournalService.ListLogged(ctx, uid)
	if err != nil {
		return nil, r.toGQLError(ctx, "getLoggedJournals", err)
	}
	return r.journals(list), nil
}

func (r *Resolver) GetJournalTemplate(ctx context.Context) (*templateResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	t, err := r.app.JournalTemplateService.Get(ctx, uid)
	if err != nil {
		return nil, r.toGQLError(ctx, "getJournalTemplate", err)
	}
	if t == nil {
		return nil, nil
	}
	return &templateResolver{t: t}, nil
}

func (r *Resolver) CreateJournal(ctx context.Context, args struct{ Input createJournalInput }) (*journalResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	params, err := args.Input.params()
	if err != nil {
		return nil, err
	}
	if err := validate(params); err != nil {
		return nil, err
	}
	res, err := r.app.JournalService.Create(ctx, uid, params)
	if err != nil {
		return nil, r.toGQLError(ctx, "createJournal", err)
	}
	return &journalResponseResolver{root: r, res: res}, nil
}

func (r *Resolver) UpdateJournal(ctx context.Context, args struct{ Input updateJournalInput }) (*journalResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	params, err := args.Input.params()
	if err != nil {
		return nil, err
	}
	res, err := r.app.JournalService.Update(ctx, uid, params)
	if err != nil {
		return nil, r.toGQLError(ctx, "updateJournal", err)
	}
	return &journalResponseResolver{root: r, res: res}, nil
}

// UpdateJournalTemplate 模板更新沿用 JournalResponse 返回结构
func (r *Resolver) UpdateJournalTemplate(ctx context.Context, args struct{ Note JSON }) (*journalResponseResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := r.app.JournalTemplateService.Update(ctx, uid, args.Note.Value)
	if err != nil {
		return nil, r.toGQLError(ctx, "updateJournalTemplate", err)
	}
	return &journalResponseResolver{root: r, res: &dto.JournalResultDTO{Success: msg.Success, Message: msg.Message}}, nil
}
