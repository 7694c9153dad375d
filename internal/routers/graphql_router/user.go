package graphql_router

import (
	"context"

	"github.com/haierkeys/trade-journal-service/internal/dto"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
)

type userResolver struct {
	u *dto.UserDTO
}

func (r *userResolver) ID() string                { return r.u.ID }
func (r *userResolver) ParticipantID() *string    { return strPtr(r.u.ParticipantID) }
func (r *userResolver) Name() *string             { return strPtr(r.u.Name) }
func (r *userResolver) Email() string             { return r.u.Email }
func (r *userResolver) Image() *string            { return strPtr(r.u.Image) }
func (r *userResolver) OnboardingStep() *string   { return strPtr(r.u.OnboardingStep) }
func (r *userResolver) OnboardingCompleted() bool { return r.u.OnboardingCompleted }
func (r *userResolver) CreatedAt() *string        { return strPtr(r.u.CreatedAt.String()) }
func (r *userResolver) UpdatedAt() *string        { return strPtr(r.u.UpdatedAt.String()) }

type messageResolver struct {
	m *dto.MessageDTO
}

func (r *messageResolver) Success() bool   { return r.m.Success }
func (r *messageResolver) Message() string { return r.m.Message }

// Me 未登录时返回 null
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	uid, err := currentUID(ctx)
	if err != nil {
		return nil, nil
	}
	u, err := r.app.UserService.GetInfo(ctx, uid)
	if err != nil {
		return nil, r.toGQLError(ctx, "me", err)
	}
	return &userResolver{u: u}, nil
}

// Logout 删除当前会话
func (r *Resolver) Logout(ctx context.Context) (*messageResolver, error) {
	user := pkgapp.UserFromContext(ctx)
	if user == nil {
		return nil, code.ErrorNotUserAuthToken
	}
	if err := r.app.AuthService.Logout(ctx, user.SessionID()); err != nil {
		return nil, r.toGQLError(ctx, "logout", err)
	}
	return &messageResolver{m: &dto.MessageDTO{Success: true, Message: code.SuccessLogout.Msg()}}, nil
}
