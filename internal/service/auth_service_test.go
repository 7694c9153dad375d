package service

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/trade-journal-service/internal/domain"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	profile := &dto.GoogleProfile{Subject: "google-123", Name: "Ada", Email: "ada@example.com", Picture: "https://img/ada.png"}
	res, err := e.auth.LoginWithGoogle(ctx, profile, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, "google-123", res.User.ID)
	assert.NotEmpty(t, res.User.ParticipantID)
	assert.Equal(t, string(domain.StepAccountSetup), res.User.OnboardingStep)
	assert.Equal(t, "/onboarding", res.RedirectTo)

	entity, err := e.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "google-123", entity.UID)
	assert.Equal(t, res.SessionID, entity.SessionID())

	// second login reuses the user and opens a new session
	again, err := e.auth.LoginWithGoogle(ctx, profile, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, res.User.ParticipantID, again.User.ParticipantID)
	assert.NotEqual(t, res.SessionID, again.SessionID)

	require.NoError(t, e.auth.Logout(ctx, res.SessionID))
	_, err = e.auth.Authenticate(ctx, res.Token)
	assert.True(t, errors.Is(err, code.ErrorInvalidUserAuthToken))

	_, err = e.auth.Authenticate(ctx, again.Token)
	assert.NoError(t, err)
}

func TestAuthService_RejectsBadInput(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.auth.LoginWithGoogle(ctx, &dto.GoogleProfile{Subject: "x", Email: "not-an-email"}, "", "")
	assert.True(t, errors.Is(err, code.ErrorOAuthProfile))

	_, err = e.auth.Authenticate(ctx, "")
	assert.True(t, errors.Is(err, code.ErrorNotUserAuthToken))

	_, err = e.auth.Authenticate(ctx, "garbage.token.value")
	assert.True(t, errors.Is(err, code.ErrorInvalidUserAuthToken))

	_, err = e.auth.AuthCodeURL("state")
	assert.True(t, errors.Is(err, code.ErrorOAuthNotConfigure))
}

func TestUserService_Status(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")

	st, err := e.user.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "/onboarding", st.RedirectTo)

	_, err = e.plan.Create(ctx, "u1", planRequest(nil))
	require.NoError(t, err)
	st, err = e.user.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", st.RedirectTo)
	assert.True(t, st.User.OnboardingCompleted)

	_, err = e.user.GetInfo(ctx, "missing")
	assert.True(t, errors.Is(err, code.ErrorUserNotFound))
}

func TestNoteService_Format(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	c, err := e.note.Format(ctx, "  plain  ", "")
	require.NoError(t, err)
	assert.Equal(t, "plain", c.Raw)

	_, err = e.note.Format(ctx, "x", "rtf")
	assert.True(t, errors.Is(err, code.ErrorInvalidRenderFormat))

	empty, err := e.note.Format(ctx, nil, "MARKDOWN")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	p, err := e.note.Preview(ctx, &dto.NotePreviewRequest{Content: "**b**", RenderAs: "MARKDOWN"})
	require.NoError(t, err)
	assert.Contains(t, p.HTML, "<strong>b</strong>")
}
