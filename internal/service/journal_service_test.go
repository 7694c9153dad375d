package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccount(t *testing.T, e *testEnv, uid, name string) *dto.TradingAccountDTO {
	t.Helper()
	acc, err := e.account.Setup(context.Background(), uid, &dto.AccountSetupRequest{
		Goal:            "PROP",
		Broker:          "FTMO",
		AccountSize:     10000,
		AccountCurrency: "USD",
		AccountName:     name,
	})
	require.NoError(t, err)
	return acc
}

func journalRequest(ids ...string) *dto.JournalCreateRequest {
	return &dto.JournalCreateRequest{
		AccountIDs:        ids,
		ExecutionStyle:    "market",
		Instrument:        "EURUSD",
		Side:              "buy",
		Size:              1.5,
		PlannedEntryPrice: 1.085,
		PlannedStopLoss:   1.082,
		PlannedTakeProfit: 1.09,
		Note:              json.RawMessage(`{"type":"doc","content":[]}`),
	}
}

func TestJournalService_Create(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")
	e.createUser(t, "u2")
	a1 := setupAccount(t, e, "u1", "main")
	a2 := setupAccount(t, e, "u1", "second")
	foreign := setupAccount(t, e, "u2", "other")

	_, err := e.journal.Create(ctx, "u1", journalRequest())
	assert.True(t, errors.Is(err, code.ErrorJournalAccountRequired))

	_, err = e.journal.Create(ctx, "u1", journalRequest(a1.ID, foreign.ID))
	assert.True(t, errors.Is(err, code.ErrorTradingAccountDenied))

	res, err := e.journal.Create(ctx, "u1", journalRequest(a1.ID, a2.ID, a1.ID))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Journal created successfully", res.Message)
	require.Len(t, res.Journals, 2)
	assert.Equal(t, 1.085, res.Journals[0].PlannedEntryPrice)
	assert.Nil(t, res.Journals[0].ExitPrice)

	logged, err := e.journal.ListLogged(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, logged, 2)

	byAccount, err := e.journal.ListByAccount(ctx, "u1", a2.ID)
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, a2.ID, byAccount[0].AccountID)

	// other users see nothing
	none, err := e.journal.ListByAccount(ctx, "u2", a2.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournalService_GetAndUpdate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createUser(t, "u1")
	e.createUser(t, "u2")
	a1 := setupAccount(t, e, "u1", "main")

	res, err := e.journal.Create(ctx, "u1", journalRequest(a1.ID))
	require.NoError(t, err)
	id := res.Journals[0].ID

	_, err = e.journal.Get(ctx, "u1", "")
	assert.True(t, errors.Is(err, code.ErrorJournalIDRequired))

	_, err = e.journal.Get(ctx, "u2", id)
	assert.True(t, errors.Is(err, code.ErrorJournalNotFound))

	got, err := e.journal.Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", got.Instrument)

	_, err = e.journal.Update(ctx, "u1", &dto.JournalUpdateRequest{ID: id})
	assert.True(t, errors.Is(err, code.ErrorJournalNoFields))

	exit := 1.0875
	hit := true
	_, err = e.journal.Update(ctx, "u2", &dto.JournalUpdateRequest{ID: id, ExitPrice: &exit})
	assert.True(t, errors.Is(err, code.ErrorJournalNotFound))

	updated, err := e.journal.Update(ctx, "u1", &dto.JournalUpdateRequest{
		ID:             id,
		ExitPrice:      &exit,
		TargetHit:      &hit,
		ExecutionNotes: json.RawMessage(`{"type":"doc"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Journal updated successfully", updated.Message)
	require.NotNil(t, updated.Journal.ExitPrice)
	assert.Equal(t, 1.0875, *updated.Journal.ExitPrice)
	require.NotNil(t, updated.Journal.TargetHit)
	assert.True(t, *updated.Journal.TargetHit)
	assert.JSONEq(t, `{"type":"doc"}`, string(updated.Journal.ExecutionNotes))
	assert.Equal(t, 1.5, updated.Journal.Size)
}

func TestJsonOrNil(t *testing.T) {
	assert.Nil(t, jsonOrNil(nil))
	assert.Nil(t, jsonOrNil(json.RawMessage(" null ")))
	assert.Equal(t, json.RawMessage(`{"a":1}`), jsonOrNil(json.RawMessage(` {"a":1} `)))
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueIDs([]string{"a", " ", "b", "a"}))
	assert.Empty(t, uniqueIDs(nil))
}
