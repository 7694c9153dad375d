package graphql_router

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/haierkeys/trade-journal-service/internal/app"
	"github.com/haierkeys/trade-journal-service/internal/dao"
	"github.com/haierkeys/trade-journal-service/internal/domain"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"

	"github.com/creasty/defaults"
	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gqlEnv struct {
	app    *app.App
	schema *graphql.Schema
}

func newGQLEnv(t *testing.T) *gqlEnv {
	t.Helper()
	cfg := new(app.AppConfig)
	require.NoError(t, defaults.Set(cfg))
	cfg.Database.Path = ":memory:"

	db, err := dao.NewDBEngineWithConfig(cfg.GetDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)
	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	schema, err := NewSchema(a)
	require.NoError(t, err)
	return &gqlEnv{app: a, schema: schema}
}

func (e *gqlEnv) login(t *testing.T, uid string) context.Context {
	t.Helper()
	_, err := e.app.UserRepo.Create(context.Background(), &domain.User{
		ID:             uid,
		ParticipantID:  uid + "-p",
		Name:           uid,
		Email:          uid + "@example.com",
		OnboardingStep: domain.StepAccountSetup,
	})
	require.NoError(t, err)
	return pkgapp.WithUser(context.Background(), &pkgapp.UserEntity{UID: uid})
}

// exec 执行查询，返回 data 与第一个错误的扩展字段
func (e *gqlEnv) exec(t *testing.T, ctx context.Context, query string, vars map[string]interface{}) (map[string]interface{}, *graphql.Response) {
	t.Helper()
	resp := e.schema.Exec(ctx, query, "", vars)
	data := map[string]interface{}{}
	if len(resp.Data) > 0 && string(resp.Data) != "null" {
		require.NoError(t, json.Unmarshal(resp.Data, &data))
	}
	return data, resp
}

func errCode(resp *graphql.Response) string {
	if len(resp.Errors) == 0 || resp.Errors[0].Extensions == nil {
		return ""
	}
	c, _ := resp.Errors[0].Extensions["code"].(string)
	return c
}

const setupAccountMutation = `mutation($input: AccountSetupInput!) {
  setupAccount(input: $input) { id goal isProp accountSize accountCurrency biggestChallenge }
}`

func accountInput(size float64) map[string]interface{} {
	return map[string]interface{}{"input": map[string]interface{}{
		"goal":             "PROP",
		"propFirm":         "FTMO",
		"broker":           "IC Markets",
		"accountSize":      size,
		"accountCurrency":  "USD",
		"accountName":      "Challenge",
		"biggestChallenge": []interface{}{"PATIENCE"},
	}}
}

func TestMe_Anonymous(t *testing.T) {
	e := newGQLEnv(t)
	data, resp := e.exec(t, context.Background(), `{ me { id } }`, nil)
	assert.Empty(t, resp.Errors)
	assert.Nil(t, data["me"])
}

func TestProtectedOperation_RequiresSession(t *testing.T) {
	e := newGQLEnv(t)
	_, resp := e.exec(t, context.Background(), `{ tradingAccounts { id } }`, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "Not authenticated", resp.Errors[0].Message)
	assert.Equal(t, "UNAUTHORIZED", errCode(resp))
}

func TestSetupAccount(t *testing.T) {
	e := newGQLEnv(t)
	ctx := e.login(t, "u1")

	data, resp := e.exec(t, ctx, setupAccountMutation, accountInput(1000.7))
	require.Empty(t, resp.Errors)
	acc := data["setupAccount"].(map[string]interface{})
	assert.Equal(t, "PROP", acc["goal"])
	assert.Equal(t, true, acc["isProp"])
	assert.Equal(t, float64(1000), acc["accountSize"])
	assert.Equal(t, []interface{}{"PATIENCE"}, acc["biggestChallenge"])

	data, resp = e.exec(t, ctx, `{ me { onboardingStep } tradingAccounts { id } }`, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "safety_net", data["me"].(map[string]interface{})["onboardingStep"])
	assert.Len(t, data["tradingAccounts"], 1)

	id := acc["id"].(string)
	data, resp = e.exec(t, ctx, `query($id: ID!) { tradingAccount(id: $id) { id } }`, map[string]interface{}{"id": id})
	require.Empty(t, resp.Errors)
	assert.Equal(t, id, data["tradingAccount"].(map[string]interface{})["id"])

	// 其他用户看不到该账户
	other := e.login(t, "u2")
	data, resp = e.exec(t, other, `query($id: ID!) { tradingAccount(id: $id) { id } }`, map[string]interface{}{"id": id})
	require.Empty(t, resp.Errors)
	assert.Nil(t, data["tradingAccount"])
}

func TestSetupAccount_InvalidSize(t *testing.T) {
	e := newGQLEnv(t)
	ctx := e.login(t, "u1")

	_, resp := e.exec(t, ctx, setupAccountMutation, accountInput(0))
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "Account size must be a positive number", resp.Errors[0].Message)
	assert.Equal(t, "BAD_USER_INPUT", errCode(resp))
}

func TestCreateSafetyNet(t *testing.T) {
	e := newGQLEnv(t)
	ctx := e.login(t, "u1")

	data, resp := e.exec(t, ctx, `mutation {
  createSafetyNet(input: {maxDailyRisk: 2, maxDailyDrawdown: 5, maxTotalDrawdown: 10, riskPerTrade: 1, maxOpenTrades: 3}) {
    success message safetyNet { isDefault maxOpenTrades }
  }
}`, nil)
	require.Empty(t, resp.Errors)
	res := data["createSafetyNet"].(map[string]interface{})
	assert.Equal(t, true, res["success"])
	net := res["safetyNet"].(map[string]interface{})
	assert.Equal(t, true, net["isDefault"])
	assert.Equal(t, float64(3), net["maxOpenTrades"])
}

func TestTradingPlanLifecycle(t *testing.T) {
	e := newGQLEnv(t)
	ctx := e.login(t, "u1")

	data, resp := e.exec(t, ctx, `{ getTradingPlan { success message plan { id } } }`, nil)
	require.Empty(t, resp.Errors)
	res := data["getTradingPlan"].(map[string]interface{})
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "Trading plan not found", res["message"])

	create := `mutation($input: TradingPlanInput!) {
  createTradingPlan(input: $input) { success plan { isOwner note { html format } } }
}`
	vars := map[string]interface{}{"input": map[string]interface{}{
		"tradingStyle":    "swing",
		"tradingSessions": []interface{}{"london"},
		"timeZone":        "UTC",
		"riskRewardRatio": 2,
		"note":            "**bold**",
		"renderAs":        "MARKDOWN",
	}}
	data, resp = e.exec(t, ctx, create, vars)
	require.Empty(t, resp.Errors)
	plan := data["createTradingPlan"].(map[string]interface{})["plan"].(map[string]interface{})
	assert.Equal(t, false, plan["isOwner"])
	n := plan["note"].(map[string]interface{})
	assert.Equal(t, "MARKDOWN", n["format"])
	assert.Contains(t, n["html"], "<strong>bold</strong>")

	_, resp = e.exec(t, ctx, create, vars)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "CONFLICT", errCode(resp))

	// 未编辑过的计划不能分享
	_, resp = e.exec(t, ctx, `mutation { shareTradingPlan(visibility: PUBLIC) { success } }`, nil)
	require.NotEmpty(t, resp.Errors)

	data, resp = e.exec(t, ctx, `mutation { updateTradingPlanNote(note: "<p>updated</p>") { success plan { isOwner note { format } } } }`, nil)
	require.Empty(t, resp.Errors)
	plan = data["updateTradingPlanNote"].(map[string]interface{})["plan"].(map[string]interface{})
	assert.Equal(t, true, plan["isOwner"])
	assert.Equal(t, "HTML", plan["note"].(map[string]interface{})["format"])

	// 客户端原样回传查询到的笔记 (带 __typename)，笔记保持不变
	echo := `mutation($note: JSON!) { updateTradingPlanNote(note: $note) { success plan { note { raw html format } } } }`
	data, resp = e.exec(t, ctx, echo, map[string]interface{}{"note": map[string]interface{}{
		"raw":        "**b**",
		"html":       "<p><strong>b</strong></p>",
		"format":     "MARKDOWN",
		"__typename": "NoteContent",
	}})
	require.Empty(t, resp.Errors)
	n = data["updateTradingPlanNote"].(map[string]interface{})["plan"].(map[string]interface{})["note"].(map[string]interface{})
	assert.Equal(t, "**b**", n["raw"])
	assert.Equal(t, "<p><strong>b</strong></p>", n["html"])
	assert.Equal(t, "MARKDOWN", n["format"])

	data, resp = e.exec(t, ctx, `mutation { shareTradingPlan(visibility: PRIVATE) { success sharedPlan { id visibility } } }`, nil)
	require.Empty(t, resp.Errors)
	shared := data["shareTradingPlan"].(map[string]interface{})["sharedPlan"].(map[string]interface{})
	assert.Equal(t, "PRIVATE", shared["visibility"])

	// 分享链接无需登录，私密分享只能查看一次
	query := `query($id: ID!) { getSharedTradingPlan(id: $id) { success message sharedPlan { viewed } } }`
	idVars := map[string]interface{}{"id": shared["id"]}
	data, resp = e.exec(t, context.Background(), query, idVars)
	require.Empty(t, resp.Errors)
	assert.Equal(t, true, data["getSharedTradingPlan"].(map[string]interface{})["success"])

	data, resp = e.exec(t, context.Background(), query, idVars)
	require.Empty(t, resp.Errors)
	res = data["getSharedTradingPlan"].(map[string]interface{})
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "This private plan has already been viewed", res["message"])

	data, resp = e.exec(t, ctx, `{ getJournalTemplate { note { format } } me { onboardingCompleted } }`, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "JSON", data["getJournalTemplate"].(map[string]interface{})["note"].(map[string]interface{})["format"])
	assert.Equal(t, true, data["me"].(map[string]interface{})["onboardingCompleted"])
}

func TestCreateTradingPlan_DefaultRenderAs(t *testing.T) {
	e := newGQLEnv(t)
	ctx := e.login(t, "u1")

	data, resp := e.exec(t, ctx, `mutation {
  createTradingPlan(input: {tradingStyle: "swing", tradingSessions: ["london"], timeZone: "UTC", riskRewardRatio: 2, note: "<p>plain</p>"}) {
    success plan { note { html format } }
  }
}`, nil)
	require.Empty(t, resp.Errors)
	n := data["createTradingPlan"].(map[string]interface{})["plan"].(map[string]interface{})["note"].(map[string]interface{})
	assert.Equal(t, "HTML", n["format"])
	assert.Equal(t, "<p>plain</p>", n["html"])
}

func TestDashboard_RequiresPlan(t *testing.T) {
	e := newGQLEnv(t)
	ctx := e.login(t, "u1")

	_, resp := e.exec(t, ctx, `{ dashboard { portfolioOverview { totalValue } } }`, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "NOT_FOUND", errCode(resp))
}

func TestJournals(t *testing.T) {
	e := newGQLEnv(t)
	ctx := e.login(t, "u1")

	data, resp := e.exec(t, ctx, setupAccountMutation, accountInput(5000))
	require.Empty(t, resp.Errors)
	accountID := data["setupAccount"].(map[string]interface{})["id"].(string)

	create := `mutation($input: CreateJournalInput!) {
  createJournal(input: $input) { success journals { id accountId instrument size note } }
}`
	input := func(accounts ...string) map[string]interface{} {
		ids := make([]interface{}, 0, len(accounts))
		for _, a := range accounts {
			ids = append(ids, a)
		}
		return map[string]interface{}{"input": map[string]interface{}{
			"accountId":         ids,
			"executionStyle":    "scalp",
			"instrument":        "EURUSD",
			"side":              "long",
			"size":              1.5,
			"plannedEntryPrice": 1.1,
			"plannedStopLoss":   1.09,
			"plannedTakeProfit": 1.12,
			"note":              map[string]interface{}{"text": "setup"},
		}}
	}

	_, resp = e.exec(t, ctx, create, input("not-mine"))
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "UNAUTHORIZED", errCode(resp))

	data, resp = e.exec(t, ctx, create, input(accountID))
	require.Empty(t, resp.Errors)
	res := data["createJournal"].(map[string]interface{})
	assert.Equal(t, true, res["success"])
	journals := res["journals"].([]interface{})
	require.Len(t, journals, 1)
	j := journals[0].(map[string]interface{})
	assert.Equal(t, accountID, j["accountId"])
	assert.Equal(t, 1.5, j["size"])
	assert.Equal(t, map[string]interface{}{"text": "setup"}, j["note"])

	data, resp = e.exec(t, ctx, `{ getLoggedJournals { id account { id } } }`, nil)
	require.Empty(t, resp.Errors)
	logged := data["getLoggedJournals"].([]interface{})
	require.Len(t, logged, 1)
	assert.Equal(t, accountID, logged[0].(map[string]interface{})["account"].(map[string]interface{})["id"])

	update := `mutation($input: UpdateJournalInput!) { updateJournal(input: $input) { success journal { exitPrice targetHit } } }`
	data, resp = e.exec(t, ctx, update, map[string]interface{}{"input": map[string]interface{}{
		"id": j["id"], "exitPrice": 1.12, "targetHit": true,
	}})
	require.Empty(t, resp.Errors)
	updated := data["updateJournal"].(map[string]interface{})["journal"].(map[string]interface{})
	assert.Equal(t, 1.12, updated["exitPrice"])
	assert.Equal(t, true, updated["targetHit"])

	_, resp = e.exec(t, ctx, update, map[string]interface{}{"input": map[string]interface{}{"id": j["id"]}})
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "No valid fields provided for update", resp.Errors[0].Message)
	assert.Equal(t, "BAD_USER_INPUT", errCode(resp))

	_, resp = e.exec(t, e.login(t, "u2"), `query($id: ID!) { getJournal(id: $id) { id } }`, map[string]interface{}{"id": j["id"]})
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "NOT_FOUND", errCode(resp))
}

func TestLogout(t *testing.T) {
	e := newGQLEnv(t)
	_, resp := e.exec(t, context.Background(), `mutation { logout { success } }`, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "UNAUTHORIZED", errCode(resp))
}
