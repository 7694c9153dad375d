package code

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_WithDetailsCopies(t *testing.T) {
	c := ErrorInvalidParams.WithDetails("goal is required")
	assert.Equal(t, []string{"goal is required"}, c.Details())
	assert.False(t, ErrorInvalidParams.HaveDetails())
	assert.True(t, errors.Is(c, ErrorInvalidParams))
	assert.False(t, errors.Is(c, ErrorJournalNotFound))
}

func TestCode_Extensions(t *testing.T) {
	ext := ErrorTradingPlanExists.Extensions()
	assert.Equal(t, "CONFLICT", ext["code"])
	assert.Equal(t, 800, ext["errorCode"])

	ext = ErrorInvalidParams.WithDetails("x").Extensions()
	assert.Equal(t, "BAD_USER_INPUT", ext["code"])
	assert.Equal(t, []string{"x"}, ext["details"])

	ext = ErrorDBQuery.WithDetails("sql: no such table").Extensions()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", ext["code"])
	_, ok := ext["details"]
	assert.False(t, ok)

	assert.Equal(t, ClassInternal, Failed.Class())
}

func TestCode_Messages(t *testing.T) {
	assert.Equal(t, "Not authenticated", ErrorNotUserAuthToken.Error())
	assert.Equal(t, "Shared plan has expired", ErrorSharedPlanExpired.Msg())
	assert.True(t, SuccessTradingPlanCreated.Status())
}

func TestLang_Switch(t *testing.T) {
	defer func() { _ = SetGlobalDefaultLang(LangEN) }()

	assert.NoError(t, SetGlobalDefaultLang("zh-CN"))
	assert.Equal(t, LangZH, GetGlobalDefaultLang())
	assert.Equal(t, "未登录", ErrorNotUserAuthToken.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, LangEN, GetGlobalDefaultLang())
	assert.Equal(t, "Not authenticated", ErrorNotUserAuthToken.Msg())
}

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, LangZH, NormalizeLang("zh"))
	assert.Equal(t, LangEN, NormalizeLang("en-US"))
	assert.Equal(t, "", NormalizeLang("de"))
}
