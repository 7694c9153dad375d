package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEnumName(t *testing.T) {
	assert.Equal(t, "RISK_MANAGEMENT", EnumName(string(ChallengeRiskManagement)))
	assert.Equal(t, "PROP", EnumName(string(GoalProp)))
	assert.Equal(t, "INTERMEDIATE", EnumName(string(ExperienceIntermediate)))
}

func TestParseEnums(t *testing.T) {
	g, ok := ParseGoal("PROP")
	assert.True(t, ok)
	assert.Equal(t, GoalProp, g)

	_, ok = ParseGoal("PERSONAL")
	assert.False(t, ok)

	c, ok := ParseChallenge("RISK_MANAGEMENT")
	assert.True(t, ok)
	assert.Equal(t, ChallengeRiskManagement, c)

	c, ok = ParseChallenge("patience")
	assert.True(t, ok)
	assert.Equal(t, ChallengePatience, c)

	e, ok := ParseExperienceLevel("Advanced")
	assert.True(t, ok)
	assert.Equal(t, ExperienceAdvanced, e)
}

func TestUser_RedirectPath(t *testing.T) {
	u := &User{}
	assert.Equal(t, "/onboarding", u.RedirectPath())
	u.OnboardingCompleted = true
	assert.Equal(t, "/dashboard", u.RedirectPath())
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}

func TestSharedPlan(t *testing.T) {
	now := time.Now()
	s := &SharedPlan{Visibility: VisibilityPrivate, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(2*time.Hour)))
	assert.False(t, s.ConsumedPrivate())
	s.Viewed = true
	assert.True(t, s.ConsumedPrivate())

	s.Visibility = VisibilityPublic
	assert.False(t, s.ConsumedPrivate())
	assert.False(t, PlanVisibility("FRIENDS").Valid())
}

func TestJournalPatch_Columns(t *testing.T) {
	p := &JournalPatch{}
	assert.True(t, p.Empty())

	price := decimal.RequireFromString("1.08500")
	hit := false
	side := "long"
	p = &JournalPatch{
		ExitPrice: &price,
		TargetHit: &hit,
		Side:      &side,
		Note:      json.RawMessage(`{"type":"doc"}`),
	}
	cols := p.Columns()
	assert.Len(t, cols, 4)
	assert.True(t, price.Equal(cols["exit_price"].(decimal.Decimal)))
	assert.Equal(t, false, cols["target_hit"])
	assert.Equal(t, "long", cols["side"])
	assert.Equal(t, []byte(`{"type":"doc"}`), cols["note"])
	assert.False(t, p.Empty())
}
