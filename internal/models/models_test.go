package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)

	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-06-01"}`, string(b))

	var out struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "2024-06-01", out.D.String())

	assert.Error(t, json.Unmarshal([]byte(`{"d":"01/06/2024"}`), &out))
	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-06-01", d.String())
	assert.True(t, DateOf(time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)).Before(d))
}

func TestDatePgtype(t *testing.T) {
	var d Date
	require.NoError(t, d.ScanDate(pgtype.Date{Time: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Valid: true}))
	assert.Equal(t, "2024-02-29", d.String())

	v, err := d.DateValue()
	require.NoError(t, err)
	assert.True(t, v.Valid)

	require.NoError(t, d.ScanDate(pgtype.Date{}))
	assert.True(t, d.IsZero())
	v, err = d.DateValue()
	require.NoError(t, err)
	assert.False(t, v.Valid)
}

func TestParseEnumsRejectUnknown(t *testing.T) {
	et, err := ParseEventType("lunch_dinner")
	require.NoError(t, err)
	assert.True(t, et.RequiresMealOption())
	assert.Equal(t, "Lunch & Dinner", et.Label())
	assert.False(t, EventSingleLunch.RequiresMealOption())

	_, err = ParseEventType("brunch")
	assert.Error(t, err)
	_, err = ParseMealOption("breakfast")
	assert.Error(t, err)
	_, err = ParseNewsCategory("Gossip")
	assert.Error(t, err)
	_, err = ParseEmailStatus("bounced")
	assert.Error(t, err)

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
}

func TestSessionValidity(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.True(t, s.ValidAt(now))
	assert.False(t, s.ValidAt(now.Add(time.Minute)))

	tok := &PasswordResetToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, tok.Redeemable(now))
	tok.Used = true
	assert.False(t, tok.Redeemable(now))
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile(uuid.New())
	assert.True(t, p.NotificationEnabled)
	assert.Nil(t, p.DietaryRequirements)
	assert.NotNil(t, p.Preferences)
}
