package pantry

import (
	"testing"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysUntilExpiry(t *testing.T) {
	today := time.Date(2026, 3, 28, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   *time.Time
		wantDays int
		wantOK   bool
	}{
		{name: "no expiry", expiry: nil, wantOK: false},
		{name: "today", expiry: date(2026, 3, 28), wantDays: 0, wantOK: true},
		{name: "tomorrow", expiry: date(2026, 3, 29), wantDays: 1, wantOK: true},
		{name: "across month end", expiry: date(2026, 4, 4), wantDays: 7, wantOK: true},
		{name: "expired", expiry: date(2026, 3, 25), wantDays: -3, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := DaysUntilExpiry(model.Lot{Expiry: tt.expiry}, today)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestDaysUntilExpiry_UsesCalendarDateOfToday(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	// 00:30 local on the 29th is still the 28th in UTC.
	today := time.Date(2026, 3, 29, 0, 30, 0, 0, berlin)

	days, ok := DaysUntilExpiry(model.Lot{Expiry: date(2026, 3, 30)}, today)
	require.True(t, ok)
	assert.Equal(t, 1, days)
}

func TestStatusForDays(t *testing.T) {
	tests := []struct {
		days     int
		expected Status
	}{
		{-1, StatusExpired},
		{0, StatusCritical},
		{3, StatusCritical},
		{4, StatusWarning},
		{7, StatusWarning},
		{8, StatusFresh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StatusForDays(tt.days), "days=%d", tt.days)
	}
}

func TestExpiryStatus_NoDate(t *testing.T) {
	assert.Equal(t, StatusNone, ExpiryStatus(model.Lot{Name: "Salz"}, time.Now()))
}

func TestNearExpiry(t *testing.T) {
	today := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	lots := []model.Lot{
		{ID: "late", Expiry: date(2026, 4, 8)},
		{ID: "none"},
		{ID: "outside", Expiry: date(2026, 4, 9)},
		{ID: "expired", Expiry: date(2026, 3, 30)},
		{ID: "soon", Expiry: date(2026, 4, 2)},
	}

	got := NearExpiry(lots, today, 7)

	ids := make([]string, len(got))
	for i, l := range got {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"expired", "soon", "late"}, ids)
}
