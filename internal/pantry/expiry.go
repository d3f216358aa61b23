package pantry

import (
	"sort"
	"time"

	"github.com/guttosm/pantry-service/internal/domain/model"
)

// Status is the traffic-light rating of a lot's remaining shelf life.
type Status string

// Expiry statuses.
const (
	StatusExpired  Status = "expired"
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusFresh    Status = "fresh"
	StatusNone     Status = "none"
)

const (
	// CriticalDays is the upper bound (inclusive) for StatusCritical.
	CriticalDays = 3
	// WarningDays is the upper bound (inclusive) for StatusWarning.
	WarningDays = 7
	// DefaultNearExpiryDays is the default near-expiry threshold.
	DefaultNearExpiryDays = 7
)

// DateOf truncates t to its calendar date, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntilExpiry returns the calendar-day difference between the lot's
// expiry and today. Negative means already expired. ok is false when the
// lot has no expiry date.
func DaysUntilExpiry(lot model.Lot, today time.Time) (days int, ok bool) {
	if lot.Expiry == nil {
		return 0, false
	}
	diff := DateOf(*lot.Expiry).Sub(DateOf(today))
	return int(diff.Hours() / 24), true
}

// StatusForDays rates a days-until-expiry value.
func StatusForDays(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days <= CriticalDays:
		return StatusCritical
	case days <= WarningDays:
		return StatusWarning
	default:
		return StatusFresh
	}
}

// ExpiryStatus rates a lot as of today.
func ExpiryStatus(lot model.Lot, today time.Time) Status {
	days, ok := DaysUntilExpiry(lot, today)
	if !ok {
		return StatusNone
	}
	return StatusForDays(days)
}

// NearExpiry returns lots expiring within days of today, soonest first.
// Lots already past their date are included; lots without a date are not.
func NearExpiry(lots []model.Lot, today time.Time, days int) []model.Lot {
	var out []model.Lot
	for _, l := range lots {
		if d, ok := DaysUntilExpiry(l, today); ok && d <= days {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return expiresBefore(out[i], out[j])
	})
	return out
}
