package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// LateTier is one lateness band. A check-in up to UpToMinutes late falls in
// the band; a zero bound is open-ended.
type LateTier struct {
	UpToMinutes int
	Deduction   decimal.Decimal
}

var lateTiers = []LateTier{
	{UpToMinutes: 30, Deduction: decimal.NewFromInt(25000)},
	{UpToMinutes: 60, Deduction: decimal.NewFromInt(50000)},
	{UpToMinutes: 0, Deduction: decimal.NewFromInt(75000)},
}

// MinutesLate returns whole minutes elapsed from scheduledStart to checkIn,
// zero when on time or early.
func MinutesLate(scheduledStart, checkIn time.Time) int {
	d := checkIn.Sub(scheduledStart)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// CalculateLateTier maps minutes late to a status and deduction amount.
func CalculateLateTier(minutesLate int) (attendance.Status, decimal.Decimal) {
	if minutesLate <= 0 {
		return attendance.StatusOnTime, decimal.Zero
	}
	for _, t := range lateTiers {
		if t.UpToMinutes == 0 || minutesLate <= t.UpToMinutes {
			return attendance.StatusLate, t.Deduction
		}
	}
	return attendance.StatusLate, lateTiers[len(lateTiers)-1].Deduction
}
