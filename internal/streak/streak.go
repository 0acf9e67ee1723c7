package streak

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Streak struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	CurrentStreak   int       `json:"current_streak" db:"current_streak"`
	LongestStreak   int       `json:"longest_streak" db:"longest_streak"`
	LastLogDate     string    `json:"last_log_date" db:"last_log_date"`
	TotalDaysLogged int       `json:"total_days_logged" db:"total_days_logged"`
	UpdatedAt       time.Time `json:"streak_updated_at" db:"updated_at"`
}

// Apply returns the streak state after counting a log on logDate
// (zero-padded YYYY-MM-DD). A nil prev means the user's first log ever.
// A repeated log on the same day returns prev unchanged. Only a log on
// the day immediately after the last one extends the streak; any other
// date, including backfilled earlier dates, resets it to 1.
func Apply(prev *Streak, userID uuid.UUID, logDate string, now time.Time) *Streak {
	if prev == nil {
		return &Streak{
			UserID:          userID,
			CurrentStreak:   1,
			LongestStreak:   1,
			LastLogDate:     logDate,
			TotalDaysLogged: 1,
			UpdatedAt:       now,
		}
	}

	if prev.LastLogDate == logDate {
		return prev
	}

	next := *prev
	if logDate == NextDay(prev.LastLogDate) {
		next.CurrentStreak++
	} else {
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.TotalDaysLogged++
	next.LastLogDate = logDate
	next.UpdatedAt = now

	return &next
}

// NextDay returns the ISO date one calendar day after date, or "" if
// date does not parse.
func NextDay(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}
