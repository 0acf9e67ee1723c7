package analytics

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// Entry is the minimal food-log view the aggregator needs: the logical
// calendar day (zero-padded YYYY-MM-DD) plus nutrient totals.
type Entry struct {
	Date     string
	Calories float64
	Protein  float64
}

type WeeklyAnalytics struct {
	WeekStart     string  `json:"week_start"`
	WeekEnd       string  `json:"week_end"`
	AvgCalories   float64 `json:"avg_calories"`
	AvgProtein    float64 `json:"avg_protein"`
	DaysLogged    int     `json:"days_logged"`
	GoalAdherence float64 `json:"goal_adherence"`
	TotalEntries  int     `json:"total_entries"`
}

type MonthlyAnalytics struct {
	Month         string  `json:"month"`
	Year          int     `json:"year"`
	AvgCalories   float64 `json:"avg_calories"`
	AvgProtein    float64 `json:"avg_protein"`
	DaysLogged    int     `json:"days_logged"`
	GoalAdherence float64 `json:"goal_adherence"`
	TotalEntries  int     `json:"total_entries"`
}

type Summary struct {
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	TotalDaysLogged   int     `json:"total_days_logged"`
	TotalEntries      int     `json:"total_entries"`
	TotalAchievements int     `json:"total_achievements"`
	ThisMonthEntries  int     `json:"this_month_entries"`
	ThisMonthCalories float64 `json:"this_month_calories"`
	ThisMonthProtein  float64 `json:"this_month_protein"`
}

// WeeklyBuckets groups entries into calendar weeks (Monday through
// Sunday) walking back weeksBack weeks from today, most recent first.
// Weeks with no entries are omitted. Averages divide by the number of
// distinct days logged, not by 7.
func WeeklyBuckets(entries []Entry, today time.Time, weeksBack int) []*WeeklyAnalytics {
	today = truncateDay(today)

	var out []*WeeklyAnalytics
	for i := 0; i < weeksBack; i++ {
		weekStart := StartOfWeek(today).AddDate(0, 0, -7*i)
		weekEnd := weekStart.AddDate(0, 0, 6)

		a := aggregate(entries, weekStart.Format(dateLayout), weekEnd.Format(dateLayout))
		if a.entries == 0 {
			continue
		}

		out = append(out, &WeeklyAnalytics{
			WeekStart:     weekStart.Format(dateLayout),
			WeekEnd:       weekEnd.Format(dateLayout),
			AvgCalories:   round1(a.calories / float64(max(a.days, 1))),
			AvgProtein:    round1(a.protein / float64(max(a.days, 1))),
			DaysLogged:    a.days,
			GoalAdherence: round1(float64(a.days) / 7 * 100),
			TotalEntries:  a.entries,
		})
	}
	return out
}

// MonthlyBuckets groups entries into calendar months walking back
// monthsBack months from today, most recent first. The current month's
// range ends today; earlier months cover the full month. Adherence
// divides by the number of days in the range. Empty months are omitted.
func MonthlyBuckets(entries []Entry, today time.Time, monthsBack int) []*MonthlyAnalytics {
	today = truncateDay(today)

	var out []*MonthlyAnalytics
	for i := 0; i < monthsBack; i++ {
		var monthStart, monthEnd time.Time
		if i == 0 {
			monthStart = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
			monthEnd = today
		} else {
			year, month := today.Year(), int(today.Month())-i
			for month <= 0 {
				month += 12
				year--
			}
			monthStart = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			monthEnd = monthStart.AddDate(0, 1, -1)
		}

		a := aggregate(entries, monthStart.Format(dateLayout), monthEnd.Format(dateLayout))
		if a.entries == 0 {
			continue
		}

		daysInRange := int(monthEnd.Sub(monthStart).Hours()/24) + 1

		out = append(out, &MonthlyAnalytics{
			Month:         monthStart.Month().String(),
			Year:          monthStart.Year(),
			AvgCalories:   round1(a.calories / float64(max(a.days, 1))),
			AvgProtein:    round1(a.protein / float64(max(a.days, 1))),
			DaysLogged:    a.days,
			GoalAdherence: round1(float64(a.days) / float64(daysInRange) * 100),
			TotalEntries:  a.entries,
		})
	}
	return out
}

type aggregation struct {
	calories float64
	protein  float64
	days     int
	entries  int
}

// aggregate sums entries whose date falls in [start, end] inclusive.
// String comparison is valid because dates are zero-padded ISO.
func aggregate(entries []Entry, start, end string) aggregation {
	var a aggregation
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.Date < start || e.Date > end {
			continue
		}
		a.calories += e.Calories
		a.protein += e.Protein
		a.entries++
		if _, ok := seen[e.Date]; !ok {
			seen[e.Date] = struct{}{}
			a.days++
		}
	}
	return a
}

// StartOfWeek returns the Monday of t's week (ISO weekday numbering).
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// WeeklyWindowStart returns the ISO date of the Monday opening the
// oldest requested week. The clock is discarded so the result compares
// cleanly against DATE columns.
func WeeklyWindowStart(today time.Time, weeksBack int) string {
	return StartOfWeek(truncateDay(today)).AddDate(0, 0, -7*(weeksBack-1)).Format(dateLayout)
}

// MonthlyWindowStart returns the ISO date of the first day of the
// oldest requested month.
func MonthlyWindowStart(today time.Time, monthsBack int) string {
	t := truncateDay(today)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(monthsBack - 1), 0).Format(dateLayout)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
