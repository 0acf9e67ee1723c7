package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2024-06-12; its week runs Monday 2024-06-10 through Sunday 2024-06-16.
var wednesday = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func TestWeeklyBucketsCurrentWeek(t *testing.T) {
	entries := []Entry{
		{Date: "2024-06-10", Calories: 2000, Protein: 100},
		{Date: "2024-06-10", Calories: 500, Protein: 30},
		{Date: "2024-06-11", Calories: 1800, Protein: 90},
	}

	weeks := WeeklyBuckets(entries, wednesday, 4)
	require.Len(t, weeks, 1)

	w := weeks[0]
	assert.Equal(t, "2024-06-10", w.WeekStart)
	assert.Equal(t, "2024-06-16", w.WeekEnd)
	assert.Equal(t, 2, w.DaysLogged, "two distinct days despite three entries")
	assert.Equal(t, 3, w.TotalEntries)
	assert.InDelta(t, 2150.0, w.AvgCalories, 0.001, "averages divide by days logged, not 7")
	assert.InDelta(t, 110.0, w.AvgProtein, 0.001)
	assert.InDelta(t, 28.6, w.GoalAdherence, 0.001, "2/7 of the week, rounded to one decimal")
}

func TestWeeklyBucketsSkipEmptyWeeksAndOrderRecentFirst(t *testing.T) {
	entries := []Entry{
		{Date: "2024-06-11", Calories: 2000, Protein: 100},
		// Nothing the week of 2024-06-03.
		{Date: "2024-05-28", Calories: 1500, Protein: 80},
	}

	weeks := WeeklyBuckets(entries, wednesday, 4)
	require.Len(t, weeks, 2)

	assert.Equal(t, "2024-06-10", weeks[0].WeekStart)
	assert.Equal(t, "2024-05-27", weeks[1].WeekStart)
}

func TestWeeklyBucketsIgnoresEntriesOutsideWindow(t *testing.T) {
	entries := []Entry{
		{Date: "2023-01-01", Calories: 9999, Protein: 999},
	}

	assert.Empty(t, WeeklyBuckets(entries, wednesday, 4))
}

func TestMonthlyBucketsPartialCurrentMonth(t *testing.T) {
	entries := []Entry{
		{Date: "2024-06-01", Calories: 2000, Protein: 100},
		{Date: "2024-06-12", Calories: 1000, Protein: 50},
	}

	months := MonthlyBuckets(entries, wednesday, 6)
	require.Len(t, months, 1)

	m := months[0]
	assert.Equal(t, "June", m.Month)
	assert.Equal(t, 2024, m.Year)
	assert.Equal(t, 2, m.DaysLogged)
	// The current month's range ends today: 12 days, 2 logged.
	assert.InDelta(t, 16.7, m.GoalAdherence, 0.001)
	assert.InDelta(t, 1500.0, m.AvgCalories, 0.001)
}

func TestMonthlyBucketsFullPastMonth(t *testing.T) {
	entries := []Entry{
		{Date: "2024-05-01", Calories: 2000, Protein: 100},
		{Date: "2024-05-31", Calories: 1000, Protein: 50},
	}

	months := MonthlyBuckets(entries, wednesday, 6)
	require.Len(t, months, 1)

	m := months[0]
	assert.Equal(t, "May", m.Month)
	// 2/31 days of May.
	assert.InDelta(t, 6.5, m.GoalAdherence, 0.001)
}

func TestMonthlyBucketsJanuaryRollover(t *testing.T) {
	today := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Date: "2023-12-25", Calories: 3000, Protein: 120},
		{Date: "2023-11-05", Calories: 1800, Protein: 90},
	}

	months := MonthlyBuckets(entries, today, 6)
	require.Len(t, months, 2)

	assert.Equal(t, "December", months[0].Month)
	assert.Equal(t, 2023, months[0].Year)
	assert.Equal(t, "November", months[1].Month)
	assert.Equal(t, 2023, months[1].Year)
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, monday, StartOfWeek(monday), "Monday is its own week start")
	assert.Equal(t, monday, StartOfWeek(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, monday, StartOfWeek(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)), "Sunday belongs to the preceding Monday")
}

func TestWeeklyWindowStartDiscardsClock(t *testing.T) {
	// wednesday carries 15:30 UTC; the window bound must still be the
	// plain Monday date, or DATE-column comparisons drop that Monday's
	// entries.
	assert.Equal(t, "2024-06-10", WeeklyWindowStart(wednesday, 1))
	assert.Equal(t, "2024-05-20", WeeklyWindowStart(wednesday, 4))
	assert.Equal(t, "2024-06-10", WeeklyWindowStart(time.Date(2024, 6, 16, 23, 59, 59, 0, time.UTC), 1), "Sunday night still opens at its Monday")
}

func TestMonthlyWindowStart(t *testing.T) {
	assert.Equal(t, "2024-06-01", MonthlyWindowStart(wednesday, 1))
	assert.Equal(t, "2024-01-01", MonthlyWindowStart(wednesday, 6))
	assert.Equal(t, "2023-09-01", MonthlyWindowStart(time.Date(2024, 2, 15, 8, 0, 0, 0, time.UTC), 6), "rolls across the year boundary")
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 28.6, round1(28.5714285))
	assert.Equal(t, 100.0, round1(100))
	assert.Equal(t, 0.1, round1(0.05))
}
