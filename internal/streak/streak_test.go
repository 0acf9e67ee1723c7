package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFirstLog(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	s := Apply(nil, userID, "2024-01-01", now)

	require.NotNil(t, s)
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, "2024-01-01", s.LastLogDate)
	assert.Equal(t, 1, s.TotalDaysLogged)
}

func TestApplySameDayIsNoOp(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	first := Apply(nil, userID, "2024-01-01", now)
	second := Apply(first, userID, "2024-01-01", now.Add(time.Hour))

	assert.Same(t, first, second, "a repeated log on the same day returns the previous record")
	assert.Equal(t, 1, second.TotalDaysLogged)
}

func TestApplyConsecutiveDaysExtend(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	s := Apply(nil, userID, "2024-01-01", now)
	s = Apply(s, userID, "2024-01-02", now)

	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 2, s.TotalDaysLogged)
}

func TestApplyGapResets(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	s := Apply(nil, userID, "2024-01-01", now)
	s = Apply(s, userID, "2024-01-02", now)
	s = Apply(s, userID, "2024-01-04", now)

	assert.Equal(t, 1, s.CurrentStreak, "skipping a day starts a fresh streak")
	assert.Equal(t, 2, s.LongestStreak, "the longest streak survives the reset")
	assert.Equal(t, 3, s.TotalDaysLogged)
	assert.Equal(t, "2024-01-04", s.LastLogDate)
}

func TestApplyBackfillResets(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	s := Apply(nil, userID, "2024-01-10", now)
	s = Apply(s, userID, "2024-01-11", now)
	s = Apply(s, userID, "2024-01-05", now)

	assert.Equal(t, 1, s.CurrentStreak, "logging an earlier date resets the streak")
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, "2024-01-05", s.LastLogDate)
}

func TestApplyLongestStreakMonotonic(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	var s *Streak
	for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"} {
		s = Apply(s, userID, date, now)
	}
	assert.Equal(t, 4, s.LongestStreak)

	s = Apply(s, userID, "2024-03-10", now)
	s = Apply(s, userID, "2024-03-11", now)

	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 4, s.LongestStreak)
	assert.Equal(t, 6, s.TotalDaysLogged)
}

func TestApplyDoesNotMutatePrev(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	prev := Apply(nil, userID, "2024-01-01", now)
	_ = Apply(prev, userID, "2024-01-02", now)

	assert.Equal(t, 1, prev.CurrentStreak)
	assert.Equal(t, "2024-01-01", prev.LastLogDate)
}

func TestNextDay(t *testing.T) {
	assert.Equal(t, "2024-01-02", NextDay("2024-01-01"))
	assert.Equal(t, "2024-03-01", NextDay("2024-02-29"), "leap day rolls into March")
	assert.Equal(t, "2025-01-01", NextDay("2024-12-31"))
	assert.Equal(t, "", NextDay("not-a-date"))
}
