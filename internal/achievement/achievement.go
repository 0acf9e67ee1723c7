package achievement

import (
	"time"

	"github.com/google/uuid"
)

type RequirementType string

const (
	RequirementDaysLogged  RequirementType = "days_logged"
	RequirementStreakCount RequirementType = "streak_count"
	RequirementProteinDays RequirementType = "protein_days"
	RequirementUniqueFoods RequirementType = "unique_foods"
)

type Achievement struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Description      string          `json:"description" db:"description"`
	BadgeIcon        string          `json:"badge_icon" db:"badge_icon"`
	Category         string          `json:"category" db:"category"`
	RequirementType  RequirementType `json:"requirement_type" db:"requirement_type"`
	RequirementValue int             `json:"requirement_value" db:"requirement_value"`
	Points           int             `json:"points" db:"points"`
	Rarity           string          `json:"rarity" db:"rarity"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type UserAchievement struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	AchievementID uuid.UUID `json:"achievement_id" db:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at" db:"unlocked_at"`
}

type AchievementWithStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Progress is the stats snapshot an achievement rule is evaluated against.
type Progress struct {
	CurrentStreak   int `json:"current_streak"`
	TotalDaysLogged int `json:"total_days_logged"`
	ProteinDays     int `json:"protein_days"`
}

// SatisfiedBy reports whether the rule's threshold is met by the given
// progress snapshot. unique_foods is declared in the catalog but has no
// evaluation yet, so it never satisfies.
func (a *Achievement) SatisfiedBy(p Progress) bool {
	switch a.RequirementType {
	case RequirementDaysLogged:
		return p.TotalDaysLogged >= a.RequirementValue
	case RequirementStreakCount:
		return p.CurrentStreak >= a.RequirementValue
	case RequirementProteinDays:
		return p.ProteinDays >= a.RequirementValue
	default:
		return false
	}
}

// Evaluate returns the rules newly satisfied by the progress snapshot,
// in rule order, skipping any whose ID is already unlocked. Rules that
// were satisfied on an earlier pass are in unlocked and never come
// back, so a second evaluation with no new activity returns nothing.
func Evaluate(rules []*Achievement, unlocked map[uuid.UUID]struct{}, p Progress) []*Achievement {
	newly := make([]*Achievement, 0)
	for _, rule := range rules {
		if _, ok := unlocked[rule.ID]; ok {
			continue
		}
		if rule.SatisfiedBy(p) {
			newly = append(newly, rule)
		}
	}
	return newly
}

// NeedsProteinCount reports whether any still-locked rule depends on
// the protein-day count. Lets callers skip that computation when every
// protein rule is already unlocked.
func NeedsProteinCount(rules []*Achievement, unlocked map[uuid.UUID]struct{}) bool {
	for _, rule := range rules {
		if rule.RequirementType != RequirementProteinDays {
			continue
		}
		if _, ok := unlocked[rule.ID]; !ok {
			return true
		}
	}
	return false
}
