package achievement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatisfiedByDaysLogged(t *testing.T) {
	a := &Achievement{RequirementType: RequirementDaysLogged, RequirementValue: 50}

	assert.False(t, a.SatisfiedBy(Progress{TotalDaysLogged: 49}))
	assert.True(t, a.SatisfiedBy(Progress{TotalDaysLogged: 50}))
	assert.True(t, a.SatisfiedBy(Progress{TotalDaysLogged: 51}))
}

func TestSatisfiedByStreakCount(t *testing.T) {
	a := &Achievement{RequirementType: RequirementStreakCount, RequirementValue: 7}

	assert.False(t, a.SatisfiedBy(Progress{CurrentStreak: 6, TotalDaysLogged: 100}))
	assert.True(t, a.SatisfiedBy(Progress{CurrentStreak: 7}))
}

func TestSatisfiedByProteinDays(t *testing.T) {
	a := &Achievement{RequirementType: RequirementProteinDays, RequirementValue: 3}

	assert.False(t, a.SatisfiedBy(Progress{ProteinDays: 2}))
	assert.True(t, a.SatisfiedBy(Progress{ProteinDays: 3}))
}

func TestSatisfiedByUniqueFoodsNeverFires(t *testing.T) {
	a := &Achievement{RequirementType: RequirementUniqueFoods, RequirementValue: 100}

	assert.False(t, a.SatisfiedBy(Progress{CurrentStreak: 500, TotalDaysLogged: 500, ProteinDays: 500}))
}

func testRules() []*Achievement {
	return []*Achievement{
		{ID: uuid.New(), Name: "First Steps", RequirementType: RequirementDaysLogged, RequirementValue: 1},
		{ID: uuid.New(), Name: "Three Day Warrior", RequirementType: RequirementStreakCount, RequirementValue: 3},
		{ID: uuid.New(), Name: "Protein Seeker", RequirementType: RequirementProteinDays, RequirementValue: 3},
	}
}

func unlockedSet(rules ...*Achievement) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{})
	for _, r := range rules {
		set[r.ID] = struct{}{}
	}
	return set
}

func TestEvaluateReturnsSatisfiedRulesInOrder(t *testing.T) {
	rules := testRules()

	newly := Evaluate(rules, unlockedSet(), Progress{TotalDaysLogged: 1, CurrentStreak: 3})

	require.Len(t, newly, 2)
	assert.Equal(t, "First Steps", newly[0].Name)
	assert.Equal(t, "Three Day Warrior", newly[1].Name)
}

func TestEvaluateSkipsAlreadyUnlocked(t *testing.T) {
	rules := testRules()

	newly := Evaluate(rules, unlockedSet(rules[0]), Progress{TotalDaysLogged: 5, CurrentStreak: 1})

	assert.Empty(t, newly, "the only satisfied rule is already unlocked")
}

func TestEvaluateSecondPassWithNoNewActivityIsEmpty(t *testing.T) {
	rules := testRules()
	progress := Progress{TotalDaysLogged: 3, CurrentStreak: 3, ProteinDays: 3}

	first := Evaluate(rules, unlockedSet(), progress)
	require.Len(t, first, 3)

	second := Evaluate(rules, unlockedSet(first...), progress)
	assert.Empty(t, second)
}

func TestEvaluateUnsatisfiedStaysLocked(t *testing.T) {
	rules := testRules()

	newly := Evaluate(rules, unlockedSet(), Progress{})

	assert.Empty(t, newly)
}

func TestNeedsProteinCount(t *testing.T) {
	rules := testRules()

	assert.True(t, NeedsProteinCount(rules, unlockedSet()))
	assert.False(t, NeedsProteinCount(rules, unlockedSet(rules[2])), "every protein rule unlocked")
	assert.False(t, NeedsProteinCount(rules[:2], unlockedSet()), "no protein rules at all")
}

func TestCatalogIntegrity(t *testing.T) {
	assert.Len(t, Catalog, 10)

	names := make(map[string]struct{})
	for _, a := range Catalog {
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Description)
		assert.NotEmpty(t, a.BadgeIcon)
		assert.NotEmpty(t, a.Category)
		assert.Positive(t, a.RequirementValue, a.Name)
		assert.Positive(t, a.Points, a.Name)
		assert.NotEmpty(t, a.Rarity)

		_, dup := names[a.Name]
		assert.False(t, dup, "duplicate achievement name %q", a.Name)
		names[a.Name] = struct{}{}
	}
}

func TestCatalogFirstStepsUnlocksOnFirstDay(t *testing.T) {
	var firstSteps *Achievement
	for i := range Catalog {
		if Catalog[i].Name == "First Steps" {
			firstSteps = &Catalog[i]
		}
	}

	assert.NotNil(t, firstSteps)
	assert.True(t, firstSteps.SatisfiedBy(Progress{TotalDaysLogged: 1, CurrentStreak: 1}))
}
