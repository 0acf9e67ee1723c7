package achievement

// Catalog is the fixed achievement list. Seeded into the database at
// startup, keyed by name so re-seeding never duplicates.
var Catalog = []Achievement{
	{
		Name:             "First Steps",
		Description:      "Log your first meal",
		BadgeIcon:        "🌟",
		Category:         "milestone",
		RequirementType:  RequirementDaysLogged,
		RequirementValue: 1,
		Points:           10,
		Rarity:           "bronze",
	},
	{
		Name:             "Three Day Warrior",
		Description:      "Maintain a 3-day logging streak",
		BadgeIcon:        "🔥",
		Category:         "streak",
		RequirementType:  RequirementStreakCount,
		RequirementValue: 3,
		Points:           25,
		Rarity:           "bronze",
	},
	{
		Name:             "Week Champion",
		Description:      "Maintain a 7-day logging streak",
		BadgeIcon:        "⭐",
		Category:         "streak",
		RequirementType:  RequirementStreakCount,
		RequirementValue: 7,
		Points:           50,
		Rarity:           "silver",
	},
	{
		Name:             "Consistency Master",
		Description:      "Maintain a 30-day logging streak",
		BadgeIcon:        "👑",
		Category:         "streak",
		RequirementType:  RequirementStreakCount,
		RequirementValue: 30,
		Points:           200,
		Rarity:           "gold",
	},
	{
		Name:             "Streak Legend",
		Description:      "Maintain a 100-day logging streak",
		BadgeIcon:        "💎",
		Category:         "streak",
		RequirementType:  RequirementStreakCount,
		RequirementValue: 100,
		Points:           500,
		Rarity:           "platinum",
	},
	{
		Name:             "Protein Seeker",
		Description:      "Meet protein goal for 3 days",
		BadgeIcon:        "💪",
		Category:         "protein",
		RequirementType:  RequirementProteinDays,
		RequirementValue: 3,
		Points:           30,
		Rarity:           "bronze",
	},
	{
		Name:             "Protein Pro",
		Description:      "Meet protein goal for 7 days",
		BadgeIcon:        "🏋️",
		Category:         "protein",
		RequirementType:  RequirementProteinDays,
		RequirementValue: 7,
		Points:           75,
		Rarity:           "silver",
	},
	{
		Name:             "Protein Beast",
		Description:      "Meet protein goal for 30 days",
		BadgeIcon:        "🦬",
		Category:         "protein",
		RequirementType:  RequirementProteinDays,
		RequirementValue: 30,
		Points:           250,
		Rarity:           "gold",
	},
	{
		Name:             "Dedicated Logger",
		Description:      "Log meals for 50 total days",
		BadgeIcon:        "📝",
		Category:         "consistency",
		RequirementType:  RequirementDaysLogged,
		RequirementValue: 50,
		Points:           100,
		Rarity:           "silver",
	},
	{
		Name:             "Nutrition Explorer",
		Description:      "Log 100 different meals",
		BadgeIcon:        "🍽️",
		Category:         "milestone",
		RequirementType:  RequirementUniqueFoods,
		RequirementValue: 100,
		Points:           150,
		Rarity:           "gold",
	},
}
