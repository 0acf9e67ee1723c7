package nutrition

import (
	"fmt"
	"strings"

	"nutriTrackAPI/internal/user"
)

// activityMultipliers is the single source of truth for recognized
// activity levels. Unrecognized levels fall back to sedentary.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extremely_active":  1.9,
}

type Targets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// BMR computes the basal metabolic rate using the Mifflin-St Jeor equation.
func BMR(weightKg, heightCm float64, age int, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		return bmr + 5
	}
	return bmr - 161
}

// DailyCalories scales BMR by the activity multiplier and adjusts for the
// user's goal: 15% deficit for "lose", 15% surplus for "gain".
func DailyCalories(u *user.User) float64 {
	bmr := BMR(u.WeightKg, u.HeightCm, u.Age, u.Gender)

	mult, ok := activityMultipliers[u.ActivityLevel]
	if !ok {
		mult = 1.2
	}
	tdee := bmr * mult

	switch u.Goal {
	case "lose":
		return tdee * 0.85
	case "gain":
		return tdee * 1.15
	default:
		return tdee
	}
}

// DailyProtein returns the daily protein target in grams: 2.0 g/kg for
// muscle gain, 1.8 g/kg otherwise.
func DailyProtein(u *user.User) float64 {
	if u.Goal == "gain" {
		return u.WeightKg * 2.0
	}
	return u.WeightKg * 1.8
}

// CalculateTargets validates the biometric fields and returns the user's
// daily calorie and protein targets. Pure; no side effects.
func CalculateTargets(u *user.User) (*Targets, error) {
	if u.WeightKg <= 0 {
		return nil, fmt.Errorf("invalid weight: %v", u.WeightKg)
	}
	if u.HeightCm <= 0 {
		return nil, fmt.Errorf("invalid height: %v", u.HeightCm)
	}
	if u.Age <= 0 {
		return nil, fmt.Errorf("invalid age: %v", u.Age)
	}

	return &Targets{
		Calories: DailyCalories(u),
		Protein:  DailyProtein(u),
	}, nil
}
