package food

import (
	"time"

	"github.com/google/uuid"

	"nutriTrackAPI/internal/achievement"
)

type Entry struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	FoodName           string    `json:"food_name"`
	CaloriesPer100g    float64   `json:"calories_per_100g"`
	ProteinPer100g     float64   `json:"protein_per_100g"`
	CarbsPer100g       *float64  `json:"carbs_per_100g,omitempty"`
	FatPer100g         *float64  `json:"fat_per_100g,omitempty"`
	EstimatedPortionG  float64   `json:"estimated_portion_g"`
	TotalCalories      float64   `json:"total_calories"`
	TotalProtein       float64   `json:"total_protein"`
	ImageBase64        *string   `json:"image_base64,omitempty"`
	AnalysisConfidence *string   `json:"analysis_confidence,omitempty"`
	LoggedAt           time.Time `json:"logged_at"`
	Date               string    `json:"date"`
}

type LogEntryRequest struct {
	FoodName           string   `json:"food_name" validate:"required"`
	CaloriesPer100g    float64  `json:"calories_per_100g" validate:"required"`
	ProteinPer100g     float64  `json:"protein_per_100g" validate:"required"`
	CarbsPer100g       *float64 `json:"carbs_per_100g,omitempty"`
	FatPer100g         *float64 `json:"fat_per_100g,omitempty"`
	EstimatedPortionG  float64  `json:"estimated_portion_g" validate:"required"`
	TotalCalories      float64  `json:"total_calories" validate:"required"`
	TotalProtein       float64  `json:"total_protein" validate:"required"`
	ImageBase64        *string  `json:"image_base64,omitempty"`
	AnalysisConfidence *string  `json:"analysis_confidence,omitempty"`
	Date               string   `json:"date,omitempty"`
}

// LogResult is the log-food response: the stored entry plus whatever
// achievements this log just unlocked.
type LogResult struct {
	Entry
	NewlyUnlocked []*achievement.Achievement `json:"newly_unlocked_achievements"`
}

// Analysis is the vision model's read of a food photo.
type Analysis struct {
	FoodName          string   `json:"food_name"`
	CaloriesPer100g   float64  `json:"calories_per_100g"`
	ProteinPer100g    float64  `json:"protein_per_100g"`
	CarbsPer100g      *float64 `json:"carbs_per_100g,omitempty"`
	FatPer100g        *float64 `json:"fat_per_100g,omitempty"`
	EstimatedPortionG float64  `json:"estimated_portion_g"`
	Confidence        string   `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
}

type AnalysisResponse struct {
	Analysis
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	ImageBase64   string  `json:"image_base64"`
}

type DailyStats struct {
	Date                string  `json:"date"`
	TotalCalories       float64 `json:"total_calories"`
	TotalProtein        float64 `json:"total_protein"`
	RecommendedCalories float64 `json:"recommended_calories"`
	RecommendedProtein  float64 `json:"recommended_protein"`
	CalorieGoalMet      bool    `json:"calorie_goal_met"`
	ProteinGoalMet      bool    `json:"protein_goal_met"`
}
