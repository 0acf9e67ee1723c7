package user

type SignupRequest struct {
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=8"`
	Name          string   `json:"name" validate:"required"`
	Age           int      `json:"age" validate:"required"`
	Gender        string   `json:"gender" validate:"required"`
	HeightCm      float64  `json:"height_cm" validate:"required"`
	WeightKg      float64  `json:"weight_kg" validate:"required"`
	ActivityLevel string   `json:"activity_level" validate:"required"`
	Goal          string   `json:"goal" validate:"required"`
	GoalWeightKg  *float64 `json:"goal_weight_kg,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	HeightCm      float64  `json:"height_cm"`
	WeightKg      float64  `json:"weight_kg"`
	ActivityLevel string   `json:"activity_level"`
	Goal          string   `json:"goal"`
	GoalWeightKg  *float64 `json:"goal_weight_kg,omitempty"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
