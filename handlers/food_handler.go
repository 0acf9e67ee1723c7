package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"

	"nutriTrackAPI/internal/food"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
)

const maxImageBytes = 10 << 20 // 10 MB

type FoodHandler struct {
	foodService   *services.FoodService
	visionService *services.VisionService
}

func NewFoodHandler(foodService *services.FoodService, visionService *services.VisionService) *FoodHandler {
	return &FoodHandler{
		foodService:   foodService,
		visionService: visionService,
	}
}

// AnalyzeFood runs a photo through the vision model and returns the
// estimated nutrition without logging anything.
func (h *FoodHandler) AnalyzeFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	if _, ok := middleware.GetUserID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read image")
		return
	}

	imageBase64 := base64.StdEncoding.EncodeToString(imageBytes)
	analysis := h.visionService.AnalyzeImage(ctx, imageBase64)

	portionFactor := analysis.EstimatedPortionG / 100
	resp := &food.AnalysisResponse{
		Analysis:      *analysis,
		TotalCalories: math.Round(analysis.CaloriesPer100g*portionFactor*10) / 10,
		TotalProtein:  math.Round(analysis.ProteinPer100g*portionFactor*10) / 10,
		ImageBase64:   imageBase64,
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *FoodHandler) LogFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req food.LogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FoodName == "" {
		respondWithError(w, http.StatusBadRequest, "food_name is required")
		return
	}

	result, err := h.foodService.LogEntry(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

func (h *FoodHandler) GetFoodEntries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authorizedPathUser(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")

	entries, err := h.foodService.ListEntries(ctx, userID, date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *FoodHandler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authorizedPathUser(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")

	stats, err := h.foodService.DailyStats(ctx, userID, date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
