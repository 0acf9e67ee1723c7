package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
)

type AnalyticsHandler struct {
	analyticsService   *services.AnalyticsService
	streakService      *services.StreakService
	achievementService *services.AchievementService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, streakService *services.StreakService, achievementService *services.AchievementService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService:   analyticsService,
		streakService:      streakService,
		achievementService: achievementService,
	}
}

func (h *AnalyticsHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authorizedPathUser(w, r)
	if !ok {
		return
	}

	rec, err := h.streakService.GetStreak(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get streak")
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}

func (h *AnalyticsHandler) GetAchievementsCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	achievements, err := h.achievementService.ListWithStatus(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get achievements")
		return
	}

	respondWithJSON(w, http.StatusOK, achievements)
}

func (h *AnalyticsHandler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authorizedPathUser(w, r)
	if !ok {
		return
	}

	achievements, err := h.achievementService.ListUnlocked(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get achievements")
		return
	}

	respondWithJSON(w, http.StatusOK, achievements)
}

func (h *AnalyticsHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authorizedPathUser(w, r)
	if !ok {
		return
	}

	weeks := parseCountParam(r, "weeks", 4, 52)

	buckets, err := h.analyticsService.Weekly(ctx, userID, weeks)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get weekly analytics")
		return
	}

	respondWithJSON(w, http.StatusOK, buckets)
}

func (h *AnalyticsHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authorizedPathUser(w, r)
	if !ok {
		return
	}

	months := parseCountParam(r, "months", 6, 24)

	buckets, err := h.analyticsService.Monthly(ctx, userID, months)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get monthly analytics")
		return
	}

	respondWithJSON(w, http.StatusOK, buckets)
}

func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authorizedPathUser(w, r)
	if !ok {
		return
	}

	summary, err := h.analyticsService.Summary(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get summary")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// parseCountParam reads a positive integer query param, falling back to
// def and capping at limit.
func parseCountParam(r *http.Request, name string, def, limit int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > limit {
		return limit
	}
	return n
}
