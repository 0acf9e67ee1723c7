package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"nutriTrackAPI/internal/food"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

const visionSystemPrompt = `You are an expert nutritionist specializing in Indian cuisine. Analyze the food image and provide detailed nutritional information.

Focus on identifying Indian dishes, regional specialties, and traditional cooking methods that affect nutritional content.

Return ONLY a valid JSON object with this exact structure:
{
  "food_name": "Name of the dish",
  "calories_per_100g": 150.0,
  "protein_per_100g": 8.5,
  "carbs_per_100g": 20.0,
  "fat_per_100g": 5.0,
  "estimated_portion_g": 200.0,
  "confidence": "high/medium/low",
  "reasoning": "Brief explanation of identification and portion estimation"
}

Be accurate with Indian food nutritional values. Consider cooking oil, ghee, and traditional preparation methods.`

type VisionService struct {
	apiKey string
	client *http.Client
}

func NewVisionService(apiKey string) *VisionService {
	return &VisionService{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeImage sends a base64 JPEG to the vision model and parses its
// nutritional read. Any failure degrades to a low-confidence fallback
// rather than an error, so a flaky upstream never blocks logging.
func (s *VisionService) AnalyzeImage(ctx context.Context, imageBase64 string) *food.Analysis {
	analysis, err := s.requestAnalysis(ctx, imageBase64)
	if err != nil {
		log.Printf("vision analysis failed: %v", err)
		return fallbackAnalysis(fmt.Sprintf("API Error: %v", err))
	}
	return analysis
}

func (s *VisionService) requestAnalysis(ctx context.Context, imageBase64 string) (*food.Analysis, error) {
	payload := chatRequest{
		Model: "gpt-4o",
		Messages: []chatMessage{
			{Role: "system", Content: visionSystemPrompt},
			{
				Role: "user",
				Content: []contentPart{
					{
						Type: "text",
						Text: "Analyze this Indian food image and provide detailed nutritional information. Focus on accurate calorie and protein content.",
					},
					{
						Type:     "image_url",
						ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64},
					},
				},
			},
		},
		MaxTokens:   500,
		Temperature: 0.1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode vision response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("vision API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("vision response had no choices")
	}

	content := stripJSONFence(parsed.Choices[0].Message.Content)

	analysis := &food.Analysis{}
	if err := json.Unmarshal([]byte(content), analysis); err != nil {
		// Model ignored the format; degrade instead of erroring.
		return fallbackAnalysis("Unable to analyze image clearly"), nil
	}

	return analysis, nil
}

func stripJSONFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func fallbackAnalysis(reasoning string) *food.Analysis {
	carbs := 25.0
	fat := 8.0
	return &food.Analysis{
		FoodName:          "Unknown Indian Dish",
		CaloriesPer100g:   200.0,
		ProteinPer100g:    10.0,
		CarbsPer100g:      &carbs,
		FatPer100g:        &fat,
		EstimatedPortionG: 150.0,
		Confidence:        "low",
		Reasoning:         reasoning,
	}
}
