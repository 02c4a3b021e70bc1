package services

import (
	"TravelMate/models"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// IntentResolver turns free text into a travel intent. Every failure wraps ErrIntent.
type IntentResolver interface {
	Parse(ctx context.Context, text string) (*models.TravelIntent, error)
}

const intentSystemPrompt = `You extract travel plans from a user's request and answer with a single JSON object:
{
  "destination": "city or region, as the user wrote it",
  "duration_days": number of days (integer, default 3),
  "theme": "short theme like food, nightlife, culture, or null",
  "preferences": {
    "hotel_count": integer,
    "restaurant_count": integer,
    "attraction_count": integer,
    "nightlife_count": integer,
    "category_filter": "extra refinement like vegan or museums, or null"
  }
}
Leave a count out when the user does not imply one. Never add text outside the JSON.`

const maxDefaultPerCategory = 10

type OpenAIIntentResolver struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIIntentResolver builds a resolver; baseURL may be empty for the public API
func NewOpenAIIntentResolver(apiKey, model, baseURL string, logger *zap.Logger) *OpenAIIntentResolver {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIIntentResolver{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger,
	}
}

func (s *OpenAIIntentResolver) Parse(ctx context.Context, text string) (*models.TravelIntent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty request", ErrIntent)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: intentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntent, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no valid response received", ErrIntent)
	}

	intent, err := decodeIntent(resp.Choices[0].Message.Content)
	if err != nil {
		s.logger.Debug("intent reply rejected", zap.String("content", resp.Choices[0].Message.Content), zap.Error(err))
		return nil, err
	}
	s.logger.Info("intent resolved",
		zap.String("destination", intent.Destination),
		zap.Int("days", intent.DurationDays))
	return intent, nil
}

// rawIntent mirrors the reply where counts may be absent
type rawIntent struct {
	Destination  string  `json:"destination"`
	DurationDays *int    `json:"duration_days"`
	Theme        *string `json:"theme"`
	Preferences  struct {
		HotelCount      *int    `json:"hotel_count"`
		RestaurantCount *int    `json:"restaurant_count"`
		AttractionCount *int    `json:"attraction_count"`
		NightlifeCount  *int    `json:"nightlife_count"`
		CategoryFilter  *string `json:"category_filter"`
	} `json:"preferences"`
}

// decodeIntent parses and validates a model reply, filling missing counts
// from the trip length
func decodeIntent(content string) (*models.TravelIntent, error) {
	var raw rawIntent
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntent, err)
	}

	intent := &models.TravelIntent{
		Destination:  strings.TrimSpace(raw.Destination),
		DurationDays: 3,
		Theme:        nonEmpty(raw.Theme),
	}
	if raw.DurationDays != nil {
		intent.DurationDays = *raw.DurationDays
	}
	days := intent.DurationDays

	p := raw.Preferences
	intent.Preferences = models.CategoryQuotas{
		HotelCount:      valueOr(p.HotelCount, 1),
		RestaurantCount: valueOr(p.RestaurantCount, min(2*days, maxDefaultPerCategory)),
		AttractionCount: valueOr(p.AttractionCount, min(2*days, maxDefaultPerCategory)),
		NightlifeCount:  valueOr(p.NightlifeCount, 0),
		CategoryFilter:  nonEmpty(p.CategoryFilter),
	}

	if err := ValidateIntent(intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// ValidateIntent checks an intent regardless of where it came from
func ValidateIntent(intent *models.TravelIntent) error {
	if intent.Destination == "" {
		return fmt.Errorf("%w: no destination", ErrIntent)
	}
	if intent.DurationDays <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrIntent, intent.DurationDays)
	}
	if err := intent.Preferences.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrIntent, err)
	}
	return nil
}

func cleanJSONResponse(response string) string {
	// Remove markdown code block markers like ```json and ```
	re := regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	cleaned := re.ReplaceAllString(response, "$1")

	return strings.TrimSpace(cleaned)
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
