package models

import "fmt"

// CategoryQuotas holds the requested number of places per category
type CategoryQuotas struct {
	HotelCount      int     `json:"hotel_count"`
	RestaurantCount int     `json:"restaurant_count"`
	AttractionCount int     `json:"attraction_count"`
	NightlifeCount  int     `json:"nightlife_count"`
	CategoryFilter  *string `json:"category_filter,omitempty"`
}

func (q CategoryQuotas) Validate() error {
	counts := map[string]int{
		"hotel_count":      q.HotelCount,
		"restaurant_count": q.RestaurantCount,
		"attraction_count": q.AttractionCount,
		"nightlife_count":  q.NightlifeCount,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, n)
		}
	}
	return nil
}

// TravelIntent is the structured form of a free-text travel request
type TravelIntent struct {
	Destination  string         `json:"destination" binding:"required"`
	DurationDays int            `json:"duration_days"`
	Theme        *string        `json:"theme,omitempty"`
	Preferences  CategoryQuotas `json:"preferences"`
}

type SearchTask struct {
	Category  Category
	SubFilter *string
	Quota     int
}

// PlanRequest asks for a new vacation either from free text or from an
// already structured intent
type PlanRequest struct {
	Prompt string        `json:"prompt"`
	Intent *TravelIntent `json:"intent,omitempty"`
}
