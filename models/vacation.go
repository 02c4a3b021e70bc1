package models

import "time"

// Itinerary is the result of one successful synthesis
type Itinerary struct {
	ID           string           `json:"id"`
	OwnerID      string           `json:"owner_id"`
	Title        string           `json:"title"`
	Destination  string           `json:"destination"`
	DurationDays int              `json:"duration_days"`
	Theme        *string          `json:"theme,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	Places       []CandidatePlace `json:"places"`
}

type Vacation struct {
	ID           string    `json:"id" firestore:"id" bson:"_id"`
	OwnerID      string    `json:"owner_id" firestore:"owner_id" bson:"owner_id"`
	Title        string    `json:"title" firestore:"title" bson:"title"`
	Destination  string    `json:"destination" firestore:"destination" bson:"destination"`
	DurationDays int       `json:"duration_days" firestore:"duration_days" bson:"duration_days"`
	Theme        string    `json:"theme,omitempty" firestore:"theme" bson:"theme,omitempty"`
	CreatedAt    time.Time `json:"created_at" firestore:"created_at" bson:"created_at"`
}

type VacationPlace struct {
	VacationID string `json:"vacation_id" firestore:"vacation_id" bson:"vacation_id"`
	LocationID string `json:"location_id" firestore:"location_id" bson:"location_id"`
	OrderIndex int    `json:"order_index" firestore:"order_index" bson:"order_index"`
}

// VacationDetail is a vacation with its places in order index order
type VacationDetail struct {
	Vacation Vacation      `json:"vacation"`
	Places   []PlaceRecord `json:"places"`
}
