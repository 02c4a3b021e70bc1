package models

import "time"

// Category is the provider's place category vocabulary
type Category string

const (
	CategoryHotel      Category = "hotels"
	CategoryRestaurant Category = "restaurants"
	CategoryAttraction Category = "attractions"
)

type GeoLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

// HasCoordinates reports whether both latitude and longitude are known
func (g GeoLocation) HasCoordinates() bool {
	return g.Latitude != nil && g.Longitude != nil
}

type Contact struct {
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// SearchResultStub is a search hit that still needs a details lookup
type SearchResultStub struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

// CandidatePlace is a place resolved from the provider, not yet deduplicated or persisted
type CandidatePlace struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Location     GeoLocation `json:"location"`
	Rating       float64     `json:"rating"`
	ReviewsCount int         `json:"reviews_count"`
	Description  string      `json:"description"`
	PhotoURL     string      `json:"photo_url"`
	Category     Category    `json:"category"`
	Contact      Contact     `json:"contact"`
	WebURL       string      `json:"web_url"`
}

// PlaceRecord is the shared place row, keyed by the provider location id
type PlaceRecord struct {
	LocationID   string    `json:"location_id" firestore:"location_id" bson:"location_id"`
	Name         string    `json:"name" firestore:"name" bson:"name"`
	Address      string    `json:"address" firestore:"address" bson:"address"`
	Latitude     *float64  `json:"latitude" firestore:"latitude" bson:"latitude"`
	Longitude    *float64  `json:"longitude" firestore:"longitude" bson:"longitude"`
	Geohash      string    `json:"geohash,omitempty" firestore:"geohash" bson:"geohash,omitempty"`
	Rating       float64   `json:"rating" firestore:"rating" bson:"rating"`
	ReviewsCount int       `json:"reviews_count" firestore:"reviews_count" bson:"reviews_count"`
	Description  string    `json:"description" firestore:"description" bson:"description"`
	PhotoURL     string    `json:"photo_url" firestore:"photo_url" bson:"photo_url"`
	Category     string    `json:"category" firestore:"category" bson:"category"`
	Phone        string    `json:"phone" firestore:"phone" bson:"phone"`
	Website      string    `json:"website" firestore:"website" bson:"website"`
	WebURL       string    `json:"web_url" firestore:"web_url" bson:"web_url"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updated_at" bson:"updated_at"`
}
