package services

import (
	"TravelMate/models"
	"context"
)

// PlaceProvider is the remote places lookup used by the assembler. Every
// call can fail on its own with a *ProviderError.
type PlaceProvider interface {
	// SearchByText returns an empty slice, not an error, when nothing matches
	SearchByText(ctx context.Context, query string, latLong *string, radiusKm *float64) ([]models.SearchResultStub, error)
	// GetDetails returns ErrPlaceNotFound for unknown ids
	GetDetails(ctx context.Context, id string) (*models.CandidatePlace, error)
	SearchNearby(ctx context.Context, latLong string, category models.Category, subFilter *string, limit int) ([]models.SearchResultStub, error)
	GetPhotos(ctx context.Context, id string) ([]string, error)
}
