package services

import (
	"TravelMate/models"
	"context"
	"sort"
)

// Store is the write side used to persist itineraries. UpsertPlace
// overwrites on an existing location id; the other two only append.
type Store interface {
	UpsertPlace(ctx context.Context, place models.PlaceRecord) error
	InsertVacation(ctx context.Context, vacation models.Vacation) error
	InsertVacationPlace(ctx context.Context, link models.VacationPlace) error
}

// VacationReader reads persisted vacations back with their places in order
type VacationReader interface {
	GetVacation(ctx context.Context, id string) (*models.VacationDetail, error)
	ListVacations(ctx context.Context, ownerID string) ([]models.Vacation, error)
}

type VacationStore interface {
	Store
	VacationReader
}

// orderPlaces returns the places of a vacation in link order. A place linked
// twice appears twice; links to places that no longer exist are skipped.
func orderPlaces(links []models.VacationPlace, places map[string]models.PlaceRecord) []models.PlaceRecord {
	sorted := make([]models.VacationPlace, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OrderIndex < sorted[j].OrderIndex })

	ordered := make([]models.PlaceRecord, 0, len(sorted))
	for _, link := range sorted {
		if place, ok := places[link.LocationID]; ok {
			ordered = append(ordered, place)
		}
	}
	return ordered
}
