package services

import (
	"TravelMate/models"
	"context"
	"time"

	"github.com/mmcloughlin/geohash"
	"go.uber.org/zap"
)

// ItineraryPersister writes an itinerary as shared place records, one
// vacation and its ordered place links. The writes are not atomic: a failure
// leaves whatever was already written in place.
type ItineraryPersister struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewItineraryPersister(store Store, logger *zap.Logger) *ItineraryPersister {
	return &ItineraryPersister{store: store, logger: logger, now: time.Now}
}

func (p *ItineraryPersister) Persist(ctx context.Context, itinerary *models.Itinerary) error {
	logger := p.logger.With(zap.String("itinerary", itinerary.ID))
	updatedAt := p.now().UTC()

	seen := make(map[string]struct{}, len(itinerary.Places))
	for _, place := range itinerary.Places {
		if _, ok := seen[place.ID]; ok {
			continue
		}
		seen[place.ID] = struct{}{}
		if err := p.store.UpsertPlace(ctx, toPlaceRecord(place, updatedAt)); err != nil {
			logger.Error("place upsert failed", zap.String("location", place.ID), zap.Error(err))
			return &PersistError{Step: "upsert place " + place.ID, Err: err}
		}
	}

	if err := p.store.InsertVacation(ctx, toVacation(itinerary)); err != nil {
		logger.Error("vacation insert failed", zap.Error(err))
		return &PersistError{Step: "insert vacation", Err: err}
	}

	for i, place := range itinerary.Places {
		link := models.VacationPlace{
			VacationID: itinerary.ID,
			LocationID: place.ID,
			OrderIndex: i,
		}
		if err := p.store.InsertVacationPlace(ctx, link); err != nil {
			logger.Error("vacation place insert failed", zap.Int("orderIndex", i), zap.Error(err))
			return &PersistError{Step: "insert vacation place", Err: err}
		}
	}

	logger.Info("itinerary persisted", zap.Int("places", len(itinerary.Places)))
	return nil
}

func toPlaceRecord(place models.CandidatePlace, updatedAt time.Time) models.PlaceRecord {
	record := models.PlaceRecord{
		LocationID:   place.ID,
		Name:         place.Name,
		Address:      place.Location.Address,
		Latitude:     place.Location.Latitude,
		Longitude:    place.Location.Longitude,
		Rating:       place.Rating,
		ReviewsCount: place.ReviewsCount,
		Description:  place.Description,
		PhotoURL:     place.PhotoURL,
		Category:     string(place.Category),
		Phone:        place.Contact.Phone,
		Website:      place.Contact.Website,
		WebURL:       place.WebURL,
		UpdatedAt:    updatedAt,
	}
	if place.Location.HasCoordinates() {
		record.Geohash = geohash.Encode(*place.Location.Latitude, *place.Location.Longitude)
	}
	return record
}

func toVacation(itinerary *models.Itinerary) models.Vacation {
	vacation := models.Vacation{
		ID:           itinerary.ID,
		OwnerID:      itinerary.OwnerID,
		Title:        itinerary.Title,
		Destination:  itinerary.Destination,
		DurationDays: itinerary.DurationDays,
		CreatedAt:    itinerary.CreatedAt,
	}
	if itinerary.Theme != nil {
		vacation.Theme = *itinerary.Theme
	}
	return vacation
}
