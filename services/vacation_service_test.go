package services

import (
	"context"
	"errors"
	"testing"

	"TravelMate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	intent *models.TravelIntent
	err    error
	calls  int
}

func (r *stubResolver) Parse(ctx context.Context, text string) (*models.TravelIntent, error) {
	r.calls++
	return r.intent, r.err
}

func romeProvider() *fakeProvider {
	return newFakeProvider().
		withDestination("Rome", "rome", 41.9, 12.5).
		withPlaces(models.CategoryHotel, nil, "h1").
		withPlaces(models.CategoryRestaurant, nil, "r1", "r2").
		withPlaces(models.CategoryAttraction, nil, "a1")
}

func TestCreateVacationEndToEnd(t *testing.T) {
	resolver := &stubResolver{intent: &models.TravelIntent{
		Destination:  "Rome",
		DurationDays: 3,
		Preferences:  models.CategoryQuotas{HotelCount: 1, RestaurantCount: 2, AttractionCount: 1},
	}}
	store := newMemoryStore()
	svc := NewVacationService(resolver, romeProvider(), store, 4, zap.NewNop())

	itinerary, err := svc.CreateVacation(context.Background(), "user-1", models.PlanRequest{Prompt: "3 days in Rome"})
	require.NoError(t, err)

	assert.Equal(t, []string{"h1", "r1", "r2", "a1"}, placeIDs(itinerary.Places))
	assert.Equal(t, []string{"h1", "r1", "r2", "a1"}, store.placeUpserts)
	require.Len(t, store.vacations, 1)
	assert.Equal(t, itinerary.ID, store.vacations[0].ID)
	require.Len(t, store.vacationPlaces, 4)
	for i, link := range store.vacationPlaces {
		assert.Equal(t, i, link.OrderIndex)
		assert.Equal(t, itinerary.Places[i].ID, link.LocationID)
		assert.Equal(t, itinerary.ID, link.VacationID)
	}

	detail, err := svc.GetVacation(context.Background(), "user-1", itinerary.ID)
	require.NoError(t, err)
	require.Len(t, detail.Places, 4)
	assert.Equal(t, "h1", detail.Places[0].LocationID)
	assert.Equal(t, "a1", detail.Places[3].LocationID)
}

func TestCreateVacationWithStructuredIntentSkipsResolver(t *testing.T) {
	resolver := &stubResolver{err: errors.New("should not be called")}
	store := newMemoryStore()
	svc := NewVacationService(resolver, romeProvider(), store, 4, zap.NewNop())

	itinerary, err := svc.CreateVacation(context.Background(), "user-1", models.PlanRequest{
		Intent: &models.TravelIntent{Destination: "Rome", Preferences: models.CategoryQuotas{HotelCount: 1}},
	})
	require.NoError(t, err)

	assert.Zero(t, resolver.calls)
	assert.Equal(t, 1, itinerary.DurationDays)
	assert.Equal(t, []string{"h1"}, placeIDs(itinerary.Places))
}

func TestCreateVacationFailuresWriteNothing(t *testing.T) {
	t.Run("intent error", func(t *testing.T) {
		provider := romeProvider()
		store := newMemoryStore()
		svc := NewVacationService(&stubResolver{err: ErrIntent}, provider, store, 4, zap.NewNop())

		_, err := svc.CreateVacation(context.Background(), "user-1", models.PlanRequest{Prompt: "??"})

		assert.ErrorIs(t, err, ErrIntent)
		assert.Zero(t, provider.nearbyCallCount())
		assert.Empty(t, store.placeUpserts)
	})

	t.Run("invalid structured intent", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewVacationService(nil, romeProvider(), store, 4, zap.NewNop())

		_, err := svc.CreateVacation(context.Background(), "user-1", models.PlanRequest{
			Intent: &models.TravelIntent{Destination: "Rome", Preferences: models.CategoryQuotas{RestaurantCount: -2}},
		})
		assert.ErrorIs(t, err, ErrIntent)
	})

	t.Run("unknown destination", func(t *testing.T) {
		store := newMemoryStore()
		resolver := &stubResolver{intent: &models.TravelIntent{Destination: "Atlantis", DurationDays: 2}}
		svc := NewVacationService(resolver, romeProvider(), store, 4, zap.NewNop())

		_, err := svc.CreateVacation(context.Background(), "user-1", models.PlanRequest{Prompt: "Atlantis"})

		assert.ErrorIs(t, err, ErrDestinationNotFound)
		assert.Empty(t, store.vacations)
	})

	t.Run("cancelled request", func(t *testing.T) {
		store := newMemoryStore()
		resolver := &stubResolver{intent: &models.TravelIntent{Destination: "Rome", DurationDays: 2}}
		svc := NewVacationService(resolver, romeProvider(), store, 4, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.CreateVacation(ctx, "user-1", models.PlanRequest{Prompt: "Rome"})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, store.placeUpserts)
		assert.Empty(t, store.vacations)
	})
}

func TestCreateVacationPersistError(t *testing.T) {
	store := newMemoryStore()
	store.failVacation = true
	resolver := &stubResolver{intent: &models.TravelIntent{Destination: "Rome", DurationDays: 1, Preferences: models.CategoryQuotas{HotelCount: 1}}}
	svc := NewVacationService(resolver, romeProvider(), store, 4, zap.NewNop())

	_, err := svc.CreateVacation(context.Background(), "user-1", models.PlanRequest{Prompt: "Rome"})

	var persistErr *PersistError
	assert.ErrorAs(t, err, &persistErr)
}

func TestGetVacationEnforcesOwnership(t *testing.T) {
	store := newMemoryStore()
	store.vacations = []models.Vacation{{ID: "vac-1", OwnerID: "someone-else"}}
	svc := NewVacationService(nil, newFakeProvider(), store, 4, zap.NewNop())

	_, err := svc.GetVacation(context.Background(), "user-1", "vac-1")
	assert.ErrorIs(t, err, ErrVacationNotFound)

	_, err = svc.GetVacation(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrVacationNotFound)

	vacations, err := svc.ListVacations(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, vacations)
	assert.NotNil(t, vacations)
}
