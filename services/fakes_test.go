package services

import (
	"context"
	"errors"
	"sync"

	"TravelMate/models"
)

func floatPtr(f float64) *float64 { return &f }

// fakeProvider serves canned places. Nearby results are keyed by category
// plus sub-filter so nightlife searches can be told apart.
type fakeProvider struct {
	mu sync.Mutex

	textResults map[string][]models.SearchResultStub
	textErr     error
	nearby      map[string][]models.SearchResultStub
	nearbyErr   map[string]error
	details     map[string]models.CandidatePlace
	detailsErr  map[string]error
	photos      map[string][]string
	photosErr   map[string]error
	nearbyBlock chan struct{}

	nearbyCalls  []string
	detailsCalls []string
	photosCalls  []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		textResults: map[string][]models.SearchResultStub{},
		nearby:      map[string][]models.SearchResultStub{},
		nearbyErr:   map[string]error{},
		details:     map[string]models.CandidatePlace{},
		detailsErr:  map[string]error{},
		photos:      map[string][]string{},
		photosErr:   map[string]error{},
	}
}

func nearbyKey(category models.Category, subFilter *string) string {
	if subFilter == nil {
		return string(category)
	}
	return string(category) + "|" + *subFilter
}

// withDestination registers a resolvable destination at the given coordinates
func (f *fakeProvider) withDestination(name, id string, lat, long float64) *fakeProvider {
	f.textResults[name] = []models.SearchResultStub{{LocationID: id, Name: name}}
	f.details[id] = models.CandidatePlace{
		ID:       id,
		Name:     name,
		Location: models.GeoLocation{Latitude: floatPtr(lat), Longitude: floatPtr(long)},
	}
	return f
}

// withPlaces registers nearby stubs for a search and details for every id
func (f *fakeProvider) withPlaces(category models.Category, subFilter *string, ids ...string) *fakeProvider {
	key := nearbyKey(category, subFilter)
	for _, id := range ids {
		f.nearby[key] = append(f.nearby[key], models.SearchResultStub{LocationID: id, Name: "stub " + id})
		if _, ok := f.details[id]; !ok {
			f.details[id] = models.CandidatePlace{ID: id, Name: "place " + id, PhotoURL: "https://img.example/" + id}
		}
	}
	return f
}

func (f *fakeProvider) SearchByText(ctx context.Context, query string, latLong *string, radiusKm *float64) ([]models.SearchResultStub, error) {
	if f.textErr != nil {
		return nil, f.textErr
	}
	return f.textResults[query], nil
}

func (f *fakeProvider) GetDetails(ctx context.Context, id string) (*models.CandidatePlace, error) {
	f.mu.Lock()
	f.detailsCalls = append(f.detailsCalls, id)
	f.mu.Unlock()

	if err := f.detailsErr[id]; err != nil {
		return nil, err
	}
	place, ok := f.details[id]
	if !ok {
		return nil, ErrPlaceNotFound
	}
	return &place, nil
}

func (f *fakeProvider) SearchNearby(ctx context.Context, latLong string, category models.Category, subFilter *string, limit int) ([]models.SearchResultStub, error) {
	key := nearbyKey(category, subFilter)
	f.mu.Lock()
	f.nearbyCalls = append(f.nearbyCalls, key)
	f.mu.Unlock()

	if f.nearbyBlock != nil {
		select {
		case <-f.nearbyBlock:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.nearbyErr[key]; err != nil {
		return nil, err
	}
	return f.nearby[key], nil
}

func (f *fakeProvider) GetPhotos(ctx context.Context, id string) ([]string, error) {
	f.mu.Lock()
	f.photosCalls = append(f.photosCalls, id)
	f.mu.Unlock()

	if err := f.photosErr[id]; err != nil {
		return nil, err
	}
	return f.photos[id], nil
}

func (f *fakeProvider) nearbyCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.nearbyCalls)
}

var errStoreDown = errors.New("store down")

// memoryStore records every write in call order
type memoryStore struct {
	mu sync.Mutex

	places         map[string]models.PlaceRecord
	placeUpserts   []string
	vacations      []models.Vacation
	vacationPlaces []models.VacationPlace

	failUpsert   bool
	failVacation bool
	failLinkAt   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{places: map[string]models.PlaceRecord{}, failLinkAt: -1}
}

func (s *memoryStore) UpsertPlace(ctx context.Context, place models.PlaceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpsert {
		return errStoreDown
	}
	s.places[place.LocationID] = place
	s.placeUpserts = append(s.placeUpserts, place.LocationID)
	return nil
}

func (s *memoryStore) InsertVacation(ctx context.Context, vacation models.Vacation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failVacation {
		return errStoreDown
	}
	s.vacations = append(s.vacations, vacation)
	return nil
}

func (s *memoryStore) InsertVacationPlace(ctx context.Context, link models.VacationPlace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLinkAt == link.OrderIndex {
		return errStoreDown
	}
	s.vacationPlaces = append(s.vacationPlaces, link)
	return nil
}

func (s *memoryStore) GetVacation(ctx context.Context, id string) (*models.VacationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vacations {
		if v.ID != id {
			continue
		}
		var links []models.VacationPlace
		for _, link := range s.vacationPlaces {
			if link.VacationID == id {
				links = append(links, link)
			}
		}
		return &models.VacationDetail{Vacation: v, Places: orderPlaces(links, s.places)}, nil
	}
	return nil, ErrVacationNotFound
}

func (s *memoryStore) ListVacations(ctx context.Context, ownerID string) ([]models.Vacation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Vacation
	for _, v := range s.vacations {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}
