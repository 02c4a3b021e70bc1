package controllers

import (
	"TravelMate/models"
	"TravelMate/services"
	"TravelMate/utils"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type cannedProvider struct {
	nearby map[models.Category][]string
}

func (p cannedProvider) SearchByText(ctx context.Context, query string, latLong *string, radiusKm *float64) ([]models.SearchResultStub, error) {
	if query != "Rome" {
		return nil, nil
	}
	return []models.SearchResultStub{{LocationID: "rome", Name: "Rome"}}, nil
}

func (p cannedProvider) GetDetails(ctx context.Context, id string) (*models.CandidatePlace, error) {
	lat, long := 41.9, 12.5
	return &models.CandidatePlace{
		ID:       id,
		Name:     "place " + id,
		PhotoURL: "https://img.example/" + id,
		Location: models.GeoLocation{Latitude: &lat, Longitude: &long},
	}, nil
}

func (p cannedProvider) SearchNearby(ctx context.Context, latLong string, category models.Category, subFilter *string, limit int) ([]models.SearchResultStub, error) {
	var stubs []models.SearchResultStub
	for _, id := range p.nearby[category] {
		stubs = append(stubs, models.SearchResultStub{LocationID: id})
	}
	return stubs, nil
}

func (p cannedProvider) GetPhotos(ctx context.Context, id string) ([]string, error) {
	return nil, nil
}

type recordingStore struct {
	mu        sync.Mutex
	places    map[string]models.PlaceRecord
	vacations map[string]models.Vacation
	links     []models.VacationPlace
	failWrite bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{places: map[string]models.PlaceRecord{}, vacations: map[string]models.Vacation{}}
}

func (s *recordingStore) UpsertPlace(ctx context.Context, place models.PlaceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return errors.New("disk full")
	}
	s.places[place.LocationID] = place
	return nil
}

func (s *recordingStore) InsertVacation(ctx context.Context, vacation models.Vacation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vacations[vacation.ID] = vacation
	return nil
}

func (s *recordingStore) InsertVacationPlace(ctx context.Context, link models.VacationPlace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, link)
	return nil
}

func (s *recordingStore) GetVacation(ctx context.Context, id string) (*models.VacationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vacations[id]
	if !ok {
		return nil, services.ErrVacationNotFound
	}
	detail := &models.VacationDetail{Vacation: v}
	for _, link := range s.links {
		if link.VacationID == id {
			detail.Places = append(detail.Places, s.places[link.LocationID])
		}
	}
	return detail, nil
}

func (s *recordingStore) ListVacations(ctx context.Context, ownerID string) ([]models.Vacation, error) {
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

// newTestRouter wires the controller with a fixed caller instead of real auth
func newTestRouter(store *recordingStore) *gin.Engine {
	provider := cannedProvider{nearby: map[models.Category][]string{
		models.CategoryHotel:      {"h1"},
		models.CategoryRestaurant: {"r1", "r2"},
		models.CategoryAttraction: {"a1"},
	}}
	svc := services.NewVacationService(nil, provider, store, 2, zap.NewNop())
	controller := NewVacationController(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user := c.GetHeader("X-Test-User"); user != "" {
			c.Set("userId", user)
		}
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 {
			var customErr *utils.CustomError
			if errors.As(c.Errors.Last().Err, &customErr) {
				utils.ErrorResponse(c, customErr.StatusCode, customErr.Message)
			}
		}
	})
	r.POST("/v1/vacations", controller.CreateVacation)
	r.GET("/v1/vacations", controller.GetVacations)
	r.GET("/v1/vacations/:id", controller.GetVacationByID)
	return r
}

func doJSON(r *gin.Engine, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndFetchVacation(t *testing.T) {
	store := newRecordingStore()
	r := newTestRouter(store)

	w := doJSON(r, http.MethodPost, "/v1/vacations", "user-1", models.PlanRequest{
		Intent: &models.TravelIntent{
			Destination:  "Rome",
			DurationDays: 3,
			Preferences:  models.CategoryQuotas{HotelCount: 1, RestaurantCount: 2, AttractionCount: 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message string           `json:"message"`
		Data    models.Itinerary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Vacation created with 4 places", created.Message)
	assert.Equal(t, "Trip to Rome", created.Data.Title)
	require.Len(t, created.Data.Places, 4)

	w = doJSON(r, http.MethodGet, "/v1/vacations/"+created.Data.ID, "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched struct {
		Data models.VacationDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	ids := make([]string, len(fetched.Data.Places))
	for i, p := range fetched.Data.Places {
		ids[i] = p.LocationID
	}
	assert.Equal(t, []string{"h1", "r1", "r2", "a1"}, ids)

	w = doJSON(r, http.MethodGet, "/v1/vacations/"+created.Data.ID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/vacations", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data []models.Vacation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
}

func TestCreateVacationErrors(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		body    interface{}
		fail    bool
		status  int
		message string
	}{
		{"no user", "", models.PlanRequest{Prompt: "Rome"}, false, http.StatusUnauthorized, "UserId is required"},
		{"empty body", "user-1", models.PlanRequest{}, false, http.StatusBadRequest, "prompt or intent is required"},
		{"prompt without resolver", "user-1", models.PlanRequest{Prompt: "Rome please"}, false, http.StatusBadRequest, "Could not understand request"},
		{"unknown destination", "user-1", models.PlanRequest{Intent: &models.TravelIntent{Destination: "Atlantis", DurationDays: 1}}, false, http.StatusNotFound, "Destination not found"},
		{"store down", "user-1", models.PlanRequest{Intent: &models.TravelIntent{Destination: "Rome", DurationDays: 1, Preferences: models.CategoryQuotas{HotelCount: 1}}}, true, http.StatusInternalServerError, "Failed to save itinerary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore()
			store.failWrite = tt.fail
			w := doJSON(newTestRouter(store), http.MethodPost, "/v1/vacations", tt.user, tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("wrapped: %w", services.ErrDestinationDetailsUnavailable), http.StatusBadGateway},
		{context.Canceled, statusClientClosedRequest},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, toHTTPError(tt.err).StatusCode, tt.err.Error())
	}
}
