package services

import (
	"TravelMate/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// subFilterRadiusKm bounds refined searches around the destination
const subFilterRadiusKm = 10.0

type TripAdvisorConfig struct {
	APIKey        string
	BaseURL       string
	Language      string
	RatePerSecond float64
	Timeout       time.Duration
}

// TripAdvisorClient implements PlaceProvider over the TripAdvisor Content API
type TripAdvisorClient struct {
	config     TripAdvisorConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewTripAdvisorClient(config TripAdvisorConfig, logger *zap.Logger) *TripAdvisorClient {
	if config.Language == "" {
		config.Language = "en"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	burst := 1
	if config.RatePerSecond > 0 {
		limit = rate.Limit(config.RatePerSecond)
		burst = max(1, int(config.RatePerSecond))
	}
	return &TripAdvisorClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}
}

type taAddress struct {
	AddressString string `json:"address_string"`
}

type taLocation struct {
	LocationID  string    `json:"location_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	WebURL      string    `json:"web_url"`
	AddressObj  taAddress `json:"address_obj"`
	Latitude    string    `json:"latitude"`
	Longitude   string    `json:"longitude"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	Rating      string    `json:"rating"`
	NumReviews  string    `json:"num_reviews"`
	Category    *struct {
		Name string `json:"name"`
	} `json:"category"`
}

type taListResponse struct {
	Data []taLocation `json:"data"`
}

type taImage struct {
	URL string `json:"url"`
}

type taPhotosResponse struct {
	Data []struct {
		Images struct {
			Original *taImage `json:"original"`
			Large    *taImage `json:"large"`
			Medium   *taImage `json:"medium"`
			Small    *taImage `json:"small"`
		} `json:"images"`
	} `json:"data"`
}

func (c *TripAdvisorClient) SearchByText(ctx context.Context, query string, latLong *string, radiusKm *float64) ([]models.SearchResultStub, error) {
	params := url.Values{}
	params.Set("searchQuery", query)
	if latLong != nil {
		params.Set("latLong", *latLong)
	}
	if radiusKm != nil {
		params.Set("radius", strconv.FormatFloat(*radiusKm, 'f', -1, 64))
		params.Set("radiusUnit", "km")
	}

	var resp taListResponse
	if err := c.get(ctx, "search", "/location/search", params, &resp); err != nil {
		return nil, err
	}
	return toStubs(resp.Data, 0), nil
}

func (c *TripAdvisorClient) GetDetails(ctx context.Context, id string) (*models.CandidatePlace, error) {
	params := url.Values{}
	params.Set("currency", "USD")

	var dto taLocation
	err := c.get(ctx, "details", "/location/"+url.PathEscape(id)+"/details", params, &dto)
	if err != nil {
		var providerErr *ProviderError
		if errors.As(err, &providerErr) && providerErr.Status == http.StatusNotFound {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	if dto.LocationID == "" {
		return nil, ErrPlaceNotFound
	}

	place, err := toCandidatePlace(dto)
	if err != nil {
		return nil, &ProviderError{Op: "details", Err: err}
	}
	return &place, nil
}

// SearchNearby lists places of a category around latLong. The nearby
// endpoint has no free-text refinement, so a sub-filter turns the lookup into
// a category restricted text search around the same point.
func (c *TripAdvisorClient) SearchNearby(ctx context.Context, latLong string, category models.Category, subFilter *string, limit int) ([]models.SearchResultStub, error) {
	params := url.Values{}
	params.Set("latLong", latLong)
	params.Set("category", string(category))

	path, op := "/location/nearby_search", "nearby"
	if subFilter != nil && *subFilter != "" {
		path, op = "/location/search", "nearby_filtered"
		params.Set("searchQuery", *subFilter)
		params.Set("radius", strconv.FormatFloat(subFilterRadiusKm, 'f', -1, 64))
		params.Set("radiusUnit", "km")
	}

	var resp taListResponse
	if err := c.get(ctx, op, path, params, &resp); err != nil {
		return nil, err
	}
	return toStubs(resp.Data, limit), nil
}

func (c *TripAdvisorClient) GetPhotos(ctx context.Context, id string) ([]string, error) {
	params := url.Values{}
	params.Set("limit", "5")

	var resp taPhotosResponse
	if err := c.get(ctx, "photos", "/location/"+url.PathEscape(id)+"/photos", params, &resp); err != nil {
		return nil, err
	}

	var photos []string
	for _, p := range resp.Data {
		for _, img := range []*taImage{p.Images.Original, p.Images.Large, p.Images.Medium, p.Images.Small} {
			if img != nil && img.URL != "" {
				photos = append(photos, img.URL)
				break
			}
		}
	}
	return photos, nil
}

func (c *TripAdvisorClient) get(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &ProviderError{Op: op, Err: err}
	}

	params.Set("key", c.config.APIKey)
	params.Set("language", c.config.Language)
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Op: op, Status: resp.StatusCode, Err: err}
	}

	c.logger.Debug("places provider call",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(string(body), 200))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ProviderError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func toStubs(locations []taLocation, limit int) []models.SearchResultStub {
	stubs := make([]models.SearchResultStub, 0, len(locations))
	for _, loc := range locations {
		if loc.LocationID == "" {
			continue
		}
		stubs = append(stubs, models.SearchResultStub{
			LocationID: loc.LocationID,
			Name:       loc.Name,
			Address:    loc.AddressObj.AddressString,
		})
		if limit > 0 && len(stubs) == limit {
			break
		}
	}
	return stubs
}

// toCandidatePlace maps a details payload to a CandidatePlace. Rating and
// review count default to zero when missing or malformed; coordinates stay
// nil when missing.
func toCandidatePlace(dto taLocation) (models.CandidatePlace, error) {
	if dto.LocationID == "" {
		return models.CandidatePlace{}, errors.New("details response without location_id")
	}

	place := models.CandidatePlace{
		ID:   dto.LocationID,
		Name: dto.Name,
		Location: models.GeoLocation{
			Latitude:  parseOptionalFloat(dto.Latitude),
			Longitude: parseOptionalFloat(dto.Longitude),
			Address:   dto.AddressObj.AddressString,
		},
		Description: dto.Description,
		Contact: models.Contact{
			Phone:   dto.Phone,
			Website: dto.Website,
		},
		WebURL: dto.WebURL,
	}
	if rating := parseOptionalFloat(dto.Rating); rating != nil {
		place.Rating = *rating
	}
	if n, err := strconv.Atoi(strings.TrimSpace(dto.NumReviews)); err == nil {
		place.ReviewsCount = n
	}
	if dto.Category != nil {
		place.Category = categoryFromName(dto.Category.Name)
	}
	return place, nil
}

func categoryFromName(name string) models.Category {
	switch strings.ToLower(name) {
	case "hotel", "hotels":
		return models.CategoryHotel
	case "restaurant", "restaurants":
		return models.CategoryRestaurant
	case "attraction", "attractions":
		return models.CategoryAttraction
	}
	return ""
}

func parseOptionalFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
