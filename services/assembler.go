package services

import (
	"TravelMate/models"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 4

// ItineraryAssembler turns a travel intent into an ordered, deduplicated
// itinerary by fanning out lookups against a PlaceProvider.
type ItineraryAssembler struct {
	provider       PlaceProvider
	maxConcurrency int
	logger         *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewItineraryAssembler(provider PlaceProvider, maxConcurrency int, logger *zap.Logger) *ItineraryAssembler {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	return &ItineraryAssembler{
		provider:       provider,
		maxConcurrency: maxConcurrency,
		logger:         logger,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// Assemble resolves the destination, runs every planned search and returns
// the itinerary. Only destination resolution failures and cancellation are
// returned as errors; failed nearby, details and photo lookups just shrink
// the result.
func (a *ItineraryAssembler) Assemble(ctx context.Context, ownerID string, intent models.TravelIntent) (*models.Itinerary, error) {
	logger := a.logger.With(zap.String("destination", intent.Destination), zap.String("owner", ownerID))

	latLong, err := a.resolveDestination(ctx, intent.Destination)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("destination resolution failed", zap.Error(err))
		return nil, err
	}

	tasks := PlanSearchTasks(intent.Preferences)
	logger.Debug("planned search tasks", zap.Int("tasks", len(tasks)), zap.String("latLong", latLong))

	stubs := a.searchAll(ctx, latLong, tasks)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	resolved := a.resolveAll(ctx, tasks, stubs)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var places []models.CandidatePlace
	for _, taskPlaces := range resolved {
		for _, place := range taskPlaces {
			if place != nil {
				places = append(places, *place)
			}
		}
	}
	candidates := len(places)
	places = DedupPlaces(places)

	itinerary := &models.Itinerary{
		ID:           a.newID(),
		OwnerID:      ownerID,
		Title:        "Trip to " + intent.Destination,
		Destination:  intent.Destination,
		DurationDays: intent.DurationDays,
		Theme:        intent.Theme,
		CreatedAt:    a.now().UTC(),
		Places:       places,
	}

	logger.Info("itinerary assembled",
		zap.String("itinerary", itinerary.ID),
		zap.Int("candidates", candidates),
		zap.Int("places", len(places)))
	return itinerary, nil
}

// resolveDestination returns the "lat,long" of the first text search hit
func (a *ItineraryAssembler) resolveDestination(ctx context.Context, destination string) (string, error) {
	stubs, err := a.provider.SearchByText(ctx, destination, nil, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDestinationNotFound, err)
	}
	if len(stubs) == 0 {
		return "", ErrDestinationNotFound
	}

	details, err := a.provider.GetDetails(ctx, stubs[0].LocationID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDestinationDetailsUnavailable, err)
	}
	if details == nil {
		return "", ErrDestinationDetailsUnavailable
	}
	if !details.Location.HasCoordinates() {
		return "", fmt.Errorf("%w: no coordinates for %s", ErrDestinationDetailsUnavailable, stubs[0].LocationID)
	}

	return strconv.FormatFloat(*details.Location.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(*details.Location.Longitude, 'f', -1, 64), nil
}

// searchAll runs one nearby search per task. Slot i holds at most
// tasks[i].Quota stubs in provider order; a failed search leaves it empty.
func (a *ItineraryAssembler) searchAll(ctx context.Context, latLong string, tasks []models.SearchTask) [][]models.SearchResultStub {
	stubs := make([][]models.SearchResultStub, len(tasks))

	var g errgroup.Group
	g.SetLimit(a.maxConcurrency)
	for i, task := range tasks {
		if task.Quota <= 0 {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			found, err := a.provider.SearchNearby(ctx, latLong, task.Category, task.SubFilter, task.Quota)
			if err != nil {
				a.logger.Debug("nearby search failed",
					zap.String("category", string(task.Category)),
					zap.Error(err))
				return nil
			}
			if len(found) > task.Quota {
				found = found[:task.Quota]
			}
			stubs[i] = found
			return nil
		})
	}
	g.Wait()
	return stubs
}

// resolveAll looks up details, and a photo when missing, for every stub.
// Slot [i][j] stays nil when the lookup for stubs[i][j] failed.
func (a *ItineraryAssembler) resolveAll(ctx context.Context, tasks []models.SearchTask, stubs [][]models.SearchResultStub) [][]*models.CandidatePlace {
	resolved := make([][]*models.CandidatePlace, len(stubs))

	var g errgroup.Group
	g.SetLimit(a.maxConcurrency)
	for i, taskStubs := range stubs {
		resolved[i] = make([]*models.CandidatePlace, len(taskStubs))
		for j, stub := range taskStubs {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				resolved[i][j] = a.resolveCandidate(ctx, tasks[i].Category, stub)
				return nil
			})
		}
	}
	g.Wait()
	return resolved
}

func (a *ItineraryAssembler) resolveCandidate(ctx context.Context, category models.Category, stub models.SearchResultStub) *models.CandidatePlace {
	place, err := a.provider.GetDetails(ctx, stub.LocationID)
	if err != nil || place == nil {
		a.logger.Debug("dropping candidate", zap.String("location", stub.LocationID), zap.Error(err))
		return nil
	}
	if place.ID == "" {
		place.ID = stub.LocationID
	}
	place.Category = category

	if place.PhotoURL == "" {
		photos, err := a.provider.GetPhotos(ctx, place.ID)
		if err != nil {
			a.logger.Debug("photo lookup failed", zap.String("location", place.ID), zap.Error(err))
		} else if len(photos) > 0 {
			place.PhotoURL = photos[0]
		}
	}
	return place
}

// DedupPlaces drops every place whose id was already seen, keeping the
// first occurrence and the relative order of the rest.
func DedupPlaces(places []models.CandidatePlace) []models.CandidatePlace {
	seen := make(map[string]struct{}, len(places))
	out := make([]models.CandidatePlace, 0, len(places))
	for _, p := range places {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
