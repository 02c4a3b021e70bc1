package services

import (
	"TravelMate/models"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// VacationService runs the whole planning flow for one request: intent,
// assembly, then persistence.
type VacationService struct {
	Resolver  IntentResolver
	Assembler *ItineraryAssembler
	Persister *ItineraryPersister
	Reader    VacationReader
	logger    *zap.Logger
}

func NewVacationService(resolver IntentResolver, provider PlaceProvider, store VacationStore, maxConcurrency int, logger *zap.Logger) *VacationService {
	return &VacationService{
		Resolver:  resolver,
		Assembler: NewItineraryAssembler(provider, maxConcurrency, logger),
		Persister: NewItineraryPersister(store, logger),
		Reader:    store,
		logger:    logger,
	}
}

// CreateVacation plans and saves a vacation. Nothing is written when the
// intent, the destination or the context fail before persistence starts.
func (s *VacationService) CreateVacation(ctx context.Context, ownerID string, req models.PlanRequest) (*models.Itinerary, error) {
	intent, err := s.resolveIntent(ctx, req)
	if err != nil {
		return nil, err
	}

	itinerary, err := s.Assembler.Assemble(ctx, ownerID, *intent)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.Persister.Persist(ctx, itinerary); err != nil {
		return nil, err
	}
	return itinerary, nil
}

func (s *VacationService) resolveIntent(ctx context.Context, req models.PlanRequest) (*models.TravelIntent, error) {
	if req.Intent != nil {
		intent := *req.Intent
		if intent.DurationDays == 0 {
			intent.DurationDays = 1
		}
		if err := ValidateIntent(&intent); err != nil {
			return nil, err
		}
		return &intent, nil
	}
	if s.Resolver == nil {
		return nil, fmt.Errorf("%w: free text planning is not configured", ErrIntent)
	}
	return s.Resolver.Parse(ctx, req.Prompt)
}

// GetVacation returns a vacation owned by ownerID with its places in order
func (s *VacationService) GetVacation(ctx context.Context, ownerID, id string) (*models.VacationDetail, error) {
	detail, err := s.Reader.GetVacation(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Vacation.OwnerID != ownerID {
		return nil, ErrVacationNotFound
	}
	if detail.Places == nil {
		detail.Places = []models.PlaceRecord{}
	}
	return detail, nil
}

func (s *VacationService) ListVacations(ctx context.Context, ownerID string) ([]models.Vacation, error) {
	vacations, err := s.Reader.ListVacations(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if vacations == nil {
		vacations = []models.Vacation{}
	}
	return vacations, nil
}
