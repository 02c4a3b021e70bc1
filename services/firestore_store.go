package services

import (
	"TravelMate/models"
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	placesCollection         = "places"
	vacationsCollection      = "vacations"
	vacationPlacesCollection = "vacation_places"
)

// FirestoreStore keeps places, vacations and vacation_places as top level
// collections. Place documents are keyed by the provider location id.
type FirestoreStore struct {
	FirestoreClient *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{FirestoreClient: client}
}

func (s *FirestoreStore) UpsertPlace(ctx context.Context, place models.PlaceRecord) error {
	data := map[string]interface{}{
		"location_id":   place.LocationID,
		"name":          place.Name,
		"address":       place.Address,
		"latitude":      place.Latitude,
		"longitude":     place.Longitude,
		"geohash":       place.Geohash,
		"rating":        place.Rating,
		"reviews_count": place.ReviewsCount,
		"description":   place.Description,
		"photo_url":     place.PhotoURL,
		"category":      place.Category,
		"phone":         place.Phone,
		"website":       place.Website,
		"web_url":       place.WebURL,
		"updated_at":    place.UpdatedAt,
	}
	if place.Latitude != nil && place.Longitude != nil {
		data["location"] = &latlng.LatLng{Latitude: *place.Latitude, Longitude: *place.Longitude}
	}

	// Set without merge replaces the whole document
	_, err := s.FirestoreClient.Collection(placesCollection).Doc(place.LocationID).Set(ctx, data)
	return err
}

func (s *FirestoreStore) InsertVacation(ctx context.Context, vacation models.Vacation) error {
	_, err := s.FirestoreClient.Collection(vacationsCollection).Doc(vacation.ID).Create(ctx, vacation)
	return err
}

func (s *FirestoreStore) InsertVacationPlace(ctx context.Context, link models.VacationPlace) error {
	docID := fmt.Sprintf("%s_%04d", link.VacationID, link.OrderIndex)
	_, err := s.FirestoreClient.Collection(vacationPlacesCollection).Doc(docID).Create(ctx, link)
	return err
}

func (s *FirestoreStore) GetVacation(ctx context.Context, id string) (*models.VacationDetail, error) {
	doc, err := s.FirestoreClient.Collection(vacationsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrVacationNotFound
	}
	if err != nil {
		return nil, err
	}

	var detail models.VacationDetail
	if err := doc.DataTo(&detail.Vacation); err != nil {
		return nil, err
	}

	iter := s.FirestoreClient.Collection(vacationPlacesCollection).
		Where("vacation_id", "==", id).
		Documents(ctx)
	defer iter.Stop()

	var links []models.VacationPlace
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var link models.VacationPlace
		if err := doc.DataTo(&link); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	if len(links) == 0 {
		return &detail, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		if seen[link.LocationID] {
			continue
		}
		seen[link.LocationID] = true
		refs = append(refs, s.FirestoreClient.Collection(placesCollection).Doc(link.LocationID))
	}
	docs, err := s.FirestoreClient.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.PlaceRecord, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var place models.PlaceRecord
		if err := doc.DataTo(&place); err != nil {
			return nil, err
		}
		byID[doc.Ref.ID] = place
	}
	detail.Places = orderPlaces(links, byID)
	return &detail, nil
}

func (s *FirestoreStore) ListVacations(ctx context.Context, ownerID string) ([]models.Vacation, error) {
	docs, err := s.FirestoreClient.Collection(vacationsCollection).
		Where("owner_id", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	vacations := make([]models.Vacation, 0, len(docs))
	for _, doc := range docs {
		var vacation models.Vacation
		if err := doc.DataTo(&vacation); err != nil {
			return nil, err
		}
		vacations = append(vacations, vacation)
	}

	// newest first
	sort.Slice(vacations, func(i, j int) bool {
		return vacations[i].CreatedAt.After(vacations[j].CreatedAt)
	})
	return vacations, nil
}
