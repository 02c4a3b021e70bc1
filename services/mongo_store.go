package services

import (
	"TravelMate/models"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the MongoDB backed Store. It uses the same collection names
// as FirestoreStore; places carry a unique index on location_id.
type MongoStore struct {
	places         *mongo.Collection
	vacations      *mongo.Collection
	vacationPlaces *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		places:         db.Collection(placesCollection),
		vacations:      db.Collection(vacationsCollection),
		vacationPlaces: db.Collection(vacationPlacesCollection),
	}
}

func (s *MongoStore) UpsertPlace(ctx context.Context, place models.PlaceRecord) error {
	_, err := s.places.ReplaceOne(ctx,
		bson.M{"location_id": place.LocationID},
		place,
		options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) InsertVacation(ctx context.Context, vacation models.Vacation) error {
	_, err := s.vacations.InsertOne(ctx, vacation)
	return err
}

func (s *MongoStore) InsertVacationPlace(ctx context.Context, link models.VacationPlace) error {
	_, err := s.vacationPlaces.InsertOne(ctx, link)
	return err
}

func (s *MongoStore) GetVacation(ctx context.Context, id string) (*models.VacationDetail, error) {
	var detail models.VacationDetail
	err := s.vacations.FindOne(ctx, bson.M{"_id": id}).Decode(&detail.Vacation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrVacationNotFound
	}
	if err != nil {
		return nil, err
	}

	cursor, err := s.vacationPlaces.Find(ctx,
		bson.M{"vacation_id": id},
		options.Find().SetSort(bson.D{{Key: "order_index", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var links []models.VacationPlace
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return &detail, nil
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.LocationID
	}
	cursor, err = s.places.Find(ctx, bson.M{"location_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var places []models.PlaceRecord
	if err := cursor.All(ctx, &places); err != nil {
		return nil, err
	}

	byID := make(map[string]models.PlaceRecord, len(places))
	for _, p := range places {
		byID[p.LocationID] = p
	}
	detail.Places = orderPlaces(links, byID)
	return &detail, nil
}

func (s *MongoStore) ListVacations(ctx context.Context, ownerID string) ([]models.Vacation, error) {
	cursor, err := s.vacations.Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	vacations := []models.Vacation{}
	if err := cursor.All(ctx, &vacations); err != nil {
		return nil, err
	}
	return vacations, nil
}
