package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saudeplus/database"
	"saudeplus/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no professional matches the query.
var ErrNotFound = errors.New("professional not found")

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	profColl         *mongo.Collection
	specialtyColl    *mongo.Collection
	availabilityColl *mongo.Collection
	locationColl     *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new instance of MongoProfessionalRepo.
func NewMongoProfessionalRepo() ProfessionalRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoProfessionalRepo{
		profColl:         db.Collection("professionals"),
		specialtyColl:    db.Collection("specialties"),
		availabilityColl: db.Collection("availabilities"),
		locationColl:     db.Collection("locations"),
	}
}

func (repo *MongoProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.profColl.InsertOne(ctxWithTimeout, p); err != nil {
		return fmt.Errorf("error creating professional: %w", err)
	}
	return nil
}

func (repo *MongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	err := repo.profColl.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching professional with id %s: %w", id, err)
	}
	return &p, nil
}

// GetByUserID returns the professional profile owned by the given account.
func (repo *MongoProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.Professional, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	err := repo.profColl.FindOne(ctxWithTimeout, bson.M{"user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching professional for user %s: %w", userID, err)
	}
	return &p, nil
}

func (repo *MongoProfessionalRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.profColl.UpdateOne(ctxWithTimeout, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating professional %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoProfessionalRepo) Delete(ctx context.Context, id string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.profColl.DeleteOne(ctxWithTimeout, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting professional %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns active professionals matching the filter, cheapest first.
func (repo *MongoProfessionalRepo) List(ctx context.Context, filter ListFilter) ([]models.Professional, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{"is_active": true}
	if filter.Profession == "psychology" || filter.Profession == "nutrition" {
		query["profession"] = filter.Profession
	}
	if filter.City != "" {
		query["city"] = primitive.Regex{Pattern: filter.City, Options: "i"}
	}
	if filter.Modality == "online" || filter.Modality == "presencial" {
		query["modalities"] = filter.Modality
	}
	if filter.PriceMin != nil || filter.PriceMax != nil {
		price := bson.M{}
		if filter.PriceMin != nil {
			price["$gte"] = *filter.PriceMin
		}
		if filter.PriceMax != nil {
			price["$lte"] = *filter.PriceMax
		}
		query["price_cents"] = price
	}
	if filter.Term != "" {
		like := primitive.Regex{Pattern: filter.Term, Options: "i"}
		query["$or"] = bson.A{bson.M{"full_name": like}, bson.M{"bio": like}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "price_cents", Value: 1}})
	cursor, err := repo.profColl.Find(ctxWithTimeout, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing professionals: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var items []models.Professional
	if err := cursor.All(ctxWithTimeout, &items); err != nil {
		return nil, fmt.Errorf("error decoding professionals: %w", err)
	}
	return items, nil
}

func (repo *MongoProfessionalRepo) AddAvailability(ctx context.Context, av *models.Availability) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.availabilityColl.InsertOne(ctxWithTimeout, av); err != nil {
		return fmt.Errorf("error adding availability: %w", err)
	}
	return nil
}

func (repo *MongoProfessionalRepo) AddLocation(ctx context.Context, loc *models.Location) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.locationColl.InsertOne(ctxWithTimeout, loc); err != nil {
		return fmt.Errorf("error adding location: %w", err)
	}
	return nil
}

// ListSpecialties returns the specialty catalogue, optionally scoped to one
// profession, sorted by name.
func (repo *MongoProfessionalRepo) ListSpecialties(ctx context.Context, profession string) ([]models.Specialty, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if profession == "psychology" || profession == "nutrition" {
		query["profession"] = profession
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.specialtyColl.Find(ctxWithTimeout, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing specialties: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var items []models.Specialty
	if err := cursor.All(ctxWithTimeout, &items); err != nil {
		return nil, fmt.Errorf("error decoding specialties: %w", err)
	}
	return items, nil
}
