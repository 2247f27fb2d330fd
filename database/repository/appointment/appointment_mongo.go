package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saudeplus/database"
	"saudeplus/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no appointment matches the query.
var ErrNotFound = errors.New("appointment not found")

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

func (repo *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, appt); err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for user %s: %w", userID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var items []models.Appointment
	if err := cursor.All(ctxWithTimeout, &items); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return items, nil
}

func (repo *MongoAppointmentRepo) SetGoogleEventID(ctx context.Context, id, eventID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"google_event_id": eventID}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
