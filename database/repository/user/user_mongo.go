package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saudeplus/database"
	"saudeplus/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no user matches the query.
var ErrNotFound = errors.New("user not found")

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new instance of MongoUserRepo.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoUserRepo{coll: db.Collection("users")}
}

func (repo *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, user); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (repo *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}

func (repo *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

func (repo *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

func (repo *MongoUserRepo) GetByGoogleSub(ctx context.Context, sub string) (*models.User, error) {
	return repo.findOne(ctx, bson.M{"google_sub": sub})
}

func (repo *MongoUserRepo) UpdateProfile(ctx context.Context, id, name, phone string) error {
	return repo.setFields(ctx, id, bson.M{"name": name, "phone": phone})
}

func (repo *MongoUserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	return repo.setFields(ctx, id, bson.M{"password_hash": passwordHash})
}

func (repo *MongoUserRepo) SetGoogleSub(ctx context.Context, id, sub string) error {
	return repo.setFields(ctx, id, bson.M{"google_sub": sub})
}

// UpdateGoogleTokens writes access token and expiry together so a token is
// never persisted without its expiry. The refresh token is only overwritten
// when the provider actually reissued one.
func (repo *MongoUserRepo) UpdateGoogleTokens(ctx context.Context, id, accessToken, refreshToken string, expiry int64) error {
	fields := bson.M{
		"google_access_token": accessToken,
		"google_token_expiry": expiry,
	}
	if refreshToken != "" {
		fields["google_refresh_token"] = refreshToken
	}
	return repo.setFields(ctx, id, fields)
}

func (repo *MongoUserRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
