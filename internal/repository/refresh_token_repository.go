package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"authbase/internal/db"
	"authbase/internal/model"
)

// RefreshTokenRepository persists issued refresh tokens. A token's presence in
// the collection is the revocation gate checked before its signature is
// trusted.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token string, expiresAt time.Time) error
	FindByValue(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteByValue(ctx context.Context, token string) error
}

type refreshTokenRepository struct {
	c *mongo.Collection
}

// NewRefreshTokenRepository builds a Mongo-backed refresh token repository.
func NewRefreshTokenRepository(database *mongo.Database) RefreshTokenRepository {
	return &refreshTokenRepository{c: database.Collection(db.RefreshTokensCollection)}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token string, expiresAt time.Time) error {
	rec := model.RefreshToken{
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.c.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRepository) FindByValue(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rec model.RefreshToken
	err := r.c.FindOne(ctx, bson.M{"token": token}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &rec, nil
}

// DeleteByValue removes zero or one records; deleting an absent token is not
// an error.
func (r *refreshTokenRepository) DeleteByValue(ctx context.Context, token string) error {
	if _, err := r.c.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
