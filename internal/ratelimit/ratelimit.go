package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"authbase/internal/db"
)

// Defaults for the fixed window applied to unauthenticated-sensitive routes.
const (
	DefaultPoints   = 10
	DefaultDuration = 60 * time.Second
)

// Store accumulates consumption points per window bucket. Increment returns
// the running total for the bucket after adding one point.
type Store interface {
	Increment(ctx context.Context, bucket string, expiresAt time.Time) (int, error)
}

// Limiter is a fixed-window point-budget limiter. Window state lives in the
// document store, so budgets survive restarts and are shared across instances.
type Limiter struct {
	store    Store
	points   int
	duration time.Duration
}

// New creates a limiter over the given store. Non-positive arguments fall
// back to the defaults.
func New(store Store, points int, duration time.Duration) *Limiter {
	if points <= 0 {
		points = DefaultPoints
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Limiter{store: store, points: points, duration: duration}
}

// Allow consumes one point for the identity and reports whether the request
// stays within budget.
func (l *Limiter) Allow(ctx context.Context, identity string) (bool, error) {
	now := time.Now()
	window := now.Unix() / int64(l.duration.Seconds())
	bucket := fmt.Sprintf("%s:%d", identity, window)
	expiresAt := time.Unix((window+1)*int64(l.duration.Seconds()), 0)

	total, err := l.store.Increment(ctx, bucket, expiresAt)
	if err != nil {
		return false, err
	}
	return total <= l.points, nil
}

// MongoStore keeps window counters in the rate_limits collection. The
// upsert-with-$inc is a single-document atomic operation, so concurrent
// requests from one identity never lose points.
type MongoStore struct {
	c *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore builds the document-store-backed counter store.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{c: database.Collection(db.RateLimitsCollection)}
}

func (s *MongoStore) Increment(ctx context.Context, bucket string, expiresAt time.Time) (int, error) {
	filter := bson.M{"_id": bucket}
	update := bson.M{
		"$inc":         bson.M{"points": 1},
		"$setOnInsert": bson.M{"expiresAt": expiresAt},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Points int `bson:"points"`
	}
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("increment rate limit: %w", err)
	}
	return doc.Points, nil
}
