package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Collection names used by the service.
const (
	UsersCollection         = "users"
	RefreshTokensCollection = "refresh_tokens"
	RateLimitsCollection    = "rate_limits"
)

// Connect returns the database named in the connection URI, after a ping.
func Connect(ctx context.Context, uri string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(DatabaseName(uri)), nil
}

// DatabaseName extracts the database from the URI path, defaulting to
// "authbase" when the URI names none.
func DatabaseName(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "authbase"
	}
	name := strings.TrimPrefix(parsed.Path, "/")
	if name == "" {
		return "authbase"
	}
	return name
}

// EnsureIndexes creates the indexes the service relies on. The unique email
// index is the authoritative enforcer of the one-email-one-user invariant;
// the TTL indexes reap expired refresh tokens and rate-limit windows.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "accountVerification.token", Value: 1}, {Key: "accountVerification.code", Value: 1}},
			Options: options.Index().SetName("idx_users_verification"),
		},
		{
			Keys:    bson.D{{Key: "passwordReset.token", Value: 1}},
			Options: options.Index().SetName("idx_users_reset_token").SetSparse(true),
		},
	}
	if _, err := database.Collection(UsersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	refresh := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_refresh_token").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetName("idx_refresh_expires_ttl").SetExpireAfterSeconds(0),
		},
	}
	if _, err := database.Collection(RefreshTokensCollection).Indexes().CreateMany(ctx, refresh); err != nil {
		return fmt.Errorf("create refresh token indexes: %w", err)
	}

	limits := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetName("idx_ratelimit_expires_ttl").SetExpireAfterSeconds(0),
		},
	}
	if _, err := database.Collection(RateLimitsCollection).Indexes().CreateMany(ctx, limits); err != nil {
		return fmt.Errorf("create rate limit indexes: %w", err)
	}
	return nil
}

// IsDup reports whether err is a Mongo duplicate-key error.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
