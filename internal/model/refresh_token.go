package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefreshToken records an issued refresh token. Existence in the collection
// denotes validity; deletion denotes revocation. ExpiresAt drives a TTL index
// so revoked-by-time tokens do not accumulate.
type RefreshToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Token     string             `bson:"token" json:"token"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"-"`
}
