package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// PhoneNumber is the structured form of the registered phone number.
type PhoneNumber struct {
	ISOCode             string `bson:"isoCode" json:"isoCode"`
	CountryCode         int32  `bson:"countryCode" json:"countryCode"`
	InternationalNumber string `bson:"internationalNumber" json:"internationalNumber"`
}

// AccountVerification tracks the one-time email confirmation. Status flips
// false to true exactly once and never reverts.
type AccountVerification struct {
	Status    bool       `bson:"status" json:"status"`
	Token     string     `bson:"token" json:"-"`
	Code      string     `bson:"code" json:"-"`
	Timestamp *time.Time `bson:"timestamp" json:"timestamp"`
}

// PasswordReset holds the time-boxed reset credential. Token and expiry are
// cleared in the same write that commits the new password.
type PasswordReset struct {
	Token       *string    `bson:"token" json:"-"`
	Expiry      *int64     `bson:"expiry" json:"-"` // epoch millis
	LastResetAt *time.Time `bson:"lastResetAt" json:"lastResetAt"`
}

// User is one registered identity. Password is excluded from reads unless the
// caller opts in via projection, and never serialized to JSON.
type User struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name                string              `bson:"name" json:"name"`
	Email               string              `bson:"email" json:"email"`
	PhoneNumber         PhoneNumber         `bson:"phoneNumber" json:"phoneNumber"`
	Timezone            string              `bson:"timezone" json:"timezone"`
	Password            string              `bson:"password,omitempty" json:"-"`
	Role                string              `bson:"role" json:"role"`
	AccountVerification AccountVerification `bson:"accountVerification" json:"accountVerification"`
	PasswordReset       PasswordReset       `bson:"passwordReset" json:"passwordReset"`
	LastLoginAt         *time.Time          `bson:"lastLoginAt" json:"lastLoginAt"`
	Consent             bool                `bson:"consent" json:"consent"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}
