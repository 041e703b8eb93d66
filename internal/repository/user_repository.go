package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"authbase/internal/db"
	apperrors "authbase/internal/errors"
	"authbase/internal/model"
)

// FieldSelection controls whether opt-in fields are included in reads.
type FieldSelection struct {
	// IncludePassword pulls the password hash, which default reads exclude.
	IncludePassword bool
}

// UserRepository defines persistence operations over user documents.
// Lookups return (nil, nil) when no document matches; they never treat
// "not found" as an error.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string, sel FieldSelection) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID, sel FieldSelection) (*model.User, error)
	FindByVerificationTokenAndCode(ctx context.Context, token, code string) (*model.User, error)
	FindByResetToken(ctx context.Context, token string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

type userRepository struct {
	c *mongo.Collection
}

// NewUserRepository builds a Mongo-backed user repository.
func NewUserRepository(database *mongo.Database) UserRepository {
	return &userRepository{c: database.Collection(db.UsersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.c.InsertOne(ctx, user)
	if err != nil {
		if db.IsDup(err) {
			// The unique email index is the authoritative check; the
			// service-level pre-read is only the fast path.
			return apperrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string, sel FieldSelection) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, sel)
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID, sel FieldSelection) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, sel)
}

func (r *userRepository) FindByVerificationTokenAndCode(ctx context.Context, token, code string) (*model.User, error) {
	return r.findOne(ctx, bson.M{
		"accountVerification.token": token,
		"accountVerification.code":  code,
	}, FieldSelection{})
}

func (r *userRepository) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"passwordReset.token": token}, FieldSelection{})
}

// Save persists the mutable fields of an already-fetched user document.
func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"accountVerification": user.AccountVerification,
		"passwordReset":       user.PasswordReset,
		"lastLoginAt":         user.LastLoginAt,
		"updatedAt":           user.UpdatedAt,
	}}
	// The hash is absent on documents fetched without the password
	// projection; never overwrite it with the zero value.
	if user.Password != "" {
		update["$set"].(bson.M)["password"] = user.Password
	}
	res, err := r.c.UpdateByID(ctx, user.ID, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, sel FieldSelection) (*model.User, error) {
	opts := options.FindOne()
	if !sel.IncludePassword {
		opts.SetProjection(bson.M{"password": 0})
	}

	var user model.User
	err := r.c.FindOne(ctx, filter, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
