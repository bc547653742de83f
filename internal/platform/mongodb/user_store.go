package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/platform/logger"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// UserStore implements store.UserStore backed by the users collection.
type UserStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore over the given database.
func NewUserStore(db *mongo.Database, logger *slog.Logger) *UserStore {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserStore")
	}
	return &UserStore{
		collection: db.Collection(usersCollection),
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Create saves a new user. The unique email index turns concurrent
// duplicate registrations into store.ErrEmailExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", store.ErrInvalidEntity)
	}

	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return mapError(err, "user", "create", store.ErrUserNotFound)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	log.Debug("user created", slog.String("user_id", user.ID.Hex()))
	return nil
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, mapError(err, "user", "get", store.ErrUserNotFound)
	}
	return &user, nil
}

// GetByEmail retrieves a user by normalized email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.collection.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		return nil, mapError(err, "user", "get", store.ErrUserNotFound)
	}
	return &user, nil
}

// Update replaces the stored user document.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "update", "invalid user", store.ErrInvalidEntity)
	}

	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return mapError(err, "user", "update", store.ErrUserNotFound)
	}
	if result.MatchedCount == 0 {
		return store.ErrUserNotFound
	}

	return nil
}
