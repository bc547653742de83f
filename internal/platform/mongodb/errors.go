package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mhoudret/taskdeck-api/internal/store"
)

// mapError translates driver errors into the store error taxonomy.
// notFound is the entity-specific sentinel to use for missing documents.
func mapError(err error, entity, operation string, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return notFound
	case mongo.IsDuplicateKeyError(err):
		// The only unique index in this schema is the users email index.
		return store.ErrEmailExists
	default:
		return store.NewStoreError(entity, operation, "database operation failed", err)
	}
}
