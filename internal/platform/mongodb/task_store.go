package mongodb

import (
	"context"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/platform/logger"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// TaskStore implements store.TaskStore backed by the tasks collection.
type TaskStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// Ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore over the given database.
func NewTaskStore(db *mongo.Database, logger *slog.Logger) *TaskStore {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskStore")
	}
	return &TaskStore{
		collection: db.Collection(tasksCollection),
		logger:     logger.With(slog.String("component", "task_store")),
	}
}

// Create saves a new task and fills in its generated ID.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.collection.InsertOne(ctx, task)
	if err != nil {
		return mapError(err, "task", "create", store.ErrTaskNotFound)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = id
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.Hex()),
		slog.String("owner_id", task.OwnerID.Hex()))
	return nil
}

// GetByID retrieves the task with the given ID owned by ownerID. A task
// owned by someone else yields the same ErrTaskNotFound as a missing one.
func (s *TaskStore) GetByID(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Task, error) {
	var task domain.Task
	err := s.collection.FindOne(ctx, ownerScope(id, ownerID)).Decode(&task)
	if err != nil {
		return nil, mapError(err, "task", "get", store.ErrTaskNotFound)
	}
	return &task, nil
}

// List returns one page of ownerID's tasks matching opts, with the total
// count and page availability flags.
func (s *TaskStore) List(ctx context.Context, ownerID primitive.ObjectID, opts store.ListOptions) (*store.TaskPage, error) {
	opts.Normalize()
	filter := buildListFilter(ownerID, opts)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, mapError(err, "task", "list", store.ErrTaskNotFound)
	}

	findOpts := options.Find().
		SetSort(sortSpec(opts.SortBy, opts.SortOrder)).
		SetSkip(int64(opts.Page-1) * int64(opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, mapError(err, "task", "list", store.ErrTaskNotFound)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	tasks := []domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, mapError(err, "task", "list", store.ErrTaskNotFound)
	}

	return &store.TaskPage{
		Tasks:      tasks,
		Pagination: store.NewPagination(total, opts.Page, opts.Limit),
	}, nil
}

// Update replaces the stored task, scoped to its owner.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	result, err := s.collection.ReplaceOne(ctx, ownerScope(task.ID, task.OwnerID), task)
	if err != nil {
		return mapError(err, "task", "update", store.ErrTaskNotFound)
	}
	if result.MatchedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete removes the task with the given ID owned by ownerID.
func (s *TaskStore) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.collection.DeleteOne(ctx, ownerScope(id, ownerID))
	if err != nil {
		return mapError(err, "task", "delete", store.ErrTaskNotFound)
	}
	if result.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted", slog.String("task_id", id.Hex()))
	return nil
}

// ownerScope is the filter shared by every single-task operation: match by
// ID and owner together so cross-tenant access degenerates to "not found".
func ownerScope(id, ownerID primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user": ownerID}
}

// buildListFilter translates ListOptions into a Mongo filter document.
// Tag containment uses $all; the search term matches title or description
// case-insensitively with regex metacharacters escaped.
func buildListFilter(ownerID primitive.ObjectID, opts store.ListOptions) bson.M {
	filter := bson.M{"user": ownerID}

	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.Priority != "" {
		filter["priority"] = opts.Priority
	}
	if opts.Important != nil {
		filter["isImportant"] = *opts.Important
	}
	if tags := domain.NormalizeTags(opts.Tags); len(tags) > 0 {
		filter["tags"] = bson.M{"$all": tags}
	}
	if opts.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	return filter
}

// sortSpec builds the sort document, breaking ties by _id so pages are
// stable when many tasks share the sort key.
func sortSpec(sortBy, sortOrder string) bson.D {
	direction := -1
	if sortOrder == store.SortAsc {
		direction = 1
	}
	return bson.D{{Key: sortBy, Value: direction}, {Key: "_id", Value: direction}}
}
