package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/platform/logger"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// TaskStatsStore implements store.TaskStatsStore with one aggregation
// pipeline for the per-status grouping plus two count queries for the
// overdue and important-pending figures.
type TaskStatsStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
	timeFunc   func() time.Time // Injectable for testing
}

// Ensure TaskStatsStore implements store.TaskStatsStore.
var _ store.TaskStatsStore = (*TaskStatsStore)(nil)

// NewTaskStatsStore creates a TaskStatsStore over the given database.
func NewTaskStatsStore(db *mongo.Database, logger *slog.Logger) *TaskStatsStore {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskStatsStore")
	}
	return &TaskStatsStore{
		collection: db.Collection(tasksCollection),
		logger:     logger.With(slog.String("component", "task_stats_store")),
		timeFunc:   time.Now,
	}
}

// statusGroup is one row of the per-status aggregation.
type statusGroup struct {
	Status            domain.TaskStatus `bson:"_id"`
	Count             int64             `bson:"count"`
	EstimatedDuration int64             `bson:"totalEstimatedDuration"`
	ActualDuration    int64             `bson:"totalActualDuration"`
}

// OwnerStats aggregates ownerID's tasks into domain.TaskStats.
func (s *TaskStatsStore) OwnerStats(ctx context.Context, ownerID primitive.ObjectID) (*domain.TaskStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"totalEstimatedDuration": bson.M{
				"$sum": bson.M{"$ifNull": bson.A{"$estimatedDuration", 0}},
			},
			"totalActualDuration": bson.M{
				"$sum": bson.M{"$ifNull": bson.A{"$actualDuration", 0}},
			},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err, "task", "stats", store.ErrTaskNotFound)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var groups []statusGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, mapError(err, "task", "stats", store.ErrTaskNotFound)
	}

	now := s.timeFunc()

	overdue, err := s.collection.CountDocuments(ctx, bson.M{
		"user":    ownerID,
		"status":  bson.M{"$ne": domain.StatusDone},
		"dueDate": bson.M{"$lt": now},
	})
	if err != nil {
		return nil, mapError(err, "task", "stats", store.ErrTaskNotFound)
	}

	importantPending, err := s.collection.CountDocuments(ctx, bson.M{
		"user":        ownerID,
		"isImportant": true,
		"status":      bson.M{"$ne": domain.StatusDone},
	})
	if err != nil {
		return nil, mapError(err, "task", "stats", store.ErrTaskNotFound)
	}

	stats := buildStats(groups, overdue, importantPending)

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("owner stats computed",
		slog.String("owner_id", ownerID.Hex()),
		slog.Int64("total_tasks", stats.TotalTasks))

	return stats, nil
}

// buildStats folds the per-status rows into the stats summary. The
// completion rate is done count over total as a percentage, 0 for an
// owner with no tasks.
func buildStats(groups []statusGroup, overdue, importantPending int64) *domain.TaskStats {
	stats := &domain.TaskStats{
		Statuses:              []domain.StatusCount{},
		OverdueTasks:          overdue,
		ImportantPendingTasks: importantPending,
	}

	var done int64
	for _, g := range groups {
		stats.TotalTasks += g.Count
		stats.TotalEstimatedDuration += g.EstimatedDuration
		stats.TotalActualDuration += g.ActualDuration
		stats.Statuses = append(stats.Statuses, domain.StatusCount{
			Status: g.Status,
			Count:  g.Count,
		})
		if g.Status == domain.StatusDone {
			done = g.Count
		}
	}

	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(done) / float64(stats.TotalTasks) * 100
	}

	return stats
}
