package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Task, error)
	ListFn    func(ctx context.Context, ownerID primitive.ObjectID, opts store.ListOptions) (*store.TaskPage, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id, ownerID primitive.ObjectID) error

	// Data for the default implementation, keyed by task ID
	Tasks map[primitive.ObjectID]*domain.Task

	// LastListOptions records the options the most recent List call received.
	LastListOptions store.ListOptions

	CreateError error
	UpdateError error
}

// NewMockTaskStore creates a mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[primitive.ObjectID]*domain.Task),
	}
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, ownerID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// List implements the TaskStore interface. The default implementation
// returns every task for the owner without filtering or sorting.
func (m *MockTaskStore) List(
	ctx context.Context,
	ownerID primitive.ObjectID,
	opts store.ListOptions,
) (*store.TaskPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, opts)
	}

	m.LastListOptions = opts
	opts.Normalize()

	tasks := []domain.Task{}
	for _, task := range m.Tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, *task)
		}
	}
	return &store.TaskPage{
		Tasks:      tasks,
		Pagination: store.NewPagination(int64(len(tasks)), opts.Page, opts.Limit),
	}, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	existing, exists := m.Tasks[task.ID]
	if !exists || existing.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, ownerID)
	}

	task, exists := m.Tasks[id]
	if !exists || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// MockTaskStatsStore implements store.TaskStatsStore for testing.
type MockTaskStatsStore struct {
	OwnerStatsFn func(ctx context.Context, ownerID primitive.ObjectID) (*domain.TaskStats, error)

	Stats *domain.TaskStats
	Err   error
}

// OwnerStats implements the TaskStatsStore interface.
func (m *MockTaskStatsStore) OwnerStats(ctx context.Context, ownerID primitive.ObjectID) (*domain.TaskStats, error) {
	if m.OwnerStatsFn != nil {
		return m.OwnerStatsFn(ctx, ownerID)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Stats != nil {
		return m.Stats, nil
	}
	return &domain.TaskStats{Statuses: []domain.StatusCount{}}, nil
}
