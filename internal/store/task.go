package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mhoudret/taskdeck-api/internal/domain"
)

// Pagination bounds for task listings.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Sort defaults for task listings.
const (
	DefaultSortField = "createdAt"
	SortAsc          = "asc"
	SortDesc         = "desc"
)

// ListOptions narrows, orders, and pages a task listing. Zero values mean
// "no filter"; Important is a pointer so false can be filtered explicitly.
type ListOptions struct {
	Status    domain.TaskStatus
	Priority  domain.TaskPriority
	Important *bool
	Tags      []string // every requested tag must be present
	Search    string   // case-insensitive substring over title or description
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps pagination to its bounds and applies sort defaults.
// Sort fields outside the allow-list fall back to newest-created-first.
func (o *ListOptions) Normalize() {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if !sortableFields[o.SortBy] {
		o.SortBy = DefaultSortField
	}
	if o.SortOrder != SortAsc {
		o.SortOrder = SortDesc
	}
}

// sortableFields is the allow-list of sortable task fields.
var sortableFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"dueDate":   true,
	"title":     true,
	"priority":  true,
	"status":    true,
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination derives the page envelope from a total count and the
// requested page/limit.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// TaskPage is one page of tasks plus its pagination envelope.
type TaskPage struct {
	Tasks      []domain.Task
	Pagination Pagination
}

// TaskStore defines the interface for task data persistence. Every
// operation is scoped to the owning user: a task belonging to a different
// owner is indistinguishable from a nonexistent one.
type TaskStore interface {
	// Create saves a new task to the store and fills in its generated ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByID(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Task, error)

	// List returns one page of ownerID's tasks matching opts.
	List(ctx context.Context, ownerID primitive.ObjectID, opts ListOptions) (*TaskPage, error)

	// Update replaces the stored task, scoped to its owner.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// TaskStatsStore computes aggregate statistics over one owner's tasks.
type TaskStatsStore interface {
	// OwnerStats aggregates ownerID's tasks into per-status counts,
	// duration totals, completion rate, and overdue/important counts.
	OwnerStats(ctx context.Context, ownerID primitive.ObjectID) (*domain.TaskStats, error)
}
