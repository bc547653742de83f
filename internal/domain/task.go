package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task lifecycle states.
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusArchived   TaskStatus = "archived"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusArchived:
		return true
	}
	return false
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid reports whether the priority is one of the known values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Title and description length constraints.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMaxLen = 1000
)

// Task is a user-owned activity item. OwnerID is set at creation and never
// changes; update paths must discard any attempt to rewrite it.
type Task struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID           primitive.ObjectID `bson:"user"`
	Title             string             `bson:"title"`
	Description       string             `bson:"description,omitempty"`
	Status            TaskStatus         `bson:"status"`
	Priority          TaskPriority       `bson:"priority"`
	DueDate           *time.Time         `bson:"dueDate,omitempty"`
	CompletedAt       *time.Time         `bson:"completedAt,omitempty"`
	Tags              []string           `bson:"tags"`
	IsImportant       bool               `bson:"isImportant"`
	EstimatedDuration *int               `bson:"estimatedDuration,omitempty"`
	ActualDuration    *int               `bson:"actualDuration,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

// NewTask creates a task owned by ownerID with defaults applied (status
// todo, priority medium, tags normalized). It validates every field and
// reports all violations together, including a due date earlier than the
// start of the current day.
func NewTask(ownerID primitive.ObjectID, title string, now time.Time) (*Task, error) {
	task := &Task{
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(title),
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		Tags:      []string{},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := task.ValidateAt(now); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks all task fields against the current time.
func (t *Task) Validate() error {
	return t.ValidateAt(time.Now())
}

// ValidateAt checks all task fields, treating now as the current time for
// the due-date rule. Every violated field is reported, not just the first.
func (t *Task) ValidateAt(now time.Time) error {
	verr := &ValidationError{}

	if t.OwnerID.IsZero() {
		verr.Add("user", "owner is required")
	}
	// Length limits are in characters, not bytes, matching the rune
	// counting of the request validation layer.
	if utf8.RuneCountInString(t.Title) < TitleMinLen {
		verr.Add("title", "must be at least 3 characters")
	} else if utf8.RuneCountInString(t.Title) > TitleMaxLen {
		verr.Add("title", "cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(t.Description) > DescriptionMaxLen {
		verr.Add("description", "cannot exceed 1000 characters")
	}
	if !t.Status.IsValid() {
		verr.Add("status", "must be one of todo, in_progress, done, archived")
	}
	if !t.Priority.IsValid() {
		verr.Add("priority", "must be one of low, medium, high")
	}
	if t.DueDate != nil && t.DueDate.Before(StartOfDay(now)) {
		verr.Add("dueDate", "must be today or in the future")
	}
	if t.EstimatedDuration != nil && *t.EstimatedDuration < 0 {
		verr.Add("estimatedDuration", "cannot be negative")
	}
	if t.ActualDuration != nil && *t.ActualDuration < 0 {
		verr.Add("actualDuration", "cannot be negative")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// SetStatus transitions the task's status and maintains the completion
// timestamp: entering done stamps it (if unset), leaving done clears it.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	t.Status = status
	if status == StatusDone {
		if t.CompletedAt == nil {
			completed := now.UTC()
			t.CompletedAt = &completed
		}
		return
	}
	t.CompletedAt = nil
}

// AddTag normalizes the tag and adds it if not already present.
// Returns true if the tag set changed.
func (t *Task) AddTag(tag string) bool {
	normalized := NormalizeTag(tag)
	if normalized == "" {
		return false
	}
	for _, existing := range t.Tags {
		if existing == normalized {
			return false
		}
	}
	t.Tags = append(t.Tags, normalized)
	return true
}

// RemoveTag removes the tag, matching case-insensitively. Removing an
// absent tag is a no-op. Returns true if the tag set changed.
func (t *Task) RemoveTag(tag string) bool {
	normalized := NormalizeTag(tag)
	for i, existing := range t.Tags {
		if existing == normalized {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// SetTags replaces the tag set with normalized, de-duplicated values.
func (t *Task) SetTags(tags []string) {
	t.Tags = NormalizeTags(tags)
}

// IsOverdue reports whether the task has a due date in the past and is not
// done. Derived state; never stored.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return t.DueDate.Before(now)
}

// DaysRemaining returns the number of days until the due date, rounded up,
// or nil when no due date is set. Past due dates yield negative values.
func (t *Task) DaysRemaining(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	days := int(math.Ceil(t.DueDate.Sub(now).Hours() / 24))
	return &days
}

// NormalizeTag trims and lowercases a tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags normalizes every tag and drops empties and duplicates,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		n := NormalizeTag(tag)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}
	return normalized
}

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
