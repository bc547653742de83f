package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewTask(t *testing.T) {
	ownerID := primitive.NewObjectID()
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	task, err := NewTask(ownerID, "  Write report  ", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.OwnerID != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID.Hex(), task.OwnerID.Hex())
	}
	if task.Title != "Write report" {
		t.Errorf("Expected trimmed title, got %q", task.Title)
	}
	if task.Status != StatusTodo {
		t.Errorf("Expected default status todo, got %s", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Expected default priority medium, got %s", task.Priority)
	}
	if task.Tags == nil || len(task.Tags) != 0 {
		t.Errorf("Expected empty non-nil tag slice, got %v", task.Tags)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	// A too-short title fails creation
	_, err = NewTask(ownerID, "ab", now)
	if err == nil {
		t.Fatal("Expected error for short title, got nil")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestTaskTitleLengthCountsRunes(t *testing.T) {
	ownerID := primitive.NewObjectID()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	// 60 accented characters are 120 bytes but well within the 100
	// character limit
	task, err := NewTask(ownerID, strings.Repeat("é", 60), now)
	if err != nil {
		t.Fatalf("Expected 60-character multibyte title to pass, got %v", err)
	}
	if utf8.RuneCountInString(task.Title) != 60 {
		t.Errorf("Expected 60-rune title, got %d", utf8.RuneCountInString(task.Title))
	}

	// 101 characters fail regardless of byte width
	if _, err := NewTask(ownerID, strings.Repeat("é", 101), now); err == nil {
		t.Error("Expected 101-character title to fail validation")
	}

	// A two-character multibyte title is still too short
	if _, err := NewTask(ownerID, "éé", now); err == nil {
		t.Error("Expected 2-character title to fail validation")
	}

	// Description limit counts characters too
	task = &Task{
		OwnerID:     ownerID,
		Title:       "Valid title",
		Description: strings.Repeat("ü", 1000),
		Status:      StatusTodo,
		Priority:    PriorityLow,
	}
	if err := task.ValidateAt(now); err != nil {
		t.Errorf("Expected 1000-character description to pass, got %v", err)
	}
	task.Description = strings.Repeat("ü", 1001)
	if err := task.ValidateAt(now); err == nil {
		t.Error("Expected 1001-character description to fail validation")
	}
}

func TestTaskValidateAtCollectsAllViolations(t *testing.T) {
	past := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	negative := -5

	task := &Task{
		Title:             "ab",
		Status:            TaskStatus("bogus"),
		Priority:          TaskPriority("urgent"),
		DueDate:           &past,
		EstimatedDuration: &negative,
	}

	err := task.ValidateAt(now)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}

	violated := map[string]bool{}
	for _, f := range verr.Fields {
		violated[f.Field] = true
	}
	for _, field := range []string{"user", "title", "status", "priority", "dueDate", "estimatedDuration"} {
		if !violated[field] {
			t.Errorf("Expected violation on %q, fields were %v", field, verr.Fields)
		}
	}
}

func TestTaskValidateAtDueDate(t *testing.T) {
	ownerID := primitive.NewObjectID()
	now := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)

	base := func() *Task {
		return &Task{
			OwnerID:  ownerID,
			Title:    "Valid title",
			Status:   StatusTodo,
			Priority: PriorityLow,
		}
	}

	// A due date earlier today is still valid: the bound is start of day
	earlierToday := time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)
	task := base()
	task.DueDate = &earlierToday
	if err := task.ValidateAt(now); err != nil {
		t.Errorf("Expected due date earlier today to pass, got %v", err)
	}

	// Yesterday fails
	yesterday := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	task = base()
	task.DueDate = &yesterday
	if err := task.ValidateAt(now); err == nil {
		t.Error("Expected past due date to fail validation")
	}
}

func TestSetStatusCompletionTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	task := &Task{Status: StatusTodo}

	// Entering done stamps CompletedAt
	task.SetStatus(StatusDone, now)
	if task.CompletedAt == nil {
		t.Fatal("Expected CompletedAt to be stamped")
	}
	stamped := *task.CompletedAt

	// Staying done keeps the original stamp
	later := now.Add(time.Hour)
	task.SetStatus(StatusDone, later)
	if !task.CompletedAt.Equal(stamped) {
		t.Errorf("Expected CompletedAt to stay %v, got %v", stamped, *task.CompletedAt)
	}

	// Leaving done clears it
	task.SetStatus(StatusInProgress, later)
	if task.CompletedAt != nil {
		t.Errorf("Expected CompletedAt to be cleared, got %v", *task.CompletedAt)
	}
}

func TestTagOperations(t *testing.T) {
	task := &Task{Tags: []string{}}

	if !task.AddTag("  Work ") {
		t.Error("Expected AddTag to report a change")
	}
	if len(task.Tags) != 1 || task.Tags[0] != "work" {
		t.Errorf("Expected normalized tag [work], got %v", task.Tags)
	}

	// Adding a case variant of an existing tag is a no-op
	if task.AddTag("WORK") {
		t.Error("Expected duplicate AddTag to report no change")
	}
	if len(task.Tags) != 1 {
		t.Errorf("Expected 1 tag, got %v", task.Tags)
	}

	// Adding an empty tag is a no-op
	if task.AddTag("   ") {
		t.Error("Expected empty AddTag to report no change")
	}

	// Removing matches case-insensitively
	if !task.RemoveTag("Work") {
		t.Error("Expected RemoveTag to report a change")
	}
	if len(task.Tags) != 0 {
		t.Errorf("Expected no tags, got %v", task.Tags)
	}

	// Removing an absent tag is a no-op
	if task.RemoveTag("work") {
		t.Error("Expected absent RemoveTag to report no change")
	}
}

func TestSetTags(t *testing.T) {
	task := &Task{}
	task.SetTags([]string{" Home ", "home", "HOME", "", "garden"})

	if len(task.Tags) != 2 || task.Tags[0] != "home" || task.Tags[1] != "garden" {
		t.Errorf("Expected [home garden], got %v", task.Tags)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		dueDate *time.Time
		status  TaskStatus
		want    bool
	}{
		{"no due date", nil, StatusTodo, false},
		{"past due pending", &past, StatusTodo, true},
		{"past due done", &past, StatusDone, false},
		{"future due", &future, StatusTodo, false},
	}

	for _, tc := range tests {
		task := &Task{DueDate: tc.dueDate, Status: tc.status}
		if got := task.IsOverdue(now); got != tc.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	task := &Task{}
	if task.DaysRemaining(now) != nil {
		t.Error("Expected nil days remaining without a due date")
	}

	// 2.5 days out rounds up to 3
	due := now.Add(60 * time.Hour)
	task.DueDate = &due
	if got := task.DaysRemaining(now); got == nil || *got != 3 {
		t.Errorf("Expected 3 days remaining, got %v", got)
	}

	// Past due dates yield negative values
	overdue := now.Add(-48 * time.Hour)
	task.DueDate = &overdue
	if got := task.DaysRemaining(now); got == nil || *got != -2 {
		t.Errorf("Expected -2 days remaining, got %v", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"  A ", "b", "a", "B ", ""})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Expected [a b], got %v", got)
	}
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 6, 15, 23, 45, 12, 999, time.UTC)
	got := StartOfDay(ts)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
