package api

import (
	"time"

	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName"  validate:"omitempty,max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UpdateProfileRequest defines the payload for updating the current user's
// profile. Only the name fields are updatable through this route.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName"  validate:"omitempty,max=100"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=72"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title             string     `json:"title"             validate:"required,min=3,max=100"`
	Description       string     `json:"description"       validate:"omitempty,max=1000"`
	Status            string     `json:"status"            validate:"omitempty,oneof=todo in_progress done archived"`
	Priority          string     `json:"priority"          validate:"omitempty,oneof=low medium high"`
	DueDate           *time.Time `json:"dueDate"`
	Tags              []string   `json:"tags"`
	IsImportant       bool       `json:"isImportant"`
	EstimatedDuration *int       `json:"estimatedDuration" validate:"omitempty,min=0"`
	ActualDuration    *int       `json:"actualDuration"    validate:"omitempty,min=0"`
}

// UpdateTaskRequest defines the payload for task updates. All fields are
// optional; only the ones present are applied. There is deliberately no
// owner field: ownership cannot be changed after creation.
type UpdateTaskRequest struct {
	Title             *string    `json:"title"             validate:"omitempty,min=3,max=100"`
	Description       *string    `json:"description"       validate:"omitempty,max=1000"`
	Status            *string    `json:"status"            validate:"omitempty,oneof=todo in_progress done archived"`
	Priority          *string    `json:"priority"          validate:"omitempty,oneof=low medium high"`
	DueDate           *time.Time `json:"dueDate"`
	Tags              *[]string  `json:"tags"`
	IsImportant       *bool      `json:"isImportant"`
	EstimatedDuration *int       `json:"estimatedDuration" validate:"omitempty,min=0"`
	ActualDuration    *int       `json:"actualDuration"    validate:"omitempty,min=0"`
}

// AddTagRequest defines the payload for adding a tag to a task.
type AddTagRequest struct {
	Tag string `json:"tag" validate:"required,min=1"`
}

// UserResponse is the public view of a user. The password hash never
// appears here.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse is the envelope for register and login.
type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}

// ProfileResponse is the envelope for profile reads and updates.
type ProfileResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    *UserResponse `json:"user"`
}

// MessageResponse is the envelope for operations with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TaskResponse is the public view of a task, including the derived
// isOverdue and daysRemaining fields.
type TaskResponse struct {
	ID                string     `json:"id"`
	User              string     `json:"user"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	Tags              []string   `json:"tags"`
	IsImportant       bool       `json:"isImportant"`
	EstimatedDuration *int       `json:"estimatedDuration,omitempty"`
	ActualDuration    *int       `json:"actualDuration,omitempty"`
	IsOverdue         bool       `json:"isOverdue"`
	DaysRemaining     *int       `json:"daysRemaining"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// TaskEnvelope is the envelope for single-task responses.
type TaskEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    *TaskResponse `json:"data"`
}

// TaskListResponse is the envelope for task listings.
type TaskListResponse struct {
	Success    bool             `json:"success"`
	Data       []TaskResponse   `json:"data"`
	Pagination store.Pagination `json:"pagination"`
}

// StatsResponse is the envelope for the statistics endpoint.
type StatsResponse struct {
	Success bool              `json:"success"`
	Data    *domain.TaskStats `json:"data"`
}

// userToResponse transforms a domain user into its public view.
func userToResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// taskToResponse transforms a domain task into its public view,
// evaluating the derived fields against now.
func taskToResponse(task *domain.Task, now time.Time) TaskResponse {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	return TaskResponse{
		ID:                task.ID.Hex(),
		User:              task.OwnerID.Hex(),
		Title:             task.Title,
		Description:       task.Description,
		Status:            string(task.Status),
		Priority:          string(task.Priority),
		DueDate:           task.DueDate,
		CompletedAt:       task.CompletedAt,
		Tags:              tags,
		IsImportant:       task.IsImportant,
		EstimatedDuration: task.EstimatedDuration,
		ActualDuration:    task.ActualDuration,
		IsOverdue:         task.IsOverdue(now),
		DaysRemaining:     task.DaysRemaining(now),
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
}
