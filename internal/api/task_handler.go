package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mhoudret/taskdeck-api/internal/api/shared"
	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// TaskHandler holds dependencies for task endpoints.
type TaskHandler struct {
	taskStore  store.TaskStore
	statsStore store.TaskStatsStore
	validator  *validator.Validate
	logger     *slog.Logger
	timeFunc   func() time.Time
}

// NewTaskHandler creates a new TaskHandler with its dependencies.
func NewTaskHandler(taskStore store.TaskStore, statsStore store.TaskStatsStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		panic("logger must not be nil for TaskHandler") // ALLOW-PANIC
	}
	return &TaskHandler{
		taskStore:  taskStore,
		statsStore: statsStore,
		validator:  validator.New(),
		logger:     logger.With(slog.String("component", "task_handler")),
		timeFunc:   time.Now,
	}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.With(slog.String("trace_id", shared.GetTraceID(ctx)))

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, validationFieldErrors(err))
		return
	}

	now := h.timeFunc()
	task := &domain.Task{
		OwnerID:           ownerID,
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		Status:            domain.StatusTodo,
		Priority:          domain.PriorityMedium,
		DueDate:           req.DueDate,
		Tags:              []string{},
		IsImportant:       req.IsImportant,
		EstimatedDuration: req.EstimatedDuration,
		ActualDuration:    req.ActualDuration,
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
	if req.Priority != "" {
		task.Priority = domain.TaskPriority(req.Priority)
	}
	if req.Status != "" {
		task.SetStatus(domain.TaskStatus(req.Status), now)
	}
	task.SetTags(req.Tags)

	if err := task.ValidateAt(now); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.taskStore.Create(ctx, task); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Info("task created",
		slog.String("task_id", task.ID.Hex()),
		slog.String("user_id", ownerID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusCreated, TaskEnvelope{
		Success: true,
		Message: "Task created successfully",
		Data:    taskResponsePtr(task, now),
	})
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	opts := listOptionsFromQuery(r)
	page, err := h.taskStore.List(ctx, ownerID, opts)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	now := h.timeFunc()
	data := make([]TaskResponse, 0, len(page.Tasks))
	for i := range page.Tasks {
		data = append(data, taskToResponse(&page.Tasks[i], now))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Success:    true,
		Data:       data,
		Pagination: page.Pagination,
	})
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Data:    taskResponsePtr(task, h.timeFunc()),
	})
}

// Update handles PUT /api/tasks/{id}. Only the fields present in the
// request are applied; ownership is never updated.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, validationFieldErrors(err))
		return
	}

	task, err := h.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	now := h.timeFunc()
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		task.SetStatus(domain.TaskStatus(*req.Status), now)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Tags != nil {
		task.SetTags(*req.Tags)
	}
	if req.IsImportant != nil {
		task.IsImportant = *req.IsImportant
	}
	if req.EstimatedDuration != nil {
		task.EstimatedDuration = req.EstimatedDuration
	}
	if req.ActualDuration != nil {
		task.ActualDuration = req.ActualDuration
	}
	task.UpdatedAt = now.UTC()

	if err := task.ValidateAt(now); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.taskStore.Update(ctx, task); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Message: "Task updated successfully",
		Data:    taskResponsePtr(task, now),
	})
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.With(slog.String("trace_id", shared.GetTraceID(ctx)))

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskStore.Delete(ctx, id, ownerID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Info("task deleted",
		slog.String("task_id", id.Hex()),
		slog.String("user_id", ownerID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

// Stats handles GET /api/tasks/stats.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	stats, err := h.statsStore.OwnerStats(ctx, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		Success: true,
		Data:    stats,
	})
}

// Complete handles PATCH /api/tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusDone, "Task marked as completed")
}

// Archive handles PATCH /api/tasks/{id}/archive.
func (h *TaskHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusArchived, "Task archived")
}

// Restore handles PATCH /api/tasks/{id}/restore. Only archived tasks can
// be restored; anything else reads as not found.
func (h *TaskHandler) Restore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if task.Status != domain.StatusArchived {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	now := h.timeFunc()
	task.SetStatus(domain.StatusTodo, now)
	task.UpdatedAt = now.UTC()

	if err := h.taskStore.Update(ctx, task); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Message: "Task restored",
		Data:    taskResponsePtr(task, now),
	})
}

// AddTag handles PATCH /api/tasks/{id}/tags.
func (h *TaskHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	var req AddTagRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, validationFieldErrors(err))
		return
	}

	task, err := h.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	now := h.timeFunc()
	if task.AddTag(req.Tag) {
		task.UpdatedAt = now.UTC()
		if err := h.taskStore.Update(ctx, task); err != nil {
			HandleServiceError(w, r, err)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Data:    taskResponsePtr(task, now),
	})
}

// RemoveTag handles DELETE /api/tasks/{id}/tags/{tag}. Removing a tag the
// task does not carry is a no-op.
func (h *TaskHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	now := h.timeFunc()
	if task.RemoveTag(chi.URLParam(r, "tag")) {
		task.UpdatedAt = now.UTC()
		if err := h.taskStore.Update(ctx, task); err != nil {
			HandleServiceError(w, r, err)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Data:    taskResponsePtr(task, now),
	})
}

// transition loads a task, applies a status change, and saves it.
func (h *TaskHandler) transition(w http.ResponseWriter, r *http.Request, status domain.TaskStatus, message string) {
	ctx := r.Context()

	ownerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	now := h.timeFunc()
	task.SetStatus(status, now)
	task.UpdatedAt = now.UTC()

	if err := h.taskStore.Update(ctx, task); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Message: message,
		Data:    taskResponsePtr(task, now),
	})
}

// listOptionsFromQuery maps the listing query string onto store options.
// Unknown or malformed values fall back to defaults rather than failing
// the request.
func listOptionsFromQuery(r *http.Request) store.ListOptions {
	q := r.URL.Query()
	opts := store.ListOptions{
		Status:    domain.TaskStatus(q.Get("status")),
		Priority:  domain.TaskPriority(q.Get("priority")),
		Search:    strings.TrimSpace(q.Get("search")),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if raw := q.Get("isImportant"); raw != "" {
		if important, err := strconv.ParseBool(raw); err == nil {
			opts.Important = &important
		}
	}
	if raw := q.Get("tags"); raw != "" {
		opts.Tags = strings.Split(raw, ",")
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = limit
	}
	return opts
}

// taskResponsePtr is a convenience wrapper for single-task envelopes.
func taskResponsePtr(task *domain.Task, now time.Time) *TaskResponse {
	resp := taskToResponse(task, now)
	return &resp
}
