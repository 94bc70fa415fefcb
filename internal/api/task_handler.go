package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles task management API requests. Every operation is
// scoped to the authenticated user; tasks owned by other users are reported
// as not found.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore) *TaskHandler {
	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := domain.NewTask(userID, req.Title, req.Body, req.DueAt)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) || errors.Is(err, domain.ErrValidation) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to create task", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// List handles GET /tasks with optional is_done, limit, and offset query
// parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.taskStore.List(r.Context(), userID, filter)
	if err != nil {
		slog.Error("failed to list tasks", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(page))
}

// Stats handles GET /tasks/stats.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.taskStore.CountByStatus(r.Context(), userID)
	if err != nil {
		slog.Error("failed to get task stats", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get task statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to get task", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PUT /tasks/{id}. Absent fields keep their stored values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to get task for update", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update task")
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Body != nil {
		task.Body = req.Body
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt
	}
	if req.IsDone != nil {
		task.IsDone = *req.IsDone
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, domain.ErrValidation) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to update task", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID, userID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to delete task", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// MarkDone handles PATCH /tasks/{id}/done.
func (h *TaskHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	h.setDone(w, r, true)
}

// MarkUndone handles PATCH /tasks/{id}/undone.
func (h *TaskHandler) MarkUndone(w http.ResponseWriter, r *http.Request) {
	h.setDone(w, r, false)
}

func (h *TaskHandler) setDone(w http.ResponseWriter, r *http.Request, done bool) {
	userID, taskID, ok := requireUserAndTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskStore.SetDone(r.Context(), taskID, userID, done)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to set task status", "error", redact.Error(err), "task_id", taskID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update task status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// parseTaskFilter reads the listing query parameters. Malformed values are
// rejected; out-of-range limit and offset values are clamped by the store.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	filter := store.TaskFilter{Limit: store.DefaultListLimit}
	query := r.URL.Query()

	if raw := query.Get("is_done"); raw != "" {
		isDone, err := strconv.ParseBool(raw)
		if err != nil {
			return store.TaskFilter{}, errors.New("invalid is_done parameter")
		}
		filter.IsDone = &isDone
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return store.TaskFilter{}, errors.New("invalid limit parameter")
		}
		filter.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return store.TaskFilter{}, errors.New("invalid offset parameter")
		}
		filter.Offset = offset
	}

	return filter, nil
}
