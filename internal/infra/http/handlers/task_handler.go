package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type TaskHandler struct {
	Repo entity.TaskRepository
}

func NewTaskHandler(repo entity.TaskRepository) *TaskHandler {
	return &TaskHandler{Repo: repo}
}

type TaskRequest struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// Create (POST /tasks). New tasks land at the bottom of the TODO column.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := entity.NewTask(req.ProjectID, req.Title, req.Description, req.Priority, req.DueDate)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Create(r.Context(), task); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// Get (GET /tasks/{id})
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrTaskNotFound {
			writeErrorResponse(w, http.StatusNotFound, "TASK_NOT_FOUND", "task not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// List (GET /tasks?project_id=&status=)
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !entity.ValidTaskStatus(status) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status must be TODO, IN_PROGRESS or DONE")
		return
	}

	filter := entity.TaskFilter{
		ProjectID: r.URL.Query().Get("project_id"),
		Status:    status,
	}

	tasks, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Update (PUT /tasks/{id}) edits task fields. Column and position only
// change through Move.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	task, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrTaskNotFound {
			writeErrorResponse(w, http.StatusNotFound, "TASK_NOT_FOUND", "task not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load task")
		return
	}

	task.ProjectID = req.ProjectID
	task.Title = req.Title
	task.Description = req.Description
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	task.DueDate = req.DueDate

	if err := task.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), task); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

type MoveTaskRequest struct {
	Status   string `json:"status"`
	Position int    `json:"position"`
}

// Move (PUT /tasks/{id}/move) drags the task across kanban columns.
// Dropping it back on its own slot is a no-op.
func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	if !entity.ValidTaskStatus(req.Status) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status must be TODO, IN_PROGRESS or DONE")
		return
	}

	task, err := h.Repo.Move(r.Context(), id, req.Status, req.Position)
	if err != nil {
		if err == entity.ErrTaskNotFound {
			writeErrorResponse(w, http.StatusNotFound, "TASK_NOT_FOUND", "task not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to move task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete (DELETE /tasks/{id})
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrTaskNotFound {
			writeErrorResponse(w, http.StatusNotFound, "TASK_NOT_FOUND", "task not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
