package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type GoalHandler struct {
	Repo entity.GoalRepository
}

func NewGoalHandler(repo entity.GoalRepository) *GoalHandler {
	return &GoalHandler{Repo: repo}
}

type GoalRequest struct {
	Title       string     `json:"title"`
	Metric      string     `json:"metric"`
	TargetValue int        `json:"target_value"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// Create (POST /goals). New goals start ON_TRACK at zero progress.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	goal, err := entity.NewGoal(req.Title, req.Metric, req.TargetValue, req.DueDate)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Create(r.Context(), goal); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create goal")
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

// Get (GET /goals/{id})
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	goal, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrGoalNotFound {
			writeErrorResponse(w, http.StatusNotFound, "GOAL_NOT_FOUND", "goal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// List (GET /goals)
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.Repo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list goals")
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

// Update (PUT /goals/{id}) edits the goal definition. Progress moves
// through the progress endpoint so the ACHIEVED flip stays in one place.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	goal, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrGoalNotFound {
			writeErrorResponse(w, http.StatusNotFound, "GOAL_NOT_FOUND", "goal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load goal")
		return
	}

	goal.Title = req.Title
	goal.Metric = req.Metric
	goal.TargetValue = req.TargetValue
	if req.Status != "" {
		switch req.Status {
		case entity.GoalOnTrack, entity.GoalAtRisk, entity.GoalAchieved, entity.GoalMissed:
			goal.Status = req.Status
		default:
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status must be ON_TRACK, AT_RISK, ACHIEVED or MISSED")
			return
		}
	}
	goal.DueDate = req.DueDate

	if err := goal.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), goal); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

type GoalProgressRequest struct {
	CurrentValue int `json:"current_value"`
}

// Progress (PATCH /goals/{id}/progress) sets the current value; reaching
// the target flips the goal to ACHIEVED.
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req GoalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	goal, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrGoalNotFound {
			writeErrorResponse(w, http.StatusNotFound, "GOAL_NOT_FOUND", "goal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load goal")
		return
	}

	goal.RecordProgress(req.CurrentValue)

	if err := h.Repo.Update(r.Context(), goal); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// Delete (DELETE /goals/{id})
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrGoalNotFound {
			writeErrorResponse(w, http.StatusNotFound, "GOAL_NOT_FOUND", "goal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
