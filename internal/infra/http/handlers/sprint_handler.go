package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type SprintHandler struct {
	Repo entity.SprintRepositoryInterface
}

func NewSprintHandler(repo entity.SprintRepositoryInterface) *SprintHandler {
	return &SprintHandler{Repo: repo}
}

// SprintResponse adds the derived week number the board header shows.
type SprintResponse struct {
	*entity.Sprint
	CurrentWeek int `json:"current_week"`
}

func toSprintResponse(s *entity.Sprint) SprintResponse {
	return SprintResponse{Sprint: s, CurrentWeek: s.CurrentWeek()}
}

type CreateSprintRequest struct {
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date"`
}

// Create (POST /sprints). Only one unfinished sprint may exist at a time.
func (h *SprintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	unfinished, err := h.Repo.HasUnfinished(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to check sprints")
		return
	}
	if unfinished {
		writeErrorResponse(w, http.StatusConflict, "SPRINT_IN_PROGRESS", "finish or delete the current sprint before starting a new one")
		return
	}

	startDate := time.Time{}
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	sprint, err := entity.NewSprint(req.Name, startDate)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Create(r.Context(), sprint); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create sprint")
		return
	}

	writeJSON(w, http.StatusCreated, toSprintResponse(sprint))
}

// Current (GET /sprints/current) returns the running (or paused) sprint.
func (h *SprintHandler) Current(w http.ResponseWriter, r *http.Request) {
	sprint, err := h.Repo.FindCurrent(r.Context())
	if err != nil {
		if err == entity.ErrSprintNotFound {
			writeErrorResponse(w, http.StatusNotFound, "NO_CURRENT_SPRINT", "no sprint is in progress")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load sprint")
		return
	}

	writeJSON(w, http.StatusOK, toSprintResponse(sprint))
}

// Get (GET /sprints/{id})
func (h *SprintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sprint, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrSprintNotFound {
			writeErrorResponse(w, http.StatusNotFound, "SPRINT_NOT_FOUND", "sprint not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load sprint")
		return
	}

	writeJSON(w, http.StatusOK, toSprintResponse(sprint))
}

// List (GET /sprints)
func (h *SprintHandler) List(w http.ResponseWriter, r *http.Request) {
	sprints, err := h.Repo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list sprints")
		return
	}

	responses := make([]SprintResponse, 0, len(sprints))
	for _, s := range sprints {
		responses = append(responses, toSprintResponse(s))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Advance (POST /sprints/{id}/advance) moves the sprint one day forward.
// Advancing on day 30 completes it.
func (h *SprintHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "CANNOT_ADVANCE", (*entity.Sprint).AdvanceDay)
}

// Back (POST /sprints/{id}/back) moves one day back; a completed sprint
// becomes active again.
func (h *SprintHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "CANNOT_GO_BACK", (*entity.Sprint).GoBackDay)
}

// Pause (POST /sprints/{id}/pause)
func (h *SprintHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "CANNOT_PAUSE", (*entity.Sprint).Pause)
}

// Resume (POST /sprints/{id}/resume)
func (h *SprintHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "CANNOT_RESUME", (*entity.Sprint).Resume)
}

// mutate loads the sprint, applies one of the day/status transitions and
// persists the result. Transition guards surface as 409s.
func (h *SprintHandler) mutate(w http.ResponseWriter, r *http.Request, code string, apply func(*entity.Sprint) error) {
	id := chi.URLParam(r, "id")

	sprint, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrSprintNotFound {
			writeErrorResponse(w, http.StatusNotFound, "SPRINT_NOT_FOUND", "sprint not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load sprint")
		return
	}

	if err := apply(sprint); err != nil {
		writeErrorResponse(w, http.StatusConflict, code, err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), sprint); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update sprint")
		return
	}

	writeJSON(w, http.StatusOK, toSprintResponse(sprint))
}

// Delete (DELETE /sprints/{id})
func (h *SprintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrSprintNotFound {
			writeErrorResponse(w, http.StatusNotFound, "SPRINT_NOT_FOUND", "sprint not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete sprint")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
