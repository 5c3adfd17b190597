package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type ProjectHandler struct {
	Repo entity.ProjectRepository
}

func NewProjectHandler(repo entity.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{Repo: repo}
}

type ProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// Create (POST /projects). New projects start ACTIVE.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	project, err := entity.NewProject(req.Name, req.Description, req.DueDate)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Create(r.Context(), project); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// Get (GET /projects/{id})
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrProjectNotFound {
			writeErrorResponse(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// List (GET /projects)
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Repo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list projects")
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// Update (PUT /projects/{id})
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	project, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrProjectNotFound {
			writeErrorResponse(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load project")
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	if req.Status != "" {
		project.Status = req.Status
	}
	project.DueDate = req.DueDate

	if err := project.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), project); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Delete (DELETE /projects/{id})
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrProjectNotFound {
			writeErrorResponse(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
