package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/usecase"
)

type SearchHandler struct {
	Repo       entity.SearchComboRepositoryInterface
	GenerateUC *usecase.GenerateSearchGridUseCase
}

func NewSearchHandler(repo entity.SearchComboRepositoryInterface, generateUC *usecase.GenerateSearchGridUseCase) *SearchHandler {
	return &SearchHandler{Repo: repo, GenerateUC: generateUC}
}

// Generate (POST /search-grid/generate) crosses cities with niches and
// inserts the missing combos. Empty lists fall back to the seed config.
func (h *SearchHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateSearchGridInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	output, err := h.GenerateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// List (GET /search-grid?city=&niche=&searched=)
func (h *SearchHandler) List(w http.ResponseWriter, r *http.Request) {
	var searched *bool
	if raw := r.URL.Query().Get("searched"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_PARAM", "searched must be true or false")
			return
		}
		searched = &value
	}

	combos, err := h.Repo.List(r.Context(), r.URL.Query().Get("city"), r.URL.Query().Get("niche"), searched)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list search grid")
		return
	}

	writeJSON(w, http.StatusOK, combos)
}

// Toggle (POST /search-grid/{id}/toggle) checks a combo off (or back on),
// stamping searched_at accordingly.
func (h *SearchHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	combo, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrComboNotFound {
			writeErrorResponse(w, http.StatusNotFound, "COMBO_NOT_FOUND", "search combo not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load search combo")
		return
	}

	combo.Toggle()

	if err := h.Repo.Update(r.Context(), combo); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update search combo")
		return
	}

	writeJSON(w, http.StatusOK, combo)
}

// Reset (POST /search-grid/reset?city=) clears searched flags, optionally
// for a single city, and reports how many rows flipped.
func (h *SearchHandler) Reset(w http.ResponseWriter, r *http.Request) {
	count, err := h.Repo.ResetAll(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to reset search grid")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"reset": count})
}

// Stats (GET /search-grid/stats)
func (h *SearchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load search grid stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
