package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type DealHandler struct {
	Repo entity.DealRepository
}

func NewDealHandler(repo entity.DealRepository) *DealHandler {
	return &DealHandler{Repo: repo}
}

type CreateDealRequest struct {
	Title             string     `json:"title"`
	Company           string     `json:"company"`
	ContactID         string     `json:"contact_id"`
	ValueCents        int        `json:"value_cents"`
	Stage             string     `json:"stage"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             string     `json:"notes"`
}

// Create (POST /deals). The repository appends the deal to the bottom of
// its stage column.
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	deal, err := entity.NewDeal(req.Title, req.Company, req.ContactID, req.ValueCents)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.Stage != "" {
		if !entity.ValidStage(req.Stage) {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_STAGE", "unknown pipeline stage")
			return
		}
		deal.Stage = req.Stage
	}
	deal.ExpectedCloseDate = req.ExpectedCloseDate
	deal.Notes = req.Notes

	if err := h.Repo.Create(r.Context(), deal); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create deal")
		return
	}

	writeJSON(w, http.StatusCreated, deal)
}

// Get (GET /deals/{id})
func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deal, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrDealNotFound {
			writeErrorResponse(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load deal")
		return
	}

	writeJSON(w, http.StatusOK, deal)
}

// List (GET /deals?stage=) ordered by stage column position.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")
	if stage != "" && !entity.ValidStage(stage) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STAGE", "unknown pipeline stage")
		return
	}

	deals, err := h.Repo.List(r.Context(), stage)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list deals")
		return
	}

	writeJSON(w, http.StatusOK, deals)
}

type UpdateDealRequest struct {
	Title             string     `json:"title"`
	Company           string     `json:"company"`
	ContactID         string     `json:"contact_id"`
	ValueCents        int        `json:"value_cents"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             string     `json:"notes"`
}

// Update (PUT /deals/{id}) edits deal fields. Stage and position only
// change through Move.
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	deal, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrDealNotFound {
			writeErrorResponse(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load deal")
		return
	}

	deal.Title = req.Title
	deal.Company = req.Company
	deal.ContactID = req.ContactID
	deal.ValueCents = req.ValueCents
	deal.ExpectedCloseDate = req.ExpectedCloseDate
	deal.Notes = req.Notes

	if err := deal.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), deal); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update deal")
		return
	}

	writeJSON(w, http.StatusOK, deal)
}

type MoveDealRequest struct {
	Stage    string `json:"stage"`
	Position int    `json:"position"`
}

// Move (PUT /deals/{id}/move) is the drag-and-drop endpoint. Dropping a
// card back on its own slot is a no-op.
func (h *DealHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MoveDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	if !entity.ValidStage(req.Stage) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STAGE", "unknown pipeline stage")
		return
	}

	deal, err := h.Repo.Move(r.Context(), id, req.Stage, req.Position)
	if err != nil {
		if err == entity.ErrDealNotFound {
			writeErrorResponse(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to move deal")
		return
	}

	writeJSON(w, http.StatusOK, deal)
}

// Delete (DELETE /deals/{id})
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrDealNotFound {
			writeErrorResponse(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete deal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
