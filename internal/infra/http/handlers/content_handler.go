package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type ContentHandler struct {
	Repo entity.ContentRepository
}

func NewContentHandler(repo entity.ContentRepository) *ContentHandler {
	return &ContentHandler{Repo: repo}
}

type ContentRequest struct {
	Title       string     `json:"title"`
	Channel     string     `json:"channel"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Notes       string     `json:"notes"`
}

// Create (POST /content). New pieces start as IDEA unless a status is
// given.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	piece, err := entity.NewContentPiece(req.Title, req.Channel, req.ScheduledAt)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.Status != "" {
		if !entity.ValidContentStatus(req.Status) {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status must be IDEA, DRAFT, SCHEDULED or PUBLISHED")
			return
		}
		if req.Status == entity.ContentPublished {
			piece.MarkPublished()
		} else {
			piece.Status = req.Status
		}
	}
	piece.Notes = req.Notes

	if err := h.Repo.Create(r.Context(), piece); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create content piece")
		return
	}

	writeJSON(w, http.StatusCreated, piece)
}

// Get (GET /content/{id})
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	piece, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrContentNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "content piece not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load content piece")
		return
	}

	writeJSON(w, http.StatusOK, piece)
}

// List (GET /content?from=&to=&channel=&status=) powers the calendar.
// from/to bound scheduled_at; dates accept 2006-01-02 or RFC 3339.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_DATE", "from must be YYYY-MM-DD or RFC 3339")
		return
	}

	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_DATE", "to must be YYYY-MM-DD or RFC 3339")
		return
	}

	filter := entity.ContentFilter{
		From:    from,
		To:      to,
		Channel: r.URL.Query().Get("channel"),
		Status:  r.URL.Query().Get("status"),
	}

	pieces, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list content")
		return
	}

	writeJSON(w, http.StatusOK, pieces)
}

// Update (PUT /content/{id})
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	piece, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrContentNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "content piece not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load content piece")
		return
	}

	piece.Title = req.Title
	piece.Channel = req.Channel
	piece.ScheduledAt = req.ScheduledAt
	piece.Notes = req.Notes
	if req.Status != "" {
		if !entity.ValidContentStatus(req.Status) {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status must be IDEA, DRAFT, SCHEDULED or PUBLISHED")
			return
		}
		if req.Status == entity.ContentPublished {
			piece.MarkPublished()
		} else {
			piece.Status = req.Status
		}
	}

	if err := piece.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), piece); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update content piece")
		return
	}

	writeJSON(w, http.StatusOK, piece)
}

// Publish (POST /content/{id}/publish) flips the piece to PUBLISHED,
// stamping published_at the first time.
func (h *ContentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	piece, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrContentNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "content piece not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load content piece")
		return
	}

	piece.MarkPublished()

	if err := h.Repo.Update(r.Context(), piece); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update content piece")
		return
	}

	writeJSON(w, http.StatusOK, piece)
}

// Delete (DELETE /content/{id})
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrContentNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "content piece not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete content piece")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
