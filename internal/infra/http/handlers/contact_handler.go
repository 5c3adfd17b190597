package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type ContactHandler struct {
	Repo entity.ContactRepositoryInterface
}

func NewContactHandler(repo entity.ContactRepositoryInterface) *ContactHandler {
	return &ContactHandler{Repo: repo}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Source  string `json:"source"`
	Notes   string `json:"notes"`
}

// Create (POST /contacts). Source defaults to MANUAL; OUTREACH contacts
// are minted by the conversion flow, not by hand.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	contact, err := entity.NewContact(req.Name, req.Email, req.Phone, req.Company, req.Role, req.Source)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	contact.Notes = req.Notes

	if err := h.Repo.Create(r.Context(), contact); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create contact")
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

// Get (GET /contacts/{id})
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	contact, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrContactNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "contact not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load contact")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// List (GET /contacts?search=) matches name, email or company.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Repo.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list contacts")
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

// Update (PUT /contacts/{id}). The outreach backlink and source are set
// at creation and stay put.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	contact, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrContactNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "contact not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load contact")
		return
	}

	contact.Name = req.Name
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.Company = req.Company
	contact.Role = req.Role
	contact.Notes = req.Notes

	if err := contact.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Repo.Update(r.Context(), contact); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update contact")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Delete (DELETE /contacts/{id})
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrContactNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "contact not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete contact")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
