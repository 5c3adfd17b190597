package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type CampaignHandler struct {
	CampaignRepo entity.CampaignRepositoryInterface
	TemplateRepo entity.TemplateRepositoryInterface
	ProspectRepo entity.ProspectRepositoryInterface
}

func NewCampaignHandler(
	campaignRepo entity.CampaignRepositoryInterface,
	templateRepo entity.TemplateRepositoryInterface,
	prospectRepo entity.ProspectRepositoryInterface,
) *CampaignHandler {
	return &CampaignHandler{
		CampaignRepo: campaignRepo,
		TemplateRepo: templateRepo,
		ProspectRepo: prospectRepo,
	}
}

type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create (POST /campaigns). New campaigns start as DRAFT.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	campaign, err := entity.NewCampaign(req.Name, req.Description)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.CampaignRepo.Create(r.Context(), campaign); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create campaign")
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// Get (GET /campaigns/{id})
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	campaign, err := h.CampaignRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrCampaignNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CAMPAIGN_NOT_FOUND", "campaign not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load campaign")
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// List (GET /campaigns)
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.CampaignRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list campaigns")
		return
	}

	writeJSON(w, http.StatusOK, campaigns)
}

type UpdateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Update (PUT /campaigns/{id}). A campaign without templates cannot be
// activated; its prospects would have nothing to send.
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	campaign, err := h.CampaignRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrCampaignNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CAMPAIGN_NOT_FOUND", "campaign not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load campaign")
		return
	}

	if req.Status != "" && !entity.ValidCampaignStatus(req.Status) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status must be DRAFT, ACTIVE, PAUSED or ARCHIVED")
		return
	}

	if req.Status == entity.CampaignActive && campaign.Status != entity.CampaignActive {
		templates, err := h.TemplateRepo.ListByCampaign(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load templates")
			return
		}
		if len(templates) == 0 {
			writeErrorResponse(w, http.StatusUnprocessableEntity, "NO_TEMPLATES", "campaign needs at least one step template to activate")
			return
		}
	}

	campaign.Name = req.Name
	campaign.Description = req.Description
	if req.Status != "" {
		campaign.Status = req.Status
	}

	if err := campaign.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.CampaignRepo.Update(r.Context(), campaign); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update campaign")
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// Delete (DELETE /campaigns/{id})
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.CampaignRepo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrCampaignNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CAMPAIGN_NOT_FOUND", "campaign not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete campaign")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats (GET /campaigns/{id}/stats) returns the aggregate the dashboard
// polls: counts per status, contacted today and due today.
func (h *CampaignHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.CampaignRepo.FindByID(r.Context(), id); err != nil {
		if err == entity.ErrCampaignNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CAMPAIGN_NOT_FOUND", "campaign not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load campaign")
		return
	}

	stats, err := h.ProspectRepo.Stats(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

type CreateTemplateRequest struct {
	Step    int    `json:"step"`
	Channel string `json:"channel"`
	Subject string `json:"subject"`
	Body    string `json:"body"`

	// Omitted means "use the default cadence for this step".
	WaitDays *int `json:"wait_days"`
}

// CreateTemplate (POST /campaigns/{id}/templates). One template per step;
// a duplicate step is rejected.
func (h *CampaignHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	if _, err := h.CampaignRepo.FindByID(r.Context(), campaignID); err != nil {
		if err == entity.ErrCampaignNotFound {
			writeErrorResponse(w, http.StatusNotFound, "CAMPAIGN_NOT_FOUND", "campaign not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load campaign")
		return
	}

	waitDays := -1
	if req.WaitDays != nil {
		waitDays = *req.WaitDays
	}

	template, err := entity.NewStepTemplate(campaignID, req.Step, req.Channel, req.Subject, req.Body, waitDays)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.TemplateRepo.Create(r.Context(), template); err != nil {
		if err == entity.ErrDuplicateTemplate {
			writeErrorResponse(w, http.StatusConflict, "DUPLICATE_STEP", err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create template")
		return
	}

	writeJSON(w, http.StatusCreated, template)
}

// ListTemplates (GET /campaigns/{id}/templates), ordered by step.
func (h *CampaignHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	templates, err := h.TemplateRepo.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list templates")
		return
	}

	writeJSON(w, http.StatusOK, templates)
}

type UpdateTemplateRequest struct {
	Channel  string `json:"channel"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	WaitDays int    `json:"wait_days"`
}

// UpdateTemplate (PUT /templates/{id}). The step itself is fixed; delete
// and recreate to move a message to another step.
func (h *CampaignHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	template, err := h.TemplateRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrTemplateNotFound {
			writeErrorResponse(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load template")
		return
	}

	template.Channel = req.Channel
	template.Subject = req.Subject
	template.Body = req.Body
	template.WaitDays = req.WaitDays

	if err := template.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.TemplateRepo.Update(r.Context(), template); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update template")
		return
	}

	writeJSON(w, http.StatusOK, template)
}

// DeleteTemplate (DELETE /templates/{id})
func (h *CampaignHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.TemplateRepo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrTemplateNotFound {
			writeErrorResponse(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
