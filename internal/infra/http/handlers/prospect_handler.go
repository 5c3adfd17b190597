package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/http/middleware"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/usecase"
)

type ProspectHandler struct {
	ProspectRepo  entity.ProspectRepositoryInterface
	MarkSentUC    *usecase.MarkSentUseCase
	MarkRepliedUC *usecase.MarkRepliedUseCase
	ImportUC      *usecase.ImportProspectsUseCase
	EnrichUC      *usecase.EnrichProspectUseCase
}

func NewProspectHandler(
	prospectRepo entity.ProspectRepositoryInterface,
	markSentUC *usecase.MarkSentUseCase,
	markRepliedUC *usecase.MarkRepliedUseCase,
	importUC *usecase.ImportProspectsUseCase,
	enrichUC *usecase.EnrichProspectUseCase,
) *ProspectHandler {
	return &ProspectHandler{
		ProspectRepo:  prospectRepo,
		MarkSentUC:    markSentUC,
		MarkRepliedUC: markRepliedUC,
		ImportUC:      importUC,
		EnrichUC:      enrichUC,
	}
}

// Create (POST /prospects) adds a single prospect by hand. It enters the
// cadence at QUEUED, step 1.
func (h *ProspectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateProspectInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	if validationErrors := usecase.ValidateCreateProspectInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", strings.TrimSuffix(errMsg, ", "))
		return
	}

	prospect, err := entity.NewProspect(
		input.CampaignID,
		input.BusinessName,
		input.ContactName,
		input.Email,
		input.Phone,
		input.Website,
		input.City,
		input.Niche,
	)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	prospect.Notes = input.Notes

	if err := h.ProspectRepo.Create(r.Context(), prospect); err != nil {
		if err == entity.ErrDuplicateProspect {
			writeErrorResponse(w, http.StatusConflict, "DUPLICATE_PROSPECT", err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create prospect")
		return
	}

	writeJSON(w, http.StatusCreated, prospect)
}

// Get (GET /prospects/{id})
func (h *ProspectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	prospect, err := h.ProspectRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrProspectNotFound {
			writeErrorResponse(w, http.StatusNotFound, "PROSPECT_NOT_FOUND", "prospect not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load prospect")
		return
	}

	writeJSON(w, http.StatusOK, prospect)
}

// List (GET /prospects?campaign_id=&status=&city=&niche=)
func (h *ProspectHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entity.ProspectFilter{
		CampaignID: r.URL.Query().Get("campaign_id"),
		Status:     r.URL.Query().Get("status"),
		City:       r.URL.Query().Get("city"),
		Niche:      r.URL.Query().Get("niche"),
	}

	prospects, err := h.ProspectRepo.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list prospects")
		return
	}

	writeJSON(w, http.StatusOK, prospects)
}

// TodayQueue (GET /prospects/today?campaign_id=) lists everyone due for a
// touch today: fresh QUEUED prospects plus IN_SEQUENCE ones whose next
// action date has arrived.
func (h *ProspectHandler) TodayQueue(w http.ResponseWriter, r *http.Request) {
	campaignID := r.URL.Query().Get("campaign_id")

	prospects, err := h.ProspectRepo.TodayQueue(r.Context(), campaignID)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load today queue")
		return
	}

	writeJSON(w, http.StatusOK, prospects)
}

type UpdateProspectRequest struct {
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	City         string `json:"city"`
	Niche        string `json:"niche"`
	Notes        string `json:"notes"`
}

// Update (PUT /prospects/{id}) replaces contact metadata and notes.
// Status and step never come from the client; the cadence owns them.
func (h *ProspectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	prospect, err := h.ProspectRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == entity.ErrProspectNotFound {
			writeErrorResponse(w, http.StatusNotFound, "PROSPECT_NOT_FOUND", "prospect not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load prospect")
		return
	}

	prospect.BusinessName = req.BusinessName
	prospect.ContactName = req.ContactName
	prospect.Email = req.Email
	prospect.Phone = req.Phone
	prospect.Website = req.Website
	prospect.City = req.City
	prospect.Niche = req.Niche
	prospect.Notes = req.Notes

	if err := prospect.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.ProspectRepo.Update(r.Context(), prospect); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update prospect")
		return
	}

	writeJSON(w, http.StatusOK, prospect)
}

// Delete (DELETE /prospects/{id})
func (h *ProspectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ProspectRepo.Delete(r.Context(), id); err != nil {
		if err == entity.ErrProspectNotFound {
			writeErrorResponse(w, http.StatusNotFound, "PROSPECT_NOT_FOUND", "prospect not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete prospect")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkSent (POST /prospects/{id}/mark-sent) records that the current
// cadence step went out and advances the sequence.
func (h *ProspectHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	output, err := h.MarkSentUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOutreachSend(output.Channel)
	writeJSON(w, http.StatusOK, output)
}

// MarkReplied (POST /prospects/{id}/mark-replied) captures the prospect's
// response and optionally converts it into a contact plus deal.
func (h *ProspectHandler) MarkReplied(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.MarkRepliedInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	output, err := h.MarkRepliedUC.Execute(r.Context(), id, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordReply(input.ResponseType)
	if output.Status == entity.StatusConverted {
		middleware.RecordConversion()
	}

	writeJSON(w, http.StatusOK, output)
}

// Enrich (POST /prospects/{id}/enrich) scrapes the prospect's website for
// a title and description on demand.
func (h *ProspectHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	prospect, err := h.EnrichUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prospect)
}

// Import (POST /campaigns/{id}/import) ingests a CSV of prospects into a
// campaign. The multipart field is named "file"; pass enrich=true to kick
// off website enrichment in the background.
func (h *ProspectHandler) Import(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "expected multipart form data")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FILE", "csv file is required")
		return
	}
	defer file.Close()

	output, err := h.ImportUC.Execute(r.Context(), usecase.ImportProspectsInput{
		CampaignID: campaignID,
		File:       file,
		Enrich:     r.FormValue("enrich") == "true",
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
