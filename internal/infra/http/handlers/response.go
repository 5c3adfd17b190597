package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps the error types coming out of the usecase layer
// onto HTTP statuses. Domain errors keep their code on the wire so the
// client can branch on it.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		writeErrorResponse(w, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	if techErr, ok := err.(*usecase.TechnicalError); ok {
		writeErrorResponse(w, http.StatusInternalServerError, techErr.Code, techErr.Message)
		return
	}

	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeProspectNotFound, usecase.CodeCampaignNotFound:
		return http.StatusNotFound
	case usecase.CodeInvalidStatus, usecase.CodeSequenceComplete:
		return http.StatusConflict
	case usecase.CodeTemplateNotFound:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
