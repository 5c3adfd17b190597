package usecase

// Stable error codes returned to API clients.
const (
	CodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	CodeSequenceComplete = "SEQUENCE_COMPLETE"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeProspectNotFound = "PROSPECT_NOT_FOUND"
	CodeCampaignNotFound = "CAMPAIGN_NOT_FOUND"
	CodeEmptyFile        = "EMPTY_FILE"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func NewTechnicalError(code, message string) *TechnicalError {
	return &TechnicalError{Code: code, Message: message}
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
