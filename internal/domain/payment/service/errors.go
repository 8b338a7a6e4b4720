package service

import "net/http"

// Error codes surfaced by the payment endpoints.
const (
	CodeMissingParameters   = "MISSING_PARAMETERS"
	CodePromptNotFound      = "PROMPT_NOT_FOUND"
	CodePromptQueryError    = "PROMPT_QUERY_ERROR"
	CodePromptNotApproved   = "PROMPT_NOT_APPROVED"
	CodePriceMismatch       = "PRICE_MISMATCH"
	CodeAlreadyPurchased    = "ALREADY_PURCHASED"
	CodePurchaseCheckError  = "PURCHASE_CHECK_ERROR"
	CodePreparationSaveErr  = "PREPARATION_SAVE_ERROR"
	CodePreparationNotFound = "PREPARATION_NOT_FOUND"
	CodeAmountMismatch      = "AMOUNT_MISMATCH"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// PaymentError is the single tagged error shape both endpoints use
// internally; handlers render it into each endpoint's wire format.
// Every branch of the handshake produces either a result or one of
// these, never a bare error.
type PaymentError struct {
	Status  int                    // HTTP status to respond with
	Code    string                 // stable machine-readable code
	Message string                 // human-readable description
	Details string                 // optional diagnostic detail
	Extra   map[string]interface{} // branch-specific fields (expected/actual, purchaseDate)
}

func (e *PaymentError) Error() string {
	return e.Code + ": " + e.Message
}

func missingParameters(details string) *PaymentError {
	return &PaymentError{
		Status:  http.StatusBadRequest,
		Code:    CodeMissingParameters,
		Message: "required parameters are missing",
		Details: details,
	}
}

func internalError(details string) *PaymentError {
	return &PaymentError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalServerError,
		Message: "an internal server error occurred",
		Details: details,
	}
}
