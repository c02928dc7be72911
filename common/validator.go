package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes the request body into payload and runs struct
// validation. On failure it writes a 400 envelope and returns false.
func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		NewAppError(http.StatusBadRequest, "Invalid request body", err).Send(w, r)
		return false
	}

	if appErr := ValidateStruct(payload); appErr != nil {
		appErr.Send(w, r)
		return false
	}
	return true
}

// ValidateStruct validates an already-decoded payload. Used for multipart
// requests where the JSON part is decoded by the handler.
func ValidateStruct(payload interface{}) *AppError {
	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		return NewAppError(http.StatusBadRequest, "Validation failed: "+validationErrors.Error(), nil)
	}
	return nil
}
