package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/simulation"

	"github.com/go-playground/validator/v10"
)

// Error codes returned in the error envelope.
const (
	CodeMissingInput     = "MISSING_INPUT"
	CodeMissingKey       = "MISSING_KEY"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeComputationError = "COMPUTATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

// apiError pairs an HTTP status with the error envelope.
type apiError struct {
	Status int
	Body   models.ErrorResponse
}

func newAPIError(status int, code, message string) *apiError {
	return &apiError{Status: status, Body: models.NewErrorResponse(code, message)}
}

// requestError classifies a decode/validation failure. A missing top-level
// section wins over a missing nested key, whatever the field order.
func requestError(err error) *apiError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newAPIError(http.StatusBadRequest, CodeInvalidInput, "Invalid input data: "+err.Error())
	}

	var nested validator.FieldError
	for _, fe := range verrs {
		if !isMissing(fe) {
			continue
		}
		// "SimulateRequest.solar_inputs" is top-level, "SimulateRequest.solar_inputs.area_pv" is not.
		if strings.Count(fe.Namespace(), ".") <= 1 {
			return newAPIError(http.StatusBadRequest, CodeMissingInput, "Missing required input data")
		}
		if nested == nil {
			nested = fe
		}
	}
	if nested != nil {
		return newAPIError(http.StatusBadRequest, CodeMissingKey, fmt.Sprintf("Missing key in input data: '%s'", nested.Field()))
	}
	return newAPIError(http.StatusBadRequest, CodeInvalidInput, "Invalid input data: "+verrs[0].Error())
}

func isMissing(fe validator.FieldError) bool {
	switch fe.Tag() {
	case "required", "required_without":
		return true
	}
	return false
}

// runError classifies an engine failure: bad inputs are the caller's fault,
// anything else is a computation failure.
func runError(err error) *apiError {
	if simulation.IsInputError(err) {
		return newAPIError(http.StatusBadRequest, CodeInvalidInput, "Invalid input data: "+err.Error())
	}
	return newAPIError(http.StatusInternalServerError, CodeComputationError, "An unexpected error occurred: "+err.Error())
}
