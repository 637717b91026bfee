package server

import "github.com/rezonia/facturx/internal/model"

// ParseResponse is the response for the parse endpoint
type ParseResponse struct {
	Invoice  *model.Invoice    `json:"invoice"`
	Profile  string            `json:"profile"`
	Warnings []model.Violation `json:"warnings,omitempty"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid    bool              `json:"valid"`
	Profile  string            `json:"profile,omitempty"`
	Errors   []model.Violation `json:"errors,omitempty"`
	Warnings []model.Violation `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
