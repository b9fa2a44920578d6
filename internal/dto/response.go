package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResponse struct {
	BasicResponse
	Errors []FieldError `json:"errors"`
}

func NewValidationResponse(details string, errors []FieldError) ValidationResponse {
	return ValidationResponse{
		BasicResponse: NewBasicResponse(false, details),
		Errors:        errors,
	}
}
