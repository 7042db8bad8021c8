package dto

import "time"

// ErrorResponse is the JSON envelope returned by every failing endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"field not found"`
	ErrorDetails string    `json:"error,omitempty" example:"not found: field Foo in FIX.4.4"`
	Timestamp    time.Time `json:"timestamp" example:"2025-09-11T10:00:00Z"`
}

// Error implements the error interface so the envelope can travel through
// gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an envelope stamped with the current UTC time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
