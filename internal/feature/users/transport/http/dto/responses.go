package dto

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
