package dto

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
