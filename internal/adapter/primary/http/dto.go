package http

// AcceptedResponse is returned once submitted events have been handed to
// the forwarder.
type AcceptedResponse struct {
	Accepted int `json:"accepted"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
