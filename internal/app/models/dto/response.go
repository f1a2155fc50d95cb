package dto

// MessageResponse represents a plain success message for API endpoints
type MessageResponse struct {
	Message string `json:"message" example:"Student updated successfully"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"sqlite"`
}
