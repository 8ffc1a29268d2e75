package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/api/response"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status           string `json:"status"`
	VnstockAvailable bool   `json:"vnstock_available"`
}

// Health reports that the process is up. The upstream provider is not probed;
// provider failures surface per request as 502.
//
// Endpoint: GET /health
// Response: 200 OK with HealthResponse
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:           "healthy",
		VnstockAvailable: true,
	})
}
