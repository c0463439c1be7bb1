package handler

import (
	"net/http"
)

// HealthResponse is the fixed liveness payload served at the root path.
// Keep-alive pings hit this endpoint.
type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

func Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{
		Success: true,
		Status:  "ok",
	})
}
