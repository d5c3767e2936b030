package web

import (
	"net/http"

	"github.com/minoru856-crypto/ai-shigeki/internal/core"
)

type healthResponse struct {
	Status  string                   `json:"status"`
	Imports core.ImportLimiterStatus `json:"imports"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Imports: s.service.ImportLimiterStatus(),
	})
}
