package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/minoru856-crypto/ai-shigeki/internal/web/templates"
)

const dashboardImportLimit = 10

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employees, err := s.service.ListEmployees(ctx)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	imports, err := s.service.ListImports(ctx, dashboardImportLimit)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	templ.Handler(templates.Dashboard(employees, imports)).ServeHTTP(w, r)
}
