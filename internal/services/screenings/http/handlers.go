// Package http provides http transport for screenings
package http

import (
	stdhttp "net/http"

	"carelens/internal/modkit/httpkit"
	"carelens/internal/services/screenings/domain"
	svc "carelens/internal/services/screenings/service"
)

// Register mounts screenings endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RunInput](r, "/", h.run)
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
}

type handlers struct{ svc svc.Service }

// @Summary Run a screening and record the outcome
// @Tags Screenings
// @Accept json
// @Produce json
// @Param payload body domain.RunInput true "Screening request"
// @Success 200 {object} domain.RunOutput "ok"
// @Router /screenings [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	return h.svc.Run(r.Context(), in)
}

// @Summary List recent screenings
// @Tags Screenings
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Filter"
// @Success 200 {array} domain.Screening "ok"
// @Router /screenings/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	return h.svc.Recent(r.Context(), in)
}
