// Package http provides http transport for detect
package http

import (
	stdhttp "net/http"

	"carelens/internal/modkit/httpkit"
	"carelens/internal/services/detect/domain"
)

// Register mounts detect endpoints on the given router
func Register(r httpkit.Router, s domain.RunnerPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.DetectInput](r, "/", h.detect)
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.detectBatch)
}

type handlers struct{ svc domain.RunnerPort }

// @Summary Analyze one encounter transcript for SDOH risks
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Encounter transcript"
// @Success 200 {object} domain.DetectionResult "ok"
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Detect(r.Context(), in)
}

// @Summary Analyze a batch of encounter transcripts
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Encounters"
// @Success 200 {object} domain.BatchResult "ok"
// @Router /detect/batch [post]
func (h *handlers) detectBatch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.DetectBatch(r.Context(), in)
}
