// Package http provides http transport for detection
package http

import (
	stdhttp "net/http"

	"voicejury/internal/modkit/httpkit"
	"voicejury/internal/services/api/detection/domain"
	svc "voicejury/internal/services/api/detection/service"
)

// maxBodyBytes caps the request body; base64 inflates audio by a third
// so this admits clips of roughly 24 MB on disk
const maxBodyBytes = 32 << 20

// Register mounts detection endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSONLimit[domain.DetectInput](r, "/voice-detection", maxBodyBytes, h.detect)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /detection/voice-detection Detection detectionVoice
// @Summary Classify a voice clip as AI generated or human
// @Tags Detection
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Clip"
// @Success 200 {object} domain.DetectResult "ok"
// @Router /detection/voice-detection [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Detect(r.Context(), in)
}
