package module

import (
	"context"

	detectiondom "voicejury/internal/services/api/detection/domain"
	detectionsvc "voicejury/internal/services/api/detection/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptDetectionPort adapts the detection service to the domain port interface
type adaptDetectionPort struct{ svc detectionsvc.Service }

// Detect implements the domain ServicePort interface
func (a adaptDetectionPort) Detect(ctx context.Context, in detectiondom.DetectInput) (detectiondom.DetectResult, error) {
	return a.svc.Detect(ctx, in)
}
