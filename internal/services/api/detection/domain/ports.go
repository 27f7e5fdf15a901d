package domain

import "context"

// ServicePort defines the service contract for detection
type ServicePort interface {
	Detect(ctx context.Context, in DetectInput) (DetectResult, error)
}
