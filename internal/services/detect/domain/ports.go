package domain

import "context"

// RunnerPort is the external port for the detection engine. Other modules
// (screenings) depend on this, not on the service implementation
type RunnerPort interface {
	Detect(ctx context.Context, in DetectInput) (*DetectionResult, error)
	DetectBatch(ctx context.Context, in BatchInput) (*BatchResult, error)
}
