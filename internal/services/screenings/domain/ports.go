package domain

import (
	"context"

	detectdom "carelens/internal/services/detect/domain"
)

// ServicePort defines the service contract for screenings
type ServicePort interface {
	Run(ctx context.Context, in RunInput) (*RunOutput, error)
	Recent(ctx context.Context, in RecentInput) ([]Screening, error)
}

// Ports are dependencies injected into the screenings module
type Ports struct {
	Detect detectdom.RunnerPort // required
}
