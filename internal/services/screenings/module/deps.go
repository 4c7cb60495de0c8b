package module

import (
	"context"

	screeningsdom "carelens/internal/services/screenings/domain"
	screeningssvc "carelens/internal/services/screenings/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptScreeningsPort adapts the screenings service to the domain port interface
type adaptScreeningsPort struct{ svc screeningssvc.Service }

// Run implements the domain ServicePort interface
func (a adaptScreeningsPort) Run(ctx context.Context, in screeningsdom.RunInput) (*screeningsdom.RunOutput, error) {
	return a.svc.Run(ctx, in)
}

// Recent implements the domain ServicePort interface
func (a adaptScreeningsPort) Recent(ctx context.Context, in screeningsdom.RecentInput) ([]screeningsdom.Screening, error) {
	return a.svc.Recent(ctx, in)
}
