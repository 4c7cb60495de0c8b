// Package module wires screenings into the API using modkit
package module

import (
	"net/http"

	modkit "carelens/internal/modkit"
	"carelens/internal/modkit/httpkit"
	str "carelens/internal/platform/strings"
	"carelens/internal/services/screenings/domain"
	screeningshttp "carelens/internal/services/screenings/http"
	screeningsrepo "carelens/internal/services/screenings/repo"
	screeningssvc "carelens/internal/services/screenings/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc screeningssvc.Service
}

// New constructs a screenings module. Callers inject the detect runner via
// modkit.WithPorts(screenings/domain.Ports); Postgres comes from deps.PG
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("screenings"), modkit.WithPrefix("/screenings")}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("screenings module: expected WithPorts(screenings/domain.Ports)")
	}
	if ports.Detect == nil {
		panic("screenings module: Ports missing Detect runner")
	}

	svc := screeningssvc.New(deps.PG, screeningsrepo.NewPG(), ports.Detect)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptScreeningsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		screeningshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
