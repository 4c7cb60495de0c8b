// Package module wires the detection engine into the API using modkit
package module

import (
	"net/http"

	"carelens/internal/adapters/inference"
	"carelens/internal/core/catalog"
	modkit "carelens/internal/modkit"
	"carelens/internal/modkit/httpkit"
	str "carelens/internal/platform/strings"
	detecthttp "carelens/internal/services/detect/http"
	"carelens/internal/services/detect/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Service
}

// New constructs a detect module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("detect"), modkit.WithPrefix("/detect")}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	cat, err := catalog.Load()
	if err != nil {
		panic(err)
	}

	// Nil when no API key is configured; the service then runs rule-based only
	infer := inference.New(inference.Config{
		APIKey:  cfg.InferenceAPIKey,
		Model:   cfg.InferenceModel,
		BaseURL: cfg.InferenceBaseURL,
		Timeout: cfg.InferenceTimeout,
	})

	svc := service.New(cat, infer, service.Config{
		Workers: cfg.Workers,
		Policy:  cfg.TieBreakPolicy(),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		detecthttp.Register(r, m.svc)
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

// Ports exposes the runner so sibling modules can run detections in-process
func (m *Module) Ports() any { return m.svc }
