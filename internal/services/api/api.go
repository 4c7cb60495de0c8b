// Package api provides the HTTP API for the application
package api

import (
	"carelens/internal/core/catalog"
	"carelens/internal/platform/config"
	perrs "carelens/internal/platform/errors"
	"carelens/internal/platform/logger"
	phttp "carelens/internal/platform/net/http"
	"carelens/internal/platform/store"

	"carelens/internal/modkit"
	"carelens/internal/modkit/httpkit"
	"carelens/internal/modkit/module"
	"carelens/internal/modkit/swaggerkit"

	metamod "carelens/internal/services/api/meta/module"
	detectdom "carelens/internal/services/detect/domain"
	detectmod "carelens/internal/services/detect/module"
	screeningsdom "carelens/internal/services/screenings/domain"
	screeningsmod "carelens/internal/services/screenings/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	cat, err := catalog.Load()
	if err != nil {
		panic(err)
	}

	// Detection engine first; screenings depends on its runner port
	detect := detectmod.New(deps)
	runner := module.MustPortsOf[detectdom.RunnerPort](detect)

	mods := []module.Module{
		metamod.New(deps, cat),
		detect,
	}

	// Screenings persistence is optional; without Postgres the detection
	// endpoints still serve
	if deps.PG != nil {
		opts := []modkit.Option{
			modkit.WithPorts(screeningsdom.Ports{Detect: runner}),
		}
		// shared token auth guards member history when configured
		if token := opt.Config.MayString("AUTH_TOKEN", ""); token != "" {
			port := httpkit.NewPortFunc(func(tok string) (string, string, error) {
				if tok != token {
					return "", "", perrs.Unauthorizedf("invalid bearer token")
				}
				return "api", "", nil
			})
			opts = append(opts, modkit.WithMiddlewares(httpkit.Auth(port)))
		}
		mods = append(mods, screeningsmod.New(deps, opts...))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
