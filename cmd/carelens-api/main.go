// @title         Carelens API
// @version       0.1.0
// @description   SDOH risk detection and evidence synthesis endpoints

package main

import (
	"context"

	"carelens/internal/platform/config"
	"carelens/internal/platform/logger"
	phttp "carelens/internal/platform/net/http"
	"carelens/internal/platform/store"

	"carelens/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CARELENS_API_*)
	root := config.New()
	apiCfg := root.Prefix("CARELENS_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// open the platform store when postgres is configured; detection
	// endpoints work without it, screenings persistence does not
	var st *store.Store
	if pgURL := pgCfg.MayString("DBURL", ""); pgURL != "" {
		var err error
		st, err = store.Open(
			context.Background(),
			store.Config{
				PG: store.PGConfig{
					Enabled:     true,
					URL:         pgURL,
					MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
					LogSQL:      pgCfg.MayBool("LOG_SQL", true),
				},
			},
			store.WithLogger(*logger.Get()),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	} else {
		l.Info().Msg("SERVICE_PGSQL_DBURL not set, screenings persistence disabled")
	}

	// http server (reads CARELENS_API_PORT / CARELENS_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
