// @title         Voicejury API
// @version       0.1.0
// @description   AI generated vs human voice detection over MP3 clips

package main

import (
	"context"

	"voicejury/internal/core/engine"
	"voicejury/internal/platform/config"
	"voicejury/internal/platform/logger"
	phttp "voicejury/internal/platform/net/http"

	"voicejury/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// the detection engine is stateless, one instance serves all requests
	eng := engine.New(*logger.Named("engine"))
	if err := eng.SelfCheck(); err != nil {
		l.Panic().Err(err).Msg("engine self check failed")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         l,
			Engine:         eng,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
