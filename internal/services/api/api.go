// Package api provides the HTTP API for the application
package api

import (
	"voicejury/internal/core/engine"
	"voicejury/internal/platform/config"
	"voicejury/internal/platform/logger"
	phttp "voicejury/internal/platform/net/http"

	"voicejury/internal/modkit"
	"voicejury/internal/modkit/httpkit"
	"voicejury/internal/modkit/module"
	"voicejury/internal/modkit/swaggerkit"

	detectionmod "voicejury/internal/services/api/detection/module"
	"voicejury/internal/services/api/keyring"
	metamod "voicejury/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Engine         *engine.Engine
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:    opt.Config,
		Engine: opt.Engine,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// detection endpoints sit behind api key auth; meta stays open for probes
	ring := keyring.FromConfig(opt.Config)
	if ring.Empty() {
		logger.Named("api").Warn().Msg("no api keys configured, detection endpoints will reject all callers")
	}
	authPort := httpkit.NewPortFunc(ring.Lookup)

	mods := []module.Module{
		metamod.New(deps),
		detectionmod.New(deps, modkit.WithMiddlewares(httpkit.Auth(authPort))),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
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
