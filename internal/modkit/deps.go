// Package modkit provides module wiring and core deps
package modkit

import (
	"voicejury/internal/core/engine"
	"voicejury/internal/platform/config"
	"voicejury/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	Engine *engine.Engine
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the engine when it is optional
func (d Deps) ZeroOK() bool { return true }
