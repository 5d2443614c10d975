package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the system *zap.Logger (system.log under LOG_DIR) and the
// access-log middleware.
var Module = fx.Options(
	fx.Provide(
		func() *Middleware { return &Middleware{} },
		func() *zap.Logger { return NewLog("system.log") },
	),
)
