package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-doris/pkg/middleware/logger"
	httpx "github.com/joeydtaylor/steeze-doris/pkg/transport/httpx"
)

type BuildDeps struct {
	LogMW    *logger.Middleware
	Metrics  http.Handler
	Router   httpx.Router
	Registry *Registry
}
