// middleware/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Collect produces the HTTP middleware that records the counters/histogram.
func Collect() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()

			defer func() {
				if isSkipPath(r) {
					return
				}
				code := strconv.Itoa(ww.Status())
				totalHttpRequestsToUri.WithLabelValues(code, routePattern(r), r.Method).Inc()
				totalHttpRequests.WithLabelValues(code, r.Method).Inc()
				responseTime.Observe(time.Since(startTime).Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// ObserveOptions publishes every numeric and boolean option of sink.
// Strings and properties are skipped.
func ObserveOptions(sink string, o execution.Options) {
	for _, f := range o.Fields() {
		var v float64
		switch x := f.Value.(type) {
		case int:
			v = float64(x)
		case int64:
			v = float64(x)
		case bool:
			if x {
				v = 1
			}
		default:
			continue
		}
		optionValue.WithLabelValues(sink, f.Key).Set(v)
	}
}

// ObserveBuildError counts a rejected option by error kind. nil is ignored.
func ObserveBuildError(err error) {
	if err == nil {
		return
	}
	buildFailures.WithLabelValues(execution.KindOf(err)).Inc()
}

func NewPromHttpHandler() http.Handler { return promhttp.Handler() }
func ProvideMetrics() http.Handler     { return NewPromHttpHandler() }

var Module = fx.Options(
	fx.Provide(fx.Annotate(ProvideMetrics, fx.ResultTags(`name:"metrics"`))),
)
