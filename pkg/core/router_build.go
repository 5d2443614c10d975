package core

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-doris/pkg/codec"
	hmetrics "github.com/joeydtaylor/steeze-doris/pkg/middleware/metrics"
)

// BuildRouter mounts the read-only introspection surface:
//
//	GET /ping                       heartbeat
//	GET /metrics                    prometheus
//	GET /sinks                      sink names
//	GET /sinks/{name}/options       execution options snapshot
//	GET /sinks/{name}/warnings      values the sink cannot run with
func BuildRouter(d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware())
	}
	r.Use(hmetrics.Collect())

	if d.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}
	r.Get("/sinks", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeValue(w, map[string][]string{"sinks": d.Registry.Names()}, http.StatusOK)
	}))
	r.Get("/sinks/{name}/options", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		o, ok := d.Registry.Get(chi.URLParam(req, "name"))
		if !ok {
			http.Error(w, "sink not found", http.StatusNotFound)
			return
		}
		writeValue(w, o, http.StatusOK)
	}))
	r.Get("/sinks/{name}/warnings", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		o, ok := d.Registry.Get(chi.URLParam(req, "name"))
		if !ok {
			http.Error(w, "sink not found", http.StatusNotFound)
			return
		}
		warn := o.Warnings()
		if warn == nil {
			warn = []string{}
		}
		writeValue(w, map[string][]string{"warnings": warn}, http.StatusOK)
	}))
	return r.Mux()
}

func writeValue(w http.ResponseWriter, v any, status int) {
	b, err := codec.JSONStrict.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, b, status)
}
