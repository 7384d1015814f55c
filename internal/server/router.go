package server

import (
	"context"
	"net/http"

	"formulakb/internal/handlers"
	applog "formulakb/internal/log"
)

func newRouter(metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
		applog.Debug(context.Background(), "route registered", "path", "/metrics")
	}
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/logout", handlers.Logout)
	mux.HandleFunc("/preferences/theme", handlers.UpdatePreferences)
	applog.Debug(context.Background(), "route registered", "path", "/login")
	mux.HandleFunc("/diagnostics", handlers.Diagnostics)
	applog.Debug(context.Background(), "route registered", "path", "/diagnostics")
	mux.Handle("/formulations/new", handlers.RequireEditor(http.HandlerFunc(handlers.FormulationForm)))
	mux.Handle("/ingredients/bulk", handlers.RequireEditor(http.HandlerFunc(handlers.BulkIngredients)))
	applog.Debug(context.Background(), "route registered", "path", "/formulations/new", "protected", true)
	applog.Debug(context.Background(), "route registered", "path", "/ingredients/bulk", "protected", true)
	mux.HandleFunc("/", handlers.Dashboard)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
