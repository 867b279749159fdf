package main

import (
	"github.com/gorilla/mux"
)

// setupRoutes configures the status HTTP surface
func setupRoutes(router *mux.Router, app *App) {
	router.HandleFunc("/health", app.getHealthStatus)
	router.HandleFunc("/stats", app.getStats)
	router.HandleFunc("/", helpHandler)
}
