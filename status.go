package main

import (
	"encoding/json"
	"net/http"

	"music-bot-go/stats"
)

// getHealthStatus reports liveness plus the state of the shared resources.
func (a *App) getHealthStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          "ok",
		"uptime":          stats.Get().Uptime().String(),
		"active_sessions": a.sessions.Len(),
		"search_sources":  a.engine.BreakerStates(),
	})
}

func (a *App) getStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats.Get().Snapshot())
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"help": "Status surface for the music bot. Endpoints: /health, /stats. The bot itself lives on Telegram.",
	})
}
