package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status   string `json:"status"`
	Commands int    `json:"commands"`
}

// Registry reports how many commands are available to the UI.
type Registry interface {
	Len() int
}

// Handler returns a plain HTTP handler for the health check endpoint.
func Handler(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := Response{Status: "healthy"}
		if registry != nil {
			resp.Commands = registry.Len()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
