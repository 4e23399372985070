package endpoints

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/modelgate/modelgate/pkg/server"
)

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoints registers the status and metrics endpoints
// (no auth required).
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s)).Methods("GET")
	s.Router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

func handleStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("MODELGATE_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		if s.DB != nil {
			sqlDB, err := s.DB.DB()
			if err == nil {
				err = sqlDB.Ping()
			}
			if err != nil {
				respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
					Status:  "error",
					Version: version,
				})
				return
			}
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: version,
		})
	}
}
