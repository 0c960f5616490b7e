package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type systemHandler struct {
	responder   Responder
	startupTime time.Time
	ping        func(context.Context) error
}

func newSystemHandler(startupTime time.Time, ping func(context.Context) error) systemHandler {
	return systemHandler{
		responder:   NewResponder(log.With().Str("handlerName", "systemHandler").Logger()),
		startupTime: startupTime,
		ping:        ping,
	}
}

// HealthResponse reports liveness and database reachability
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// health reports liveness and whether the database answers a ping
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse "Database unreachable"
// @Router /health [get]
func (h systemHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		}

		if h.ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.ping(ctx); err != nil {
				response.Status = "degraded"
				response.Database = err.Error()
				h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, response)
				return
			}
		}
		h.responder.WriteJSON(w, response)
	}
}

// verifyAdminKey answers 204 once the admin gate let the request through, so
// the client can check a key before storing it.
// @Summary Verify admin key
// @Tags System
// @Param X-Admin-Key header string true "Admin key"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/admin/verify [get]
func (h systemHandler) verifyAdminKey() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteNoContent(w)
	}
}
