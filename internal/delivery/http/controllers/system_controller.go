package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"usermanagement/internal/delivery/http/helpers"
)

const healthCheckTimeout = 2 * time.Second

const acceptedPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Invitation accepted</title>
</head>
<body>
    <h1 style="text-align: center; color: green;">Invitation successfully accepted!</h1>
</body>
</html>
`

// Pinger reports whether a backing dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the data payload of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

type SystemController struct {
	Logger *slog.Logger
	DB     Pinger
}

func NewSystemController(logger *slog.Logger, db Pinger) *SystemController {
	return &SystemController{Logger: logger, DB: db}
}

// Accepted serves the landing page a successful redemption redirects to by default.
func (c *SystemController) Accepted(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(acceptedPage))
}

// Health godoc
// @Summary Health check
// @Description Reports whether the service can reach its database.
// @Tags system
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /healthz [get]
func (c *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "database unavailable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
