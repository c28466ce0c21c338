package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"usermanagement/internal/delivery/http/controllers"
	"usermanagement/internal/delivery/http/middleware"
	"usermanagement/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	invitationController *controllers.InvitationController,
	systemController *controllers.SystemController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Invitations
	mux.HandleFunc("POST /invites", auth(invitationController.CreateInvitation))
	mux.HandleFunc("GET /invites", auth(invitationController.ListInvitations))
	mux.HandleFunc("GET /invites/{code}", invitationController.GetInvitationByCode)
	mux.HandleFunc("PUT /invites/{id}", auth(invitationController.UpdateInvitation))
	mux.HandleFunc("DELETE /invites/{id}", auth(invitationController.DeleteInvitation))
	mux.HandleFunc("POST /invites/resend/{id}", auth(invitationController.ResendInvitation))

	// Redemption
	mux.HandleFunc("GET /accept", invitationController.AcceptInvitation)
	mux.HandleFunc("GET /accepted", systemController.Accepted)

	// Operations
	mux.HandleFunc("GET /healthz", systemController.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
