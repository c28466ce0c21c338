package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"usermanagement/internal/delivery/http/helpers"
	"usermanagement/internal/delivery/http/middleware"
	"usermanagement/internal/domain"
)

const (
	msgInvitationNotFound = "invitation not found"
	msgInvalidInvitation  = "invalid invitation"
	msgResent             = "Invitation resent successfully."
)

// CreateInvitationRequest is the request body for POST /invites.
type CreateInvitationRequest struct {
	InviteeEmail string `json:"invitee_email"`
	Nickname     string `json:"nickname"`
}

// Validate implements Validator. Format rules are enforced by the service.
func (c CreateInvitationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.InviteeEmail) == "" {
		errs = append(errs, "invitee_email is required")
	}
	if strings.TrimSpace(c.Nickname) == "" {
		errs = append(errs, "nickname is required")
	}
	return errs
}

// UpdateInvitationRequest is the request body for PUT /invites/{id}. Omitted fields are unchanged.
type UpdateInvitationRequest struct {
	InviteeEmail *string `json:"invitee_email"`
}

// InvitationSuccessResponse is the success response envelope carrying one invitation.
type InvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// InvitationListSuccessResponse is the success response envelope for GET /invites.
type InvitationListSuccessResponse struct {
	Data  helpers.ListPage[*domain.Invitation] `json:"data"`
	Error *helpers.APIError                    `json:"error"`
}

// MessageSuccessResponse is the success response envelope for endpoints that return a message.
type MessageSuccessResponse struct {
	Data  helpers.MessageResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvitation godoc
// @Summary Create an invitation
// @Description Issues a single-use invitation to invitee_email, renders its QR code, stores it, and emails the invitee. The authenticated user becomes the inviter.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invitation body CreateInvitationRequest true "Invitee email and nickname"
// @Success 201 {object} controllers.InvitationSuccessResponse "data contains the created invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites [post]
func (c *InvitationController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inv, err := c.Service.Create(r.Context(), userID, req.InviteeEmail, req.Nickname)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// UpdateInvitation godoc
// @Summary Update an invitation
// @Description Changes the invitee email of an unused invitation owned by the caller.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invitation ID (UUID)"
// @Param invitation body UpdateInvitationRequest true "Fields to change"
// @Success 200 {object} controllers.InvitationSuccessResponse "data contains the updated invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{id} [put]
func (c *InvitationController) UpdateInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationID(w, r)
	if !ok {
		return
	}
	var req UpdateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inv, err := c.Service.Update(r.Context(), userID, id, domain.InvitationUpdate{InviteeEmail: req.InviteeEmail})
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// GetInvitationByCode godoc
// @Summary Get an invitation by code
// @Description Public lookup of an invitation by its invite code.
// @Tags invites
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {object} controllers.InvitationSuccessResponse "data contains the invitation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{code} [get]
func (c *InvitationController) GetInvitationByCode(w http.ResponseWriter, r *http.Request) {
	inv, err := c.Service.GetByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// ListInvitations godoc
// @Summary List my invitations
// @Description Returns the caller's invitations ordered by creation time, paginated with skip and limit.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Number of invitations to skip" default(0)
// @Param limit query int false "Maximum number of invitations to return (max 100)" default(10)
// @Success 200 {object} controllers.InvitationListSuccessResponse "data contains items, total, page, and size"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	params, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	items, total, err := c.Service.List(r.Context(), userID, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListPage(items, total, params))
}

// AcceptInvitation godoc
// @Summary Redeem an invitation
// @Description Target of the QR code link. Marks the invitation used and redirects to the configured landing page. Every rejected redemption returns the same error.
// @Tags invites
// @Produce json
// @Param nickname query string true "URL-safe base64 encoded nickname"
// @Param invite_code query string true "Invite code"
// @Success 307 "redirect to the landing page"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /accept [get]
func (c *InvitationController) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	redirectURL, err := c.Service.Redeem(r.Context(), q.Get("nickname"), q.Get("invite_code"))
	if err != nil {
		if errors.Is(err, domain.ErrDependency) {
			c.writeError(w, r, err)
			return
		}
		c.Logger.InfoContext(r.Context(), "redemption rejected", "err", err)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, msgInvalidInvitation)
		return
	}
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// ResendInvitation godoc
// @Summary Resend an invitation email
// @Description Re-delivers the invitation email for an invitation owned by the caller.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invitation ID (UUID)"
// @Success 200 {object} controllers.MessageSuccessResponse "data.message confirms delivery"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /invites/resend/{id} [post]
func (c *InvitationController) ResendInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sent, err := c.Service.Resend(r.Context(), userID, id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if !sent {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, msgInvitationNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.MessageResponse{Message: msgResent})
}

// DeleteInvitation godoc
// @Summary Delete an invitation
// @Description Deletes an invitation owned by the caller together with its QR image.
// @Tags invites
// @Security BearerAuth
// @Param id path string true "Invitation ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{id} [delete]
func (c *InvitationController) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	deleted, err := c.Service.Delete(r.Context(), userID, id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if !deleted {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, msgInvitationNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// invitationID reads the {id} path value. Anything that is not a UUID cannot
// name an invitation, so it is answered with 404.
func invitationID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, msgInvitationNotFound)
		return "", false
	}
	return id.String(), true
}

// writeError maps service errors to the API envelope. Only client-caused
// errors carry their message; everything else is logged and answered generically.
func (c *InvitationController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var provErr *domain.ProvisioningError
	switch {
	case errors.As(err, &provErr):
		c.Logger.ErrorContext(r.Context(), "invitation provisioning failed",
			"path", r.URL.Path, "method", r.Method,
			"invitation_id", provErr.InvitationID, "step", provErr.Step,
			"compensated", provErr.Compensated, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, "failed to provision invitation")
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvitationUsed),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrEncoding):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, msgInvitationNotFound)
	case errors.Is(err, domain.ErrDependency):
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, "upstream dependency unavailable")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
