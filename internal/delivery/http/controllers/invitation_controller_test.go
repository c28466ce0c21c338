package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanagement/internal/delivery/http/helpers"
	"usermanagement/internal/delivery/http/middleware"
	"usermanagement/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testOwnerID      = "7b0e6f1c-1111-4a4a-9c9c-000000000001"
	testInvitationID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
)

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	createResult *domain.Invitation
	createErr    error
	getResult    *domain.Invitation
	getErr       error
	redeemURL    string
	redeemErr    error
	listResult   []*domain.Invitation
	listTotal    int
	listErr      error
	updateResult *domain.Invitation
	updateErr    error
	resendOK     bool
	resendErr    error
	deleteOK     bool
	deleteErr    error

	lastOwnerID  string
	lastID       string
	lastEmail    string
	lastNickname string
	lastCode     string
	lastParams   domain.PaginationParams
	lastUpdate   domain.InvitationUpdate
}

func (f *fakeInvitationService) Create(_ context.Context, owner, email, nickname string) (*domain.Invitation, error) {
	f.lastOwnerID, f.lastEmail, f.lastNickname = owner, email, nickname
	return f.createResult, f.createErr
}

func (f *fakeInvitationService) GetByCode(_ context.Context, code string) (*domain.Invitation, error) {
	f.lastCode = code
	return f.getResult, f.getErr
}

func (f *fakeInvitationService) Redeem(_ context.Context, nickname, code string) (string, error) {
	f.lastNickname, f.lastCode = nickname, code
	return f.redeemURL, f.redeemErr
}

func (f *fakeInvitationService) List(_ context.Context, owner string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	f.lastOwnerID, f.lastParams = owner, params
	return f.listResult, f.listTotal, f.listErr
}

func (f *fakeInvitationService) Update(_ context.Context, owner, id string, fields domain.InvitationUpdate) (*domain.Invitation, error) {
	f.lastOwnerID, f.lastID, f.lastUpdate = owner, id, fields
	return f.updateResult, f.updateErr
}

func (f *fakeInvitationService) Resend(_ context.Context, owner, id string) (bool, error) {
	f.lastOwnerID, f.lastID = owner, id
	return f.resendOK, f.resendErr
}

func (f *fakeInvitationService) Delete(_ context.Context, owner, id string) (bool, error) {
	f.lastOwnerID, f.lastID = owner, id
	return f.deleteOK, f.deleteErr
}

func sampleInvitation() *domain.Invitation {
	inv := domain.NewInvitation(testOwnerID, "invitee@example.com", "JohnDoe123", "abcDEF123_-xyz12")
	inv.ID = testInvitationID
	inv.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	url := "http://localhost:9000/invites/invite_abcDEF123_-xyz12.png"
	inv.QRCodeURL = &url
	return inv
}

// serve routes the request through a mux so path values are populated, with the user ID
// injected when authenticated is true.
func serve(pattern string, handler http.HandlerFunc, req *http.Request, authenticated bool) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	if authenticated {
		req = req.WithContext(middleware.SetUserID(req.Context(), testOwnerID))
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

func TestInvitationController_CreateInvitation(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		authenticated bool
		svcErr        error
		wantStatus    int
		wantCode      string
	}{
		{
			name:          "created",
			body:          `{"invitee_email":"invitee@example.com","nickname":"JohnDoe123"}`,
			authenticated: true,
			wantStatus:    http.StatusCreated,
		},
		{
			name:          "missing nickname",
			body:          `{"invitee_email":"invitee@example.com"}`,
			authenticated: true,
			wantStatus:    http.StatusBadRequest,
			wantCode:      helpers.ErrCodeBadRequest,
		},
		{
			name:          "unknown field",
			body:          `{"invitee_email":"invitee@example.com","nickname":"x","used":true}`,
			authenticated: true,
			wantStatus:    http.StatusBadRequest,
			wantCode:      helpers.ErrCodeBadRequest,
		},
		{
			name:       "unauthenticated",
			body:       `{"invitee_email":"invitee@example.com","nickname":"JohnDoe123"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:          "service validation",
			body:          `{"invitee_email":"not-an-email","nickname":"JohnDoe123"}`,
			authenticated: true,
			svcErr:        domain.ValidationError("invalid email format"),
			wantStatus:    http.StatusBadRequest,
			wantCode:      helpers.ErrCodeBadRequest,
		},
		{
			name:          "code space exhausted",
			body:          `{"invitee_email":"invitee@example.com","nickname":"JohnDoe123"}`,
			authenticated: true,
			svcErr:        fmt.Errorf("%w: could not allocate a unique invite code", domain.ErrConflict),
			wantStatus:    http.StatusBadRequest,
			wantCode:      helpers.ErrCodeBadRequest,
		},
		{
			name:          "provisioning failed",
			body:          `{"invitee_email":"invitee@example.com","nickname":"JohnDoe123"}`,
			authenticated: true,
			svcErr: &domain.ProvisioningError{
				InvitationID: testInvitationID, Step: "store", Compensated: true, Err: errors.New("bucket unavailable"),
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   helpers.ErrCodeBadGateway,
		},
		{
			name:          "unexpected error is not leaked",
			body:          `{"invitee_email":"invitee@example.com","nickname":"JohnDoe123"}`,
			authenticated: true,
			svcErr:        errors.New("pq: password authentication failed"),
			wantStatus:    http.StatusInternalServerError,
			wantCode:      helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{createResult: sampleInvitation(), createErr: tt.svcErr}
			ctrl := NewInvitationController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/invites", strings.NewReader(tt.body))

			rr := serve("POST /invites", ctrl.CreateInvitation, req, tt.authenticated)

			require.Equal(t, tt.wantStatus, rr.Code)
			var got domain.Invitation
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.NotContains(t, apiErr.Message, "pq:")
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, testOwnerID, svc.lastOwnerID)
			assert.Equal(t, "invitee@example.com", svc.lastEmail)
			assert.Equal(t, "JohnDoe123", svc.lastNickname)
			assert.Equal(t, testInvitationID, got.ID)
			assert.False(t, got.Used)
			require.NotNil(t, got.QRCodeURL)
		})
	}
}

func TestInvitationController_GetInvitationByCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeInvitationService{getResult: sampleInvitation()}
		ctrl := NewInvitationController(testLogger, svc)
		req := httptest.NewRequest(http.MethodGet, "/invites/abcDEF123_-xyz12", nil)

		rr := serve("GET /invites/{code}", ctrl.GetInvitationByCode, req, false)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "abcDEF123_-xyz12", svc.lastCode)
		var got domain.Invitation
		require.Nil(t, decodeEnvelope(t, rr, &got))
		assert.Equal(t, "JohnDoe123", got.Nickname)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewInvitationController(testLogger, &fakeInvitationService{getErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "/invites/missing", nil)

		rr := serve("GET /invites/{code}", ctrl.GetInvitationByCode, req, false)

		require.Equal(t, http.StatusNotFound, rr.Code)
		apiErr := decodeEnvelope(t, rr, nil)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeNotFound, apiErr.Code)
	})
}

func TestInvitationController_ListInvitations(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
		wantParams domain.PaginationParams
		wantPage   int
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantParams: domain.PaginationParams{Skip: 0, Limit: 10}, wantPage: 1},
		{name: "third page", query: "?skip=4&limit=2", wantStatus: http.StatusOK, wantParams: domain.PaginationParams{Skip: 4, Limit: 2}, wantPage: 3},
		{name: "non numeric", query: "?limit=ten", wantStatus: http.StatusBadRequest},
		{name: "service rejects limit", query: "?limit=0", svcErr: domain.ValidationError("limit must be greater than 0"), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{
				listResult: []*domain.Invitation{sampleInvitation()},
				listTotal:  5,
				listErr:    tt.svcErr,
			}
			ctrl := NewInvitationController(testLogger, svc)
			req := httptest.NewRequest(http.MethodGet, "/invites"+tt.query, nil)

			rr := serve("GET /invites", ctrl.ListInvitations, req, true)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantParams, svc.lastParams)
			assert.Equal(t, testOwnerID, svc.lastOwnerID)
			var page helpers.ListPage[*domain.Invitation]
			require.Nil(t, decodeEnvelope(t, rr, &page))
			assert.Equal(t, 5, page.Total)
			assert.Equal(t, 1, page.Size)
			assert.Equal(t, tt.wantPage, page.Page)
			require.Len(t, page.Items, 1)
		})
	}
}

func TestInvitationController_UpdateInvitation(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "updated", id: testInvitationID, body: `{"invitee_email":"new@example.com"}`, wantStatus: http.StatusOK},
		{name: "malformed id", id: "42", body: `{"invitee_email":"new@example.com"}`, wantStatus: http.StatusNotFound},
		{name: "not owned", id: testInvitationID, body: `{"invitee_email":"new@example.com"}`, svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "already used", id: testInvitationID, body: `{"invitee_email":"new@example.com"}`, svcErr: domain.ErrInvitationUsed, wantStatus: http.StatusBadRequest},
		{name: "immutable field", id: testInvitationID, body: `{"invite_code":"x"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := sampleInvitation()
			updated.InviteeEmail = "new@example.com"
			svc := &fakeInvitationService{updateResult: updated, updateErr: tt.svcErr}
			ctrl := NewInvitationController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPut, "/invites/"+tt.id, bytes.NewBufferString(tt.body))

			rr := serve("PUT /invites/{id}", ctrl.UpdateInvitation, req, true)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, svc.lastUpdate.InviteeEmail)
				assert.Equal(t, "new@example.com", *svc.lastUpdate.InviteeEmail)
				assert.Equal(t, testInvitationID, svc.lastID)
			}
		})
	}
}

func TestInvitationController_AcceptInvitation(t *testing.T) {
	tests := []struct {
		name         string
		svcErr       error
		wantStatus   int
		wantLocation string
		wantMessage  string
	}{
		{name: "accepted", wantStatus: http.StatusTemporaryRedirect, wantLocation: "http://localhost:8080/accepted"},
		{name: "nickname mismatch", svcErr: domain.ValidationError("invalid invitation"), wantStatus: http.StatusBadRequest, wantMessage: "invalid invitation"},
		{name: "unknown code", svcErr: domain.ErrNotFound, wantStatus: http.StatusBadRequest, wantMessage: "invalid invitation"},
		{name: "already used", svcErr: domain.ErrInvitationUsed, wantStatus: http.StatusBadRequest, wantMessage: "invalid invitation"},
		{name: "bad encoding", svcErr: fmt.Errorf("%w: nickname is not valid base64", domain.ErrEncoding), wantStatus: http.StatusBadRequest, wantMessage: "invalid invitation"},
		{name: "database down", svcErr: fmt.Errorf("%w: connection refused", domain.ErrDependency), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{redeemURL: "http://localhost:8080/accepted", redeemErr: tt.svcErr}
			ctrl := NewInvitationController(testLogger, svc)
			req := httptest.NewRequest(http.MethodGet, "/accept?nickname=Sm9obkRvZTEyMw%3D%3D&invite_code=abc-DEF_123", nil)

			rr := serve("GET /accept", ctrl.AcceptInvitation, req, false)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "Sm9obkRvZTEyMw==", svc.lastNickname)
			assert.Equal(t, "abc-DEF_123", svc.lastCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
			}
			if tt.wantMessage != "" {
				apiErr := decodeEnvelope(t, rr, nil)
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestInvitationController_ResendInvitation(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		sent       bool
		svcErr     error
		wantStatus int
	}{
		{name: "resent", id: testInvitationID, sent: true, wantStatus: http.StatusOK},
		{name: "not owned", id: testInvitationID, sent: false, wantStatus: http.StatusNotFound},
		{name: "malformed id", id: "not-a-uuid", wantStatus: http.StatusNotFound},
		{name: "mailer down", id: testInvitationID, svcErr: fmt.Errorf("%w: smtp timeout", domain.ErrDependency), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{resendOK: tt.sent, resendErr: tt.svcErr}
			ctrl := NewInvitationController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/invites/resend/"+tt.id, nil)

			rr := serve("POST /invites/resend/{id}", ctrl.ResendInvitation, req, true)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var msg helpers.MessageResponse
				require.Nil(t, decodeEnvelope(t, rr, &msg))
				assert.Equal(t, "Invitation resent successfully.", msg.Message)
			}
		})
	}
}

func TestInvitationController_DeleteInvitation(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		deleted    bool
		authed     bool
		wantStatus int
	}{
		{name: "deleted", id: testInvitationID, deleted: true, authed: true, wantStatus: http.StatusNoContent},
		{name: "not owned", id: testInvitationID, authed: true, wantStatus: http.StatusNotFound},
		{name: "unauthenticated", id: testInvitationID, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInvitationService{deleteOK: tt.deleted}
			ctrl := NewInvitationController(testLogger, svc)
			req := httptest.NewRequest(http.MethodDelete, "/invites/"+tt.id, nil)

			rr := serve("DELETE /invites/{id}", ctrl.DeleteInvitation, req, tt.authed)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
				assert.Equal(t, testOwnerID, svc.lastOwnerID)
			}
		})
	}
}
