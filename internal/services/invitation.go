package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"usermanagement/internal/domain"
)

const (
	maxCodeAttempts     = 3
	maxNicknameLength   = 64
	compensationTimeout = 10 * time.Second
	qrContentType       = "image/png"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Create pipeline steps, reported in ProvisioningError and metrics.
const (
	stepEncode  = "encode"
	stepRender  = "render"
	stepStore   = "store"
	stepPersist = "persist"
	stepNotify  = "notify"
)

// InvitationSettings holds the URLs and limits the invitation service needs.
type InvitationSettings struct {
	// ServerBaseURL is the public base of this service; redemption URLs are built from it.
	ServerBaseURL string
	// RedirectURL is where a successful redemption sends the invitee.
	RedirectURL string
	Timeout     time.Duration
}

type invitationService struct {
	repo           domain.InvitationRepository
	renderer       domain.QRRenderer
	store          domain.ArtifactStore
	emailService   domain.EmailService
	logger         *slog.Logger
	baseURL        string
	redirectURL    string
	contextTimeout time.Duration
	newCode        func() (string, error)
}

// NewInvitationService creates an InvitationService from its collaborators.
func NewInvitationService(repo domain.InvitationRepository,
	renderer domain.QRRenderer,
	store domain.ArtifactStore,
	emailService domain.EmailService,
	logger *slog.Logger,
	settings InvitationSettings,
) domain.InvitationService {
	return &invitationService{
		repo:           repo,
		renderer:       renderer,
		store:          store,
		emailService:   emailService,
		logger:         logger,
		baseURL:        settings.ServerBaseURL,
		redirectURL:    settings.RedirectURL,
		contextTimeout: settings.Timeout,
		newCode:        generateInviteCode,
	}
}

func (s *invitationService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", domain.ValidationError("invitee_email is required")
	}
	if !emailRegexp.MatchString(email) {
		return "", domain.ValidationError("invalid email format")
	}
	return email, nil
}

func validateNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", domain.ValidationError("nickname is required")
	}
	if !utf8.ValidString(nickname) {
		return "", domain.ValidationError("nickname must be valid UTF-8")
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return "", domain.ValidationError("nickname must be at most %d characters", maxNicknameLength)
	}
	return nickname, nil
}

func (s *invitationService) Create(ctx context.Context, ownerID, inviteeEmail, nickname string) (*domain.Invitation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if ownerID == "" {
		return nil, domain.ValidationError("inviter is required")
	}
	email, err := normalizeEmail(inviteeEmail)
	if err != nil {
		return nil, err
	}
	nickname, err = validateNickname(nickname)
	if err != nil {
		return nil, err
	}

	inv, err := s.insertWithUniqueCode(ctx, ownerID, email, nickname)
	if err != nil {
		return nil, err
	}

	stored, step, err := s.provision(ctx, inv)
	if err != nil {
		return nil, s.compensate(ctx, inv, stored, step, err)
	}

	invitationsCreated.Inc()
	s.logger.InfoContext(ctx, "invitation created", "invitation_id", inv.ID, "owner_id", ownerID)
	return inv, nil
}

// insertWithUniqueCode writes the row, regenerating the code when the store reports a collision.
func (s *invitationService) insertWithUniqueCode(ctx context.Context, ownerID, email, nickname string) (*domain.Invitation, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate invite code: %w", err)
		}
		inv := domain.NewInvitation(ownerID, email, nickname, code)
		err = s.repo.Create(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("failed to create invitation: %w", err)
		}
		codeCollisions.Inc()
		s.logger.WarnContext(ctx, "invite code collision, regenerating", "attempt", attempt)
	}
	return nil, fmt.Errorf("%w: no unique invite code after %d attempts", domain.ErrConflict, maxCodeAttempts)
}

// provision runs the steps that follow row insertion, in order. It reports
// whether the artifact was stored and which step failed.
func (s *invitationService) provision(ctx context.Context, inv *domain.Invitation) (stored bool, step string, err error) {
	redemptionURL, err := domain.BuildRedemptionURL(s.baseURL, inv.Nickname, inv.InviteCode)
	if err != nil {
		return false, stepEncode, err
	}
	png, err := s.renderer.Render(redemptionURL)
	if err != nil {
		return false, stepRender, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}
	key := inv.ArtifactKey()
	if err := s.store.Put(ctx, key, png, qrContentType); err != nil {
		return false, stepStore, err
	}
	qrURL := s.store.PublicURL(key)
	if err := s.repo.SetQRCodeURL(ctx, inv.ID, qrURL); err != nil {
		return true, stepPersist, err
	}
	inv.QRCodeURL = &qrURL

	if err := s.emailService.SendInvitation(ctx, invitationEmail(inv, redemptionURL)); err != nil {
		return true, stepNotify, err
	}
	return true, "", nil
}

// compensate undoes a partially provisioned invitation. The cleanup runs on a
// context detached from the request so it survives the request's deadline.
func (s *invitationService) compensate(ctx context.Context, inv *domain.Invitation, stored bool, step string, cause error) error {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	perr := &domain.ProvisioningError{InvitationID: inv.ID, Step: step, Err: cause}
	if err := s.repo.DeleteByID(cctx, inv.ID); err != nil {
		s.logger.ErrorContext(ctx, "orphaned invitation needs reconciliation",
			"invitation_id", inv.ID, "step", step, "cause", cause, "err", err)
	} else {
		perr.Compensated = true
	}
	if stored {
		if err := s.store.Delete(cctx, inv.ArtifactKey()); err != nil {
			s.logger.WarnContext(ctx, "failed to remove artifact of failed invitation", "invitation_id", inv.ID, "err", err)
		}
	}
	provisioningFailures.WithLabelValues(step, strconv.FormatBool(perr.Compensated)).Inc()
	s.logger.ErrorContext(ctx, "invitation provisioning failed",
		"invitation_id", inv.ID, "step", step, "compensated", perr.Compensated, "err", cause)
	return perr
}

func invitationEmail(inv *domain.Invitation, redemptionURL string) *domain.InvitationEmailData {
	data := &domain.InvitationEmailData{
		Email:         inv.InviteeEmail,
		Nickname:      inv.Nickname,
		InviteCode:    inv.InviteCode,
		RedemptionURL: redemptionURL,
	}
	if inv.QRCodeURL != nil {
		data.QRCodeURL = *inv.QRCodeURL
	}
	return data
}

func (s *invitationService) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByCode(ctx, code)
}

// Redeem validates the nickname/code pair and marks the invitation used.
// A used invitation is never redeemed again: the second call returns
// ErrInvitationUsed and leaves used_at untouched.
func (s *invitationService) Redeem(ctx context.Context, encodedNickname, code string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	nickname, err := domain.DecodeNickname(encodedNickname)
	if err != nil {
		invitationRedemptions.WithLabelValues("invalid").Inc()
		return "", err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		invitationRedemptions.WithLabelValues("invalid").Inc()
		return "", domain.ValidationError("invite_code is required")
	}

	inv, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			invitationRedemptions.WithLabelValues("unknown_code").Inc()
		}
		return "", err
	}
	if subtle.ConstantTimeCompare([]byte(inv.Nickname), []byte(nickname)) != 1 {
		invitationRedemptions.WithLabelValues("invalid").Inc()
		return "", domain.ValidationError("invalid invitation")
	}
	if inv.Used {
		invitationRedemptions.WithLabelValues("already_used").Inc()
		return "", domain.ErrInvitationUsed
	}

	marked, err := s.repo.MarkUsed(ctx, inv.ID)
	if err != nil {
		return "", fmt.Errorf("failed to mark invitation used: %w", err)
	}
	if !marked {
		invitationRedemptions.WithLabelValues("already_used").Inc()
		return "", domain.ErrInvitationUsed
	}

	invitationRedemptions.WithLabelValues("accepted").Inc()
	s.logger.InfoContext(ctx, "invitation redeemed", "invitation_id", inv.ID)
	return s.redirectURL, nil
}

func (s *invitationService) List(ctx context.Context, ownerID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if params.Limit <= 0 {
		return nil, 0, domain.ValidationError("limit must be greater than 0")
	}
	if params.Skip < 0 {
		return nil, 0, domain.ValidationError("skip must not be negative")
	}
	return s.repo.ListByOwner(ctx, ownerID, params.Skip, params.Limit)
}

func (s *invitationService) Update(ctx context.Context, ownerID, id string, fields domain.InvitationUpdate) (*domain.Invitation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if fields.InviteeEmail != nil {
		email, err := normalizeEmail(*fields.InviteeEmail)
		if err != nil {
			return nil, err
		}
		fields.InviteeEmail = &email
	}

	current, err := s.repo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if current.Used {
		return nil, domain.ErrInvitationUsed
	}
	return s.repo.UpdateFields(ctx, id, ownerID, fields)
}

// Resend re-delivers the invitation email with the already rendered artifact.
func (s *invitationService) Resend(ctx context.Context, ownerID, id string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	inv, err := s.repo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	redemptionURL, err := domain.BuildRedemptionURL(s.baseURL, inv.Nickname, inv.InviteCode)
	if err != nil {
		return false, err
	}
	if err := s.ensureArtifact(ctx, inv, redemptionURL); err != nil {
		return false, err
	}
	data := invitationEmail(inv, redemptionURL)
	if data.QRCodeURL == "" {
		data.QRCodeURL = s.store.PublicURL(inv.ArtifactKey())
	}
	if err := s.emailService.SendInvitation(ctx, data); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	s.logger.InfoContext(ctx, "invitation resent", "invitation_id", inv.ID)
	return true, nil
}

// ensureArtifact re-renders and stores the QR image when it has gone missing
// from the store. Other Stat failures are logged and the email is still sent.
func (s *invitationService) ensureArtifact(ctx context.Context, inv *domain.Invitation, redemptionURL string) error {
	key := inv.ArtifactKey()
	_, err := s.store.Stat(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.WarnContext(ctx, "could not check invitation artifact", "invitation_id", inv.ID, "err", err)
		return nil
	}
	png, err := s.renderer.Render(redemptionURL)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}
	if err := s.store.Put(ctx, key, png, qrContentType); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "invitation artifact restored", "invitation_id", inv.ID)
	return nil
}

func (s *invitationService) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	inv, err := s.repo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil || !deleted {
		return false, err
	}
	if err := s.store.Delete(ctx, inv.ArtifactKey()); err != nil {
		s.logger.WarnContext(ctx, "failed to remove invitation artifact", "invitation_id", id, "err", err)
	}
	return true, nil
}
