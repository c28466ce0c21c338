package domain

import (
	"context"
	"time"
)

// Invitation is a single-use invitation issued by a user to an invitee email.
// swagger:model Invitation
type Invitation struct {
	ID           string     `json:"id"`
	InviteeEmail string     `json:"invitee_email"`
	InviteCode   string     `json:"invite_code"`
	Nickname     string     `json:"nickname"`
	UserID       *string    `json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	Used         bool       `json:"used"`
	UsedAt       *time.Time `json:"used_at"`
	QRCodeURL    *string    `json:"qr_code_url"`
}

// NewInvitation returns an unused Invitation owned by ownerID. ID and CreatedAt are set by the repository on create.
func NewInvitation(ownerID, inviteeEmail, nickname, inviteCode string) *Invitation {
	owner := ownerID
	return &Invitation{
		InviteeEmail: inviteeEmail,
		InviteCode:   inviteCode,
		Nickname:     nickname,
		UserID:       &owner,
	}
}

// OwnedBy reports whether the invitation belongs to userID.
func (i *Invitation) OwnedBy(userID string) bool {
	return i.UserID != nil && *i.UserID == userID
}

// ArtifactKey is the object key under which the invitation's QR image is stored.
func (i *Invitation) ArtifactKey() string {
	return ArtifactKey(i.InviteCode)
}

// ArtifactKey returns the object key for the QR image of the given invite code.
func ArtifactKey(inviteCode string) string {
	return "invite_" + inviteCode + ".png"
}

// InvitationUpdate lists the fields an owner may change after creation.
// Nil fields are left untouched.
type InvitationUpdate struct {
	InviteeEmail *string
}

// IsEmpty reports whether the update changes nothing.
func (u InvitationUpdate) IsEmpty() bool {
	return u.InviteeEmail == nil
}

// InvitationRepository defines storage operations for invitations.
// Lookups that are scoped by owner return ErrNotFound both when the row is
// missing and when it belongs to someone else.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByCode(ctx context.Context, code string) (*Invitation, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*Invitation, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*Invitation, int, error)
	UpdateFields(ctx context.Context, id, ownerID string, fields InvitationUpdate) (*Invitation, error)
	SetQRCodeURL(ctx context.Context, id, url string) error
	// MarkUsed atomically flips an unused invitation to used. It returns true
	// only for the caller that performed the transition.
	MarkUsed(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

// InvitationService defines the invitation lifecycle: issue, redeem, and owner-scoped management.
type InvitationService interface {
	Create(ctx context.Context, ownerID, inviteeEmail, nickname string) (*Invitation, error)
	GetByCode(ctx context.Context, code string) (*Invitation, error)
	Redeem(ctx context.Context, encodedNickname, code string) (redirectURL string, err error)
	List(ctx context.Context, ownerID string, params PaginationParams) ([]*Invitation, int, error)
	Update(ctx context.Context, ownerID, id string, fields InvitationUpdate) (*Invitation, error)
	Resend(ctx context.Context, ownerID, id string) (bool, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}
