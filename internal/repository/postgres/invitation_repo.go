package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"usermanagement/internal/domain"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidTextRepr     = "22P02"
)

const invitationColumns = `id, invitee_email, invite_code, nickname, user_id, created_at, used, used_at, qr_code_url`

type invitationRepository struct {
	DB *sql.DB
}

// NewInvitationRepository returns a domain.InvitationRepository implemented with Postgres.
func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	var (
		inv       domain.Invitation
		userID    sql.NullString
		usedAt    sql.NullTime
		qrCodeURL sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.InviteeEmail, &inv.InviteCode, &inv.Nickname, &userID, &inv.CreatedAt, &inv.Used, &usedAt, &qrCodeURL)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		inv.UserID = &userID.String
	}
	if usedAt.Valid {
		inv.UsedAt = &usedAt.Time
	}
	if qrCodeURL.Valid {
		inv.QRCodeURL = &qrCodeURL.String
	}
	return &inv, nil
}

// lookupErr maps errors from owner- or code-scoped reads. A malformed UUID
// can never match a row, so it reads as not found.
func lookupErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepr {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %w", domain.ErrDependency, err)
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (invitee_email, invite_code, nickname, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, used
	`
	err := r.DB.QueryRowContext(ctx, query, inv.InviteeEmail, inv.InviteCode, inv.Nickname, inv.UserID).
		Scan(&inv.ID, &inv.CreatedAt, &inv.Used)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return fmt.Errorf("%w: invite code already exists", domain.ErrConflict)
			case pqForeignKeyViolation, pqInvalidTextRepr:
				return domain.ValidationError("unknown inviter")
			}
		}
		return fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	return nil
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE invite_code = $1`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, lookupErr(err)
	}
	return inv, nil
}

func (r *invitationRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1 AND user_id = $2`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		return nil, lookupErr(err)
	}
	return inv, nil
}

func (r *invitationRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*domain.Invitation, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM invitations WHERE user_id = $1`, ownerID).Scan(&total)
	if err != nil {
		if errors.Is(lookupErr(err), domain.ErrNotFound) {
			return []*domain.Invitation{}, 0, nil
		}
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}

	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	defer rows.Close()

	invs := []*domain.Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", domain.ErrDependency, err)
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	return invs, total, nil
}

// UpdateFields applies the allow-listed fields to an unused invitation owned by ownerID.
func (r *invitationRepository) UpdateFields(ctx context.Context, id, ownerID string, fields domain.InvitationUpdate) (*domain.Invitation, error) {
	if fields.IsEmpty() {
		return r.GetByIDAndOwner(ctx, id, ownerID)
	}
	query := `
		UPDATE invitations
		SET invitee_email = $3
		WHERE id = $1 AND user_id = $2 AND used = FALSE
		RETURNING ` + invitationColumns
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id, ownerID, *fields.InviteeEmail))
	if err != nil {
		return nil, lookupErr(err)
	}
	return inv, nil
}

func (r *invitationRepository) SetQRCodeURL(ctx context.Context, id, url string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE invitations SET qr_code_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invitationRepository) MarkUsed(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE invitations
		SET used = TRUE, used_at = NOW()
		WHERE id = $1 AND used = FALSE
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	return rows == 1, nil
}

func (r *invitationRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		if errors.Is(lookupErr(err), domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *invitationRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDependency, err)
	}
	return nil
}
