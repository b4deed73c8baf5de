package models

import (
	"context"
	"errors"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"

	"github.com/jackc/pgx/v5"
)

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

var (
	ErrInsufficientBalance  = errors.New("insufficient available balance")
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")
)

type WithdrawalRequest struct {
	ID          string     `json:"id" db:"id"`
	ProfileID   string     `json:"profile_id" db:"profile_id"`
	Amount      float64    `json:"amount" db:"amount"`
	UPIID       string     `json:"upi_id" db:"upi_id"`
	Status      string     `json:"status" db:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" db:"processed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	// Joined for the admin queue
	UserEmail string `json:"user_email,omitempty" db:"user_email"`
	UserName  string `json:"user_name,omitempty" db:"user_name"`
}

// CreateWithdrawal reserves the amount by debiting available_balance and
// inserts the request in one transaction. The conditional UPDATE makes
// concurrent requests against the same balance safe: only one can win the
// remaining funds.
func CreateWithdrawal(ctx context.Context, profileID string, amount float64, upiID string) (*WithdrawalRequest, error) {
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE user_profiles
		SET available_balance = available_balance - $1, updated_at = NOW()
		WHERE id = $2 AND available_balance >= $1
	`, amount, profileID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrInsufficientBalance
	}

	var wr WithdrawalRequest
	err = tx.QueryRow(ctx, `
		INSERT INTO withdrawal_requests (profile_id, amount, upi_id, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, profile_id, amount, upi_id, status, processed_at, created_at
	`, profileID, amount, upiID).Scan(
		&wr.ID, &wr.ProfileID, &wr.Amount, &wr.UPIID, &wr.Status, &wr.ProcessedAt, &wr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &wr, nil
}

func GetProfileWithdrawals(ctx context.Context, profileID string) ([]WithdrawalRequest, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT id, profile_id, amount, upi_id, status, processed_at, created_at
		FROM withdrawal_requests
		WHERE profile_id = $1
		ORDER BY created_at DESC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []WithdrawalRequest
	for rows.Next() {
		var wr WithdrawalRequest
		err := rows.Scan(&wr.ID, &wr.ProfileID, &wr.Amount, &wr.UPIID, &wr.Status, &wr.ProcessedAt, &wr.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, wr)
	}
	return items, rows.Err()
}

func GetWithdrawalsByStatus(ctx context.Context, status string) ([]WithdrawalRequest, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT wr.id, wr.profile_id, wr.amount, wr.upi_id, wr.status, wr.processed_at, wr.created_at,
		       u.email, COALESCE(u.name, '')
		FROM withdrawal_requests wr
		JOIN user_profiles p ON p.id = wr.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE wr.status = $1
		ORDER BY wr.created_at ASC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []WithdrawalRequest
	for rows.Next() {
		var wr WithdrawalRequest
		err := rows.Scan(&wr.ID, &wr.ProfileID, &wr.Amount, &wr.UPIID, &wr.Status,
			&wr.ProcessedAt, &wr.CreatedAt, &wr.UserEmail, &wr.UserName)
		if err != nil {
			return nil, err
		}
		items = append(items, wr)
	}
	return items, rows.Err()
}

// ApproveWithdrawal finalizes a pending request. The amount was already
// debited at creation, so approval only flips the status.
func ApproveWithdrawal(ctx context.Context, withdrawalID, adminID string) error {
	tag, err := database.Pool.Exec(ctx, `
		UPDATE withdrawal_requests
		SET status = 'approved', processed_by = $1, processed_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`, adminID, withdrawalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWithdrawalNotPending
	}
	return nil
}

// RejectWithdrawal refunds the reserved amount back to the profile in the
// same transaction that flips the status.
func RejectWithdrawal(ctx context.Context, withdrawalID, adminID string) error {
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var profileID string
	var amount float64
	err = tx.QueryRow(ctx, `
		UPDATE withdrawal_requests
		SET status = 'rejected', processed_by = $1, processed_at = NOW()
		WHERE id = $2 AND status = 'pending'
		RETURNING profile_id, amount
	`, adminID, withdrawalID).Scan(&profileID, &amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWithdrawalNotPending
		}
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_profiles
		SET available_balance = available_balance + $1, updated_at = NOW()
		WHERE id = $2
	`, amount, profileID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
