package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"

	"github.com/jackc/pgx/v5"
)

const (
	PaymentStatusCreated   = "created"
	PaymentStatusSubmitted = "submitted"
	PaymentStatusVerified  = "verified"
	PaymentStatusRejected  = "rejected"
)

var (
	ErrPaymentNotSubmitted = errors.New("payment is not awaiting verification")
	ErrPaymentNotOpen      = errors.New("payment is not open for submission")
	ErrPaymentNotVerified  = errors.New("payment is not verified")
)

type PaymentRequest struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	SubscriptionID *string    `json:"subscription_id,omitempty" db:"subscription_id"`
	Amount         float64    `json:"amount" db:"amount"`
	UPIReference   *string    `json:"upi_reference,omitempty" db:"upi_reference"`
	Status         string     `json:"status" db:"status"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty" db:"submitted_at"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty" db:"processed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	// Joined for the admin queue
	UserEmail string `json:"user_email,omitempty" db:"user_email"`
	UserName  string `json:"user_name,omitempty" db:"user_name"`
}

func CreatePaymentRequest(ctx context.Context, userID, subscriptionID string, amount float64) (*PaymentRequest, error) {
	var pr PaymentRequest
	err := database.Pool.QueryRow(ctx, `
		INSERT INTO payment_requests (user_id, subscription_id, amount, status)
		VALUES ($1, $2, $3, 'created')
		RETURNING id, user_id, subscription_id, amount, upi_reference, status, submitted_at, processed_at, created_at
	`, userID, subscriptionID, amount).Scan(
		&pr.ID, &pr.UserID, &pr.SubscriptionID, &pr.Amount, &pr.UPIReference,
		&pr.Status, &pr.SubmittedAt, &pr.ProcessedAt, &pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

// SubmitPaymentReference attaches the user's UTR to an open payment and
// moves it into the operator's verification queue.
func SubmitPaymentReference(ctx context.Context, paymentID, userID, utr string) (*PaymentRequest, error) {
	var pr PaymentRequest
	err := database.Pool.QueryRow(ctx, `
		UPDATE payment_requests
		SET upi_reference = $1, status = 'submitted', submitted_at = NOW()
		WHERE id = $2 AND user_id = $3 AND status IN ('created', 'submitted')
		RETURNING id, user_id, subscription_id, amount, upi_reference, status, submitted_at, processed_at, created_at
	`, utr, paymentID, userID).Scan(
		&pr.ID, &pr.UserID, &pr.SubscriptionID, &pr.Amount, &pr.UPIReference,
		&pr.Status, &pr.SubmittedAt, &pr.ProcessedAt, &pr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotOpen
		}
		return nil, err
	}
	return &pr, nil
}

func GetPaymentsByStatus(ctx context.Context, status string) ([]PaymentRequest, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT pr.id, pr.user_id, pr.subscription_id, pr.amount, pr.upi_reference,
		       pr.status, pr.submitted_at, pr.processed_at, pr.created_at,
		       u.email, COALESCE(u.name, '')
		FROM payment_requests pr
		JOIN users u ON u.id = pr.user_id
		WHERE pr.status = $1
		ORDER BY pr.submitted_at ASC NULLS LAST, pr.created_at ASC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []PaymentRequest
	for rows.Next() {
		var pr PaymentRequest
		err := rows.Scan(
			&pr.ID, &pr.UserID, &pr.SubscriptionID, &pr.Amount, &pr.UPIReference,
			&pr.Status, &pr.SubmittedAt, &pr.ProcessedAt, &pr.CreatedAt,
			&pr.UserEmail, &pr.UserName,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, pr)
	}
	return payments, rows.Err()
}

func GetUserPayments(ctx context.Context, userID string) ([]PaymentRequest, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT id, user_id, subscription_id, amount, upi_reference, status, submitted_at, processed_at, created_at
		FROM payment_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []PaymentRequest
	for rows.Next() {
		var pr PaymentRequest
		err := rows.Scan(
			&pr.ID, &pr.UserID, &pr.SubscriptionID, &pr.Amount, &pr.UPIReference,
			&pr.Status, &pr.SubmittedAt, &pr.ProcessedAt, &pr.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, pr)
	}
	return payments, rows.Err()
}

// VerifyPayment marks a submitted payment as verified and activates its
// subscription in one transaction. It returns the paying user's id so the
// caller can run commission distribution afterwards - distribution is a
// best-effort side effect and must not roll back the activation.
func VerifyPayment(ctx context.Context, paymentID, adminID string) (string, error) {
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var userID string
	var subscriptionID *string
	err = tx.QueryRow(ctx, `
		UPDATE payment_requests
		SET status = 'verified', verified_by = $1, processed_at = NOW()
		WHERE id = $2 AND status = 'submitted'
		RETURNING user_id, subscription_id
	`, adminID, paymentID).Scan(&userID, &subscriptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPaymentNotSubmitted
		}
		return "", err
	}

	if subscriptionID != nil {
		tag, err := tx.Exec(ctx, `
			UPDATE user_subscriptions s
			SET status = 'active',
			    current_period_start = NOW(),
			    current_period_end = NOW() + make_interval(days => p.duration_days),
			    updated_at = NOW()
			FROM subscription_plans p
			WHERE s.id = $1 AND s.plan_id = p.id AND s.status = 'pending'
		`, *subscriptionID)
		if err != nil {
			return "", err
		}
		if tag.RowsAffected() != 1 {
			return "", fmt.Errorf("subscription %s is not pending", *subscriptionID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return userID, nil
}

// VerifiedPaymentUser returns the paying user of an already verified
// payment. It backs the redistribution endpoint: when the commission run
// after verification failed, the operator retries it against the verified
// payment without touching its status.
func VerifiedPaymentUser(ctx context.Context, paymentID string) (string, error) {
	var userID string
	err := database.Pool.QueryRow(ctx, `
		SELECT user_id FROM payment_requests
		WHERE id = $1 AND status = 'verified'
	`, paymentID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPaymentNotVerified
		}
		return "", err
	}
	return userID, nil
}

func RejectPayment(ctx context.Context, paymentID, adminID string) error {
	tag, err := database.Pool.Exec(ctx, `
		UPDATE payment_requests
		SET status = 'rejected', verified_by = $1, processed_at = NOW()
		WHERE id = $2 AND status = 'submitted'
	`, adminID, paymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotSubmitted
	}
	return nil
}
