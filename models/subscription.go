package models

import (
	"context"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
)

const (
	SubscriptionStatusPending = "pending"
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

type Subscription struct {
	ID                 string     `json:"id" db:"id"`
	UserID             string     `json:"user_id" db:"user_id"`
	PlanID             int        `json:"plan_id" db:"plan_id"`
	Status             string     `json:"status" db:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start" db:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end" db:"current_period_end"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
	// Joined plan data (optional)
	PlanName  string  `json:"plan_name,omitempty" db:"plan_name"`
	PlanPrice float64 `json:"plan_price,omitempty" db:"plan_price"`
}

// CreatePendingSubscription records the intent to subscribe. The period is
// set when the UPI payment is verified and the subscription activates.
func CreatePendingSubscription(ctx context.Context, userID string, planID int) (*Subscription, error) {
	var sub Subscription
	err := database.Pool.QueryRow(ctx, `
		INSERT INTO user_subscriptions (user_id, plan_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, user_id, plan_id, status, current_period_start, current_period_end, created_at, updated_at
	`, userID, planID).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetUserSubscriptions returns all subscriptions of a user with plan data.
func GetUserSubscriptions(ctx context.Context, userID string) ([]Subscription, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT s.id, s.user_id, s.plan_id, s.status, s.current_period_start, s.current_period_end,
		       s.created_at, s.updated_at, p.name AS plan_name, p.price AS plan_price
		FROM user_subscriptions s
		JOIN subscription_plans p ON s.plan_id = p.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var s Subscription
		err := rows.Scan(
			&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.CurrentPeriodStart, &s.CurrentPeriodEnd,
			&s.CreatedAt, &s.UpdatedAt, &s.PlanName, &s.PlanPrice,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// HasActiveSubscription reports whether the user can shop right now.
// Ordering is gated on this.
func HasActiveSubscription(ctx context.Context, userID string) (bool, error) {
	var count int
	err := database.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM user_subscriptions
		WHERE user_id = $1 AND status = 'active' AND current_period_end > NOW()
	`, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
