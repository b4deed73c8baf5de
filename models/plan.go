package models

import (
	"context"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
)

type Plan struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Code         string    `json:"code" db:"code"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	Currency     string    `json:"currency" db:"currency"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	SortOrder    int       `json:"sort_order" db:"sort_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// GetAllActivePlans returns the active plans sorted for display.
func GetAllActivePlans(ctx context.Context) ([]Plan, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT id, name, code, description, price, currency, duration_days, is_active, sort_order, created_at
		FROM subscription_plans
		WHERE is_active = true
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.Price,
			&p.Currency, &p.DurationDays, &p.IsActive, &p.SortOrder, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func GetPlanByID(ctx context.Context, id int) (*Plan, error) {
	var p Plan
	err := database.Pool.QueryRow(ctx, `
		SELECT id, name, code, description, price, currency, duration_days, is_active, sort_order, created_at
		FROM subscription_plans
		WHERE id = $1 AND is_active = true
	`, id).Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.Price,
		&p.Currency, &p.DurationDays, &p.IsActive, &p.SortOrder, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
