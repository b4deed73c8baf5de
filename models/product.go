package models

import (
	"context"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
)

type Product struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Category    string    `json:"category" db:"category"`
	InStock     bool      `json:"in_stock" db:"in_stock"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func GetActiveProducts(ctx context.Context) ([]Product, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT id, name, description, price, COALESCE(image_url, ''), COALESCE(category, ''),
		       in_stock, is_active, sort_order, created_at
		FROM products
		WHERE is_active = true
		ORDER BY sort_order ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.Category, &p.InStock, &p.IsActive, &p.SortOrder, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func GetProductByID(ctx context.Context, id int) (*Product, error) {
	var p Product
	err := database.Pool.QueryRow(ctx, `
		SELECT id, name, description, price, COALESCE(image_url, ''), COALESCE(category, ''),
		       in_stock, is_active, sort_order, created_at
		FROM products
		WHERE id = $1 AND is_active = true
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Category, &p.InStock, &p.IsActive, &p.SortOrder, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
