package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
)

type Order struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	TotalAmount     float64         `json:"total_amount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	ShippingAddress json.RawMessage `json:"shipping_address,omitempty" db:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	Items           []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID        int     `json:"id" db:"id"`
	OrderID   string  `json:"order_id" db:"order_id"`
	ProductID int     `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
	// Joined for display
	ProductName string `json:"product_name,omitempty" db:"product_name"`
}

type OrderItemInput struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// CreateOrder prices the items from the catalog and writes the order and
// its items in one transaction.
func CreateOrder(ctx context.Context, userID string, items []OrderItemInput, shippingAddress json.RawMessage) (*Order, error) {
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var total float64
	priced := make([]OrderItem, 0, len(items))
	for _, item := range items {
		var price float64
		var inStock bool
		err := tx.QueryRow(ctx,
			`SELECT price, in_stock FROM products WHERE id = $1 AND is_active = true`,
			item.ProductID).Scan(&price, &inStock)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
		if !inStock {
			return nil, fmt.Errorf("product %d is out of stock", item.ProductID)
		}
		total += price * float64(item.Quantity)
		priced = append(priced, OrderItem{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: price})
	}

	var order Order
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount, status, shipping_address)
		VALUES ($1, $2, 'created', $3)
		RETURNING id, user_id, total_amount, status, shipping_address, created_at
	`, userID, total, shippingAddress).Scan(
		&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
		&order.ShippingAddress, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, item := range priced {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, order.ID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return nil, err
		}
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}

func GetUserOrders(ctx context.Context, userID string) ([]Order, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT id, user_id, total_amount, status, shipping_address, created_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func getOrderItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.ProductName)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
