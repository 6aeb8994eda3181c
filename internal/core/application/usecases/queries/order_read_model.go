// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture:
// handlers read with plain SQL and return read models instead of aggregates.
package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderResponse is the read model of an order, children included.
type OrderResponse struct {
	ID            kernel.ID
	ReferenceCode string
	PressingID    kernel.ID
	ClientID      kernel.ID
	PlantID       *kernel.ID
	Status        order.Status
	Items         []OrderItemResponse
	TotalAmount   kernel.Money
	Payment       *PaymentResponse
	History       []HistoryEntryResponse
	CreatedAt     time.Time
}

type OrderItemResponse struct {
	Label     string
	Quantity  int
	UnitPrice kernel.Money
}

type HistoryEntryResponse struct {
	Status    order.Status
	ChangedBy identity.UserRef
	ChangedAt time.Time
}

type PaymentResponse struct {
	ID     kernel.ID
	Amount kernel.Money
	Method order.PaymentMethod
	Status order.PaymentStatus
	PaidAt time.Time
}

// Scope returns the fields the access policy decides on.
func (r OrderResponse) Scope() services.OrderScope {
	return services.OrderScope{
		PressingID: r.PressingID,
		PlantID:    r.PlantID,
		Status:     r.Status,
	}
}

const selectOrders = `
	SELECT
		o.id,
		o.reference_code,
		o.pressing_id,
		o.client_id,
		o.plant_id,
		o.status,
		o.total_amount,
		o.created_at
	FROM orders o`

// readOrders runs selectOrders with the given filter and tail (ORDER BY,
// LIMIT) and loads the children of every row found.
func readOrders(ctx context.Context, db *gorm.DB, filter, tail string, args ...any) ([]OrderResponse, error) {
	sql := selectOrders
	if filter != "" {
		sql += "\n\tWHERE " + filter
	}
	if tail != "" {
		sql += "\n\t" + tail
	}

	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		var (
			id, pressingID, clientID int64
			plantID                  *int64
			status                   int
			total                    decimal.Decimal
			resp                     OrderResponse
		)
		if err = rows.Scan(&id, &resp.ReferenceCode, &pressingID, &clientID, &plantID,
			&status, &total, &resp.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.IDFromInt64(id)
		pressing, pressingErr := kernel.IDFromInt64(pressingID)
		client, clientErr := kernel.IDFromInt64(clientID)
		amount, amountErr := kernel.NewMoney(total)
		if err = errors.Join(idErr, pressingErr, clientErr, amountErr); err != nil {
			return nil, fmt.Errorf("order %d: %w", id, err)
		}
		resp.ID, resp.PressingID, resp.ClientID, resp.TotalAmount = orderID, pressing, client, amount
		resp.Status = order.Status(status)

		if plantID != nil {
			plant, plantErr := kernel.IDFromInt64(*plantID)
			if plantErr != nil {
				return nil, plantErr
			}
			resp.PlantID = &plant
		}

		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = loadOrderChildren(ctx, db, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func loadOrderChildren(ctx context.Context, db *gorm.DB, orders []OrderResponse) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID.Int64())
		index[o.ID.Int64()] = i
	}

	if err := loadItems(ctx, db, ids, func(orderID int64, item OrderItemResponse) {
		orders[index[orderID]].Items = append(orders[index[orderID]].Items, item)
	}); err != nil {
		return err
	}
	if err := loadHistory(ctx, db, ids, func(orderID int64, entry HistoryEntryResponse) {
		orders[index[orderID]].History = append(orders[index[orderID]].History, entry)
	}); err != nil {
		return err
	}
	return loadPayments(ctx, db, ids, func(orderID int64, payment PaymentResponse) {
		orders[index[orderID]].Payment = &payment
	})
}

func loadItems(ctx context.Context, db *gorm.DB, ids []int64, add func(int64, OrderItemResponse)) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, label, quantity, unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			price   decimal.Decimal
			item    OrderItemResponse
		)
		if err = rows.Scan(&orderID, &item.Label, &item.Quantity, &price); err != nil {
			return err
		}
		if item.UnitPrice, err = kernel.NewMoney(price); err != nil {
			return err
		}
		add(orderID, item)
	}
	return rows.Err()
}

func loadHistory(ctx context.Context, db *gorm.DB, ids []int64, add func(int64, HistoryEntryResponse)) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, status, changed_by_id, changed_by_name, changed_at
		FROM order_status_history
		WHERE order_id IN ?
		ORDER BY order_id, id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			status  int
			entry   HistoryEntryResponse
		)
		if err = rows.Scan(&orderID, &status, &entry.ChangedBy.ID, &entry.ChangedBy.Name, &entry.ChangedAt); err != nil {
			return err
		}
		entry.Status = order.Status(status)
		add(orderID, entry)
	}
	return rows.Err()
}

func loadPayments(ctx context.Context, db *gorm.DB, ids []int64, add func(int64, PaymentResponse)) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT id, order_id, amount, method, status, paid_at
		FROM payments
		WHERE order_id IN ?
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, orderID    int64
			amount         decimal.Decimal
			method, status int
			payment        PaymentResponse
		)
		if err = rows.Scan(&id, &orderID, &amount, &method, &status, &payment.PaidAt); err != nil {
			return err
		}
		paymentID, idErr := kernel.IDFromInt64(id)
		money, amountErr := kernel.NewMoney(amount)
		if err = errors.Join(idErr, amountErr); err != nil {
			return err
		}
		payment.ID, payment.Amount = paymentID, money
		payment.Method, payment.Status = order.PaymentMethod(method), order.PaymentStatus(status)
		add(orderID, payment)
	}
	return rows.Err()
}
