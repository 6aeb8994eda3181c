package http

import (
	"time"

	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/model/catalog"

	"github.com/shopspring/decimal"
)

// Ids travel as decimal strings: snowflake values exceed what JSON numbers
// carry safely. Amounts are decimal.Decimal, which reads both JSON numbers
// and strings and always writes strings.

type OrderLineRequest struct {
	Label    string          `json:"label"`
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	ClientID string             `json:"clientId"`
	Items    []OrderLineRequest `json:"items"`
}

type TransitionRequest struct {
	TargetStatus string  `json:"targetStatus"`
	PlantID      *string `json:"plantId,omitempty"`
}

type BulkTransitionRequest struct {
	OrderIDs     []string `json:"orderIds"`
	TargetStatus string   `json:"targetStatus"`
	PlantID      *string  `json:"plantId,omitempty"`
}

type PaymentRequest struct {
	Method string `json:"method"`
}

type CatalogItemRequest struct {
	Label string           `json:"label"`
	Price *decimal.Decimal `json:"price"`
}

type Error struct {
	Code              int     `json:"code"`
	Message           string  `json:"message"`
	AllowedNextStatus *string `json:"allowedNextStatus,omitempty"`
}

type OrderItem struct {
	Label     string          `json:"label"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type HistoryEntry struct {
	Status    string    `json:"status"`
	ChangedBy User      `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Status string          `json:"status"`
	PaidAt time.Time       `json:"paidAt"`
}

type Order struct {
	ID            string          `json:"id"`
	ReferenceCode string          `json:"referenceCode"`
	PressingID    string          `json:"pressingId"`
	ClientID      string          `json:"clientId"`
	PlantID       *string         `json:"plantId"`
	Status        string          `json:"status"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Payment       *Payment        `json:"payment"`
	History       []HistoryEntry  `json:"history"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CatalogItem struct {
	ID         string          `json:"id"`
	PressingID string          `json:"pressingId"`
	Label      string          `json:"label"`
	Price      decimal.Decimal `json:"price"`
}

func toOrder(o queries.OrderResponse) Order {
	response := Order{
		ID:            o.ID.String(),
		ReferenceCode: o.ReferenceCode,
		PressingID:    o.PressingID.String(),
		ClientID:      o.ClientID.String(),
		Status:        o.Status.String(),
		Items:         make([]OrderItem, len(o.Items)),
		TotalAmount:   o.TotalAmount.Amount(),
		History:       make([]HistoryEntry, len(o.History)),
		CreatedAt:     o.CreatedAt,
	}
	if o.PlantID != nil {
		plantID := o.PlantID.String()
		response.PlantID = &plantID
	}

	for i, item := range o.Items {
		response.Items[i] = OrderItem{
			Label:     item.Label,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount(),
		}
	}

	for i, entry := range o.History {
		response.History[i] = HistoryEntry{
			Status:    entry.Status.String(),
			ChangedBy: User{ID: entry.ChangedBy.ID, Name: entry.ChangedBy.Name},
			ChangedAt: entry.ChangedAt,
		}
	}

	if p := o.Payment; p != nil {
		response.Payment = &Payment{
			ID:     p.ID.String(),
			Amount: p.Amount.Amount(),
			Method: p.Method.String(),
			Status: p.Status.String(),
			PaidAt: p.PaidAt,
		}
	}

	return response
}

func toOrders(orders []queries.OrderResponse) []Order {
	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return response
}

func toCatalogItem(item queries.CatalogItemResponse) CatalogItem {
	return CatalogItem{
		ID:         item.ID.String(),
		PressingID: item.PressingID.String(),
		Label:      item.Label,
		Price:      item.Price.Amount(),
	}
}

func catalogItemFromDomain(item *catalog.Item) CatalogItem {
	return CatalogItem{
		ID:         item.ID().String(),
		PressingID: item.PressingID().String(),
		Label:      item.Label(),
		Price:      item.Price().Amount(),
	}
}
