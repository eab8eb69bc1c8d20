package shopdomain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Product is an item sold in the club store.
type Product struct {
	ID          int64    `json:"id" validate:"required"`
	ClubID      int64    `json:"club_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	PriceCents  int64    `json:"price_cents" validate:"gte=0"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
}

// Available reports whether at least qty units can be ordered.
func (p Product) Available(qty int) bool {
	return p.Stock == nil || *p.Stock >= qty
}

// OrderItem is one line of a new order.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	Items []OrderItem `json:"items"`
}

// OrderLine is one line of a placed order.
type OrderLine struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Size           string `json:"size,omitempty"`
}

// Order is a placed order as listed in the user's history.
type Order struct {
	ID         int64       `json:"id" validate:"required"`
	Status     string      `json:"status" validate:"required"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderLine `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FormatPrice renders cents as Brazilian reais, e.g. "R$ 1.234,50". The
// whole int64 range is supported.
func FormatPrice(cents int64) string {
	sign := ""
	magnitude := uint64(cents)
	if cents < 0 {
		sign = "-"
		magnitude = uint64(-(cents + 1)) + 1
	}
	whole := strconv.FormatUint(magnitude/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), magnitude%100)
}
