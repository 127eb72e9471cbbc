package shop

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// Audit holds bookkeeping columns shared by every record.
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Address is a postal address.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip,omitempty"`
}

// LineItem is one product row of an order.
type LineItem struct {
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// LineItems is the list of rows of an order.
type LineItems []*LineItem

// Order is a customer order.
type Order struct {
	Audit
	ID       int64             `json:"id"`
	Status   Status            `json:"status"`
	Items    LineItems         `json:"items"`
	Shipping *Address          `json:"shipping"`
	Tags     []string          `json:"tags"`
	Labels   map[string]string `json:"labels"`
	Meta     any               `json:"meta"`
	Amount   int               `json:"amount" php:"int|float"`
	Secret   string            `json:"-"`
	Internal string            `json:"internal" dto:"-"`
	// Deprecated: use Status.
	State string `json:"state"`
	note  string
}

// Legacy is kept for old clients.
//
// Deprecated: use Order.
type Legacy struct {
	Name string `json:"name"`
}
