package models

// Order is the canonical, display-ready form of an order row.
//
// Every backend shape (store_order envelopes, flat legacy rows, ...) is
// mapped into this structure first; list tabs, period filters and CSV
// exports only ever read this form.
type Order struct {
	ID          string    `json:"id"`
	OrderNo     string    `json:"order_no"`     // "N/A" when the backend sent none
	StoreName   string    `json:"store_name"`   // "Unknown Store" fallback
	ProductName string    `json:"product_name"` // first line item
	Price       string    `json:"price"`        // currency-prefixed, e.g. "$1,250.00"
	OrderDate   string    `json:"order_date"`   // display date, e.g. "Jan 05, 2024"
	CreatedAt   string    `json:"created_at"`   // RFC 3339, "" when unparseable
	Status      string    `json:"status"`       // raw backend label for display
	StatusTag   StatusTag `json:"status_tag"`
}

// Fields returns the record keyed by its JSON field names.
func (o Order) Fields() map[string]any {
	return map[string]any{
		"id":           o.ID,
		"order_no":     o.OrderNo,
		"store_name":   o.StoreName,
		"product_name": o.ProductName,
		"price":        o.Price,
		"order_date":   o.OrderDate,
		"created_at":   o.CreatedAt,
		"status":       o.Status,
		"status_tag":   string(o.StatusTag),
	}
}

func (o Order) Tag() StatusTag { return o.StatusTag }
