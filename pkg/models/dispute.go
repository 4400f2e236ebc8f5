package models

// Dispute is the canonical form of a buyer/seller dispute.
type Dispute struct {
	ID           string    `json:"id"`
	DisputeNo    string    `json:"dispute_no"`
	OrderNo      string    `json:"order_no"`
	CustomerName string    `json:"customer_name"`
	StoreName    string    `json:"store_name"`
	Reason       string    `json:"reason"`
	Amount       string    `json:"amount"`       // currency-prefixed
	DisputeDate  string    `json:"dispute_date"` // display date
	CreatedAt    string    `json:"created_at"`   // RFC 3339
	Status       string    `json:"status"`       // tag, or the lowercased backend label when no tag fits
	StatusTag    StatusTag `json:"status_tag"`
}

// Fields returns the record keyed by its JSON field names.
func (d Dispute) Fields() map[string]any {
	return map[string]any{
		"id":            d.ID,
		"dispute_no":    d.DisputeNo,
		"order_no":      d.OrderNo,
		"customer_name": d.CustomerName,
		"store_name":    d.StoreName,
		"reason":        d.Reason,
		"amount":        d.Amount,
		"dispute_date":  d.DisputeDate,
		"created_at":    d.CreatedAt,
		"status":        d.Status,
		"status_tag":    string(d.StatusTag),
	}
}

func (d Dispute) Tag() StatusTag { return d.StatusTag }
