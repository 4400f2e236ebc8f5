package models

// Review is the canonical form of a product/store review.
type Review struct {
	ID           string    `json:"id"`
	ReviewerName string    `json:"reviewer_name"`
	ProductName  string    `json:"product_name"`
	StoreName    string    `json:"store_name"`
	Rating       int       `json:"rating"` // 0..5, 0 when missing
	Comment      string    `json:"comment"`
	ReviewDate   string    `json:"review_date"`
	CreatedAt    string    `json:"created_at"`
	Status       string    `json:"status"`
	StatusTag    StatusTag `json:"status_tag"`
}

// Fields returns the record keyed by its JSON field names.
func (r Review) Fields() map[string]any {
	return map[string]any{
		"id":            r.ID,
		"reviewer_name": r.ReviewerName,
		"product_name":  r.ProductName,
		"store_name":    r.StoreName,
		"rating":        r.Rating,
		"comment":       r.Comment,
		"review_date":   r.ReviewDate,
		"created_at":    r.CreatedAt,
		"status":        r.Status,
		"status_tag":    string(r.StatusTag),
	}
}

func (r Review) Tag() StatusTag { return r.StatusTag }
