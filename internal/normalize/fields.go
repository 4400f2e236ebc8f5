package normalize

// Candidate paths per canonical field, highest priority first. This is the
// one place to touch when a backend endpoint changes shape. The canonical
// JSON name of each field is always a candidate, at low priority unless the
// backends use the same name, so canonical records normalize to themselves.

// OrderFields covers the store_order envelope, the flat store/pricing shape
// and the legacy row carrying only store_name and payment_status.
var OrderFields = struct {
	ID          []string
	OrderNo     []string
	StoreName   []string
	ProductName []string
	Price       []string
	Date        []string
	Status      []string
}{
	ID:      []string{"id", "_id", "order_id", "store_order.order_id"},
	OrderNo: []string{"store_order.order_no", "store_order.order_number", "order_number", "reference", "order_no"},
	StoreName: []string{
		"store_order.store.name",
		"store.name",
		"store_name",
		"store_order.store_name",
	},
	ProductName: []string{
		"store_order.items.0.product.name",
		"store_order.items.0.product_name",
		"items.0.product.name",
		"items.0.product_name",
		"product.name",
		"product_name",
	},
	Price: []string{
		"store_order.subtotal_with_shipping",
		"pricing.subtotal_with_shipping",
		"subtotal_with_shipping",
		"store_order.total",
		"total_amount",
		"amount",
		"price",
	},
	Date: []string{
		"created_at",
		"store_order.created_at",
		"createdAt",
		"date",
		"formatted_date",
		"order_date",
	},
	Status: []string{"store_order.status", "status", "payment_status"},
}

// DisputeFields covers dispute rows with embedded order/customer/store
// objects as well as flattened exports.
var DisputeFields = struct {
	ID           []string
	DisputeNo    []string
	OrderNo      []string
	CustomerName []string
	StoreName    []string
	Reason       []string
	Amount       []string
	Date         []string
	Status       []string
}{
	ID:        []string{"id", "_id", "dispute_id"},
	DisputeNo: []string{"dispute_number", "reference", "ticket_no", "dispute_no"},
	OrderNo: []string{
		"order.order_no",
		"order.order_number",
		"store_order.order_no",
		"order_number",
		"order.id",
		"order_id",
		"order_no",
	},
	CustomerName: []string{
		"customer.full_name",
		"customer.name",
		"user.full_name",
		"user.name",
		"buyer.name",
		"raised_by.name",
		"customer_name",
	},
	StoreName: []string{
		"store.name",
		"seller.store_name",
		"seller.business_name",
		"store_order.store.name",
		"order.store.name",
		"store_name",
	},
	Reason: []string{"reason.title", "reason.name", "dispute_reason", "reason_text", "category", "reason"},
	Amount: []string{
		"disputed_amount",
		"order.total_amount",
		"order.total",
		"store_order.subtotal_with_shipping",
		"amount",
	},
	Date:   []string{"created_at", "raised_at", "opened_at", "date", "formatted_date", "dispute_date"},
	Status: []string{"dispute_status", "resolution.status", "state", "status"},
}

// ReviewFields covers ratings from the product review and store rating
// endpoints.
var ReviewFields = struct {
	ID           []string
	ReviewerName []string
	ProductName  []string
	StoreName    []string
	Rating       []string
	Comment      []string
	Date         []string
	Status       []string
}{
	ID: []string{"id", "_id", "review_id"},
	ReviewerName: []string{
		"user.full_name",
		"user.name",
		"reviewer.name",
		"customer.name",
		"user_name",
		"author",
		"reviewer_name",
	},
	ProductName: []string{"product.name", "item.name", "service.name", "product_name"},
	StoreName:   []string{"store.name", "product.store.name", "seller.store_name", "store_name"},
	Rating:      []string{"stars", "score", "rate", "rating"},
	Comment:     []string{"review", "body", "text", "content", "comment"},
	Date:        []string{"created_at", "date", "formatted_date", "review_date"},
	Status:      []string{"review_status", "moderation_status", "state", "status"},
}

// Date candidates for filtering canonical records by period.
var (
	OrderDateFields   = []string{"created_at", "order_date"}
	DisputeDateFields = []string{"created_at", "dispute_date"}
	ReviewDateFields  = []string{"created_at", "review_date"}
)

// DateFields returns the period-filter candidates for a domain's canonical
// records.
func DateFields(d Domain) []string {
	switch d {
	case DomainDisputes:
		return DisputeDateFields
	case DomainReviews:
		return ReviewDateFields
	default:
		return OrderDateFields
	}
}
