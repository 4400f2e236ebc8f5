package models

// StatusTag is one member of a domain's closed status enumeration.
type StatusTag string

const StatusUnknown StatusTag = "unknown"

// Order lifecycle tags.
const (
	OrderPlaced         StatusTag = "placed"
	OrderPending        StatusTag = "pending"
	OrderOutForDelivery StatusTag = "out_for_delivery"
	OrderDelivered      StatusTag = "delivered"
	OrderCompleted      StatusTag = "completed"
	OrderCancelled      StatusTag = "cancelled"
)

// Dispute lifecycle tags.
const (
	DisputeOpen      StatusTag = "open"
	DisputeInReview  StatusTag = "in_review"
	DisputeEscalated StatusTag = "escalated"
	DisputeResolved  StatusTag = "resolved"
	DisputeRejected  StatusTag = "rejected"
)

// Review moderation tags.
const (
	ReviewPending   StatusTag = "pending"
	ReviewPublished StatusTag = "published"
	ReviewFlagged   StatusTag = "flagged"
	ReviewRejected  StatusTag = "rejected"
)

// Sentinels used when nothing could be resolved for a field.
const (
	NotAvailable = "N/A"
	UnknownStore = "Unknown Store"
	UnknownBuyer = "Unknown Customer"
	Anonymous    = "Anonymous"
)
