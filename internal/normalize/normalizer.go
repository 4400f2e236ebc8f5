package normalize

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"adminhub/pkg/models"
)

// DisplayDateLayout is the default layout of the *_date display fields.
const DisplayDateLayout = "Jan 02, 2006"

// Normalizer turns raw backend records into canonical records. It holds only
// read-only settings and is safe for concurrent use.
type Normalizer struct {
	currency   string
	dateLayout string
	loc        *time.Location
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCurrency sets the symbol prefixed to money fields. Default: "$".
func WithCurrency(symbol string) Option {
	return func(n *Normalizer) {
		n.currency = symbol
	}
}

// WithDateLayout sets the layout of the display date fields.
// Default: DisplayDateLayout.
func WithDateLayout(layout string) Option {
	return func(n *Normalizer) {
		if layout != "" {
			n.dateLayout = layout
		}
	}
}

// WithLocation sets the zone used to read zone-less dates and to render
// display dates. Default: UTC.
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		if loc != nil {
			n.loc = loc
		}
	}
}

// New builds a Normalizer from the given options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		currency:   "$",
		dateLayout: DisplayDateLayout,
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = New()

// NormalizeOrder normalizes with the default settings.
func NormalizeOrder(raw Raw) models.Order { return defaultNormalizer.Order(raw) }

// NormalizeDispute normalizes with the default settings.
func NormalizeDispute(raw Raw) models.Dispute { return defaultNormalizer.Dispute(raw) }

// NormalizeReview normalizes with the default settings.
func NormalizeReview(raw Raw) models.Review { return defaultNormalizer.Review(raw) }

// Order maps any order shape onto models.Order. A nil or empty record yields
// a fully populated record of sentinels.
func (n *Normalizer) Order(raw Raw) models.Order {
	f := OrderFields
	status := ResolveString(raw, f.Status, "")
	display, iso := n.date(raw, f.Date)

	o := models.Order{
		ID:          ResolveString(raw, f.ID, ""),
		OrderNo:     ResolveString(raw, f.OrderNo, models.NotAvailable),
		StoreName:   ResolveString(raw, f.StoreName, models.UnknownStore),
		ProductName: ResolveString(raw, f.ProductName, models.NotAvailable),
		Price:       n.money(Resolve(raw, f.Price, nil)),
		OrderDate:   display,
		CreatedAt:   iso,
		Status:      status,
		StatusTag:   orderTaxonomy.Map(status),
	}
	if o.Status == "" {
		o.Status = models.NotAvailable
	}
	return o
}

// Dispute maps any dispute shape onto models.Dispute. Its Status is the
// matched tag or, when nothing fits, the lowercased backend label, so
// operators still see states the table does not know yet.
func (n *Normalizer) Dispute(raw Raw) models.Dispute {
	f := DisputeFields
	status := ResolveString(raw, f.Status, "")
	display, iso := n.date(raw, f.Date)

	return models.Dispute{
		ID:           ResolveString(raw, f.ID, ""),
		DisputeNo:    ResolveString(raw, f.DisputeNo, models.NotAvailable),
		OrderNo:      ResolveString(raw, f.OrderNo, models.NotAvailable),
		CustomerName: ResolveString(raw, f.CustomerName, models.UnknownBuyer),
		StoreName:    ResolveString(raw, f.StoreName, models.UnknownStore),
		Reason:       ResolveString(raw, f.Reason, models.NotAvailable),
		Amount:       n.money(Resolve(raw, f.Amount, nil)),
		DisputeDate:  display,
		CreatedAt:    iso,
		Status:       disputeTaxonomy.Label(status),
		StatusTag:    disputeTaxonomy.Map(status),
	}
}

// Review maps any review shape onto models.Review. Ratings are rounded and
// clamped to 0..5.
func (n *Normalizer) Review(raw Raw) models.Review {
	f := ReviewFields
	status := ResolveString(raw, f.Status, "")
	display, iso := n.date(raw, f.Date)

	rating := 0
	if v, ok := ResolveNumber(raw, f.Rating); ok {
		rating = int(math.Round(math.Max(0, math.Min(5, v))))
	}

	r := models.Review{
		ID:           ResolveString(raw, f.ID, ""),
		ReviewerName: ResolveString(raw, f.ReviewerName, models.Anonymous),
		ProductName:  ResolveString(raw, f.ProductName, models.NotAvailable),
		StoreName:    ResolveString(raw, f.StoreName, models.UnknownStore),
		Rating:       rating,
		Comment:      ResolveString(raw, f.Comment, ""),
		ReviewDate:   display,
		CreatedAt:    iso,
		Status:       status,
		StatusTag:    reviewTaxonomy.Map(status),
	}
	if r.Status == "" {
		r.Status = models.NotAvailable
	}
	return r
}

// Orders normalizes a list, preserving order.
func (n *Normalizer) Orders(raws []Raw) []models.Order {
	out := make([]models.Order, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Order(raw))
	}
	return out
}

// Disputes normalizes a list, preserving order.
func (n *Normalizer) Disputes(raws []Raw) []models.Dispute {
	out := make([]models.Dispute, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Dispute(raw))
	}
	return out
}

// Reviews normalizes a list, preserving order.
func (n *Normalizer) Reviews(raws []Raw) []models.Review {
	out := make([]models.Review, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Review(raw))
	}
	return out
}

// date returns the display string and the RFC 3339 form of the first date
// candidate. Unparseable text is shown as-is with an empty RFC 3339 form.
func (n *Normalizer) date(raw Raw, candidates []string) (display, iso string) {
	v := Resolve(raw, candidates, nil)
	if v == nil {
		return models.NotAvailable, ""
	}
	if t, ok := ParseDate(v, n.loc); ok {
		return t.In(n.loc).Format(n.dateLayout), t.Format(time.RFC3339)
	}
	if s, ok := scalarString(v); ok && s != "" {
		return s, ""
	}
	return models.NotAvailable, ""
}

// money renders numbers as "<symbol>1,250.00". Text that is not a plain
// number (an already formatted amount, "free", ...) is kept verbatim.
func (n *Normalizer) money(v any) string {
	if v == nil {
		return models.NotAvailable
	}
	f, ok := toNumber(v)
	if !ok {
		if s, ok := scalarString(v); ok && s != "" {
			return s
		}
		return models.NotAvailable
	}
	p := message.NewPrinter(language.English)
	if f < 0 {
		return "-" + n.currency + p.Sprintf("%.2f", -f)
	}
	return n.currency + p.Sprintf("%.2f", f)
}

// FormatMoney renders an amount the way canonical records do.
func (n *Normalizer) FormatMoney(amount float64) string {
	return n.money(amount)
}

// Location is the zone the normalizer reads zone-less dates in.
func (n *Normalizer) Location() *time.Location { return n.loc }
