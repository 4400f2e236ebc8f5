package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"adminhub/pkg/models"
)

// Domain names one record family handled by the dashboard.
type Domain string

const (
	DomainOrders   Domain = "orders"
	DomainDisputes Domain = "disputes"
	DomainReviews  Domain = "reviews"
)

// Domains lists every supported domain.
var Domains = []Domain{DomainOrders, DomainDisputes, DomainReviews}

// ParseDomain accepts the plural route form and the singular form.
func ParseDomain(s string) (Domain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orders", "order":
		return DomainOrders, true
	case "disputes", "dispute":
		return DomainDisputes, true
	case "reviews", "review", "ratings":
		return DomainReviews, true
	default:
		return "", false
	}
}

// TagRule binds a canonical tag to the folded raw labels that mean it.
// Patterns match exactly or by substring; Exact holds short words that only
// match the whole label ("new" must not catch "renewed").
type TagRule struct {
	Tag      models.StatusTag
	Patterns []string
	Exact    []string
}

// Taxonomy is a domain's status table. Rule order is significant: when a raw
// label substring-matches several rules, the earliest rule wins.
type Taxonomy struct {
	Domain Domain
	Rules  []TagRule
	// KeepRawLabel makes Label fall back to the lowercased backend label
	// instead of "unknown" when no rule matches.
	KeepRawLabel bool
}

// Every rule lists its own tag name (folded) so canonical records map back
// onto the same tag.
var orderTaxonomy = Taxonomy{
	Domain: DomainOrders,
	Rules: []TagRule{
		{Tag: models.OrderPlaced, Patterns: []string{"placed", "order placed"}, Exact: []string{"new", "paid"}},
		{Tag: models.OrderPending, Patterns: []string{"pending", "processing", "awaiting payment", "unpaid", "confirmed"}},
		{Tag: models.OrderOutForDelivery, Patterns: []string{"out for delivery", "shipped", "in transit", "dispatched", "shipping"}},
		{Tag: models.OrderDelivered, Patterns: []string{"delivered"}},
		{Tag: models.OrderCompleted, Patterns: []string{"completed", "complete", "order completed", "fulfilled"}},
		{Tag: models.OrderCancelled, Patterns: []string{"cancelled", "canceled", "refunded", "failed"}},
	},
}

var disputeTaxonomy = Taxonomy{
	Domain: DomainDisputes,
	Rules: []TagRule{
		{Tag: models.DisputeOpen, Patterns: []string{"open", "opened", "raised", "submitted"}, Exact: []string{"new"}},
		{Tag: models.DisputeInReview, Patterns: []string{"in review", "under review", "reviewing", "investigating", "pending"}},
		{Tag: models.DisputeEscalated, Patterns: []string{"escalated", "appealed"}},
		{Tag: models.DisputeResolved, Patterns: []string{"resolved", "closed", "settled", "refunded"}},
		{Tag: models.DisputeRejected, Patterns: []string{"rejected", "declined", "dismissed", "cancelled", "canceled"}},
	},
	KeepRawLabel: true,
}

var reviewTaxonomy = Taxonomy{
	Domain: DomainReviews,
	Rules: []TagRule{
		{Tag: models.ReviewPending, Patterns: []string{"pending", "awaiting moderation", "in review", "submitted"}},
		{Tag: models.ReviewPublished, Patterns: []string{"published", "approved", "active", "visible", "live"}},
		{Tag: models.ReviewFlagged, Patterns: []string{"flagged", "reported"}},
		{Tag: models.ReviewRejected, Patterns: []string{"rejected", "hidden", "removed", "deleted", "declined", "inactive", "unpublished"}},
	},
}

// TaxonomyFor returns the status table of a domain.
func TaxonomyFor(d Domain) (Taxonomy, bool) {
	switch d {
	case DomainOrders:
		return orderTaxonomy, true
	case DomainDisputes:
		return disputeTaxonomy, true
	case DomainReviews:
		return reviewTaxonomy, true
	default:
		return Taxonomy{}, false
	}
}

// MapStatus maps a raw backend status onto the domain's tag set. It never
// returns a tag outside that set; unknown domains yield StatusUnknown.
func MapStatus(d Domain, raw string) models.StatusTag {
	t, ok := TaxonomyFor(d)
	if !ok {
		return models.StatusUnknown
	}
	return t.Map(raw)
}

// Map resolves raw to a tag: exact match over the whole table first, then
// substring containment in either direction, in rule order.
func (t Taxonomy) Map(raw string) models.StatusTag {
	tag, _ := t.match(raw)
	return tag
}

// Label is the status text shown next to a record. A matched label shows
// its tag; an unmatched one shows "unknown", or the lowercased backend text
// when the taxonomy keeps raw labels.
func (t Taxonomy) Label(raw string) string {
	if tag, ok := t.match(raw); ok {
		return string(tag)
	}
	if t.KeepRawLabel {
		if s := strings.ToLower(strings.TrimSpace(raw)); s != "" {
			return s
		}
	}
	return string(models.StatusUnknown)
}

// Tags lists the declared tags in rule order followed by StatusUnknown.
func (t Taxonomy) Tags() []models.StatusTag {
	out := make([]models.StatusTag, 0, len(t.Rules)+1)
	for _, r := range t.Rules {
		out = append(out, r.Tag)
	}
	return append(out, models.StatusUnknown)
}

// Has reports whether tag belongs to the table (StatusUnknown included).
func (t Taxonomy) Has(tag models.StatusTag) bool {
	if tag == models.StatusUnknown {
		return true
	}
	for _, r := range t.Rules {
		if r.Tag == tag {
			return true
		}
	}
	return false
}

func (t Taxonomy) match(raw string) (models.StatusTag, bool) {
	s := foldStatus(raw)
	if s == "" {
		return models.StatusUnknown, false
	}
	for _, r := range t.Rules {
		for _, p := range r.Patterns {
			if s == p {
				return r.Tag, true
			}
		}
		for _, p := range r.Exact {
			if s == p {
				return r.Tag, true
			}
		}
	}
	for _, r := range t.Rules {
		for _, p := range r.Patterns {
			if strings.Contains(s, p) || strings.Contains(p, s) {
				return r.Tag, true
			}
		}
	}
	return models.StatusUnknown, false
}

// foldStatus lowercases, NFKC-normalizes and collapses whitespace; "_" and
// "-" count as spaces so "out_for_delivery" folds to "out for delivery".
func foldStatus(s string) string {
	s = norm.NFKC.String(strings.ToLower(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
