package normalize

import (
	"testing"

	"adminhub/pkg/models"
)

func TestMapStatusOrders(t *testing.T) {
	tests := []struct {
		raw  string
		want models.StatusTag
	}{
		{"Delivered", models.OrderDelivered},
		{"  DELIVERED  ", models.OrderDelivered},
		{"out_for_delivery", models.OrderOutForDelivery},
		{"Out-For-Delivery", models.OrderOutForDelivery},
		{"Shipped", models.OrderOutForDelivery},
		{"Order Completed", models.OrderCompleted},
		{"completed order", models.OrderCompleted},
		{"payment pending", models.OrderPending},
		{"Cancelled", models.OrderCancelled},
		{"", models.StatusUnknown},
		{"   ", models.StatusUnknown},
		{"zzz", models.StatusUnknown},
	}
	for _, tt := range tests {
		if got := MapStatus(DomainOrders, tt.raw); got != tt.want {
			t.Errorf("MapStatus(orders, %q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestMapStatusExactMatchBeatsEarlierSubstring(t *testing.T) {
	// "unpaid" contains "paid" (placed, declared first) but is an exact
	// pattern of pending.
	if got := MapStatus(DomainOrders, "unpaid"); got != models.OrderPending {
		t.Fatalf("MapStatus(unpaid) = %q, want pending", got)
	}
	// "inactive" contains "active" (published) but is an exact pattern of rejected.
	if got := MapStatus(DomainReviews, "Inactive"); got != models.ReviewRejected {
		t.Fatalf("MapStatus(Inactive) = %q, want rejected", got)
	}
}

func TestMapStatusDeclarationOrderBreaksTies(t *testing.T) {
	// "deliver" is contained in both "out for delivery" and "delivered";
	// out_for_delivery is declared first.
	if got := MapStatus(DomainOrders, "deliver"); got != models.OrderOutForDelivery {
		t.Fatalf("MapStatus(deliver) = %q, want out_for_delivery", got)
	}
	// "shipped and delivered" contains patterns of both rules.
	if got := MapStatus(DomainOrders, "shipped and delivered"); got != models.OrderOutForDelivery {
		t.Fatalf("MapStatus(shipped and delivered) = %q, want out_for_delivery", got)
	}
}

func TestMapStatusShortWordsMatchWholeLabelOnly(t *testing.T) {
	tests := []struct {
		d    Domain
		raw  string
		want models.StatusTag
	}{
		{DomainOrders, "New", models.OrderPlaced},
		{DomainOrders, "PAID", models.OrderPlaced},
		{DomainOrders, "payment unpaid", models.OrderPending},
		{DomainOrders, "renewed", models.StatusUnknown},
		{DomainOrders, "not paid yet", models.StatusUnknown},
		{DomainDisputes, "new", models.DisputeOpen},
		{DomainDisputes, "renewed", models.StatusUnknown},
	}
	for _, tt := range tests {
		if got := MapStatus(tt.d, tt.raw); got != tt.want {
			t.Errorf("MapStatus(%s, %q) = %q, want %q", tt.d, tt.raw, got, tt.want)
		}
	}
}

func TestMapStatusClosure(t *testing.T) {
	inputs := []string{"", "x", "e", "Delivered", "under review", "REPORTED", "weird state", "n/a", "🙂", "out for"}
	for _, d := range Domains {
		tax, _ := TaxonomyFor(d)
		for _, raw := range inputs {
			got := MapStatus(d, raw)
			if !tax.Has(got) {
				t.Errorf("MapStatus(%s, %q) = %q, not a declared tag", d, raw, got)
			}
		}
	}
	if got := MapStatus(Domain("sellers"), "active"); got != models.StatusUnknown {
		t.Errorf("unknown domain mapped to %q", got)
	}
}

func TestEveryTagMapsToItself(t *testing.T) {
	for _, d := range Domains {
		tax, _ := TaxonomyFor(d)
		for _, tag := range tax.Tags() {
			if got := tax.Map(string(tag)); got != tag {
				t.Errorf("%s: Map(%q) = %q", d, tag, got)
			}
		}
	}
}

func TestDisputeLabelKeepsUnknownBackendState(t *testing.T) {
	tax, _ := TaxonomyFor(DomainDisputes)

	if got := tax.Map("Awaiting Documents"); got != models.StatusUnknown {
		t.Fatalf("Map = %q, want unknown", got)
	}
	if got := tax.Label("  Awaiting Documents "); got != "awaiting documents" {
		t.Fatalf("Label = %q, want awaiting documents", got)
	}
	if got := tax.Label("Under Review"); got != "in_review" {
		t.Fatalf("Label(Under Review) = %q, want in_review", got)
	}
	if got := tax.Label(""); got != "unknown" {
		t.Fatalf("Label(empty) = %q, want unknown", got)
	}

	orders, _ := TaxonomyFor(DomainOrders)
	if got := orders.Label("Awaiting Documents"); got != "unknown" {
		t.Fatalf("orders Label = %q, want unknown", got)
	}
}

func TestParseDomain(t *testing.T) {
	for in, want := range map[string]Domain{
		"orders":   DomainOrders,
		"Order":    DomainOrders,
		"disputes": DomainDisputes,
		"ratings":  DomainReviews,
	} {
		got, ok := ParseDomain(in)
		if !ok || got != want {
			t.Errorf("ParseDomain(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseDomain("sellers"); ok {
		t.Error("ParseDomain(sellers) should fail")
	}
}
