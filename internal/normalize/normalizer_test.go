package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"adminhub/pkg/models"
)

func roundTrip(t *testing.T, v any) Raw {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return decode(t, string(b))
}

func TestOrderFromStoreOrderEnvelope(t *testing.T) {
	o := NormalizeOrder(decode(t, `{"store_order":{"store":{"name":"Acme"}},"status":"Delivered"}`))

	if o.StoreName != "Acme" {
		t.Fatalf("StoreName = %q, want Acme", o.StoreName)
	}
	if o.StatusTag != models.OrderDelivered {
		t.Fatalf("StatusTag = %q, want delivered", o.StatusTag)
	}
	if o.Status != "Delivered" {
		t.Fatalf("Status = %q, want Delivered", o.Status)
	}
}

func TestEmptyRecordsYieldSentinels(t *testing.T) {
	for _, raw := range []Raw{nil, {}} {
		o := NormalizeOrder(raw)
		want := models.Order{
			OrderNo:     models.NotAvailable,
			StoreName:   models.UnknownStore,
			ProductName: models.NotAvailable,
			Price:       models.NotAvailable,
			OrderDate:   models.NotAvailable,
			Status:      models.NotAvailable,
			StatusTag:   models.StatusUnknown,
		}
		if o != want {
			t.Fatalf("NormalizeOrder(%v) = %+v, want %+v", raw, o, want)
		}

		d := NormalizeDispute(raw)
		if d.CustomerName != models.UnknownBuyer || d.StoreName != models.UnknownStore ||
			d.Status != "unknown" || d.StatusTag != models.StatusUnknown {
			t.Fatalf("NormalizeDispute(%v) = %+v", raw, d)
		}

		r := NormalizeReview(raw)
		if r.ReviewerName != models.Anonymous || r.Rating != 0 || r.StatusTag != models.StatusUnknown {
			t.Fatalf("NormalizeReview(%v) = %+v", raw, r)
		}
	}
}

func TestOrderFullEnvelope(t *testing.T) {
	raw := decode(t, `{
		"id": "ord_1",
		"created_at": "2024-03-05T10:00:00Z",
		"store_order": {
			"order_no": "SO-1001",
			"status": "out_for_delivery",
			"store": {"name": "Acme, Inc."},
			"items": [{"product": {"name": "Kettle"}}],
			"subtotal_with_shipping": 1250
		}
	}`)
	o := NormalizeOrder(raw)

	want := models.Order{
		ID:          "ord_1",
		OrderNo:     "SO-1001",
		StoreName:   "Acme, Inc.",
		ProductName: "Kettle",
		Price:       "$1,250.00",
		OrderDate:   "Mar 05, 2024",
		CreatedAt:   "2024-03-05T10:00:00Z",
		Status:      "out_for_delivery",
		StatusTag:   models.OrderOutForDelivery,
	}
	if o != want {
		t.Fatalf("got  %+v\nwant %+v", o, want)
	}
}

func TestOrderLegacyPaymentStatusShape(t *testing.T) {
	o := NormalizeOrder(decode(t, `{"store_name":"Beta","payment_status":"Pending","total_amount":"99.5"}`))

	if o.StoreName != "Beta" || o.StatusTag != models.OrderPending || o.Price != "$99.50" {
		t.Fatalf("got %+v", o)
	}
}

func TestOrderPrefersNestedStoreName(t *testing.T) {
	o := NormalizeOrder(decode(t, `{"store":{"name":"Nested"},"store_name":"Flat"}`))
	if o.StoreName != "Nested" {
		t.Fatalf("StoreName = %q, want Nested", o.StoreName)
	}
	o = NormalizeOrder(decode(t, `{"store":{"name":""},"store_name":"Flat"}`))
	if o.StoreName != "Flat" {
		t.Fatalf("StoreName = %q, want Flat", o.StoreName)
	}
}

func TestDisputeShapes(t *testing.T) {
	d := NormalizeDispute(decode(t, `{
		"id": 17,
		"dispute_number": "DSP-17",
		"order": {"order_no": "SO-9", "total_amount": "40"},
		"customer": {"full_name": "Ada Obi"},
		"store": {"name": "Acme"},
		"reason": {"title": "Item damaged"},
		"status": "Under Review",
		"created_at": "2024-02-01 09:30:00"
	}`))

	want := models.Dispute{
		ID:           "17",
		DisputeNo:    "DSP-17",
		OrderNo:      "SO-9",
		CustomerName: "Ada Obi",
		StoreName:    "Acme",
		Reason:       "Item damaged",
		Amount:       "$40.00",
		DisputeDate:  "Feb 01, 2024",
		CreatedAt:    "2024-02-01T09:30:00Z",
		Status:       "in_review",
		StatusTag:    models.DisputeInReview,
	}
	if d != want {
		t.Fatalf("got  %+v\nwant %+v", d, want)
	}

	d = NormalizeDispute(decode(t, `{"status":"Awaiting Documents","reason":"Late"}`))
	if d.Status != "awaiting documents" || d.StatusTag != models.StatusUnknown || d.Reason != "Late" {
		t.Fatalf("got %+v", d)
	}
}

func TestReviewRating(t *testing.T) {
	tests := []struct {
		js   string
		want int
	}{
		{`{"rating": 4}`, 4},
		{`{"stars": "4.6"}`, 5},
		{`{"score": 7}`, 5},
		{`{"rating": -2}`, 0},
		{`{"rating": "great"}`, 0},
	}
	for _, tt := range tests {
		if got := NormalizeReview(decode(t, tt.js)).Rating; got != tt.want {
			t.Errorf("%s: Rating = %d, want %d", tt.js, got, tt.want)
		}
	}
}

func TestReviewShape(t *testing.T) {
	r := NormalizeReview(decode(t, `{
		"user": {"full_name": "Tolu"},
		"product": {"name": "Kettle", "store": {"name": "Acme"}},
		"rating": 5,
		"review": "Works well",
		"status": "approved"
	}`))
	if r.ReviewerName != "Tolu" || r.ProductName != "Kettle" || r.StoreName != "Acme" ||
		r.Comment != "Works well" || r.StatusTag != models.ReviewPublished || r.Status != "approved" {
		t.Fatalf("got %+v", r)
	}
}

func TestNormalizationIsIdempotent(t *testing.T) {
	orders := []string{
		`{}`,
		`{"store_order":{"store":{"name":"Acme"}},"status":"Delivered"}`,
		`{"store_name":"Beta","payment_status":"unpaid","total_amount":1250,"created_at":"2024-03-05"}`,
		`{"status":"who knows","date":"sometime"}`,
	}
	for _, js := range orders {
		once := NormalizeOrder(decode(t, js))
		twice := NormalizeOrder(roundTrip(t, once))
		if once != twice {
			t.Errorf("order %s:\n once  %+v\n twice %+v", js, once, twice)
		}
	}

	disputes := []string{
		`{}`,
		`{"status":"Awaiting Documents","amount":"12.5"}`,
		`{"dispute_status":"escalated","customer":{"name":"Ada"},"raised_at":"2024-01-02"}`,
	}
	for _, js := range disputes {
		once := NormalizeDispute(decode(t, js))
		twice := NormalizeDispute(roundTrip(t, once))
		if once != twice {
			t.Errorf("dispute %s:\n once  %+v\n twice %+v", js, once, twice)
		}
	}

	reviews := []string{
		`{}`,
		`{"stars":3,"body":"ok","moderation_status":"flagged","created_at":"2024-01-02T03:04:05Z"}`,
	}
	for _, js := range reviews {
		once := NormalizeReview(decode(t, js))
		twice := NormalizeReview(roundTrip(t, once))
		if once != twice {
			t.Errorf("review %s:\n once  %+v\n twice %+v", js, once, twice)
		}
	}
}

func TestNormalizerOptions(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	n := New(WithCurrency("₦"), WithDateLayout("2006-01-02"), WithLocation(loc))

	o := n.Order(decode(t, `{"price": 2500.5, "created_at": "2024-03-05T23:30:00Z"}`))
	if o.Price != "₦2,500.50" {
		t.Fatalf("Price = %q", o.Price)
	}
	if o.OrderDate != "2024-03-06" {
		t.Fatalf("OrderDate = %q, want 2024-03-06", o.OrderDate)
	}
	if n.FormatMoney(-3) != "-₦3.00" {
		t.Fatalf("FormatMoney(-3) = %q", n.FormatMoney(-3))
	}
}

func TestMoneyKeepsPreformattedText(t *testing.T) {
	o := NormalizeOrder(decode(t, `{"price": "$1,250.00"}`))
	if o.Price != "$1,250.00" {
		t.Fatalf("Price = %q", o.Price)
	}
	o = NormalizeOrder(decode(t, `{"price": "1,250"}`))
	if o.Price != "$1,250.00" {
		t.Fatalf("Price = %q", o.Price)
	}
}

func TestListsPreserveOrder(t *testing.T) {
	raws := []Raw{decode(t, `{"order_no":"1"}`), decode(t, `{"order_no":"2"}`), nil}
	got := New().Orders(raws)
	if len(got) != 3 || got[0].OrderNo != "1" || got[1].OrderNo != "2" || got[2].OrderNo != models.NotAvailable {
		t.Fatalf("got %+v", got)
	}
}
