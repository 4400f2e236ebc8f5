// Package dashboard answers one dashboard screen request: unwrap the raw
// payload, normalize it, narrow it to a period and a status tab, and count
// the tab badges.
package dashboard

import (
	"io"
	"strings"
	"time"

	"adminhub/internal/apperr"
	"adminhub/internal/normalize"
	"adminhub/pkg/models"
)

// Query selects what a screen shows. Period is the rolling window; Tab is a
// tag id or label, empty for all records.
type Query struct {
	Domain normalize.Domain
	Period normalize.Period
	Tab    string
}

// ParseQuery validates the wire values of a request. An unknown domain is a
// not-found error and a tab that maps to no status is invalid; an unknown
// period label means all time.
func ParseQuery(domain, period, tab string) (Query, error) {
	d, ok := normalize.ParseDomain(domain)
	if !ok {
		return Query{}, apperr.NotFoundErr("unknown domain: " + domain)
	}
	tab = strings.TrimSpace(tab)
	if tag, filtered := normalize.TabTag(d, tab); filtered && tag == models.StatusUnknown &&
		!strings.EqualFold(tab, string(models.StatusUnknown)) {
		return Query{}, apperr.InvalidErr("unknown tab: " + tab)
	}
	p, _ := normalize.ParsePeriod(period)
	return Query{Domain: d, Period: p, Tab: tab}, nil
}

// View is a normalized, filtered screen. Counts cover the period-filtered
// records of every tab; Items and Total only the selected tab.
type View struct {
	Domain normalize.Domain `json:"domain"`
	Period normalize.Period `json:"period"`
	Tab    string           `json:"tab"`
	Items  any              `json:"items"`
	Counts map[string]int   `json:"counts"`
	Total  int              `json:"total"`

	project func(headers []string) [][]string
}

// Rows projects the selected items onto headers.
func (v View) Rows(headers []string) [][]string {
	if v.project == nil {
		return nil
	}
	return v.project(headers)
}

// WriteCSV exports the selected items. Nil headers mean the domain defaults.
func (v View) WriteCSV(w io.Writer, headers []string) error {
	if len(headers) == 0 {
		headers = normalize.DefaultHeaders(v.Domain)
	}
	return normalize.WriteCSV(w, headers, v.Rows(headers))
}

// Filename names a download, e.g. "orders-last-month-delivered.csv".
func (v View) Filename() string {
	parts := []string{string(v.Domain), string(v.Period)}
	if v.Tab != "" && v.Tab != normalize.TabAll {
		parts = append(parts, v.Tab)
	}
	words := strings.FieldsFunc(strings.ToLower(strings.Join(parts, "-")), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-") + ".csv"
}

type Service struct {
	Normalizer *normalize.Normalizer
	Now        func() time.Time
}

func NewService(n *normalize.Normalizer) *Service {
	if n == nil {
		n = normalize.New()
	}
	return &Service{Normalizer: n, Now: time.Now}
}

// View builds the screen for q out of a decoded payload (a bare array or any
// known envelope).
func (s *Service) View(q Query, payload any) (View, error) {
	if payload == nil {
		return View{}, apperr.InvalidErr("payload required")
	}
	raws := normalize.ExtractList(payload, nil)
	now := s.Now().In(s.Normalizer.Location())

	switch q.Domain {
	case normalize.DomainOrders:
		return build(s.Normalizer.Orders(raws), q, now), nil
	case normalize.DomainDisputes:
		return build(s.Normalizer.Disputes(raws), q, now), nil
	case normalize.DomainReviews:
		return build(s.Normalizer.Reviews(raws), q, now), nil
	default:
		return View{}, apperr.NotFoundErr("unknown domain: " + string(q.Domain))
	}
}

func build[T normalize.Tagged](records []T, q Query, now time.Time) View {
	inPeriod := normalize.FilterPeriod(records, q.Period, normalize.DateFields(q.Domain), now)
	items := normalize.FilterTab(inPeriod, q.Domain, q.Tab)

	tab := q.Tab
	if tab == "" {
		tab = normalize.TabAll
	}
	return View{
		Domain: q.Domain,
		Period: q.Period,
		Tab:    tab,
		Items:  items,
		Counts: normalize.CountTabs(inPeriod, q.Domain),
		Total:  len(items),
		project: func(headers []string) [][]string {
			return normalize.Project(items, headers)
		},
	}
}
