package normalize

import (
	"encoding/json"
	"strings"
	"time"
)

// Period is a named rolling time window as shown in the dashboard pickers.
type Period string

const (
	Today         Period = "Today"
	ThisWeek      Period = "This Week"
	LastMonth     Period = "Last Month"
	LastSixMonths Period = "Last 6 Months"
	LastYear      Period = "Last Year"
	AllTime       Period = "All time"
)

// Periods lists the labels from the narrowest window to the widest.
var Periods = []Period{Today, ThisWeek, LastMonth, LastSixMonths, LastYear, AllTime}

// ParsePeriod accepts the wire labels case-insensitively, plus their
// snake/kebab forms ("last_6_months"). Anything else resolves to AllTime
// with ok == false.
func ParsePeriod(s string) (Period, bool) {
	key := strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(s))), " ")
	if key == "" {
		return AllTime, false
	}
	for _, p := range Periods {
		if strings.ToLower(string(p)) == key {
			return p, true
		}
	}
	return AllTime, false
}

// Window is an inclusive [Start, End] range. An unbounded window contains
// every instant.
type Window struct {
	Start     time.Time
	End       time.Time
	Unbounded bool
}

// Contains reports whether t lies inside the window, both ends inclusive.
func (w Window) Contains(t time.Time) bool {
	if w.Unbounded {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFor turns a period label into a concrete window ending at now.
// "Today" starts at midnight of now's calendar day in now's location;
// "This Week" starts exactly seven days before now. Month and year windows
// start at midnight of the same calendar day that many months or years back,
// so January minus one month is December of the previous year.
func WindowFor(p Period, now time.Time) Window {
	y, m, d := now.Date()
	loc := now.Location()

	var start time.Time
	switch p {
	case Today:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	case ThisWeek:
		start = now.AddDate(0, 0, -7)
	case LastMonth:
		start = time.Date(y, m-1, d, 0, 0, 0, 0, loc)
	case LastSixMonths:
		start = time.Date(y, m-6, d, 0, 0, 0, 0, loc)
	case LastYear:
		start = time.Date(y-1, m, d, 0, 0, 0, 0, loc)
	default:
		return Window{Unbounded: true}
	}
	return Window{Start: start, End: now}
}

// FilterPeriod keeps the records whose date, resolved through
// dateCandidates, falls inside the period's window. Records with no date
// or an unparseable one are dropped. AllTime returns records untouched,
// unparseable dates included, since no temporal predicate applies.
func FilterPeriod[T Record](records []T, p Period, dateCandidates []string, now time.Time) []T {
	w := WindowFor(p, now)
	if w.Unbounded {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		t, ok := ParseDate(Resolve(r.Fields(), dateCandidates, nil), now.Location())
		if ok && w.Contains(t) {
			out = append(out, r)
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"Jan 02, 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate interprets v as an instant. Strings are tried against the known
// backend layouts; layouts without a zone are read in loc. Numbers are unix
// seconds, or milliseconds when too large to be seconds.
func ParseDate(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return x, !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case json.Number, float64, float32, int, int64, int32:
		f, ok := toNumber(x)
		if !ok || f <= 0 {
			return time.Time{}, false
		}
		if f >= 1e12 {
			return time.UnixMilli(int64(f)).In(loc), true
		}
		return time.Unix(int64(f), 0).In(loc), true
	default:
		return time.Time{}, false
	}
}
