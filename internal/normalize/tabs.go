package normalize

import (
	"strings"

	"adminhub/pkg/models"
)

// Record is any canonical record exposing its fields by JSON name.
type Record interface {
	Fields() map[string]any
}

// Tagged is a canonical record carrying a status tag.
type Tagged interface {
	Record
	Tag() models.StatusTag
}

// TabAll is the tab that shows every record.
const TabAll = "all"

// Tabs lists the tab ids of a domain: "all" then each declared tag.
func Tabs(d Domain) []string {
	t, ok := TaxonomyFor(d)
	if !ok {
		return []string{TabAll}
	}
	tags := t.Tags()
	out := make([]string, 0, len(tags)+1)
	out = append(out, TabAll)
	for _, tag := range tags {
		out = append(out, string(tag))
	}
	return out
}

// TabTag resolves a tab selector to a tag. Tag ids match directly; any other
// text ("Out for delivery") goes through the same status table the records
// were tagged with, so badges and tabs cannot disagree.
func TabTag(d Domain, tab string) (models.StatusTag, bool) {
	key := strings.ToLower(strings.TrimSpace(tab))
	if key == "" || key == TabAll {
		return "", false
	}
	t, ok := TaxonomyFor(d)
	if !ok {
		return models.StatusUnknown, true
	}
	if tag := models.StatusTag(key); t.Has(tag) {
		return tag, true
	}
	return t.Map(tab), true
}

// FilterTab keeps the records belonging to tab. An empty tab or "all"
// returns records unchanged.
func FilterTab[T Tagged](records []T, d Domain, tab string) []T {
	tag, filtered := TabTag(d, tab)
	if !filtered {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.Tag() == tag {
			out = append(out, r)
		}
	}
	return out
}

// CountTabs returns the badge count of every tab of the domain, "all"
// included. Tabs with no records are present with a zero count.
func CountTabs[T Tagged](records []T, d Domain) map[string]int {
	counts := make(map[string]int)
	for _, tab := range Tabs(d) {
		counts[tab] = 0
	}
	counts[TabAll] = len(records)
	for _, r := range records {
		counts[string(r.Tag())]++
	}
	return counts
}
