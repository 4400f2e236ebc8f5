package live

import "time"

const (
	EventWelcome       = "welcome"
	EventTabsSnapshot  = "tabs.snapshot"
	EventExportCreated = "export.created"
)

// TabsSnapshot carries the badge counts of one domain after a normalize call,
// so every open dashboard can refresh its tab headers.
type TabsSnapshot struct {
	Type   string         `json:"type"`
	Domain string         `json:"domain"`
	Period string         `json:"period"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
	At     time.Time      `json:"at"`
}

type ExportCreated struct {
	Type       string    `json:"type"`
	ExportID   string    `json:"export_id"`
	OperatorID string    `json:"operator_id,omitempty"`
	Domain     string    `json:"domain"`
	Rows       int       `json:"rows"`
	At         time.Time `json:"at"`
}
