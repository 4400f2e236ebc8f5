package models

import "time"

// ExportJob is one row of the export audit ledger.
type ExportJob struct {
	ID         string    `json:"id"`
	OperatorID string    `json:"operator_id"`
	Domain     string    `json:"domain"`
	Period     string    `json:"period"`
	Tab        string    `json:"tab,omitempty"`
	Rows       int       `json:"rows"`
	Location   string    `json:"location,omitempty"` // storage URL, empty for direct downloads
	CreatedAt  time.Time `json:"created_at"`
}
