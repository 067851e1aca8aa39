// Package models defines the data structures exchanged between the
// FiscalData client, the result assembler, and the output layer.
package models

// RateRecord is one average-interest-rate observation for a single
// Treasury security on a single record date.
type RateRecord struct {
	RecordDate   string `json:"record_date"`   // "YYYY-MM-DD"
	SecurityType string `json:"security_type"` // "Marketable", "Non-marketable", "Interest-bearing Debt"
	SecurityDesc string `json:"security_desc"` // e.g., "Treasury Bills"
	Rate         string `json:"rate"`          // fixed 3 decimals + percent sign, e.g., "4.187%"
}
