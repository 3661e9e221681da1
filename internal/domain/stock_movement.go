package domain

// StockMovement is one inbound or outbound inventory event, produced
// transiently when building the stock-movement report. Never persisted.
type StockMovement struct {
	SourceID     int64   `json:"source_id"`
	Inbound      bool    `json:"inbound"`
	Date         Day     `json:"date"`
	Counterparty string  `json:"counterparty"`
	Product      Product `json:"product"`
	Quantity     int     `json:"quantity"`
}
