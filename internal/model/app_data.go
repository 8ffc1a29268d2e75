package model

import "github.com/guregu/null/v6"

// AppData is the snapshot enriched with the per-share metrics and quality flags
// consumed by the valuation front end.
type AppData struct {
	Snapshot

	EarningsPerShare  null.Float  `json:"earnings_per_share"`
	BookValuePerShare null.Float  `json:"book_value_per_share"`
	DataQuality       DataQuality `json:"data_quality"`
}

// DataQuality flags which parts of the snapshot can be relied on.
type DataQuality struct {
	HasRealPrice  bool `json:"has_real_price"`
	HasFinancials bool `json:"has_financials"`
	PEReliable    bool `json:"pe_reliable"`
	PBReliable    bool `json:"pb_reliable"`
	VCIData       bool `json:"vci_data"`
}
