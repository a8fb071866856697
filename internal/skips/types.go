// Package skips fetches the skip-hire catalogue for a location and computes
// VAT-inclusive display prices.
package skips

// SkipOption is one hireable skip as delivered by the catalogue endpoint.
// Instances are read-only once decoded; a new fetch replaces the whole
// batch. Items flagged Forbidden are still returned to callers: the
// catalogue decides availability, this client does not second-guess it.
type SkipOption struct {
	ID             int     `json:"id"`
	Size           int     `json:"size"`
	HirePeriodDays int     `json:"hire_period_days"`
	PriceBeforeVAT float64 `json:"price_before_vat"`
	VATPercent     float64 `json:"vat"`
	AllowedOnRoad  bool    `json:"allowed_on_road"`
	AllowsHeavy    bool    `json:"allows_heavy_waste"`
	Forbidden      bool    `json:"forbidden"`

	// Pass-through fields the endpoint sends alongside the pricing data.
	Postcode      string   `json:"postcode"`
	Area          string   `json:"area"`
	TransportCost *float64 `json:"transport_cost"`
	PerTonneCost  *float64 `json:"per_tonne_cost"`
}
