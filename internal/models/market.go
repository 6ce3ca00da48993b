package models

import "time"

// CommodityQuote is a spot quote for one tracked commodity.
type CommodityQuote struct {
	Commodity  string    `json:"commodity"`
	Price      float64   `json:"price"`
	Unit       string    `json:"unit"`
	Variation  float64   `json:"variation"` // signed day-over-day %
	Source     string    `json:"source"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// PricePoint is one day of a commodity price history.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}
