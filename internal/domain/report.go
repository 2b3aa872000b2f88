package domain

import "time"

// StoreReport is a store's end-of-day report. TotalSales is first-class;
// further numeric fields are addressable by stable key via Metrics.
type StoreReport struct {
	ID         string
	StoreCode  string
	Date       time.Time
	TotalSales float64
	Metrics    map[string]float64
}
