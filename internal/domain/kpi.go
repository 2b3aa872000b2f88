package domain

import "time"

// KPISnapshot is one day's metric readings for a store. Metric names are
// unique by construction of the map; values are finite (enforced at decode).
type KPISnapshot struct {
	ID        string
	StoreCode string
	Date      time.Time
	Metrics   map[string]float64
}

// Metric returns the named metric value, or 0 when absent.
func (k *KPISnapshot) Metric(name string) float64 {
	return k.Metrics[name]
}
