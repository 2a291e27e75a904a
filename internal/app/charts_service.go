package app

import (
	"math"

	"github.com/shopspring/decimal"

	"momentum/internal/domain"
)

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	store *Store
}

// NewChartsService creates a ChartsService backed by the given store.
func NewChartsService(store *Store) *ChartsService {
	return &ChartsService{store: store}
}

// ChartPoint is a single bar of the progress chart.
type ChartPoint struct {
	Date   domain.Day `json:"date"`
	Label  string     `json:"label"`
	Weight float64    `json:"weight"`
}

// Chart is the progress chart in a display unit. Min and Max bound the
// value axis.
type Chart struct {
	Unit   domain.Unit  `json:"unit"`
	Points []ChartPoint `json:"points"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
}

// Progress returns chart data for every entry with weights converted to
// unit and rounded to one decimal.
func (s *ChartsService) Progress(unit domain.Unit) Chart {
	entries := s.store.Entries()
	c := Chart{Unit: unit, Points: make([]ChartPoint, 0, len(entries))}
	if len(entries) == 0 {
		return c
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range entries {
		v := domain.ConvertWeight(e.Weight, domain.Kilograms, unit)
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		c.Points = append(c.Points, ChartPoint{
			Date:   e.Date,
			Label:  e.Date.Time().Format("Jan 2"),
			Weight: decimal.NewFromFloat(v).Round(1).InexactFloat64(),
		})
	}
	c.Min, c.Max = AxisRange(lo, hi)
	return c
}

// AxisRange returns the value axis bounds for data between lo and hi:
// 10% headroom on both sides, widened when every value is the same.
func AxisRange(lo, hi float64) (float64, float64) {
	minV := math.Floor(lo * 0.9)
	maxV := math.Ceil(hi * 1.1)
	if lo == hi {
		maxV++
	}
	return minV, maxV
}
