package domain

import (
	"math"
	"time"
)

type AssetPrice struct {
	Symbol string
	Price  float64
	Date   time.Time
}

// PriceTable holds closes aligned on the union of trading dates, with one
// column per portfolio position. A close that the provider did not return
// for a date is stored as NaN.
type PriceTable struct {
	Dates   []time.Time
	Tickers []Ticker
	Closes  [][]float64 // [date][position]
}

func (t PriceTable) Has(row, col int) bool {
	return !math.IsNaN(t.Closes[row][col])
}

// ReturnMatrix is the aligned multi-ticker return series. Every row is a
// date on which all positions have a defined daily return.
type ReturnMatrix struct {
	Dates   []time.Time
	Tickers []Ticker
	Returns [][]float64 // [date][position]
}

// Column returns the daily return series for a single position.
func (m ReturnMatrix) Column(col int) []float64 {
	out := make([]float64, len(m.Returns))
	for i, row := range m.Returns {
		out[i] = row[col]
	}
	return out
}

type PortfolioReturnSeries struct {
	Dates   []time.Time
	Returns []float64
}
