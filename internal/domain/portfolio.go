package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	FullAllocation = decimal.NewFromInt(100)

	// how far the entered total may sit from 100 and still count as fully invested
	allocationTolerance = decimal.RequireFromString("0.01")
)

// Allocation is one accepted weight, still in percent as entered.
type Allocation struct {
	Ticker  Ticker
	Percent decimal.Decimal
}

// Portfolio keeps allocations in entry order. Position i of Tickers() and
// Weights() always refer to the same allocation.
type Portfolio struct {
	Allocations []Allocation
}

func NewPortfolio() *Portfolio {
	return &Portfolio{
		Allocations: []Allocation{},
	}
}

func (p *Portfolio) Add(ticker Ticker, percent decimal.Decimal) {
	p.Allocations = append(p.Allocations, Allocation{
		Ticker:  ticker,
		Percent: percent,
	})
}

func (p Portfolio) Tickers() []Ticker {
	tickers := make([]Ticker, len(p.Allocations))
	for i, a := range p.Allocations {
		tickers[i] = a.Ticker
	}
	return tickers
}

// Weights converts the entered percentages to fractions. They are not
// rescaled, so a 90% portfolio keeps weights summing to 0.9.
func (p Portfolio) Weights() []float64 {
	weights := make([]float64, len(p.Allocations))
	for i, a := range p.Allocations {
		weights[i] = a.Percent.Div(FullAllocation).InexactFloat64()
	}
	return weights
}

func (p Portfolio) TotalPercent() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Percent)
	}
	return total
}

func (p Portfolio) Remaining() decimal.Decimal {
	return FullAllocation.Sub(p.TotalPercent())
}

func (p Portfolio) FullyInvested() bool {
	return p.TotalPercent().Sub(FullAllocation).Abs().LessThanOrEqual(allocationTolerance)
}

// AnalysisResult holds the annualized statistics for one run. Both values
// are fractions, not percentages.
type AnalysisResult struct {
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	Observations         int
	Start                time.Time
	End                  time.Time
}
