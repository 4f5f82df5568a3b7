package calculator

import (
	"math"
	"portfoliorisk/internal/domain"
	"sort"
	"time"
)

// BuildPriceTable lines up closes on the union of all trading dates. Each
// ticker position gets its own column, so a duplicated ticker shows up
// twice with identical data. Dates a symbol did not trade are NaN.
func BuildPriceTable(tickers []domain.Ticker, prices []domain.AssetPrice) domain.PriceTable {
	priceBySymbol := map[string]map[time.Time]float64{}
	dateSet := map[time.Time]bool{}
	for _, p := range prices {
		if _, ok := priceBySymbol[p.Symbol]; !ok {
			priceBySymbol[p.Symbol] = map[time.Time]float64{}
		}
		priceBySymbol[p.Symbol][p.Date] = p.Price
		dateSet[p.Date] = true
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	closes := make([][]float64, len(dates))
	for i, d := range dates {
		row := make([]float64, len(tickers))
		for j, ticker := range tickers {
			price, ok := priceBySymbol[ticker.String()][d]
			if !ok {
				price = math.NaN()
			}
			row[j] = price
		}
		closes[i] = row
	}

	return domain.PriceTable{
		Dates:   dates,
		Tickers: tickers,
		Closes:  closes,
	}
}

// ComputeReturns turns the price table into daily fractional returns
// (p[t] - p[t-1]) / p[t-1] between consecutive table rows. The first row has
// no prior close and is dropped, as is every row where any position is
// missing either close. Gaps are not forward filled.
func ComputeReturns(table domain.PriceTable) domain.ReturnMatrix {
	out := domain.ReturnMatrix{
		Dates:   []time.Time{},
		Tickers: table.Tickers,
		Returns: [][]float64{},
	}

	for i := 1; i < len(table.Dates); i++ {
		row := make([]float64, len(table.Tickers))
		complete := true
		for j := range table.Tickers {
			if !table.Has(i, j) || !table.Has(i-1, j) {
				complete = false
				break
			}
			prev := table.Closes[i-1][j]
			row[j] = (table.Closes[i][j] - prev) / prev
		}
		if !complete {
			continue
		}
		out.Dates = append(out.Dates, table.Dates[i])
		out.Returns = append(out.Returns, row)
	}

	return out
}
