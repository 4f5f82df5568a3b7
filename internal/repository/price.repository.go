package repository

import (
	"context"
	"fmt"
	"math"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/util"
	"sort"
	"time"
)

//go:generate mockgen -source=price.repository.go -destination=mocks/mock_price.repository.go -package=mock_repository

// PriceRepository is the single capability the analyzer needs from a market
// data source: daily closes for a set of symbols in [start, end).
// Implementations return an error rather than a partial result.
type PriceRepository interface {
	List(ctx context.Context, symbols []string, start, end time.Time) ([]domain.AssetPrice, error)
}

// cleanPrices drops rows outside the window or with an unusable close and
// fails if any requested symbol ends up with no prices at all
func cleanPrices(symbols []string, prices []domain.AssetPrice, start, end time.Time) ([]domain.AssetPrice, error) {
	countBySymbol := map[string]int{}
	out := []domain.AssetPrice{}
	for _, p := range prices {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
			continue
		}
		p.Date = util.ToDate(p.Date)
		if !util.InWindow(p.Date, start, end) {
			continue
		}
		countBySymbol[p.Symbol]++
		out = append(out, p)
	}

	for _, symbol := range symbols {
		if countBySymbol[symbol] == 0 {
			return nil, fmt.Errorf("no prices found for %s between %s and %s", symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}
