package repository

import (
	"context"
	"fmt"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/logger"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// NewYahooPriceRepository reads adjusted daily closes from Yahoo Finance.
func NewYahooPriceRepository() PriceRepository {
	return yahooPriceRepositoryHandler{}
}

type yahooPriceRepositoryHandler struct{}

func (h yahooPriceRepositoryHandler) List(ctx context.Context, symbols []string, start, end time.Time) ([]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)

	prices := []domain.AssetPrice{}
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		symbolPrices, err := h.listSymbol(symbol, start, end)
		if err != nil {
			return nil, err
		}
		log.Debugw("fetched yahoo prices", "symbol", symbol, "count", len(symbolPrices))
		prices = append(prices, symbolPrices...)
	}

	return cleanPrices(symbols, prices, start, end)
}

func (h yahooPriceRepositoryHandler) listSymbol(symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	prices := []domain.AssetPrice{}
	for iter.Next() {
		bar := iter.Bar()
		prices = append(prices, domain.AssetPrice{
			Symbol: symbol,
			Date:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Price:  bar.AdjClose.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return prices, nil
}
