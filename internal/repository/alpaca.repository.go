package repository

import (
	"context"
	"fmt"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/logger"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// NewAlpacaPriceRepository reads split and dividend adjusted daily bars from
// the Alpaca market data API. An empty endpoint uses the client default.
func NewAlpacaPriceRepository(apiKey, apiSecret string, endpoint string) PriceRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &alpacaPriceRepositoryHandler{
		MdClient: mdClient,
	}
}

type alpacaPriceRepositoryHandler struct {
	MdClient *marketdata.Client
}

func (h alpacaPriceRepositoryHandler) List(ctx context.Context, symbols []string, start, end time.Time) ([]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)

	if len(symbols) == 0 {
		return []domain.AssetPrice{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := h.MdClient.GetMultiBars(symbols, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Feed:       marketdata.IEX,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get bars for %v: %w", symbols, err)
	}

	prices := []domain.AssetPrice{}
	for symbol, bars := range results {
		log.Debugw("fetched alpaca bars", "symbol", symbol, "count", len(bars))
		for _, bar := range bars {
			prices = append(prices, domain.AssetPrice{
				Symbol: symbol,
				Price:  bar.Close,
				Date:   bar.Timestamp.UTC(),
			})
		}
	}

	return cleanPrices(symbols, prices, start, end)
}
