package service

import (
	"context"
	"fmt"
	"portfoliorisk/internal/calculator"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/logger"
	"portfoliorisk/internal/repository"
	"time"
)

type AnalysisService interface {
	Analyze(ctx context.Context, portfolio domain.Portfolio, start, end time.Time) (*domain.AnalysisResult, error)
}

type analysisServiceHandler struct {
	PriceRepository repository.PriceRepository
}

func NewAnalysisService(priceRepository repository.PriceRepository) AnalysisService {
	return analysisServiceHandler{
		PriceRepository: priceRepository,
	}
}

func (h analysisServiceHandler) Analyze(ctx context.Context, portfolio domain.Portfolio, start, end time.Time) (*domain.AnalysisResult, error) {
	profile := domain.GetProfile(ctx)
	tickers := portfolio.Tickers()

	_, endSpan := profile.StartNewSpan("fetch prices")
	prices, err := h.FetchPrices(ctx, tickers, start, end)
	endSpan()
	if err != nil {
		return nil, err
	}

	_, endSpan = profile.StartNewSpan("compute metrics")
	defer endSpan()

	result, err := Compute(ctx, tickers, portfolio.Weights(), prices)
	if err != nil {
		return nil, err
	}
	result.Start = start
	result.End = end

	return result, nil
}

// FetchPrices asks the provider once per distinct symbol. Any failure is
// reported as ErrPriceRetrieval; partial data is never used.
func (h analysisServiceHandler) FetchPrices(ctx context.Context, tickers []domain.Ticker, start, end time.Time) ([]domain.AssetPrice, error) {
	symbols := domain.UniqueSymbols(tickers)
	logger.FromContext(ctx).Debugw("fetching prices", "symbols", symbols, "start", start, "end", end)

	prices, err := h.PriceRepository.List(ctx, symbols, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPriceRetrieval, err)
	}
	return prices, nil
}

// Compute turns raw closes into the annualized statistics. tickers and
// weights are aligned by position.
func Compute(ctx context.Context, tickers []domain.Ticker, weights []float64, prices []domain.AssetPrice) (*domain.AnalysisResult, error) {
	log := logger.FromContext(ctx)

	table := calculator.BuildPriceTable(tickers, prices)
	returns := calculator.ComputeReturns(table)
	log.Debugw(
		"aligned daily returns",
		"tradingDays", len(table.Dates),
		"returnRows", len(returns.Returns),
		"droppedRows", max(len(table.Dates)-1, 0)-len(returns.Returns),
	)

	series, err := calculator.Combine(returns, weights)
	if err != nil {
		return nil, fmt.Errorf("failed to combine returns: %w", err)
	}

	metrics, err := calculator.Annualize(series.Returns)
	if err != nil {
		return nil, fmt.Errorf("failed to annualize portfolio returns: %w", err)
	}

	return &domain.AnalysisResult{
		AnnualizedReturn:     metrics.AnnualizedReturn,
		AnnualizedVolatility: metrics.AnnualizedStdev,
		Observations:         metrics.Observations,
	}, nil
}
