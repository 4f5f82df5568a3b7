package calculator

import (
	"fmt"
	"math"
	"portfoliorisk/internal/domain"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

const TradingDaysPerYear = 252

type CalculateMetricsResult struct {
	AnnualizedStdev  float64
	AnnualizedReturn float64
	Observations     int
}

// Combine projects the aligned return matrix through the weight vector,
// giving one portfolio return per date. weights[i] must belong to
// returns.Tickers[i].
func Combine(returns domain.ReturnMatrix, weights []float64) (*domain.PortfolioReturnSeries, error) {
	numTickers := len(returns.Tickers)
	if len(weights) != numTickers || numTickers == 0 {
		return nil, fmt.Errorf("%w: %d weights for %d tickers", domain.ErrWeightMismatch, len(weights), numTickers)
	}

	numDays := len(returns.Returns)
	if numDays == 0 {
		return &domain.PortfolioReturnSeries{
			Dates:   returns.Dates,
			Returns: []float64{},
		}, nil
	}

	data := make([]float64, 0, numDays*numTickers)
	for _, row := range returns.Returns {
		data = append(data, row...)
	}
	returnMatrix := mat.NewDense(numDays, numTickers, data)
	weightVector := mat.NewVecDense(numTickers, append([]float64{}, weights...))

	portfolioReturns := mat.NewVecDense(numDays, nil)
	portfolioReturns.MulVec(returnMatrix, weightVector)

	return &domain.PortfolioReturnSeries{
		Dates:   returns.Dates,
		Returns: portfolioReturns.RawVector().Data,
	}, nil
}

// Annualize scales the mean daily return by 252 and the sample (n-1)
// standard deviation by sqrt(252). A series shorter than two observations
// has no sample deviation and is rejected instead of producing NaN.
func Annualize(portfolioReturns []float64) (*CalculateMetricsResult, error) {
	if len(portfolioReturns) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 daily returns, got %d", domain.ErrInsufficientObservations, len(portfolioReturns))
	}

	mean, err := stats.Mean(portfolioReturns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate mean: %w", err)
	}

	stdev, err := stats.StandardDeviationSample(portfolioReturns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stdev: %w", err)
	}

	return &CalculateMetricsResult{
		AnnualizedReturn: mean * TradingDaysPerYear,
		AnnualizedStdev:  stdev * math.Sqrt(TradingDaysPerYear),
		Observations:     len(portfolioReturns),
	}, nil
}
