package calculator

import (
	"math"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/util"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func Test_Combine(t *testing.T) {
	dates := []time.Time{
		util.NewDate(2024, 1, 3),
		util.NewDate(2024, 1, 4),
		util.NewDate(2024, 1, 5),
	}
	returns := domain.ReturnMatrix{
		Dates:   dates,
		Tickers: []domain.Ticker{"AAPL", "MSFT"},
		Returns: [][]float64{
			{0.02, -0.02},
			{-0.00980392156862745, 0.01},
			{0.03, 0.02},
		},
	}

	t.Run("weighted sum per date", func(t *testing.T) {
		out, err := Combine(returns, []float64{0.4, 0.6})
		require.NoError(t, err)
		require.Equal(t, dates, out.Dates)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]float64{-0.004, 0.002078431372549, 0.024},
				out.Returns,
				cmpopts.EquateApprox(0, 1e-12),
			),
		)
	})

	t.Run("zero weights give zero returns", func(t *testing.T) {
		out, err := Combine(returns, []float64{0, 0})
		require.NoError(t, err)
		require.Equal(t, []float64{0, 0, 0}, out.Returns)
	})

	t.Run("single asset at full weight is the asset itself", func(t *testing.T) {
		single := domain.ReturnMatrix{
			Dates:   dates,
			Tickers: []domain.Ticker{"AAPL"},
			Returns: [][]float64{{0.02}, {-0.00980392156862745}, {0.03}},
		}
		out, err := Combine(single, []float64{1})
		require.NoError(t, err)
		require.Equal(t, single.Column(0), out.Returns)
	})

	t.Run("weights are not renormalized", func(t *testing.T) {
		out, err := Combine(returns, []float64{0.3, 0.6})
		require.NoError(t, err)
		require.InDelta(t, 0.3*0.02+0.6*-0.02, out.Returns[0], 1e-15)
	})

	t.Run("weight count must match tickers", func(t *testing.T) {
		_, err := Combine(returns, []float64{1})
		require.ErrorIs(t, err, domain.ErrWeightMismatch)
	})

	t.Run("no aligned dates", func(t *testing.T) {
		out, err := Combine(domain.ReturnMatrix{Tickers: []domain.Ticker{"AAPL"}}, []float64{1})
		require.NoError(t, err)
		require.Empty(t, out.Returns)
	})
}

func Test_Annualize(t *testing.T) {
	t.Run("known series", func(t *testing.T) {
		out, err := Annualize([]float64{0.01, -0.02, 0.03})
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				&CalculateMetricsResult{
					AnnualizedReturn: 1.68,
					AnnualizedStdev:  0.3994996871087636,
					Observations:     3,
				},
				out,
				cmp.Comparer(func(i, j float64) bool {
					return math.Abs(i-j) < 1e-9
				}),
			),
		)
	})

	t.Run("identical returns have zero volatility", func(t *testing.T) {
		r := 0.0015
		out, err := Annualize([]float64{r, r, r, r, r})
		require.NoError(t, err)
		require.InDelta(t, r*252, out.AnnualizedReturn, 1e-12)
		require.InDelta(t, 0, out.AnnualizedStdev, 1e-12)
	})

	t.Run("fewer than two observations", func(t *testing.T) {
		_, err := Annualize([]float64{0.01})
		require.ErrorIs(t, err, domain.ErrInsufficientObservations)

		_, err = Annualize([]float64{})
		require.ErrorIs(t, err, domain.ErrInsufficientObservations)
	})

	t.Run("two asset portfolio end to end", func(t *testing.T) {
		dates := []time.Time{
			util.NewDate(2024, 1, 2),
			util.NewDate(2024, 1, 3),
			util.NewDate(2024, 1, 4),
			util.NewDate(2024, 1, 5),
		}
		prices := append(
			pricesFor("AAPL", dates, []float64{100, 102, 101, 104.03}),
			pricesFor("MSFT", dates, []float64{50, 49, 49.49, 50.4798})...,
		)
		returns := ComputeReturns(BuildPriceTable([]domain.Ticker{"AAPL", "MSFT"}, prices))
		series, err := Combine(returns, []float64{0.4, 0.6})
		require.NoError(t, err)

		out, err := Annualize(series.Returns)
		require.NoError(t, err)
		require.InDelta(t, 1.8545882352941152, out.AnnualizedReturn, 1e-9)
		require.InDelta(t, 0.2338014220650308, out.AnnualizedStdev, 1e-9)
	})
}
