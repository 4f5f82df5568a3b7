package repository

import (
	"context"
	"os"
	"path/filepath"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/util"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writePricesFile(t *testing.T, content string) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(f, []byte(content), 0o600))
	return f
}

func Test_csvPriceRepositoryHandler_List(t *testing.T) {
	start := util.NewDate(2024, 1, 1)
	end := util.NewDate(2024, 2, 1)

	t.Run("filters symbols and window", func(t *testing.T) {
		f := writePricesFile(t, `date,symbol,price
2023-12-29,AAPL,190.5
2024-01-02,AAPL,185.64
2024-01-02,msft,370.87
2024-01-03,AAPL,184.25
2024-01-03,GOOG,139.69
2024-01-04,MSFT,367.94
`)
		out, err := NewCsvPriceRepository(f).List(context.Background(), []string{"AAPL", "MSFT"}, start, end)
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.AssetPrice{
					{Symbol: "AAPL", Price: 185.64, Date: util.NewDate(2024, 1, 2)},
					{Symbol: "MSFT", Price: 370.87, Date: util.NewDate(2024, 1, 2)},
					{Symbol: "AAPL", Price: 184.25, Date: util.NewDate(2024, 1, 3)},
					{Symbol: "MSFT", Price: 367.94, Date: util.NewDate(2024, 1, 4)},
				},
				out,
			),
		)
	})

	t.Run("unknown ticker fails", func(t *testing.T) {
		f := writePricesFile(t, "date,symbol,price\n2024-01-02,AAPL,185.64\n")
		_, err := NewCsvPriceRepository(f).List(context.Background(), []string{"AAPL", "ZZZZ"}, start, end)
		require.ErrorContains(t, err, "ZZZZ")
	})

	t.Run("bad date fails", func(t *testing.T) {
		f := writePricesFile(t, "date,symbol,price\n01/02/2024,AAPL,185.64\n")
		_, err := NewCsvPriceRepository(f).List(context.Background(), []string{"AAPL"}, start, end)
		require.ErrorContains(t, err, "row 2")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := NewCsvPriceRepository(filepath.Join(t.TempDir(), "missing.csv")).List(context.Background(), []string{"AAPL"}, start, end)
		require.Error(t, err)
	})
}
