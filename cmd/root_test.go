package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func recentPricesFile(t *testing.T) string {
	t.Helper()
	today := util.ToDate(time.Now())

	rows := []string{"date,symbol,price"}
	for i, p := range []float64{100, 102, 101, 104.03} {
		d := today.AddDate(0, 0, i-5).Format(time.DateOnly)
		rows = append(rows, fmt.Sprintf("%s,SPY,%v", d, p))
	}

	f := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(f, []byte(strings.Join(rows, "\n")+"\n"), 0o600))
	return f
}

func Test_RootCmd(t *testing.T) {
	t.Run("csv provider end to end", func(t *testing.T) {
		out := &bytes.Buffer{}
		root := NewRootCmd(strings.NewReader("spy\n100\n"), out)
		root.SetArgs([]string{"--provider", "csv", "--prices-file", recentPricesFile(t), "--env-file", ""})

		require.NoError(t, root.Execute())
		require.Contains(t, out.String(), "==== Portfolio Analysis ====")
		require.Contains(t, out.String(), "Tickers: [SPY]")
		require.Contains(t, out.String(), "Weights: [100.00%]")
		require.Contains(t, out.String(), "Annualized Volatility (Risk): ")
	})

	t.Run("unknown ticker in csv is a download error", func(t *testing.T) {
		out := &bytes.Buffer{}
		root := NewRootCmd(strings.NewReader("QQQ\n100\n"), out)
		root.SetArgs([]string{"--provider", "csv", "--prices-file", recentPricesFile(t), "--env-file", ""})

		err := root.Execute()
		require.ErrorIs(t, err, domain.ErrPriceRetrieval)
		require.Contains(t, out.String(), "Please check your tickers and try again.")
	})

	t.Run("csv provider needs a file", func(t *testing.T) {
		root := NewRootCmd(strings.NewReader(""), &bytes.Buffer{})
		root.SetArgs([]string{"--provider", "csv", "--env-file", ""})
		require.Error(t, root.Execute())
	})

	t.Run("unknown provider", func(t *testing.T) {
		root := NewRootCmd(strings.NewReader(""), &bytes.Buffer{})
		root.SetArgs([]string{"--provider", "bloomberg", "--env-file", ""})
		require.Error(t, root.Execute())
	})

	t.Run("rejects positional args", func(t *testing.T) {
		root := NewRootCmd(strings.NewReader(""), &bytes.Buffer{})
		root.SetArgs([]string{"AAPL"})
		require.Error(t, root.Execute())
	})
}
