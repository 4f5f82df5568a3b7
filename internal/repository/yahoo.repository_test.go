package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// hits the live Yahoo endpoint, opt in with PORTFOLIORISK_LIVE_TESTS=1
func Test_yahooPriceRepositoryHandler_List(t *testing.T) {
	if os.Getenv("PORTFOLIORISK_LIVE_TESTS") == "" {
		t.Skip()
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)
	prices, err := NewYahooPriceRepository().List(context.Background(), []string{"AAPL", "MSFT"}, start, end)
	require.NoError(t, err)
	require.NotEmpty(t, prices)

	_, err = NewYahooPriceRepository().List(context.Background(), []string{"NOT-A-REAL-TICKER-123"}, start, end)
	require.Error(t, err)
}
