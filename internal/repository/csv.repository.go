package repository

import (
	"context"
	"fmt"
	"os"
	"portfoliorisk/internal/domain"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// NewCsvPriceRepository serves closes from a local file with the columns
// date,symbol,price. Useful offline and for reproducible runs.
func NewCsvPriceRepository(path string) PriceRepository {
	return csvPriceRepositoryHandler{
		Path: path,
	}
}

type csvPriceRepositoryHandler struct {
	Path string
}

type csvPriceRow struct {
	Date   string  `csv:"date"`
	Symbol string  `csv:"symbol"`
	Price  float64 `csv:"price"`
}

func (h csvPriceRepositoryHandler) List(ctx context.Context, symbols []string, start, end time.Time) ([]domain.AssetPrice, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open prices file: %w", err)
	}
	defer f.Close()

	rows := []csvPriceRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse prices file %s: %w", h.Path, err)
	}

	wanted := map[string]bool{}
	for _, s := range symbols {
		wanted[s] = true
	}

	prices := []domain.AssetPrice{}
	for i, row := range rows {
		symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if !wanted[symbol] {
			continue
		}
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(row.Date))
		if err != nil {
			return nil, fmt.Errorf("invalid date on row %d of %s: %w", i+2, h.Path, err)
		}
		prices = append(prices, domain.AssetPrice{
			Symbol: symbol,
			Price:  row.Price,
			Date:   date,
		})
	}

	return cleanPrices(symbols, prices, start, end)
}
