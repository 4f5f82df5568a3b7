package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/logger"
	"portfoliorisk/internal/service"
	"portfoliorisk/internal/util"
	"strings"
	"time"
)

// PortfolioAnalysisApp runs one analysis end to end:
// collect tickers and weights, fetch a year of closes, print the result.
type PortfolioAnalysisApp interface {
	Run(ctx context.Context) error
}

type portfolioAnalysisAppHandler struct {
	InputService    service.InputService
	AnalysisService service.AnalysisService
	Out             io.Writer
	Now             func() time.Time
}

func NewPortfolioAnalysisApp(
	inputService service.InputService,
	analysisService service.AnalysisService,
	out io.Writer,
) PortfolioAnalysisApp {
	return &portfolioAnalysisAppHandler{
		InputService:    inputService,
		AnalysisService: analysisService,
		Out:             out,
		Now:             time.Now,
	}
}

func (h *portfolioAnalysisAppHandler) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	profile := domain.GetProfile(ctx)

	_, endSpan := profile.StartNewSpan("collect input")
	tickers, err := h.InputService.CollectTickers(ctx)
	if err != nil {
		return err
	}
	portfolio, err := h.InputService.CollectWeights(ctx, tickers)
	if err != nil {
		return err
	}
	endSpan()

	start, end := util.LookbackWindow(h.Now())
	fmt.Fprintln(h.Out, "\nDownloading 1-Year of stock data...")

	result, err := h.AnalysisService.Analyze(ctx, *portfolio, start, end)
	if errors.Is(err, domain.ErrPriceRetrieval) {
		fmt.Fprintf(h.Out, "Error downloading data: %v\n", err)
		fmt.Fprintln(h.Out, "Please check your tickers and try again.")
		return err
	} else if err != nil {
		return err
	}

	log.Debugw(
		"analysis complete",
		"observations", result.Observations,
		"annualizedReturn", result.AnnualizedReturn,
		"annualizedVolatility", result.AnnualizedVolatility,
	)

	RenderResult(h.Out, *portfolio, *result)
	return nil
}

// RenderResult prints the summary block. Weights are shown as entered,
// statistics as percentages with two decimals.
func RenderResult(out io.Writer, portfolio domain.Portfolio, result domain.AnalysisResult) {
	weights := []string{}
	for _, a := range portfolio.Allocations {
		weights = append(weights, a.Percent.StringFixed(2)+"%")
	}

	fmt.Fprintln(out, "\n==== Portfolio Analysis ====")
	fmt.Fprintf(out, "Tickers: %v\n", portfolio.Tickers())
	fmt.Fprintf(out, "Weights: [%s]\n", strings.Join(weights, " "))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Annualized Return: %.2f%%\n", result.AnnualizedReturn*100)
	fmt.Fprintf(out, "Annualized Volatility (Risk): %.2f%%\n", result.AnnualizedVolatility*100)
}
