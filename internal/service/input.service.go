package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/logger"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tickerPrompt      = "Enter the stock tickers, separated by a comma (e.g., AAPL,MSFT,GOOGL): "
	weightPrompt      = "Enter the weight for %s (as a %%): "
	invalidWeightMsg  = "Invalid input. Please enter a number (e.g., 40)."
	nonPositiveMsg    = "Weight must be greater than 0."
	budgetExceededMsg = "Error: Weights cannot exceed 100%%. You only have %s%% remaining.\n"
	emptyTickerMsg    = "Tickers cannot be blank. Please remove any extra commas."
	noTickersMsg      = "Please enter at least one ticker."
)

// InputService runs the interactive dialogue that produces a portfolio.
// Every prompt returns domain.ErrCollectionAborted when the operator types
// the abort token or input ends.
type InputService interface {
	CollectTickers(ctx context.Context) ([]domain.Ticker, error)
	CollectWeights(ctx context.Context, tickers []domain.Ticker) (*domain.Portfolio, error)
}

type inputServiceHandler struct {
	Scanner           *bufio.Scanner
	Out               io.Writer
	AllowEmptyTickers bool
	AbortInput        string
}

func NewInputService(in io.Reader, out io.Writer, allowEmptyTickers bool, abortInput string) InputService {
	return inputServiceHandler{
		Scanner:           bufio.NewScanner(in),
		Out:               out,
		AllowEmptyTickers: allowEmptyTickers,
		AbortInput:        strings.TrimSpace(abortInput),
	}
}

// ParseTickers splits a comma separated line into normalized tickers.
// Blank tokens, like the one left by a trailing comma, fail with
// ErrEmptyTicker unless allowEmpty is set. A line with no real ticker at
// all is always rejected.
func ParseTickers(raw string, allowEmpty bool) ([]domain.Ticker, error) {
	tickers := []domain.Ticker{}
	numBlank := 0
	for _, token := range strings.Split(raw, ",") {
		t := domain.NewTicker(token)
		if t.IsBlank() {
			numBlank++
		}
		tickers = append(tickers, t)
	}

	if numBlank == len(tickers) {
		return nil, domain.ErrNoTickers
	}
	if numBlank > 0 && !allowEmpty {
		return nil, fmt.Errorf("%w: found %d blank entries in %q", domain.ErrEmptyTicker, numBlank, raw)
	}

	return tickers, nil
}

// ValidateWeight parses an entered percentage and checks it against what
// has already been allocated. The budget comparison is exact.
func ValidateWeight(raw string, allocated decimal.Decimal) (decimal.Decimal, error) {
	weight, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidWeightInput, raw)
	}
	if !weight.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: got %s", domain.ErrNonPositiveWeight, weight.String())
	}
	if allocated.Add(weight).GreaterThan(domain.FullAllocation) {
		return decimal.Zero, fmt.Errorf("%w: %s on top of %s", domain.ErrWeightBudgetExceeded, weight.String(), allocated.String())
	}
	return weight, nil
}

func (h inputServiceHandler) CollectTickers(ctx context.Context) ([]domain.Ticker, error) {
	log := logger.FromContext(ctx)

	for {
		fmt.Fprint(h.Out, tickerPrompt)
		line, err := h.readLine(ctx)
		if err != nil {
			return nil, err
		}

		tickers, err := ParseTickers(line, h.AllowEmptyTickers)
		if errors.Is(err, domain.ErrNoTickers) {
			fmt.Fprintln(h.Out, noTickersMsg)
			continue
		} else if errors.Is(err, domain.ErrEmptyTicker) {
			log.Debugw("rejected ticker line", "error", err)
			fmt.Fprintln(h.Out, emptyTickerMsg)
			continue
		} else if err != nil {
			return nil, err
		}

		fmt.Fprintf(h.Out, "You selected these tickers: %v\n", tickers)
		return tickers, nil
	}
}

func (h inputServiceHandler) CollectWeights(ctx context.Context, tickers []domain.Ticker) (*domain.Portfolio, error) {
	log := logger.FromContext(ctx)
	portfolio := domain.NewPortfolio()

	for _, ticker := range tickers {
		weight, err := h.collectWeight(ctx, ticker, portfolio)
		if err != nil {
			return nil, err
		}
		portfolio.Add(ticker, weight)
		log.Debugw("accepted weight", "ticker", ticker, "percent", weight.String())
	}

	if portfolio.FullyInvested() {
		fmt.Fprintln(h.Out, "\nWeights add up to 100%. Great!")
	} else {
		fmt.Fprintf(h.Out, "\nWarning: Your weights only add up to %s%%.\n", portfolio.TotalPercent().StringFixed(2))
		fmt.Fprintln(h.Out, "This is NOT a fully invested portfolio. Proceeding anyway.")
	}

	return portfolio, nil
}

// collectWeight re-prompts for the same ticker until a weight is accepted.
func (h inputServiceHandler) collectWeight(ctx context.Context, ticker domain.Ticker, portfolio *domain.Portfolio) (decimal.Decimal, error) {
	for {
		fmt.Fprintf(h.Out, weightPrompt, ticker)
		line, err := h.readLine(ctx)
		if err != nil {
			return decimal.Zero, err
		}

		weight, err := ValidateWeight(line, portfolio.TotalPercent())
		switch {
		case err == nil:
			return weight, nil
		case errors.Is(err, domain.ErrInvalidWeightInput):
			fmt.Fprintln(h.Out, invalidWeightMsg)
		case errors.Is(err, domain.ErrNonPositiveWeight):
			fmt.Fprintln(h.Out, nonPositiveMsg)
		case errors.Is(err, domain.ErrWeightBudgetExceeded):
			fmt.Fprintf(h.Out, budgetExceededMsg, portfolio.Remaining().StringFixed(2))
		default:
			return decimal.Zero, err
		}
	}
}

// readLine waits for the next line or for ctx to end, whichever is first.
// A cancelled read leaves the scanner goroutine blocked until the process
// exits; the scanner is never used again after that.
func (h inputServiceHandler) readLine(ctx context.Context) (string, error) {
	scanned := make(chan bool, 1)
	go func() {
		scanned <- h.Scanner.Scan()
	}()

	var ok bool
	select {
	case <-ctx.Done():
		fmt.Fprintln(h.Out)
		return "", fmt.Errorf("%w: %w", domain.ErrCollectionAborted, ctx.Err())
	case ok = <-scanned:
	}

	if !ok {
		if err := h.Scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(h.Out)
		return "", fmt.Errorf("%w: end of input", domain.ErrCollectionAborted)
	}

	line := strings.TrimSpace(h.Scanner.Text())
	if h.AbortInput != "" && strings.EqualFold(line, h.AbortInput) {
		return "", fmt.Errorf("%w: operator entered %q", domain.ErrCollectionAborted, line)
	}
	return line, nil
}
