package domain

import "strings"

// Ticker is a case-normalized instrument symbol. Duplicates are allowed
// and count as separate positions.
type Ticker string

func NewTicker(raw string) Ticker {
	return Ticker(strings.ToUpper(strings.TrimSpace(raw)))
}

func (t Ticker) String() string {
	return string(t)
}

func (t Ticker) IsBlank() bool {
	return t == ""
}

// UniqueSymbols returns the distinct symbols in first-seen order, which is
// what gets sent to a price provider.
func UniqueSymbols(tickers []Ticker) []string {
	seen := map[Ticker]bool{}
	symbols := []string{}
	for _, t := range tickers {
		if seen[t] {
			continue
		}
		seen[t] = true
		symbols = append(symbols, t.String())
	}
	return symbols
}
