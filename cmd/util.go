package cmd

import (
	"fmt"
	"io"
	"portfoliorisk/internal/app"
	"portfoliorisk/internal/config"
	"portfoliorisk/internal/repository"
	"portfoliorisk/internal/service"
)

func NewPriceRepository(cfg config.Config) (repository.PriceRepository, error) {
	switch cfg.Provider {
	case config.ProviderYahoo:
		return repository.NewYahooPriceRepository(), nil
	case config.ProviderAlpaca:
		return repository.NewAlpacaPriceRepository(cfg.AlpacaApiKey, cfg.AlpacaApiSecret, cfg.AlpacaDataUrl), nil
	case config.ProviderCsv:
		return repository.NewCsvPriceRepository(cfg.PricesFile), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

func InitializeDependencies(cfg config.Config, in io.Reader, out io.Writer) (app.PortfolioAnalysisApp, error) {
	priceRepository, err := NewPriceRepository(cfg)
	if err != nil {
		return nil, err
	}

	inputService := service.NewInputService(in, out, cfg.AllowEmptyTickers, cfg.AbortInput)
	analysisService := service.NewAnalysisService(priceRepository)

	return app.NewPortfolioAnalysisApp(inputService, analysisService, out), nil
}
