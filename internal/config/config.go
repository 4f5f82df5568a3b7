// Package config holds the settings for a single portfoliorisk run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Provider string

const (
	ProviderYahoo  Provider = "yahoo"
	ProviderAlpaca Provider = "alpaca"
	ProviderCsv    Provider = "csv"
)

const (
	DefaultEnvFile    = ".env"
	DefaultAbortInput = "q"

	alpacaKeyEnv    = "APCA_API_KEY_ID"
	alpacaSecretEnv = "APCA_API_SECRET_KEY"
	alpacaUrlEnv    = "APCA_API_DATA_URL"
)

type Config struct {
	Provider   Provider
	PricesFile string
	EnvFile    string

	// AllowEmptyTickers keeps blank entries from the comma split instead of
	// asking for the ticker line again.
	AllowEmptyTickers bool
	// AbortInput ends the run when typed at any prompt. Empty disables it.
	AbortInput string
	Verbose    bool

	AlpacaApiKey    string
	AlpacaApiSecret string
	AlpacaDataUrl   string
}

func Default() Config {
	return Config{
		Provider:   ProviderYahoo,
		EnvFile:    DefaultEnvFile,
		AbortInput: DefaultAbortInput,
	}
}

// LoadEnv reads provider credentials from the environment, loading EnvFile
// first when it exists. A missing default .env is not an error.
func (c *Config) LoadEnv() error {
	if c.EnvFile != "" {
		err := godotenv.Load(c.EnvFile)
		if err != nil && !(errors.Is(err, fs.ErrNotExist) && c.EnvFile == DefaultEnvFile) {
			return fmt.Errorf("failed to load env file %s: %w", c.EnvFile, err)
		}
	}

	if c.AlpacaApiKey == "" {
		c.AlpacaApiKey = os.Getenv(alpacaKeyEnv)
	}
	if c.AlpacaApiSecret == "" {
		c.AlpacaApiSecret = os.Getenv(alpacaSecretEnv)
	}
	if c.AlpacaDataUrl == "" {
		c.AlpacaDataUrl = os.Getenv(alpacaUrlEnv)
	}

	return nil
}

func (c Config) Validate() error {
	switch c.Provider {
	case ProviderYahoo:
	case ProviderAlpaca:
		if c.AlpacaApiKey == "" || c.AlpacaApiSecret == "" {
			return fmt.Errorf("alpaca provider needs %s and %s", alpacaKeyEnv, alpacaSecretEnv)
		}
	case ProviderCsv:
		if c.PricesFile == "" {
			return fmt.Errorf("csv provider needs --prices-file")
		}
	default:
		return fmt.Errorf("unknown provider %q, expected one of yahoo, alpaca, csv", c.Provider)
	}

	if strings.ContainsRune(c.AbortInput, ',') {
		return fmt.Errorf("abort input %q cannot contain a comma", c.AbortInput)
	}

	return nil
}
