package config

import (
	"encoding/json"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CurrencyConfig describes one supported currency for display purposes.
type CurrencyConfig struct {
	Code     string `json:"code"`     // ISO-like, e.g. "USD"
	Symbol   string `json:"symbol"`   // e.g. "$"
	Decimals int    `json:"decimals"` // e.g. 2 for USD, 0 for IDR
}

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// DefaultCurrency is the single reporting currency every cross-currency
	// aggregate is normalized into.
	DefaultCurrency string
	// RoundDecimals is the decimal precision of final aggregate figures.
	RoundDecimals int
	// FirstDayOfWeek follows time.Weekday numbering (0 = Sunday).
	FirstDayOfWeek time.Weekday
	// Currencies is the symbol/decimals table used by display formatting.
	Currencies []CurrencyConfig
}

// CurrencyByCode looks up a configured currency by its normalized code.
func (c *Config) CurrencyByCode(code string) (CurrencyConfig, bool) {
	for _, cur := range c.Currencies {
		if cur.Code == code {
			return cur, true
		}
	}
	return CurrencyConfig{}, false
}

func defaultCurrencies() []CurrencyConfig {
	return []CurrencyConfig{
		{Code: "USD", Symbol: "$", Decimals: 2},
		{Code: "EUR", Symbol: "€", Decimals: 2},
		{Code: "IDR", Symbol: "Rp", Decimals: 0},
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("ROUND_DECIMALS", 2)
	viper.SetDefault("FIRST_DAY_OF_WEEK", int(time.Sunday))
	viper.SetDefault("CURRENCIES", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	cfg.RoundDecimals = viper.GetInt("ROUND_DECIMALS")

	firstDay := viper.GetInt("FIRST_DAY_OF_WEEK")
	if firstDay < 0 || firstDay > 6 {
		log.Printf("Warning: Invalid value for FIRST_DAY_OF_WEEK (%d). Defaulting to 0 (Sunday).\n", firstDay)
		firstDay = int(time.Sunday)
	}
	cfg.FirstDayOfWeek = time.Weekday(firstDay)

	// CURRENCIES overrides the built-in symbol table with a JSON array of
	// {code, symbol, decimals} objects.
	cfg.Currencies = defaultCurrencies()
	if raw := viper.GetString("CURRENCIES"); raw != "" {
		var parsed []CurrencyConfig
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			log.Printf("Warning: Invalid value for CURRENCIES (%v). Using built-in table.\n", err)
		} else if len(parsed) > 0 {
			cfg.Currencies = parsed
		}
	}

	return cfg, nil
}
