package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	"github.com/avltr/personal_ledger_app/pkg/config"
)

// resolveCurrency finds the symbol and decimal count for a code: the
// configured currency table first, then the ISO registry, then the reporting
// currency's configuration. The boolean is false only when nothing resolves.
func resolveCurrency(cfg *config.Config, code string) (config.CurrencyConfig, bool) {
	norm := domain.NormalizeCurrencyCode(code)
	if norm == "" {
		norm = domain.NormalizeCurrencyCode(cfg.DefaultCurrency)
	}

	if cur, ok := cfg.CurrencyByCode(norm); ok {
		return cur, true
	}
	if iso := money.GetCurrency(norm); iso != nil {
		return config.CurrencyConfig{Code: norm, Symbol: iso.Grapheme, Decimals: iso.Fraction}, true
	}
	defaultCode := domain.NormalizeCurrencyCode(cfg.DefaultCurrency)
	if norm != defaultCode {
		if cur, ok := cfg.CurrencyByCode(defaultCode); ok {
			return cur, true
		}
	}
	return config.CurrencyConfig{}, false
}

// FormatAmount renders an amount with the currency's symbol and decimal
// count, rounded half-up. The sign sits outside the symbol ("-$12.34") and
// zero-decimal currencies render without a decimal point ("-Rp5000").
func FormatAmount(cfg *config.Config, amount decimal.Decimal, code string) string {
	cur, ok := resolveCurrency(cfg, code)
	if !ok {
		// No symbol information at all: bare number with the configured
		// default decimals.
		return amount.StringFixed(int32(cfg.RoundDecimals))
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + cur.Symbol + amount.Abs().StringFixed(int32(cur.Decimals))
}

// FormatAmountDefault renders an amount in the default reporting currency.
func FormatAmountDefault(cfg *config.Config, amount decimal.Decimal) string {
	return FormatAmount(cfg, amount, cfg.DefaultCurrency)
}
