package names

import (
	"currency-api/internal/application"

	"golang.org/x/text/currency"
)

// Resolver maps ISO 4217 codes to English display names. Codes that parse
// as ISO currencies but have no entry in the table resolve to ok=false and
// the caller falls back to the code itself.
type Resolver struct{}

var _ application.NameResolver = Resolver{}

func (Resolver) Name(code string) (string, bool) {
	if _, err := currency.ParseISO(code); err != nil {
		return "", false
	}
	n, ok := english[code]
	return n, ok
}

var english = map[string]string{
	"AED": "United Arab Emirates Dirham",
	"ARS": "Argentine Peso",
	"AUD": "Australian Dollar",
	"BGN": "Bulgarian Lev",
	"BRL": "Brazilian Real",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CLP": "Chilean Peso",
	"CNY": "Chinese Yuan",
	"COP": "Colombian Peso",
	"CZK": "Czech Koruna",
	"DKK": "Danish Krone",
	"EGP": "Egyptian Pound",
	"EUR": "Euro",
	"GBP": "British Pound",
	"HKD": "Hong Kong Dollar",
	"HUF": "Hungarian Forint",
	"IDR": "Indonesian Rupiah",
	"ILS": "Israeli New Shekel",
	"INR": "Indian Rupee",
	"ISK": "Icelandic Krona",
	"JPY": "Japanese Yen",
	"KRW": "South Korean Won",
	"MXN": "Mexican Peso",
	"MYR": "Malaysian Ringgit",
	"NGN": "Nigerian Naira",
	"NOK": "Norwegian Krone",
	"NZD": "New Zealand Dollar",
	"PHP": "Philippine Peso",
	"PKR": "Pakistani Rupee",
	"PLN": "Polish Zloty",
	"RON": "Romanian Leu",
	"RUB": "Russian Ruble",
	"SAR": "Saudi Riyal",
	"SEK": "Swedish Krona",
	"SGD": "Singapore Dollar",
	"THB": "Thai Baht",
	"TRY": "Turkish Lira",
	"TWD": "New Taiwan Dollar",
	"UAH": "Ukrainian Hryvnia",
	"USD": "US Dollar",
	"VND": "Vietnamese Dong",
	"ZAR": "South African Rand",
}
