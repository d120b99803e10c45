// Package models defines data structures for Folio
package models

// tickerNames maps canonical symbols to display names. Lookups outside the
// map fall back to "Unknown"; the set only needs to cover commonly tracked
// instruments since the name is cosmetic.
var tickerNames = map[string]string{
	"AAPL":  "Apple Inc",
	"AMZN":  "Amazon.com Inc",
	"BRK.B": "Berkshire Hathaway Inc Class B",
	"GLD":   "SPDR Gold Shares",
	"GOOG":  "Alphabet Inc Class C",
	"JNJ":   "Johnson & Johnson",
	"JPM":   "JPMorgan Chase & Co",
	"KO":    "Coca-Cola Co",
	"MSFT":  "Microsoft Corp",
	"MU":    "Micron Technology Inc",
	"NVDA":  "NVIDIA Corp",
	"PG":    "Procter & Gamble Co",
	"QQQ":   "Invesco QQQ Trust",
	"SPY":   "SPDR S&P 500 ETF Trust",
	"TSLA":  "Tesla Inc",
	"V":     "Visa Inc",
	"VGT":   "Vanguard Information Technology ETF",
	"VOO":   "Vanguard S&P 500 ETF",
	"VTI":   "Vanguard Total Stock Market ETF",
	"VXUS":  "Vanguard Total International Stock ETF",
	"XAU":   "Gold Spot Ounce",
	"XOM":   "Exxon Mobil Corp",
}
