package skips

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TotalPrice returns the VAT-inclusive price for opt in whole pounds:
// price_before_vat + price_before_vat * vat/100, rounded to the nearest
// pound. Rounding policy is half away from zero (so £252.50 becomes £253);
// the catalogue never carries negative amounts, making this plain half-up.
// The result is non-negative whenever both inputs are.
func TotalPrice(opt SkipOption) int {
	gross := opt.PriceBeforeVAT + opt.PriceBeforeVAT*opt.VATPercent/100
	return int(math.Round(gross))
}

// gbpPrinter formats whole-pound amounts with en-GB digit grouping.
var gbpPrinter = message.NewPrinter(language.BritishEnglish) //nolint:gochecknoglobals // Printers are immutable and safe to share

// FormatGBP renders a whole-pound amount as a display string, e.g. 1240
// becomes "£1,240".
func FormatGBP(amount int) string {
	return gbpPrinter.Sprintf("£%d", amount)
}
