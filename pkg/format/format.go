// Package format holds the presentational formatting helpers shared by the
// views: Korean Won currency strings, calendar dates, marketplace badge
// colors, and style token composition. Everything here is a pure function.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var krw = message.NewPrinter(language.Korean)

// Price renders a Korean Won amount, e.g. 1234567 -> "₩1,234,567".
// KRW has no minor unit, so fractions are rounded away.
func Price(v float64) string {
	return krw.Sprintf("₩%v", number.Decimal(v, number.MaxFractionDigits(0)))
}

// AxisPrice renders a chart axis label in 만원 units, rounded half up,
// e.g. 1200000 -> "120만원", 985000 -> "99만원".
func AxisPrice(v float64) string {
	return strconv.FormatFloat(math.Round(v/10000), 'f', 0, 64) + "만원"
}

// Date renders a calendar date without time of day, e.g. "2026년 8월 28일".
func Date(t time.Time) string {
	return t.Format("2006년 1월 2일")
}

// Color is a named display color for marketplace badges.
type Color string

// Badge colors.
const (
	ColorOrange    Color = "orange"
	ColorBlue      Color = "blue"
	ColorGreen     Color = "green"
	ColorDarkGreen Color = "dark-green"
	ColorPurple    Color = "purple"
	ColorYellow    Color = "yellow"
	ColorGray      Color = "gray"
)

var ansiCodes = map[Color]string{
	ColorOrange:    "\x1b[38;5;208m",
	ColorBlue:      "\x1b[34m",
	ColorGreen:     "\x1b[32m",
	ColorDarkGreen: "\x1b[38;5;22m",
	ColorPurple:    "\x1b[35m",
	ColorYellow:    "\x1b[33m",
	ColorGray:      "\x1b[90m",
}

// Paint wraps s in the ANSI escape for the color.
func (c Color) Paint(s string) string {
	code, ok := ansiCodes[c]
	if !ok {
		code = ansiCodes[ColorGray]
	}
	return code + s + "\x1b[0m"
}

var marketplaceColors = map[string]Color{
	"쿠팡":   ColorOrange,
	"11번가": ColorBlue,
	"G마켓":  ColorGreen,
	"옥션":   ColorPurple,
	"네이버":  ColorDarkGreen,
	"카카오":  ColorYellow,
}

// MarketplaceColor maps a marketplace name to its badge color. Unknown
// names fall back to gray, never an empty color.
func MarketplaceColor(name string) Color {
	if c, ok := marketplaceColors[name]; ok {
		return c
	}
	return ColorGray
}

// Classes merges style tokens into a single space-separated string,
// skipping empties. Order is preserved and duplicates are kept.
func Classes(tokens ...string) string {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// If returns token when cond holds, otherwise the empty string. Intended
// for conditional arguments to Classes.
func If(cond bool, token string) string {
	if cond {
		return token
	}
	return ""
}
