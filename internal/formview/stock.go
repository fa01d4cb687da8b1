package formview

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix is the longest leading decimal number, so "12abc" reads as 12
// and "3.5kg" as 3.5.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// StockBuffer keeps the stock input as typed. Model only changes on Blur, so
// an empty or partial entry is never coerced while the user is editing.
type StockBuffer struct {
	Raw   string
	Model int32
}

func NewStockBuffer(n int32) StockBuffer {
	return StockBuffer{Raw: strconv.FormatInt(int64(n), 10), Model: n}
}

// Type records a keystroke.
func (b *StockBuffer) Type(raw string) { b.Raw = raw }

// Blur parses the leading number of Raw, truncated to an integer. Empty or
// non-numeric input becomes 0; negatives are kept for validation to reject.
func (b *StockBuffer) Blur() {
	b.Model = ParseStock(b.Raw)
	b.Raw = strconv.FormatInt(int64(b.Model), 10)
}

func ParseStock(raw string) int32 {
	m := numericPrefix.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}
