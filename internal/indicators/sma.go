package indicators

import (
	"math"

	"github.com/markcheno/go-talib"
)

// smaColumn computes the trailing simple moving average using ta-lib.
// The first period-1 entries are NaN (insufficient window).
func smaColumn(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) < period {
		return out
	}

	sma := talib.Sma(closes, period)
	for i := period - 1; i < len(closes); i++ {
		out[i] = sma[i]
	}
	return out
}
