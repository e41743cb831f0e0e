package indicators

import "math"

// rsiColumn computes the Relative Strength Index column using a
// trailing simple mean of gains and losses (not Wilder smoothing).
// The delta at index 0 has no predecessor, so the first defined value
// is at index period. A zero average loss is not clamped: with gains
// present the ratio goes to +Inf and RSI resolves to 100 through
// float semantics; an all-flat window yields 0/0 and stays undefined.
func rsiColumn(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) <= period {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	// The window gains[i-period+1..i] needs every delta in range, so
	// values start at index period.
	for i := period; i < len(closes); i++ {
		var avgGain, avgLoss float64
		for j := i - period + 1; j <= i; j++ {
			avgGain += gains[j]
			avgLoss += losses[j]
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}

	return out
}
