package indicators

// emaColumn computes the exponential moving average column in the
// recursive exponentially-weighted form: seeded from the first value,
// ema = (x - ema)*alpha + ema with alpha = 2/(span+1). Defined from
// index 0, unlike the SMA.
func emaColumn(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*alpha + out[i-1]
	}
	return out
}
