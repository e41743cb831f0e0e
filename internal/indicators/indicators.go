package indicators

import (
	"math"

	"pythia/internal/domain/marketdata"
)

// Default windows, matching the 20/14/12-26-9 setup the summary prompt
// is written against.
const (
	SMAPeriod  = 20
	EMASpan    = 20
	RSIPeriod  = 14
	MACDFast   = 12
	MACDSlow   = 26
	SignalSpan = 9
)

// MinHistory is the number of candles needed before every indicator
// column has defined values at the series tail (slow EMA plus signal).
const MinHistory = MACDSlow + SignalSpan

// Enrich computes all indicator columns over the full series and fills
// the per-candle cells in place. Row count and order are preserved;
// OHLCV values are not touched. Cells stay nil where the window has
// insufficient history.
func Enrich(series marketdata.Series) marketdata.Series {
	if len(series) == 0 {
		return series
	}

	closes := series.Closes()

	sma := smaColumn(closes, SMAPeriod)
	ema := emaColumn(closes, EMASpan)
	rsi := rsiColumn(closes, RSIPeriod)

	fast := emaColumn(closes, MACDFast)
	slow := emaColumn(closes, MACDSlow)
	macd := make([]float64, len(closes))
	for i := range macd {
		macd[i] = fast[i] - slow[i]
	}
	signal := emaColumn(macd, SignalSpan)

	for i := range series {
		series[i].SMA20 = cell(sma[i])
		series[i].EMA20 = cell(ema[i])
		series[i].RSI = cell(rsi[i])
		series[i].MACD = cell(macd[i])
		series[i].Signal = cell(signal[i])
	}

	return series
}

// cell converts a column value to an optional cell, treating NaN as
// "not computed".
func cell(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
