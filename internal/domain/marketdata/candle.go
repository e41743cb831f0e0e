package marketdata

import (
	"sort"
	"time"
)

// Candle represents one OHLCV observation with derived indicator cells.
// Indicator pointers are nil until the engine has enough history to
// compute them, so serialization can distinguish "not yet computed"
// from a computed zero.
type Candle struct {
	Time   time.Time
	Low    float64
	High   float64
	Open   float64
	Close  float64
	Volume float64

	SMA20  *float64
	EMA20  *float64
	RSI    *float64
	MACD   *float64
	Signal *float64
}

// Series is an ordered sequence of candles, ascending by time.
// OHLCV values are never mutated after construction; only indicator
// cells are filled in.
type Series []Candle

// SortByTime orders the series ascending by candle timestamp.
// The upstream API does not guarantee order.
func (s Series) SortByTime() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Time.Before(s[j].Time)
	})
}

// Closes extracts close prices in series order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, c := range s {
		closes[i] = c.Close
	}
	return closes
}

// Tail returns the most recent n candles, or the whole series if it
// holds fewer.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Record is the flat, JSON-serializable form of a candle sent to the
// summarizer. Undefined indicator cells marshal as null.
type Record struct {
	Time   string   `json:"time"`
	Low    float64  `json:"low"`
	High   float64  `json:"high"`
	Open   float64  `json:"open"`
	Close  float64  `json:"close"`
	Volume float64  `json:"volume"`
	SMA20  *float64 `json:"SMA20"`
	EMA20  *float64 `json:"EMA20"`
	RSI    *float64 `json:"RSI"`
	MACD   *float64 `json:"MACD"`
	Signal *float64 `json:"Signal"`
}

// Records converts the series into flat records.
func (s Series) Records() []Record {
	records := make([]Record, len(s))
	for i, c := range s {
		records[i] = Record{
			Time:   c.Time.UTC().Format(time.RFC3339),
			Low:    c.Low,
			High:   c.High,
			Open:   c.Open,
			Close:  c.Close,
			Volume: c.Volume,
			SMA20:  c.SMA20,
			EMA20:  c.EMA20,
			RSI:    c.RSI,
			MACD:   c.MACD,
			Signal: c.Signal,
		}
	}
	return records
}
