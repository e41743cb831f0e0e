package analysis

import (
	"context"
	"fmt"
	"time"

	"pythia/internal/domain/marketdata"
	"pythia/internal/indicators"
	"pythia/pkg/errors"
	"pythia/pkg/logger"
)

// divider separates the analysis text from the render timestamp in the
// page body.
const divider = "-------------------------------------------------------------------------"

// CandleSource fetches a candle series for a symbol.
type CandleSource interface {
	Candles(ctx context.Context, symbol string, granularity, limit int) (marketdata.Series, error)
}

// Analyzer turns an enriched series into a text summary.
type Analyzer interface {
	Summarize(ctx context.Context, series marketdata.Series) (string, error)
}

// Renderer writes the final page body to its output artifact.
type Renderer interface {
	Render(body string) error
}

// Settings are the pipeline tunables for one invocation.
type Settings struct {
	Symbol      string
	Granularity int
	Limit       int
}

// Pipeline runs the fetch, enrich, summarize, render sequence. Any
// failure aborts the run and leaves the previous output untouched.
type Pipeline struct {
	source   CandleSource
	analyzer Analyzer
	renderer Renderer
	settings Settings
	now      func() time.Time
	log      *logger.Logger
}

// NewPipeline wires the pipeline components.
func NewPipeline(source CandleSource, analyzer Analyzer, renderer Renderer, settings Settings) *Pipeline {
	return &Pipeline{
		source:   source,
		analyzer: analyzer,
		renderer: renderer,
		settings: settings,
		now:      time.Now,
		log:      logger.Get().With("component", "pipeline", "symbol", settings.Symbol),
	}
}

// Run executes one full pass.
func (p *Pipeline) Run(ctx context.Context) error {
	series, err := p.source.Candles(ctx, p.settings.Symbol, p.settings.Granularity, p.settings.Limit)
	if err != nil {
		return errors.Wrap(err, "fetch candles")
	}

	if len(series) < indicators.MinHistory {
		// The run still proceeds; indicator columns will trail off into
		// undefined cells and the summary quality suffers accordingly.
		p.log.Warnf("Only %d candles fetched, %d needed for fully defined indicators",
			len(series), indicators.MinHistory)
	}

	series = indicators.Enrich(series)

	summary, err := p.analyzer.Summarize(ctx, series)
	if err != nil {
		return errors.Wrap(err, "summarize candles")
	}

	body := fmt.Sprintf("%s\n%s\n End analysis at %s",
		summary, divider, p.now().UTC().Format("2006-01-02 15:04:05"))

	if err := p.renderer.Render(body); err != nil {
		return errors.Wrap(err, "render page")
	}

	p.log.Infow("Analysis pipeline completed", "candles", len(series))
	return nil
}
