// Package charts draws the dashboard chart groups as PNG images.
//
// The comparison and district charts are drawn with gonum/plot (bars with
// value labels); the average-stay donut uses go-chart. Rendered images are kept in an LRU keyed by chart and the part
// of the selection the chart depends on.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/metrics"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Chart names, as used in /charts/{name}.png.
const (
	Comparison = "comparison"
	AvgStay    = "avgstay"
	Occupancy  = "occupancy"
)

// Names lists every chart in page order.
var Names = []string{Comparison, AvgStay, Occupancy}

// ErrUnknownChart is returned by Render for names outside Names.
var ErrUnknownChart = errors.New("unknown chart")

// Palette used by the original dashboard.
const (
	colorTravelers  = "FF7F0E"
	colorOvernights = "2CA02C"
	colorTotal      = "9467BD"
	colorDistrict   = "ADD8E6"
)

var sliceColors = []string{colorTravelers, colorOvernights, colorTotal}

// DefaultCacheSize holds every chart for every market with room to spare.
const DefaultCacheSize = 32

// Renderer draws and caches chart PNGs.
type Renderer struct {
	cache *lru.Cache[string, []byte]
	num   *numfmt.Formatter
	log   *zap.Logger

	// Metrics, when set, counts renders and cache hits.
	Metrics *metrics.Metrics
}

// NewRenderer builds a Renderer with an LRU of the given size.
func NewRenderer(cacheSize int, num *numfmt.Formatter, logger *zap.Logger) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("chart cache: %w", err)
	}
	if num == nil {
		num = numfmt.MustNew("en")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{cache: cache, num: num, log: logger}, nil
}

// Render returns the PNG for the named chart over res.
func (r *Renderer) Render(name string, res kpi.Result) ([]byte, error) {
	key, draw, err := r.plan(name, res)
	if err != nil {
		return nil, err
	}

	if png, ok := r.cache.Get(key); ok {
		r.Metrics.ChartCacheHit()
		return png, nil
	}

	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		r.log.Error("chart render failed", zap.String("chart", name), zap.Error(err))
		return nil, fmt.Errorf("render %s chart: %w", name, err)
	}

	png := buf.Bytes()
	r.cache.Add(key, png)
	r.Metrics.ChartRendered(name)
	r.log.Debug("chart rendered", zap.String("chart", name), zap.String("key", key), zap.Int("bytes", len(png)))
	return png, nil
}

// Cached reports how many images are held.
func (r *Renderer) Cached() int {
	return r.cache.Len()
}

func (r *Renderer) plan(name string, res kpi.Result) (string, func(*bytes.Buffer) error, error) {
	switch name {
	case Comparison:
		c := res.Comparison
		return Comparison + ":" + string(c.Market), func(b *bytes.Buffer) error {
			return r.drawComparison(b, c)
		}, nil
	case AvgStay:
		shares := res.Shares
		return AvgStay, func(b *bytes.Buffer) error {
			return r.drawAvgStay(b, shares)
		}, nil
	case Occupancy:
		points := res.Occupancy
		return Occupancy, func(b *bytes.Buffer) error {
			return r.drawOccupancy(b, points)
		}, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}
