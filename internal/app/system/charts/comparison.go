package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// drawComparison draws travelers and overnights of one market as two
// horizontal bars, each labelled with its formatted value.
func (r *Renderer) drawComparison(buf *bytes.Buffer, c kpi.Comparison) error {
	p := plot.New()
	p.Title.Text = c.Label

	series := []struct {
		name  string
		value int64
		color string
	}{
		{"Viatgers", c.Travelers, colorTravelers},
		{"Pernoctacions", c.Overnights, colorOvernights},
	}

	names := make([]string, len(series))
	xys := make(plotter.XYs, len(series))
	texts := make([]string, len(series))
	var maxValue float64

	for i, s := range series {
		v := float64(s.value)
		bars, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(36))
		if err != nil {
			return fmt.Errorf("bar %s: %w", s.name, err)
		}
		bars.Horizontal = true
		bars.XMin = float64(i)
		bars.Color = hexColor(s.color)
		bars.LineStyle.Width = 0
		p.Add(bars)

		names[i] = s.name
		xys[i] = plotter.XY{X: v, Y: float64(i)}
		texts[i] = " " + r.num.Count(s.value)
		if v > maxValue {
			maxValue = v
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("value labels: %w", err)
	}
	p.Add(labels)

	p.NominalY(names...)
	p.X.Min = 0
	// leave room for the value labels right of the longest bar
	p.X.Max = maxValue * 1.3
	p.X.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(min, max)
		for i := range ticks {
			if ticks[i].Label != "" {
				ticks[i].Label = r.num.Count(int64(ticks[i].Value))
			}
		}
		return ticks
	})

	w, err := p.WriterTo(6*vg.Inch, 3*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("plot writer: %w", err)
	}
	_, err = w.WriteTo(buf)
	return err
}

// hexColor parses "RRGGBB".
func hexColor(hex string) color.Color {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
