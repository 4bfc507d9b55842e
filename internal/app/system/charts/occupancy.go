package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	"github.com/dalemusser/tourismboard/internal/app/system/numfmt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// drawOccupancy draws one bar per district in the order given, with the
// occupancy printed above each bar.
func (r *Renderer) drawOccupancy(buf *bytes.Buffer, points []kpi.BarPoint) error {
	if len(points) == 0 {
		return fmt.Errorf("no districts to plot")
	}

	values := make(plotter.Values, len(points))
	names := make([]string, len(points))
	for i, pt := range points {
		values[i] = pt.Value
		names[i] = pt.Category
	}

	p := plot.New()
	p.Y.Label.Text = "Ocupació (%)"

	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return fmt.Errorf("occupancy bars: %w", err)
	}
	bars.Color = hexColor(colorDistrict)
	bars.LineStyle.Width = 0
	p.Add(bars)

	labels, err := plotter.NewLabels(occupancyLabels(points, r.num))
	if err != nil {
		return fmt.Errorf("value labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(3)}
	p.Add(labels)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	p.Y.Min = 0
	// room for the labels above a full bar
	p.Y.Max = 1.15
	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		var ticks []plot.Tick
		for v := 0.0; v <= 1.0001; v += 0.2 {
			ticks = append(ticks, plot.Tick{Value: v, Label: r.num.Percent(v)})
		}
		return ticks
	})

	width := vg.Length(len(points))*0.7*vg.Inch + vg.Inch
	w, err := p.WriterTo(width, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("plot writer: %w", err)
	}
	_, err = w.WriteTo(buf)
	return err
}

// occupancyLabels places each district's formatted occupancy at the top of
// its bar.
func occupancyLabels(points []kpi.BarPoint, num *numfmt.Formatter) plotter.XYLabels {
	xys := make(plotter.XYs, len(points))
	texts := make([]string, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: float64(i), Y: pt.Value}
		texts[i] = num.Percent(pt.Value)
	}
	return plotter.XYLabels{XYs: xys, Labels: texts}
}
