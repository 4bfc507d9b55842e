package charts

import (
	"bytes"
	"fmt"

	"github.com/dalemusser/tourismboard/internal/app/system/kpi"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// drawAvgStay draws a donut with one slice per market row, labelled
// "label value".
func (r *Renderer) drawAvgStay(buf *bytes.Buffer, shares []kpi.Share) error {
	values := make([]chart.Value, 0, len(shares))
	for i, s := range shares {
		if s.AvgStay <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: s.AvgStay,
			Label: fmt.Sprintf("%s %s", s.Label, r.num.Decimal(s.AvgStay, 1)),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(sliceColors[i%len(sliceColors)]),
				StrokeColor: drawing.ColorWhite,
				FontSize:    16,
			},
		})
	}
	if len(values) == 0 {
		return fmt.Errorf("no positive average stay to plot")
	}

	donut := chart.DonutChart{
		Width:  480,
		Height: 480,
		Values: values,
	}
	return donut.Render(chart.PNG, buf)
}
