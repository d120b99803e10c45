package ticker

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio/internal/models"
)

// RenderPriceChart renders a PNG line chart of the ticker's price history.
// When a relative series is present it is drawn as a second dashed line.
// Returns raw PNG bytes.
func RenderPriceChart(t *models.Ticker) ([]byte, error) {
	if t.Series.Len() < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", t.Series.Len())
	}

	xValues := make([]time.Time, t.Series.Len())
	yValues := make([]float64, t.Series.Len())
	for i, p := range t.Series {
		xValues[i] = p.Date
		yValues[i] = p.Price
	}

	priceSeries := chart.TimeSeries{
		Name: t.Symbol,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	series := []chart.Series{priceSeries}

	if t.Relative.Len() >= 2 {
		relX := make([]time.Time, t.Relative.Len())
		relY := make([]float64, t.Relative.Len())
		for i, p := range t.Relative {
			relX[i] = p.Date
			relY[i] = p.Price
		}
		series = append(series, chart.TimeSeries{
			Name: t.Symbol + " (relative)",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			YAxis:   chart.YAxisSecondary,
			XValues: relX,
			YValues: relY,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s - %s", t.Symbol, t.Name()),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return chart.TimeFromFloat64(f).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
