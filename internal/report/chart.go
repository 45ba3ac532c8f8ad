package report

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
)

// Renderer turns a sales report into a chart image. Rendering is a
// collaborator of the reporting flow, not part of the aggregation itself.
type Renderer interface {
	Render(report *SalesReport) ([]byte, error)
}

// BarChartRenderer draws units sold per product as a PNG bar chart.
type BarChartRenderer struct{}

func (BarChartRenderer) Render(report *SalesReport) ([]byte, error) {
	if len(report.BestSellers) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(report.BestSellers))
	for _, sales := range report.BestSellers {
		bars = append(bars, chart.Value{
			Label: sales.Name,
			Value: float64(sales.Units),
		})
	}

	graph := chart.BarChart{
		Title:    "Best-selling products",
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
