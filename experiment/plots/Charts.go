package plots

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Data is a named series of values, indexed by episode
type Data struct {
	Name   string
	Values []float64
}

// Chart saves an interactive HTML page to filename with one line chart
// per entry of data. Series of different lengths are drawn against the
// longest x axis.
func Chart(filename, title, xLabel string, data ...Data) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, d := range data {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: d.Name}),
			charts.WithXAxisOpts(opts.XAxis{Name: xLabel}),
		)

		xs := make([]string, len(d.Values))
		items := make([]opts.LineData, len(d.Values))
		for i, v := range d.Values {
			xs[i] = strconv.Itoa(i + 1)
			items[i] = opts.LineData{Value: v}
		}
		line.SetXAxis(xs).AddSeries(d.Name, items)

		page.AddCharts(line)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("chart: could not create %v: %v", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("chart: could not render %v: %v", filename, err)
	}
	return nil
}
