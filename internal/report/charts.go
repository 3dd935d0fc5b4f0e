// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/pdiddy/hubmetrics/pkg/types"
)

// WriteAnalysisChart renders the publications-per-year bar chart. Chart
// data is a derived view of the annual summary table.
func WriteAnalysisChart(path string, summaries []types.AnnualSummary) error {
	if len(summaries) == 0 {
		return fmt.Errorf("no data to chart")
	}

	bars := make([]chart.Value, 0, len(summaries))
	for _, s := range summaries {
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(s.Year),
			Value: float64(s.Total.Papers),
		})
	}

	graph := chart.BarChart{
		Title:    "Energy Hub Publications per Year (OpenAlex)",
		Width:    1024,
		Height:   512,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}

	return renderPNG(path, graph.Render)
}

// WriteDistributionChart renders the core/related category split as a pie.
// Categories with no papers are omitted.
func WriteDistributionChart(path string, summaries []types.AnnualSummary) error {
	var core, related int
	for _, s := range summaries {
		core += s.Core.Papers
		related += s.Related.Papers
	}

	var values []chart.Value
	if core > 0 {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("Core (%d)", core),
			Value: float64(core),
		})
	}
	if related > 0 {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("Related (%d)", related),
			Value: float64(related),
		})
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to chart")
	}

	graph := chart.PieChart{
		Title:  "Research Category Distribution (OpenAlex)",
		Width:  512,
		Height: 512,
		Values: values,
	}

	return renderPNG(path, graph.Render)
}

// WriteTrendsChart renders the core/related/total publication trend lines.
func WriteTrendsChart(path string, summaries []types.AnnualSummary) error {
	if len(summaries) == 0 {
		return fmt.Errorf("no data to chart")
	}

	years := make([]float64, len(summaries))
	core := make([]float64, len(summaries))
	related := make([]float64, len(summaries))
	total := make([]float64, len(summaries))
	for i, s := range summaries {
		years[i] = float64(s.Year)
		core[i] = float64(s.Core.Papers)
		related[i] = float64(s.Related.Papers)
		total[i] = float64(s.Total.Papers)
	}

	graph := chart.Chart{
		Title:  "Energy Hub Publication Trends (OpenAlex)",
		Width:  1024,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Core", XValues: years, YValues: core},
			chart.ContinuousSeries{Name: "Related", XValues: years, YValues: related},
			chart.ContinuousSeries{Name: "Total", XValues: years, YValues: total},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(path, graph.Render)
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
