// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

// InteractiveRenderer builds a self-contained HTML Gantt chart.
//
// The chart is a horizontal stacked bar: a transparent offset series shifts
// each duration bar to its start minute, the standard waterfall technique for
// Gantt charts on a bar chart engine.
type InteractiveRenderer struct {
	// Enabled is the capability flag resolved at startup.
	Enabled bool
}

// Render returns the chart handle; the caller persists it as an HTML page.
func (r *InteractiveRenderer) Render(s *schedule.Schedule, title string) (*charts.Bar, error) {
	if !r.Enabled {
		return nil, ErrRenderUnavailable
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("gantt: no steps to draw")
	}

	categories := make([]string, 0, len(s.Steps))
	offsets := make([]opts.BarData, 0, len(s.Steps))
	durations := make([]opts.BarData, 0, len(s.Steps))
	index := make(map[string]int, len(s.Steps))

	for i, step := range s.Steps {
		index[step.ID] = i
		name := step.Description
		if len([]rune(name)) > 40 {
			name = string([]rune(name)[:40]) + "..."
		}
		categories = append(categories, fmt.Sprintf("%s. %s", step.ID, name))
		offsets = append(offsets, opts.BarData{Value: step.Start.Sub(s.AnchorTime).Minutes()})
		durations = append(durations, opts.BarData{
			Value: step.DurationMinutes,
			Name:  fmt.Sprintf("depends on: %s", dependencyList(step)),
		})
	}

	// Dependency edges: dashed arrows from the end of each dependency's bar
	// to the start of the dependent's bar, in chart data coordinates.
	markLines := make([]charts.SeriesOpts, 0, len(s.Steps)+1)
	for i, step := range s.Steps {
		for _, dep := range step.Dependencies {
			j, ok := index[dep]
			if !ok {
				continue
			}
			markLines = append(markLines, charts.WithMarkLineNameCoordItemOpts(opts.MarkLineNameCoordItem{
				Name:        fmt.Sprintf("%s -> %s", dep, step.ID),
				Coordinate0: []interface{}{s.Steps[j].End.Sub(s.AnchorTime).Minutes(), j},
				Coordinate1: []interface{}{step.Start.Sub(s.AnchorTime).Minutes(), i},
			}))
		}
	}
	markLines = append(markLines, charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
		Symbol: []string{"none", "arrow"},
		LineStyle: &opts.LineStyle{
			Type:  "dashed",
			Color: "gray",
		},
	}))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    fmt.Sprintf("%dpx", max(600, len(s.Steps)*40+200)),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("Total estimated duration: %.0f minutes", s.TotalDurationMinutes),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "Minutes from start",
			SplitNumber: 10,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	bar.SetXAxis(categories).
		AddSeries("start offset", offsets,
			charts.WithBarChartOpts(opts.BarChart{Stack: "schedule"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "transparent"}),
		).
		AddSeries("duration (min)", durations,
			append([]charts.SeriesOpts{charts.WithBarChartOpts(opts.BarChart{Stack: "schedule"})}, markLines...)...,
		)
	bar.XYReversal()

	return bar, nil
}

func dependencyList(step schedule.ScheduledStep) string {
	if len(step.Dependencies) == 0 {
		return "none"
	}
	out := ""
	for i, dep := range step.Dependencies {
		if i > 0 {
			out += ", "
		}
		out += dep
	}
	return out
}
