// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

const (
	rasterWidth  = 1600
	rasterRowH   = 90
	rasterMinH   = 640
	marginLeft   = 90
	marginRight  = 70
	marginTop    = 110
	marginBottom = 100
)

// Bar colors cycled per step, loosely after a pastel categorical palette.
var barPalette = []string{
	"#3182bd", "#6baed6", "#9ecae1", "#c6dbef",
	"#e6550d", "#fd8d3c", "#fdae6b", "#fdd0a2",
	"#31a354", "#74c476", "#a1d99b", "#c7e9c0",
}

// RasterRenderer draws a schedule as a static Gantt chart image.
type RasterRenderer struct {
	// Enabled is the capability flag resolved at startup. When false,
	// Render reports ErrRenderUnavailable without failing the planning
	// flow.
	Enabled bool
}

// Render draws the schedule and returns the image for the caller to persist.
//
// Each step spans [start, end) on a shared time axis, stacked in input order.
// Dependency edges are drawn from the end of the dependency's interval to the
// start of the dependent's interval; tick density adapts to the schedule span
// with at most ten ticks.
func (r *RasterRenderer) Render(s *schedule.Schedule, title string) (image.Image, error) {
	if !r.Enabled {
		return nil, ErrRenderUnavailable
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("gantt: no steps to draw")
	}

	height := rasterRowH*len(s.Steps) + marginTop + marginBottom
	if height < rasterMinH {
		height = rasterMinH
	}
	dc := gg.NewContext(rasterWidth, height)

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("gantt: parsing chart font: %w", err)
	}
	titleFace := truetype.NewFace(font, &truetype.Options{Size: 30})
	labelFace := truetype.NewFace(font, &truetype.Options{Size: 18})
	smallFace := truetype.NewFace(font, &truetype.Options{Size: 15})

	dc.SetHexColor("#f9f9f9")
	dc.Clear()

	plotW := float64(rasterWidth - marginLeft - marginRight)
	plotH := float64(height - marginTop - marginBottom)
	dc.SetHexColor("#f0f0f0")
	dc.DrawRectangle(marginLeft, marginTop, plotW, plotH)
	dc.Fill()

	anchor := s.AnchorTime
	end := anchor
	for _, step := range s.Steps {
		if step.End.After(end) {
			end = step.End
		}
	}
	spanMin := end.Sub(anchor).Minutes()
	if spanMin < 1 {
		spanMin = 1
	}

	xAt := func(t time.Time) float64 {
		return marginLeft + t.Sub(anchor).Minutes()/spanMin*plotW
	}
	rowH := plotH / float64(len(s.Steps))
	yCenter := func(i int) float64 {
		return marginTop + rowH*float64(i) + rowH/2
	}

	// Time axis: at most ten ticks regardless of span.
	tickStep := niceTickMinutes(spanMin)
	dc.SetFontFace(smallFace)
	for m := 0.0; m <= spanMin+tickStep/2; m += tickStep {
		x := marginLeft + m/spanMin*plotW
		if x > marginLeft+plotW+0.5 {
			break
		}
		dc.SetHexColor("#d0d0d0")
		dc.SetLineWidth(1)
		dc.DrawLine(x, marginTop, x, marginTop+plotH)
		dc.Stroke()
		label := anchor.Add(time.Duration(m * float64(time.Minute))).Format("15:04")
		dc.SetHexColor("#333333")
		dc.DrawStringAnchored(label, x, marginTop+plotH+22, 0.5, 0.5)
	}

	// Bars, stacked in input order.
	dc.SetFontFace(labelFace)
	for i, step := range s.Steps {
		x0 := xAt(step.Start)
		x1 := xAt(step.End)
		if x1-x0 < 2 {
			x1 = x0 + 2
		}
		barH := rowH * 0.6
		y := yCenter(i) - barH/2

		dc.SetHexColor(barPalette[i%len(barPalette)])
		dc.DrawRectangle(x0, y, x1-x0, barH)
		dc.Fill()
		dc.SetHexColor("#000000")
		dc.SetLineWidth(1)
		dc.DrawRectangle(x0, y, x1-x0, barH)
		dc.Stroke()

		name := step.Description
		if len([]rune(name)) > 40 {
			name = string([]rune(name)[:40]) + "..."
		}
		dc.SetHexColor("#000000")
		dc.DrawStringAnchored(fmt.Sprintf(" %s. %s", step.ID, name), x0, y-12, 0, 0.5)

		if step.DurationMinutes >= 5 {
			dc.SetFontFace(smallFace)
			dc.DrawStringAnchored(fmt.Sprintf("%.0f min", step.DurationMinutes), (x0+x1)/2, yCenter(i), 0.5, 0.5)
			dc.SetFontFace(labelFace)
		}

		// Row index on the category axis.
		dc.DrawStringAnchored(fmt.Sprintf("%d", i+1), marginLeft-24, yCenter(i), 0.5, 0.5)
	}

	// Dependency edges, after the bars so they draw on top. Edges to
	// unresolved IDs were already dropped by the graph builder.
	index := make(map[string]int, len(s.Steps))
	for i, step := range s.Steps {
		index[step.ID] = i
	}
	for i, step := range s.Steps {
		for _, dep := range step.Dependencies {
			j, ok := index[dep]
			if !ok {
				continue
			}
			fromX, fromY := xAt(s.Steps[j].End), yCenter(j)
			toX, toY := xAt(step.Start), yCenter(i)
			dc.SetRGBA(0, 0, 0.55, 0.7)
			dc.SetLineWidth(2)
			dc.DrawLine(fromX, fromY, toX, toY)
			dc.Stroke()
			drawArrowHead(dc, fromX, fromY, toX, toY)
		}
	}

	dc.SetFontFace(titleFace)
	dc.SetHexColor("#222222")
	dc.DrawStringAnchored(title, rasterWidth/2, marginTop/2, 0.5, 0.5)

	dc.SetFontFace(smallFace)
	dc.DrawStringAnchored(
		fmt.Sprintf("Total estimated duration: %.0f minutes", s.TotalDurationMinutes),
		marginLeft, float64(height)-28, 0, 0.5)

	return dc.Image(), nil
}

// niceTickMinutes picks a tick interval that yields at most ten ticks over
// the span.
func niceTickMinutes(spanMin float64) float64 {
	raw := spanMin / 10
	for _, nice := range []float64{1, 2, 5, 10, 15, 30, 60, 120, 240, 480} {
		if nice >= raw {
			return nice
		}
	}
	return math.Ceil(raw/480) * 480
}

func drawArrowHead(dc *gg.Context, fromX, fromY, toX, toY float64) {
	angle := math.Atan2(toY-fromY, toX-fromX)
	const size = 10
	left := angle + math.Pi*5/6
	right := angle - math.Pi*5/6
	dc.MoveTo(toX, toY)
	dc.LineTo(toX+size*math.Cos(left), toY+size*math.Sin(left))
	dc.LineTo(toX+size*math.Cos(right), toY+size*math.Sin(right))
	dc.ClosePath()
	dc.Fill()
}
