// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

func sampleSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	return computed(t, []schedule.StepRecord{
		{ID: "prep", Description: "chop vegetables", DurationMinutes: 10},
		{ID: "sauce", Description: "reduce the sauce", DurationMinutes: 25, Dependencies: []string{"prep"}},
		{ID: "plate", Description: "plate and serve", DurationMinutes: 5, Dependencies: []string{"prep", "sauce"}},
	})
}

func TestRasterRenderer_Disabled(t *testing.T) {
	r := &RasterRenderer{Enabled: false}
	_, err := r.Render(sampleSchedule(t), "Plan")
	if !errors.Is(err, ErrRenderUnavailable) {
		t.Fatalf("expected ErrRenderUnavailable, got %v", err)
	}
}

func TestRasterRenderer_ProducesEncodableImage(t *testing.T) {
	r := &RasterRenderer{Enabled: true}
	img, err := r.Render(sampleSchedule(t), "Gantt chart: ratatouille")
	if err != nil {
		t.Fatalf("rendering: %v", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty png")
	}
	if img.Bounds().Dx() != rasterWidth {
		t.Fatalf("expected width %d, got %d", rasterWidth, img.Bounds().Dx())
	}
}

func TestInteractiveRenderer_ProducesSelfContainedHTML(t *testing.T) {
	r := &InteractiveRenderer{Enabled: true}
	chart, err := r.Render(sampleSchedule(t), "Gantt chart: ratatouille")
	if err != nil {
		t.Fatalf("rendering: %v", err)
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		t.Fatalf("rendering html: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "<html") {
		t.Fatal("expected an html document")
	}
	if !strings.Contains(html, "Gantt chart: ratatouille") {
		t.Fatal("expected title embedded in the document")
	}
}

func TestNiceTickMinutes_CapsTickCount(t *testing.T) {
	for _, span := range []float64{1, 9, 45, 90, 600, 5000} {
		step := niceTickMinutes(span)
		if ticks := span / step; ticks > 10.5 {
			t.Fatalf("span %v: %v ticks exceeds cap", span, ticks)
		}
	}
}

func TestSuite_RenderAllIsolatesDisabledRenderers(t *testing.T) {
	suite := NewSuite(t.TempDir(), Capabilities{Raster: false, Interactive: false, GanttProject: false})
	text, artifacts := suite.RenderAll(context.Background(), sampleSchedule(t), "ratatouille", "Plan")
	if !strings.Contains(text, "chop vegetables") {
		t.Fatal("expected text chart content")
	}
	for _, a := range artifacts {
		if a.Format != FormatText {
			t.Fatalf("expected only the text artifact, got %v", a.Format)
		}
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected one artifact, got %d", len(artifacts))
	}
}

func TestSuite_RenderAllUsesConfiguredTextWidth(t *testing.T) {
	suite := NewSuite(t.TempDir(), Capabilities{TextWidth: 60})
	text, _ := suite.RenderAll(context.Background(), sampleSchedule(t), "ratatouille", "Plan")
	header := strings.Split(text, "\n")[0]
	if header != strings.Repeat("=", 60) {
		t.Fatalf("expected a 60-column header, got %q", header)
	}
}

func TestSuite_RenderAllProducesAllArtifacts(t *testing.T) {
	suite := NewSuite(t.TempDir(), Capabilities{Raster: true, Interactive: true, GanttProject: true})
	_, artifacts := suite.RenderAll(context.Background(), sampleSchedule(t), "ratatouille", "Plan")
	got := map[Format]bool{}
	for _, a := range artifacts {
		got[a.Format] = true
	}
	for _, want := range []Format{FormatText, FormatRaster, FormatHTMLInteractive, FormatGanttProject} {
		if !got[want] {
			t.Fatalf("missing %v artifact, got %v", want, artifacts)
		}
	}
}
