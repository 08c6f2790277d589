// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"strings"
	"testing"
	"time"

	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

var testAnchor = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func computed(t *testing.T, records []schedule.StepRecord) *schedule.Schedule {
	t.Helper()
	g, err := schedule.NewGraph(records)
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	return schedule.Compute(g, testAnchor)
}

func TestTextRenderer_NoTasks(t *testing.T) {
	r := &TextRenderer{Width: 80}
	out := r.Render(computed(t, nil), "Empty plan")
	if out != "No tasks found in the schedule" {
		t.Fatalf("unexpected empty rendering: %q", out)
	}
}

func TestTextRenderer_LabelTruncatedWithEllipsis(t *testing.T) {
	long := "simmer the sauce over low heat while stirring constantly"
	out := (&TextRenderer{Width: 120}).Render(computed(t, []schedule.StepRecord{
		{ID: "a", Description: long, DurationMinutes: 5},
	}), "Plan")

	var stepLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, " | ") {
			stepLine = line
			break
		}
	}
	if stepLine == "" {
		t.Fatal("no step line found")
	}
	label := strings.SplitN(stepLine, " | ", 2)[0]
	if len([]rune(label)) != labelWidth {
		t.Fatalf("expected label width %d, got %d (%q)", labelWidth, len([]rune(label)), label)
	}
	if !strings.HasSuffix(label, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", label)
	}
}

func TestTextRenderer_ShortLabelPadded(t *testing.T) {
	out := (&TextRenderer{Width: 120}).Render(computed(t, []schedule.StepRecord{
		{ID: "a", Description: "boil water", DurationMinutes: 5},
	}), "Plan")
	if !strings.Contains(out, "boil water"+strings.Repeat(" ", labelWidth-len("boil water"))+" | ") {
		t.Fatal("expected label right-padded to the fixed width")
	}
}

func TestFormatBar(t *testing.T) {
	tests := []struct {
		duration float64
		want     string
	}{
		{5, "=5m=="},
		{2, "=="},
		{1, "="},
		{0, "="},
		{10, "=10m======"},
		{2.5, "=3m"}, // ceil to 3, label "3m" fits at exactly len+1? no: 3 < 4
	}
	for _, tt := range tests {
		got := formatBar(tt.duration)
		if tt.duration == 2.5 {
			// ceil(2.5+0.99)=3 chars, "3m" needs 4 to embed, so plain bar.
			if got != "===" {
				t.Fatalf("duration %v: expected ===, got %q", tt.duration, got)
			}
			continue
		}
		if got != tt.want {
			t.Fatalf("duration %v: expected %q, got %q", tt.duration, tt.want, got)
		}
	}
}

func TestTextRenderer_DependencyAnnotationSameLine(t *testing.T) {
	out := (&TextRenderer{Width: 120}).Render(computed(t, []schedule.StepRecord{
		{ID: "a", Description: "chop onions", DurationMinutes: 2},
		{ID: "b", Description: "fry onions", DurationMinutes: 3, Dependencies: []string{"a"}},
	}), "Plan")
	if !strings.Contains(out, "⬅ a:chop ") {
		t.Fatalf("expected same-line dependency annotation, got:\n%s", out)
	}
}

func TestTextRenderer_ContinuationLineShiftsLaterAnnotations(t *testing.T) {
	records := []schedule.StepRecord{
		{ID: "prepare-all-the-vegetables", Description: "prepare vegetables", DurationMinutes: 4},
		{ID: "preheat-the-oven-to-temperature", Description: "preheat oven", DurationMinutes: 4},
		{ID: "c", Description: "assemble", DurationMinutes: 2,
			Dependencies: []string{"prepare-all-the-vegetables", "preheat-the-oven-to-temperature"}},
		{ID: "d", Description: "bake", DurationMinutes: 3, Dependencies: []string{"c"}},
	}
	out := (&TextRenderer{Width: 50}).Render(computed(t, records), "Plan")
	lines := strings.Split(out, "\n")

	assembleIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "assemble") {
			assembleIdx = i
			break
		}
	}
	if assembleIdx == -1 {
		t.Fatalf("assemble line not found in:\n%s", out)
	}
	continuation := lines[assembleIdx+1]
	if !strings.HasPrefix(continuation, strings.Repeat(" ", labelWidth+3)+"Requires: ") {
		t.Fatalf("expected indented continuation line, got %q", continuation)
	}
	// The bake step's annotation must land on bake's own (shifted) line.
	bakeLine := lines[assembleIdx+2]
	if !strings.HasPrefix(bakeLine, "bake") || !strings.Contains(bakeLine, "⬅ c:assem") {
		t.Fatalf("expected shifted bake line with annotation, got %q", bakeLine)
	}
}

func TestTextRenderer_LegendReportsSumOfDurations(t *testing.T) {
	out := (&TextRenderer{Width: 100}).Render(computed(t, []schedule.StepRecord{
		{ID: "a", Description: "chop", DurationMinutes: 2},
		{ID: "b", Description: "fry", DurationMinutes: 3, Dependencies: []string{"a"}},
		{ID: "c", Description: "plate", DurationMinutes: 1, Dependencies: []string{"a", "b"}},
	}), "Plan")
	if !strings.Contains(out, "Total estimated duration: 6 minutes") {
		t.Fatalf("expected sum-of-durations legend, got:\n%s", out)
	}
	if !strings.Contains(out, "Each '=' represents 1 minute") {
		t.Fatal("expected time-per-character legend line")
	}
}
