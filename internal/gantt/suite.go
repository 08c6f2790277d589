// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gantt

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Pougnator/BOT-Ratatouille/internal/plandb"
	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
)

// Artifact directories under the suite's output root, one per format.
const (
	textDir         = "gantt_ascii"
	rasterDir       = "gantt_visuals"
	interactiveDir  = "gantt_html"
	ganttProjectDir = "gantt_files"
)

// Suite runs every enabled renderer over a schedule and persists the
// resulting artifacts. Renderer and persistence failures are isolated: one
// failing renderer never blocks the others or the text fallback.
type Suite struct {
	text         *TextRenderer
	raster       *RasterRenderer
	interactive  *InteractiveRenderer
	ganttProject *GanttProjectExporter

	root string
}

// NewSuite returns a Suite writing artifacts under root, with the optional
// renderers gated by the given capability flags.
func NewSuite(root string, caps Capabilities) *Suite {
	return &Suite{
		text:         &TextRenderer{Width: caps.TextWidth},
		raster:       &RasterRenderer{Enabled: caps.Raster},
		interactive:  &InteractiveRenderer{Enabled: caps.Interactive},
		ganttProject: &GanttProjectExporter{Enabled: caps.GanttProject},
		root:         root,
	}
}

// RenderAll renders the schedule with every enabled renderer.
//
// It returns the text chart content for terminal display along with the
// persisted artifacts. The text renderer always runs; disabled renderers are
// skipped silently and failures of individual renderers are logged and
// dropped from the result.
func (s *Suite) RenderAll(ctx context.Context, sched *schedule.Schedule, recipeName string, title string) (string, []Artifact) {
	text := s.text.Render(sched, title)

	name := plandb.SanitizeName(recipeName)
	if name == "" {
		name = "gantt"
	}
	stamp := time.Now().Format("20060102_150405")

	results := make([]*Artifact, 4)
	var grp errgroup.Group

	grp.Go(func() error {
		path := filepath.Join(s.root, textDir, fmt.Sprintf("%s_%s.txt", name, stamp))
		if err := writeArtifact(path, []byte(text)); err != nil {
			slog.WarnContext(ctx, "gantt: persisting text chart", "error", err)
			return nil
		}
		results[0] = &Artifact{Path: path, Format: FormatText}
		return nil
	})

	grp.Go(func() error {
		img, err := s.raster.Render(sched, title)
		if err != nil {
			logRenderFailure(ctx, "raster", err)
			return nil
		}
		path := filepath.Join(s.root, rasterDir, fmt.Sprintf("%s_%s.png", name, stamp))
		if err := withArtifactFile(path, func(w io.Writer) error { return png.Encode(w, img) }); err != nil {
			slog.WarnContext(ctx, "gantt: persisting raster chart", "error", err)
			return nil
		}
		results[1] = &Artifact{Path: path, Format: FormatRaster}
		return nil
	})

	grp.Go(func() error {
		chart, err := s.interactive.Render(sched, title)
		if err != nil {
			logRenderFailure(ctx, "interactive", err)
			return nil
		}
		path := filepath.Join(s.root, interactiveDir, fmt.Sprintf("%s_%s.html", name, stamp))
		if err := withArtifactFile(path, chart.Render); err != nil {
			slog.WarnContext(ctx, "gantt: persisting interactive chart", "error", err)
			return nil
		}
		results[2] = &Artifact{Path: path, Format: FormatHTMLInteractive}
		return nil
	})

	grp.Go(func() error {
		data, err := s.ganttProject.Export(sched, recipeName)
		if err != nil {
			logRenderFailure(ctx, "ganttproject", err)
			return nil
		}
		path := filepath.Join(s.root, ganttProjectDir, fmt.Sprintf("%s_%s.gan", name, stamp))
		if err := writeArtifact(path, data); err != nil {
			slog.WarnContext(ctx, "gantt: persisting ganttproject export", "error", err)
			return nil
		}
		results[3] = &Artifact{Path: path, Format: FormatGanttProject}
		return nil
	})

	_ = grp.Wait()

	artifacts := make([]Artifact, 0, len(results))
	for _, a := range results {
		if a != nil {
			artifacts = append(artifacts, *a)
		}
	}
	return text, artifacts
}

func logRenderFailure(ctx context.Context, renderer string, err error) {
	if errors.Is(err, ErrRenderUnavailable) {
		slog.DebugContext(ctx, "gantt: renderer disabled", "renderer", renderer)
		return
	}
	slog.WarnContext(ctx, "gantt: rendering chart", "renderer", renderer, "error", err)
}

func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gantt: creating artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gantt: writing artifact: %w", err)
	}
	return nil
}

func withArtifactFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gantt: creating artifact directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gantt: creating artifact: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("gantt: writing artifact: %w", err)
	}
	return nil
}
