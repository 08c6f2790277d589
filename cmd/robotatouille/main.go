// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/openai/openai-go/v3"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/Pougnator/BOT-Ratatouille/internal/chat"
	"github.com/Pougnator/BOT-Ratatouille/internal/config"
	"github.com/Pougnator/BOT-Ratatouille/internal/gantt"
	"github.com/Pougnator/BOT-Ratatouille/internal/hardware"
	"github.com/Pougnator/BOT-Ratatouille/internal/llm"
	"github.com/Pougnator/BOT-Ratatouille/internal/logging"
	"github.com/Pougnator/BOT-Ratatouille/internal/plandb"
)

func main() {
	var debug bool

	root := &cobra.Command{
		Use:           "robotatouille",
		Short:         "AI cooking assistant with parallel step scheduling",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				return logging.Configure(logging.LevelDebug)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssistant(cmd.Context())
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(renderCmd())
	root.AddCommand(exportCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runAssistant(ctx context.Context) error {
	conf, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Configure(conf.LogLevel); err != nil {
		return err
	}

	oai := openai.NewClient()

	var genAI *genai.Client
	if os.Getenv("GEMINI_API_KEY") != "" {
		genAI, err = genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
		if err != nil {
			return fmt.Errorf("main: creating genai client: %w", err)
		}
	}
	agent := llm.NewAgent(oai, genAI, conf.LLM.ChatModel, conf.LLM.GeminiModel, float64(conf.DefaultStepMinutes))

	store := plandb.NewStore(filepath.Join(conf.Gantt.OutputDir, "plans"))
	charts := gantt.NewSuite(conf.Gantt.OutputDir, gantt.Capabilities{
		Raster:       conf.Gantt.Raster,
		Interactive:  conf.Gantt.Interactive,
		GanttProject: conf.Gantt.GanttProject,
		TextWidth:    conf.Gantt.TextWidth,
	})

	var buttons hardware.Buttons
	if conf.Hardware.Enabled {
		buttons = hardware.New(conf.Hardware.Pins...)
		defer func() {
			_ = buttons.Close()
		}()
	}

	assistant := chat.NewAssistant(agent, store, charts, os.Stdin, os.Stdout, buttons)
	return assistant.Run(ctx)
}

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <plan.json>",
		Short: "Render a saved cooking plan as Gantt charts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load()
			if err != nil {
				return err
			}
			store := plandb.NewStore(filepath.Dir(args[0]))
			sched, err := store.Load(args[0])
			if err != nil {
				return err
			}

			charts := gantt.NewSuite(conf.Gantt.OutputDir, gantt.Capabilities{
				Raster:       conf.Gantt.Raster,
				Interactive:  conf.Gantt.Interactive,
				GanttProject: conf.Gantt.GanttProject,
				TextWidth:    conf.Gantt.TextWidth,
			})
			name := planName(args[0])
			text, artifacts := charts.RenderAll(cmd.Context(), sched, name, "Gantt chart: "+name)
			fmt.Fprintln(cmd.OutOrStdout(), text)
			for _, a := range artifacts {
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", a.Path)
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <plan.json>",
		Short: "Export a saved cooking plan as a GanttProject file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := plandb.NewStore(filepath.Dir(args[0]))
			sched, err := store.Load(args[0])
			if err != nil {
				return err
			}

			exporter := &gantt.GanttProjectExporter{Enabled: true}
			name := planName(args[0])
			data, err := exporter.Export(sched, name)
			if err != nil {
				return err
			}

			if out == "" {
				out = name + ".gan"
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("main: writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path")
	return cmd
}

// planName strips the directory and extension from a plan path.
func planName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
