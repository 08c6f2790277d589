// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Pougnator/BOT-Ratatouille/internal/gantt"
	"github.com/Pougnator/BOT-Ratatouille/internal/hardware"
	"github.com/Pougnator/BOT-Ratatouille/internal/llm"
	"github.com/Pougnator/BOT-Ratatouille/internal/plandb"
	"github.com/Pougnator/BOT-Ratatouille/internal/schedule"
	"github.com/Pougnator/BOT-Ratatouille/internal/timer"
	"github.com/Pougnator/BOT-Ratatouille/internal/ui"
)

// quickTimerDuration is the countdown started by the enclosure's timer
// button, which has no way to enter a duration.
const quickTimerDuration = 5 * time.Minute

const welcome = `Welcome to your AI Cooking Assistant! 👨‍🍳

I'll help you discover delicious recipes based on your available ingredients,
build a cooking schedule you can follow, and guide you step by step.

Let's get started!`

// Assistant runs the interactive cooking conversation on a terminal.
type Assistant struct {
	agent   *llm.Agent
	store   *plandb.Store
	charts  *gantt.Suite
	timers  *timer.Registry
	buttons hardware.Buttons

	in  *bufio.Scanner
	out io.Writer

	session *Session

	// pressNext is set by the enclosure's next button and consumed as a
	// pending "next" command on the following prompt.
	pressNext chan struct{}
}

// NewAssistant wires the conversation loop. buttons may be nil when no
// enclosure hardware is configured.
func NewAssistant(agent *llm.Agent, store *plandb.Store, charts *gantt.Suite, in io.Reader, out io.Writer, buttons hardware.Buttons) *Assistant {
	a := &Assistant{
		agent:     agent,
		store:     store,
		charts:    charts,
		in:        bufio.NewScanner(in),
		out:       out,
		session:   NewSession(),
		buttons:   buttons,
		pressNext: make(chan struct{}, 1),
	}
	a.timers = timer.NewRegistry(nil, func(t timer.Timer) {
		fmt.Fprintln(a.out, "\n"+ui.TimerMsg("Timer %q finished after %s!", t.Label, timer.FormatDuration(t.Duration)))
	})
	return a
}

// Run drives the conversation until the user quits or input ends.
func (a *Assistant) Run(ctx context.Context) error {
	defer a.timers.Close()
	a.setupButtons(ctx)

	fmt.Fprintln(a.out, ui.Panel("🍳 Cooking Assistant", welcome))

	a.collectServings()
	a.session.State = StateIngredientCollection

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "\n%s %s\n\n", ui.Bold("Current State:"), ui.Title(a.session.State.String()))

		switch a.session.State {
		case StateIngredientCollection:
			if a.collectIngredients() {
				a.session.State = StateRecipeProposal
			}

		case StateRecipeProposal:
			if err := a.proposeRecipes(ctx); err != nil {
				return err
			}
			a.session.State = StateRecipeConfirmation

		case StateRecipeConfirmation:
			ok, err := a.confirmRecipe(ctx)
			if err != nil {
				return err
			}
			if ok {
				a.session.State = StatePlanning
			}

		case StatePlanning:
			a.buildPlan(ctx)
			a.displaySteps()
			a.session.State = StateStepExecution

		case StateStepExecution:
			cont, err := a.executeStep(ctx)
			if err != nil {
				return err
			}
			if !cont {
				fmt.Fprintln(a.out, "\n"+ui.Muted("Thank you for using the Cooking Assistant! Happy cooking! 👋"))
				return nil
			}
			if a.session.Done() {
				a.session.State = StateCompleted
			} else {
				a.session.Advance()
			}

		case StateCompleted:
			fmt.Fprintln(a.out, "\n"+ui.Success("🎉 Congratulations! You've completed the recipe!"))
			fmt.Fprintln(a.out, ui.Panel("", "Enjoy your delicious meal! 🍽️"))
			if a.prompt("Would you like to cook another recipe? (yes/no)") == "yes" {
				a.session.Reset()
				a.agent.Reset()
			} else {
				fmt.Fprintln(a.out, "\n"+ui.Muted("Thank you for using the Cooking Assistant! Happy cooking! 👋"))
				return nil
			}

		default:
			return nil
		}
	}
}

func (a *Assistant) setupButtons(ctx context.Context) {
	if a.buttons == nil || !a.buttons.Available() {
		return
	}
	a.buttons.OnPress(hardware.PinNext, func() {
		select {
		case a.pressNext <- struct{}{}:
		default:
		}
	})
	a.buttons.OnPress(hardware.PinTimer, func() {
		if _, err := a.timers.Start(ctx, "quick timer", quickTimerDuration); err != nil {
			slog.WarnContext(ctx, "Could not start quick timer", "error", err)
			return
		}
		fmt.Fprintln(a.out, "\n"+ui.SuccessMsg("Quick timer set for %s", timer.FormatDuration(quickTimerDuration)))
	})
	go func() {
		if err := a.buttons.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.WarnContext(ctx, "Button polling stopped", "error", err)
		}
	}()
}

// prompt reads one trimmed line, returning "" at end of input.
func (a *Assistant) prompt(question string) string {
	if question != "" {
		fmt.Fprintln(a.out, ui.Warn(question))
	}
	fmt.Fprint(a.out, "> ")
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *Assistant) collectServings() {
	for {
		input := a.prompt("How many people are you cooking for?")
		if input == "" {
			fmt.Fprintln(a.out, ui.SuccessMsg("Cooking for %d people", a.session.Servings))
			return
		}
		n, err := strconv.Atoi(input)
		if err != nil || n <= 0 {
			fmt.Fprintln(a.out, ui.ErrorMsg("Please enter a positive number."))
			continue
		}
		a.session.Servings = n
		fmt.Fprintln(a.out, ui.SuccessMsg("Cooking for %d people", n))
		return
	}
}

func (a *Assistant) collectIngredients() bool {
	fmt.Fprintln(a.out, ui.Muted("Enter ingredients separated by commas (e.g., chicken, rice, tomatoes)"))
	input := a.prompt("What ingredients do you have?")

	var ingredients []string
	for _, part := range strings.Split(input, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ingredients = append(ingredients, p)
		}
	}
	if len(ingredients) == 0 {
		fmt.Fprintln(a.out, ui.ErrorMsg("No ingredients provided. Please try again."))
		return false
	}
	a.session.AddIngredients(ingredients)
	fmt.Fprintln(a.out, ui.SuccessMsg("Added %d ingredients", len(ingredients)))
	return true
}

func (a *Assistant) proposeRecipes(ctx context.Context) error {
	fmt.Fprintln(a.out, ui.Muted("Analyzing your ingredients and finding recipes..."))
	proposals, err := a.agent.ProposeRecipes(ctx, a.session.Ingredients, a.session.Servings)
	if err != nil {
		return fmt.Errorf("chat: proposing recipes: %w", err)
	}
	fmt.Fprintln(a.out, ui.Panel("📖 Recipe Suggestions", proposals))
	return nil
}

func (a *Assistant) confirmRecipe(ctx context.Context) (bool, error) {
	choice := a.prompt("Which recipe would you like to cook? Enter the number or the recipe name:")
	if choice == "" {
		return false, nil
	}
	fmt.Fprintln(a.out, ui.SuccessMsg("Selected recipe: %s", choice))

	r, err := a.agent.RecipeSteps(ctx, choice, a.session.Ingredients, a.session.Servings)
	if err != nil {
		return false, fmt.Errorf("chat: fetching recipe steps: %w", err)
	}
	a.session.SetRecipe(choice, r)

	explanation, err := a.agent.ExplainIngredients(ctx, a.session.SelectedRecipe, a.session.Ingredients)
	if err != nil {
		slog.WarnContext(ctx, "Could not explain ingredients", "error", err)
	} else {
		fmt.Fprintln(a.out, ui.Panel("🧾 Ingredients", explanation))
	}

	if len(r.Ingredients) > 0 {
		rows := make([][]string, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			rows = append(rows, []string{ing.Quantity, ing.Unit, ing.Name, ing.Preparation})
		}
		fmt.Fprintln(a.out, ui.StepsTable([]string{"Quantity", "Unit", "Ingredient", "Preparation"}, rows))
	}
	return true, nil
}

// buildPlan turns the recipe steps into a schedule, persists it, and shows
// the chart. A bad dependency graph abandons the plan, not the session: the
// user can still cook through the steps in listed order.
func (a *Assistant) buildPlan(ctx context.Context) {
	graph, err := schedule.NewGraph(a.session.Recipe.StepRecords())
	if err != nil {
		fmt.Fprintln(a.out, ui.WarnMsg("Could not build a cooking schedule: %v", err))
		slog.WarnContext(ctx, "Abandoning plan", "error", err)
		return
	}

	sched := schedule.Compute(graph, time.Now())
	if _, err := a.store.Save(sched, a.session.SelectedRecipe); err != nil {
		slog.WarnContext(ctx, "Could not save plan", "error", err)
	}

	title := "Gantt chart: " + a.session.SelectedRecipe
	text, artifacts := a.charts.RenderAll(ctx, sched, a.session.SelectedRecipe, title)
	fmt.Fprintln(a.out, ui.Panel("📊 Cooking Schedule", text))
	for _, artifact := range artifacts {
		fmt.Fprintln(a.out, ui.Muted(fmt.Sprintf("  saved %s", artifact.Path)))
	}
}

func (a *Assistant) displaySteps() {
	steps := a.session.Recipe.Steps
	rows := make([][]string, 0, len(steps))
	for i, step := range steps {
		marker := " "
		if i == a.session.CurrentStep {
			marker = "→"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s %d", marker, i+1),
			step.Description,
			fmt.Sprintf("%.0f min", step.DurationMinutes),
		})
	}
	fmt.Fprintln(a.out, ui.StepsTable([]string{"Step", "Instruction", "Duration"}, rows))
}

// executeStep shows the current step and handles commands until the user
// moves on. It reports whether the session should continue.
func (a *Assistant) executeStep(ctx context.Context) (bool, error) {
	step, ok := a.session.Step()
	if !ok {
		return false, nil
	}
	total := len(a.session.Recipe.Steps)
	fmt.Fprintf(a.out, "\n%s\n", ui.Success(fmt.Sprintf("Step %d/%d:", a.session.CurrentStep+1, total)))
	fmt.Fprintln(a.out, ui.Panel("", step.Description))

	for {
		a.showTimers()
		fmt.Fprintln(a.out, ui.Muted("Commands: 'next' (continue), 'timer <duration>' (set timer), 'ask <question>' (ask for help), 'quit' (exit)"))

		input := a.readCommand()
		switch {
		case input == "next":
			return true, nil

		case strings.HasPrefix(input, "timer "):
			a.startTimer(ctx, strings.TrimPrefix(input, "timer "))

		case strings.HasPrefix(input, "ask "):
			question := strings.TrimPrefix(input, "ask ")
			answer, err := a.agent.GuideStep(ctx, step.Description, question)
			if err != nil {
				fmt.Fprintln(a.out, ui.ErrorMsg("Could not get an answer: %v", err))
				continue
			}
			fmt.Fprintln(a.out, ui.Panel("💡 Cooking Tip", answer))

		case input == "quit" || input == "":
			return false, nil

		default:
			fmt.Fprintln(a.out, ui.ErrorMsg("Unknown command. Try 'next', 'timer <duration>', or 'ask <question>'"))
		}
	}
}

// readCommand returns the next command, favoring a pending hardware button
// press over terminal input.
func (a *Assistant) readCommand() string {
	select {
	case <-a.pressNext:
		fmt.Fprintln(a.out, ui.SuccessMsg("Next button pressed"))
		return "next"
	default:
	}
	return strings.ToLower(a.prompt(""))
}

func (a *Assistant) startTimer(ctx context.Context, spec string) {
	d, err := timer.ParseDuration(spec)
	if err != nil {
		fmt.Fprintln(a.out, ui.ErrorMsg("Invalid duration. Try '10 min', '30 sec', etc."))
		return
	}
	label := fmt.Sprintf("Step %d", a.session.CurrentStep+1)
	if _, err := a.timers.Start(ctx, label, d); err != nil {
		fmt.Fprintln(a.out, ui.ErrorMsg("Could not start timer: %v", err))
		return
	}
	fmt.Fprintln(a.out, ui.SuccessMsg("Timer set for %s", timer.FormatDuration(d)))
}

func (a *Assistant) showTimers() {
	active := a.timers.Active()
	if len(active) == 0 {
		return
	}
	fmt.Fprintln(a.out, "\n"+ui.Bold("Active Timers:"))
	for _, t := range active {
		if left, ok := a.timers.Remaining(t.ID); ok {
			fmt.Fprintf(a.out, "  ⏱️  %s: %s remaining\n", t.Label, timer.FormatDuration(left))
		}
	}
}
