// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package llm wraps the language model clients behind the small set of
// operations the assistant needs: proposing recipes, extracting structured
// recipe steps, and answering questions during execution.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/Pougnator/BOT-Ratatouille/internal/recipe"
)

const maxTries = 3

// Agent holds the model clients and one conversation history. It is owned by
// a single cooking session; the history is never shared process-wide.
type Agent struct {
	oai         openai.Client
	genAI       *genai.Client
	chatModel   string
	geminiModel string

	// defaultStepMinutes is applied to fetched steps without a duration.
	defaultStepMinutes float64

	history []openai.ChatCompletionMessageParamUnion
}

// NewAgent returns an Agent. genAI may be nil, in which case structured step
// extraction falls back to the chat model with a JSON-only instruction. A
// non-positive defaultStepMinutes falls back to recipe.DefaultStepMinutes.
func NewAgent(oai openai.Client, genAI *genai.Client, chatModel string, geminiModel string, defaultStepMinutes float64) *Agent {
	return &Agent{
		oai:                oai,
		genAI:              genAI,
		chatModel:          chatModel,
		geminiModel:        geminiModel,
		defaultStepMinutes: defaultStepMinutes,
	}
}

// Reset clears the conversation history, e.g. when the user restarts the
// recipe flow.
func (a *Agent) Reset() {
	a.history = nil
}

// ProposeRecipes suggests recipes for the available ingredients.
func (a *Agent) ProposeRecipes(ctx context.Context, ingredients []string, servings int) (string, error) {
	user := fmt.Sprintf("I am cooking for %d people and have these ingredients: %s. What recipes can I make?",
		servings, strings.Join(ingredients, ", "))
	return a.chat(ctx, ProposeRecipesPrompt(), user)
}

// ExplainIngredients summarizes the ingredient situation for the selected
// recipe in natural language.
func (a *Agent) ExplainIngredients(ctx context.Context, recipeName string, ingredients []string) (string, error) {
	user := fmt.Sprintf("The recipe is %s. My available ingredients are: %s.",
		recipeName, strings.Join(ingredients, ", "))
	return a.chat(ctx, ExplainIngredientsPrompt(), user)
}

// GuideStep answers a question about the step currently being executed.
func (a *Agent) GuideStep(ctx context.Context, step string, question string) (string, error) {
	return a.chat(ctx, GuideStepPrompt(step), question)
}

// RecipeSteps fetches the selected recipe as structured steps with durations
// and dependencies.
func (a *Agent) RecipeSteps(ctx context.Context, recipeName string, ingredients []string, servings int) (*recipe.Recipe, error) {
	user := fmt.Sprintf("Give me detailed cooking steps for %s for %d people using these ingredients: %s",
		recipeName, servings, strings.Join(ingredients, ", "))

	if a.genAI != nil {
		return a.recipeStepsGemini(ctx, user)
	}
	return a.recipeStepsChat(ctx, user)
}

func (a *Agent) recipeStepsGemini(ctx context.Context, user string) (*recipe.Recipe, error) {
	res, err := backoff.Retry(ctx, func() (*genai.GenerateContentResponse, error) {
		return a.genAI.Models.GenerateContent(ctx, a.geminiModel, []*genai.Content{
			genai.NewContentFromText(user, genai.RoleUser),
		}, &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(RecipeStepsPrompt(), genai.RoleModel),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    recipe.Schema,
		})
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxTries))
	if err != nil {
		return nil, fmt.Errorf("llm: generating recipe steps: %w", err)
	}
	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("llm: unexpected empty response from genai: %v", res)
	}

	var r recipe.Recipe
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return nil, fmt.Errorf("llm: unmarshalling recipe steps: %w", err)
	}
	r.Normalize(a.defaultStepMinutes)
	return &r, nil
}

func (a *Agent) recipeStepsChat(ctx context.Context, user string) (*recipe.Recipe, error) {
	system := RecipeStepsPrompt() + `
Respond with a single JSON object of the shape
{"title": string, "servingSize": string, "ingredients": [{"quantity", "unit", "name", "preparation"}],
"steps": [{"id", "description", "durationMinutes", "dependencies"}]} and nothing else.`

	out, err := a.chat(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var r recipe.Recipe
	if err := json.Unmarshal([]byte(stripFences(out)), &r); err != nil {
		return nil, fmt.Errorf("llm: unmarshalling recipe steps: %w", err)
	}
	r.Normalize(a.defaultStepMinutes)
	return &r, nil
}

// chat sends one turn through the conversation history and records the
// exchange.
func (a *Agent) chat(ctx context.Context, system string, user string) (string, error) {
	msgs := a.requestMessages(system, user)

	res, err := backoff.Retry(ctx, func() (*openai.ChatCompletion, error) {
		return a.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       openai.ChatModel(a.chatModel),
			Messages:    msgs,
			Temperature: openai.Float(0.7),
		})
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxTries))
	if err != nil {
		return "", fmt.Errorf("llm: chat completion: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("llm: chat completion returned no choices")
	}

	content := res.Choices[0].Message.Content
	a.record(user, content)
	return content, nil
}

// requestMessages assembles one API call: the turn's system prompt first,
// then the stored history, then the new user message. System prompts are
// per-turn and never enter the stored history, so repeated turns do not
// accumulate duplicates.
func (a *Agent) requestMessages(system string, user string) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(a.history)+2)
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	msgs = append(msgs, a.history...)
	return append(msgs, openai.UserMessage(user))
}

func (a *Agent) record(user string, assistant string) {
	a.history = append(a.history, openai.UserMessage(user), openai.AssistantMessage(assistant))
}

// stripFences removes a surrounding markdown code fence, which chat models
// add around JSON despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
