// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import "fmt"

func ProposeRecipesPrompt() string {
	return proposeRecipes
}

const proposeRecipes = `You are a helpful cooking assistant. Based on the ingredients provided,
suggest 3 different recipes the user can cook. For each recipe, provide:
1. Recipe name
2. Brief description
3. Difficulty level (Easy/Medium/Hard)
Scale quantities to the number of people being cooked for. Format your response as a numbered list.
`

func RecipeStepsPrompt() string {
	return recipeSteps
}

const recipeSteps = `You are a helpful cooking assistant. Provide clear, step-by-step cooking
instructions for the requested recipe. Each step must be concise and actionable, carry a short
unique id, an estimated duration in minutes, and the ids of the steps that must be finished
before it can start. Steps that can run in parallel, such as preheating the oven while chopping
vegetables, must not depend on each other so the user can overlap them. Scale ingredient
quantities to the number of people being cooked for.
`

func ExplainIngredientsPrompt() string {
	return explainIngredients
}

const explainIngredients = `You are a helpful cooking assistant. Given a recipe and the user's
available ingredients, explain in natural language which ingredients the recipe needs, which of
them the user already has, and what they may still need to buy. Keep it short and friendly.
`

// GuideStepPrompt frames a user question about the step currently being
// executed.
func GuideStepPrompt(step string) string {
	return fmt.Sprintf(`You are guiding someone through this cooking step: %s
Answer their question helpfully and concisely.`, step)
}
