// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package chat drives the interactive cooking conversation.
package chat

import (
	"github.com/Pougnator/BOT-Ratatouille/internal/recipe"
)

// State is a phase of the cooking conversation.
type State int

const (
	StateStarting State = iota
	StateIngredientCollection
	StateRecipeProposal
	StateRecipeConfirmation
	StatePlanning
	StateStepExecution
	StateCompleted
)

// String returns the user-facing phase name.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "Starting"
	case StateIngredientCollection:
		return "Ingredient Collection"
	case StateRecipeProposal:
		return "Recipe Proposal"
	case StateRecipeConfirmation:
		return "Recipe Confirmation"
	case StatePlanning:
		return "Planning"
	case StateStepExecution:
		return "Step Execution"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Session holds the state of one cooking conversation.
type Session struct {
	State       State
	Servings    int
	Ingredients []string

	// SelectedRecipe is the user's chosen recipe name.
	SelectedRecipe string

	// Recipe is the structured recipe once fetched.
	Recipe *recipe.Recipe

	// CurrentStep indexes into Recipe.Steps during execution.
	CurrentStep int
}

// NewSession returns a Session at the starting phase cooking for two people.
func NewSession() *Session {
	return &Session{State: StateStarting, Servings: 2}
}

// AddIngredients appends ingredients to the pantry list.
func (s *Session) AddIngredients(ingredients []string) {
	s.Ingredients = append(s.Ingredients, ingredients...)
}

// SetRecipe installs the fetched recipe and rewinds step execution.
func (s *Session) SetRecipe(name string, r *recipe.Recipe) {
	s.SelectedRecipe = name
	if r != nil && r.Title != "" {
		s.SelectedRecipe = r.Title
	}
	s.Recipe = r
	s.CurrentStep = 0
}

// Step returns the step currently being executed, or false when execution is
// out of range.
func (s *Session) Step() (recipe.Step, bool) {
	if s.Recipe == nil || s.CurrentStep < 0 || s.CurrentStep >= len(s.Recipe.Steps) {
		return recipe.Step{}, false
	}
	return s.Recipe.Steps[s.CurrentStep], true
}

// Advance moves to the next step, reporting whether one remains.
func (s *Session) Advance() bool {
	if s.Recipe == nil || s.CurrentStep >= len(s.Recipe.Steps)-1 {
		return false
	}
	s.CurrentStep++
	return true
}

// Done reports whether the last step has been reached.
func (s *Session) Done() bool {
	return s.Recipe == nil || s.CurrentStep >= len(s.Recipe.Steps)-1
}

// Reset returns the session to the ingredient collection phase for another
// recipe, keeping nothing from the previous run.
func (s *Session) Reset() {
	*s = Session{State: StateIngredientCollection, Servings: 2}
}
