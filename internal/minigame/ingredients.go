// Package minigame implements the three timed or ordered activities of the
// making stage: ingredient ordering, rhythm mixing and baking. Sessions are
// plain values with no goroutines; the caller passes the current time in.
package minigame

import (
	"fmt"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

// IngredientSession tracks progress through a fixed ingredient order.
type IngredientSession struct {
	required []domain.Ingredient
	cursor   int
}

// NewIngredientSession creates a session that accepts required in order.
func NewIngredientSession(required []domain.Ingredient) *IngredientSession {
	r := make([]domain.Ingredient, len(required))
	copy(r, required)
	return &IngredientSession{required: r}
}

// Offer adds an ingredient. It is accepted only if it is the next one in
// the required order; otherwise the session is left unchanged.
func (s *IngredientSession) Offer(ing domain.Ingredient) error {
	if s.Done() {
		return domain.ErrSessionOver
	}
	want := s.required[s.cursor]
	if ing != want {
		return fmt.Errorf("%w: expected %s, got %s", domain.ErrWrongIngredient, want, ing)
	}
	s.cursor++
	return nil
}

// Cursor returns how many ingredients have been accepted.
func (s *IngredientSession) Cursor() int { return s.cursor }

// Done reports whether every required ingredient was added.
func (s *IngredientSession) Done() bool { return s.cursor >= len(s.required) }

// Next returns the ingredient expected next, or IngredientNone when done.
func (s *IngredientSession) Next() domain.Ingredient {
	if s.Done() {
		return domain.IngredientNone
	}
	return s.required[s.cursor]
}
