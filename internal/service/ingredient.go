package service

import (
	"context"
	"strings"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/atinyakov/HabitTracker/internal/validate"
)

// IngredientService manages the shared ingredient catalog.
type IngredientService struct {
	ingredients IngredientStore
	auth        Verifier
}

// NewIngredientService constructs an IngredientService.
func NewIngredientService(ingredients IngredientStore, auth Verifier) *IngredientService {
	return &IngredientService{ingredients: ingredients, auth: auth}
}

// Add validates in and adds it to the catalog. Only signed-in users may
// extend the catalog.
func (s *IngredientService) Add(ctx context.Context, token string, in models.IngredientInput) (*models.Ingredient, error) {
	if _, err := s.auth.Verify(token); err != nil {
		return nil, err
	}
	if err := validate.Ingredient.Check(&in); err != nil {
		return nil, err
	}

	ing := in.Ingredient()
	if err := s.ingredients.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// List returns catalog ingredients whose name starts with raw["name"].
// A missing or blank name lists the first filter.MaxResults ingredients.
func (s *IngredientService) List(ctx context.Context, raw map[string]any) ([]models.Ingredient, error) {
	var prefix string
	switch v := raw["name"].(type) {
	case nil:
	case string:
		prefix = strings.TrimSpace(v)
	default:
		return nil, apperr.Validation("Invalid filter value for name")
	}
	return s.ingredients.FindByNamePrefix(ctx, prefix)
}
