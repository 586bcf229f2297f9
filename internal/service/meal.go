package service

import (
	"context"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/atinyakov/HabitTracker/internal/validate"
)

const mealKind kind = "Meal"

// IngredientStore is the shared ingredient catalog.
type IngredientStore interface {
	// Create assigns an id to ing and stores it.
	Create(ctx context.Context, ing *models.Ingredient) error
	// FindByNamePrefix returns ingredients whose name starts with prefix, ignoring case.
	FindByNamePrefix(ctx context.Context, prefix string) ([]models.Ingredient, error)
	// FindByIDs returns the ingredients among ids that exist.
	FindByIDs(ctx context.Context, ids []string) ([]models.Ingredient, error)
}

// MealService manages a user's meals.
type MealService struct {
	meals       Collection[models.Meal]
	ingredients IngredientStore
	auth        Verifier
}

// NewMealService constructs a MealService.
func NewMealService(meals Collection[models.Meal], ingredients IngredientStore, auth Verifier) *MealService {
	return &MealService{meals: meals, ingredients: ingredients, auth: auth}
}

// Add validates in, checks that every referenced ingredient exists and
// stores the meal for the caller.
func (s *MealService) Add(ctx context.Context, token string, in models.MealInput) (*models.Meal, error) {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return nil, err
	}
	in = in.Normalize()
	if err := validate.Meal.Check(&in); err != nil {
		return nil, err
	}
	if _, err := s.catalog(ctx, in.IngredientIDs()); err != nil {
		return nil, err
	}

	meal := &models.Meal{UserID: owner, Ingredients: []models.MealIngredient{}}
	in.Apply(meal)
	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// Update applies the supplied fields of patch to the caller's meal id.
// A supplied ingredient list replaces the stored one as a whole.
func (s *MealService) Update(ctx context.Context, token, id string, patch models.MealInput) error {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return err
	}
	if err := mealKind.requireID(id); err != nil {
		return err
	}

	meal, err := s.meals.FindOne(ctx, owner, id)
	if err != nil {
		return mealKind.notFound(err)
	}

	patch = patch.Normalize()
	merged := models.MealInputFrom(meal).Overlay(patch)
	if err := validate.Meal.Check(&merged); err != nil {
		return err
	}
	if patch.Ingredients != nil {
		if _, err := s.catalog(ctx, patch.IngredientIDs()); err != nil {
			return err
		}
	}

	patch.Apply(meal)
	return mealKind.notFound(s.meals.Replace(ctx, meal))
}

// Remove deletes the caller's meal id.
func (s *MealService) Remove(ctx context.Context, token, id string) error {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return err
	}
	if err := mealKind.requireID(id); err != nil {
		return err
	}
	return mealKind.notFound(s.meals.Delete(ctx, owner, id))
}

// List returns up to filter.MaxResults of the caller's meals matching raw.
func (s *MealService) List(ctx context.Context, token string, raw map[string]any) ([]models.Meal, error) {
	owner, err := s.auth.Verify(token)
	if err != nil {
		return nil, err
	}
	q, err := filter.Compile(raw, owner, filter.Meals)
	if err != nil {
		return nil, err
	}
	return s.meals.Find(ctx, q)
}

// Nutrition totals the nutritional value of the caller's meal id. Each
// line contributes its ingredient's value multiplied by its quantity.
func (s *MealService) Nutrition(ctx context.Context, token, id string) (models.NutritionalValue, error) {
	var total models.NutritionalValue

	owner, err := s.auth.Verify(token)
	if err != nil {
		return total, err
	}
	if err := mealKind.requireID(id); err != nil {
		return total, err
	}

	meal, err := s.meals.FindOne(ctx, owner, id)
	if err != nil {
		return total, mealKind.notFound(err)
	}

	ids := models.MealInputFrom(meal).IngredientIDs()
	catalog, err := s.catalog(ctx, ids)
	if err != nil {
		return total, err
	}
	for _, line := range meal.Ingredients {
		total = total.Add(catalog[line.IngredientID].NutritionalValue.Scale(line.Quantity))
	}
	return total, nil
}

// catalog loads the ingredients ids refer to, failing when any is missing.
func (s *MealService) catalog(ctx context.Context, ids []string) (map[string]models.Ingredient, error) {
	found, err := s.ingredients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Ingredient, len(found))
	for _, ing := range found {
		byID[ing.ID] = ing
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperr.Validation("Ingredient not found")
		}
	}
	return byID, nil
}
