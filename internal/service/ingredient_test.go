package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/HabitTracker/internal/models"
)

func validIngredient() models.IngredientInput {
	return models.IngredientInput{
		Name: "Oats",
		NutritionalValue: models.NutritionalValueInput{
			Calories:      models.NumberOf(389),
			Carbohydrates: models.NumberOf(66),
			Proteins:      models.NumberOf(17),
			Fats:          models.FatsInput{Saturated: models.NumberOf(1), Unsaturated: models.NumberOf(5)},
		},
	}
}

func TestIngredientAdd(t *testing.T) {
	var stored *models.Ingredient
	repo := &mockIngredients{CreateFunc: func(_ context.Context, ing *models.Ingredient) error {
		ing.ID = "i1"
		stored = ing
		return nil
	}}
	svc := NewIngredientService(repo, tokenVerifier{})

	ing, err := svc.Add(context.Background(), "token-alice", validIngredient())
	require.NoError(t, err)
	assert.Same(t, stored, ing)
	assert.Equal(t, 389.0, ing.NutritionalValue.Calories)
	assert.Equal(t, 5.0, ing.NutritionalValue.Fats.Unsaturated)
}

func TestIngredientAdd_Rejected(t *testing.T) {
	repo := &mockIngredients{CreateFunc: func(context.Context, *models.Ingredient) error {
		t.Fatal("Create must not be called")
		return nil
	}}
	svc := NewIngredientService(repo, tokenVerifier{})

	_, err := svc.Add(context.Background(), "", validIngredient())
	requireAppErr(t, err, http.StatusUnauthorized, "Unauthorized or missing token")

	in := validIngredient()
	in.NutritionalValue.Proteins = models.Number{}
	_, err = svc.Add(context.Background(), "token-alice", in)
	requireAppErr(t, err, http.StatusBadRequest, "Invalid proteins")
}

func TestIngredientList(t *testing.T) {
	var gotPrefix string
	repo := &mockIngredients{FindByNamePrefixFunc: func(_ context.Context, prefix string) ([]models.Ingredient, error) {
		gotPrefix = prefix
		return []models.Ingredient{oats}, nil
	}}
	svc := NewIngredientService(repo, tokenVerifier{})

	list, err := svc.List(context.Background(), map[string]any{"name": "  oa "})
	require.NoError(t, err)
	assert.Equal(t, "oa", gotPrefix)
	assert.Len(t, list, 1)

	_, err = svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", gotPrefix)

	_, err = svc.List(context.Background(), map[string]any{"name": 42})
	requireAppErr(t, err, http.StatusBadRequest, "Invalid filter value for name")
}
