package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/HabitTracker/internal/models"
)

// MealService defines the meal operations required by NutritionHandler.
type MealService interface {
	Add(ctx context.Context, token string, in models.MealInput) (*models.Meal, error)
	Update(ctx context.Context, token, id string, patch models.MealInput) error
	Remove(ctx context.Context, token, id string) error
	List(ctx context.Context, token string, raw map[string]any) ([]models.Meal, error)
	Nutrition(ctx context.Context, token, id string) (models.NutritionalValue, error)
}

// IngredientService defines the catalog operations required by NutritionHandler.
type IngredientService interface {
	Add(ctx context.Context, token string, in models.IngredientInput) (*models.Ingredient, error)
	List(ctx context.Context, raw map[string]any) ([]models.Ingredient, error)
}

// NutritionHandler handles the /nutrition endpoints: meals and the
// shared ingredient catalog.
type NutritionHandler struct {
	MealService       MealService
	IngredientService IngredientService
	Logger            *zap.Logger
}

type mealRequest struct {
	Token  string `json:"token"`
	MealID string `json:"mealId"`
	models.MealInput
}

type ingredientRequest struct {
	Token string `json:"token"`
	models.IngredientInput
}

// AddMeal handles POST /nutrition/addMeal.
func (h *NutritionHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if _, err := h.MealService.Add(r.Context(), req.Token, req.MealInput); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Meal added successfully")
}

// UpdateMeal handles POST /nutrition/update.
func (h *NutritionHandler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if err := h.MealService.Update(r.Context(), req.Token, req.MealID, req.MealInput); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Meal updated successfully")
}

// DeleteMeal handles POST /nutrition/delete.
func (h *NutritionHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if err := h.MealService.Remove(r.Context(), req.Token, req.MealID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Meal deleted successfully")
}

// Meals handles POST /nutrition/meals and answers {"meals": [...]}.
func (h *NutritionHandler) Meals(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	meals, err := h.MealService.List(r.Context(), req.Token, req.Filter)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meals": meals})
}

// MealNutrition handles POST /nutrition/mealNutrition and answers
// {"nutrition": {...}} with the meal's summed nutritional value.
func (h *NutritionHandler) MealNutrition(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	total, err := h.MealService.Nutrition(r.Context(), req.Token, req.MealID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"nutrition": total})
}

// AddIngredient handles POST /nutrition/addIngredient.
func (h *NutritionHandler) AddIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	if _, err := h.IngredientService.Add(r.Context(), req.Token, req.IngredientInput); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Ingredient added successfully")
}

// Ingredients handles POST /nutrition/ingredients and answers
// {"ingredients": [...]}. No token is required.
func (h *NutritionHandler) Ingredients(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	ingredients, err := h.IngredientService.List(r.Context(), req.Filter)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ingredients": ingredients})
}
