package validate

import (
	"github.com/atinyakov/HabitTracker/internal/models"
)

// Task is the rule list for task input.
var Task = Rules[models.TaskInput]{
	reject(func(in *models.TaskInput) bool { return in.Name == "" },
		"Task name is required"),
	reject(func(in *models.TaskInput) bool { return !oneOf(in.Recurrence, models.Recurrences) },
		"Task recurrence must be 'none', 'daily', 'weekly', or 'monthly'"),
	reject(func(in *models.TaskInput) bool {
		return in.Recurrence != string(models.RecurrenceNone) && in.RecurringDate == ""
	}, "Task recurring date is required"),
	reject(func(in *models.TaskInput) bool {
		return in.Recurrence == string(models.RecurrenceNone) && in.DueDate == ""
	}, "Task due date is required when recurrence is none"),
	reject(func(in *models.TaskInput) bool { return badDate(in.RecurringDate) },
		"Invalid recurring date format"),
	reject(func(in *models.TaskInput) bool { return badDate(in.DueDate) },
		"Invalid due date format"),
}

// Activity is the rule list for activity input.
var Activity = Rules[models.ActivityInput]{
	reject(func(in *models.ActivityInput) bool { return in.Name == "" },
		"Activity name is required"),
	reject(func(in *models.ActivityInput) bool { return !oneOf(in.ActivityType, models.ActivityTypes) },
		"Activity type must be 'running', 'cycling', 'swimming', 'walking', 'hiking', 'yoga', 'weightlifting', or 'other'"),
	reject(func(in *models.ActivityInput) bool { return !in.Duration.Present() },
		"Activity duration is required"),
	reject(func(in *models.ActivityInput) bool { return in.Duration.Invalid() },
		"Invalid duration"),
	reject(func(in *models.ActivityInput) bool { return in.Distance.Invalid() },
		"Invalid distance"),
	reject(func(in *models.ActivityInput) bool { return in.Calories.Invalid() },
		"Invalid calories"),
	reject(func(in *models.ActivityInput) bool { return in.ElevationGain.Invalid() },
		"Invalid elevation gain"),
	reject(func(in *models.ActivityInput) bool { return badDate(in.DateAdded) },
		"Invalid date format"),
	reject(func(in *models.ActivityInput) bool {
		return oneOf(in.ActivityType, models.DistanceActivities) && !in.Distance.Present()
	}, "Distance is required for this activity type"),
}

// Meal is the rule list for meal input. Input must be normalized first.
var Meal = Rules[models.MealInput]{
	reject(func(in *models.MealInput) bool { return in.Name == "" },
		"Meal name is required"),
	reject(func(in *models.MealInput) bool { return !oneOf(in.MealType, models.MealTypes) },
		"Meal type must be 'breakfast', 'brunch', 'lunch', 'dinner', or 'snack'"),
	reject(func(in *models.MealInput) bool { return badDate(in.DateAdded) },
		"Invalid date format"),
	reject(anyLine(func(l models.MealIngredientInput) bool { return l.Ingredient == "" }),
		"Ingredient reference is required"),
	reject(anyLine(func(l models.MealIngredientInput) bool { return !l.Quantity.Present() }),
		"Ingredient quantity is required"),
	reject(anyLine(func(l models.MealIngredientInput) bool { return l.Quantity.Invalid() }),
		"Invalid ingredient quantity"),
	reject(anyLine(func(l models.MealIngredientInput) bool {
		q, _ := l.Quantity.Float()
		return q <= 0
	}), "Ingredient quantity must be positive"),
}

// Ingredient is the rule list for catalog ingredient input.
var Ingredient = Rules[models.IngredientInput]{
	reject(func(in *models.IngredientInput) bool { return in.Name == "" },
		"Ingredient name is required"),
	reject(func(in *models.IngredientInput) bool { return badDate(in.DateAdded) },
		"Invalid date format"),
	reject(missingNumber(func(in *models.IngredientInput) models.Number { return in.NutritionalValue.Calories }),
		"Invalid calories"),
	reject(missingNumber(func(in *models.IngredientInput) models.Number { return in.NutritionalValue.Carbohydrates }),
		"Invalid carbohydrates"),
	reject(missingNumber(func(in *models.IngredientInput) models.Number { return in.NutritionalValue.Proteins }),
		"Invalid proteins"),
	reject(missingNumber(func(in *models.IngredientInput) models.Number { return in.NutritionalValue.Fats.Saturated }),
		"Invalid saturated fats"),
	reject(missingNumber(func(in *models.IngredientInput) models.Number { return in.NutritionalValue.Fats.Unsaturated }),
		"Invalid unsaturated fats"),
}

func anyLine(fails func(models.MealIngredientInput) bool) func(*models.MealInput) bool {
	return func(in *models.MealInput) bool {
		for _, line := range in.Ingredients {
			if fails(line) {
				return true
			}
		}
		return false
	}
}

func missingNumber(field func(*models.IngredientInput) models.Number) func(*models.IngredientInput) bool {
	return func(in *models.IngredientInput) bool {
		_, ok := field(in).Float()
		return !ok
	}
}
