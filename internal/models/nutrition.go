package models

import (
	"strings"
	"time"
)

// MealType is the slot of the day a meal belongs to.
type MealType string

const (
	// MealBreakfast is the morning meal.
	MealBreakfast MealType = "breakfast"
	// MealBrunch is a late morning meal.
	MealBrunch MealType = "brunch"
	// MealLunch is the midday meal.
	MealLunch MealType = "lunch"
	// MealDinner is the evening meal.
	MealDinner MealType = "dinner"
	// MealSnack is anything eaten between meals.
	MealSnack MealType = "snack"
)

// MealTypes lists the accepted meal types.
var MealTypes = []MealType{MealBreakfast, MealBrunch, MealLunch, MealDinner, MealSnack}

// Fats splits the fat content of an ingredient, in grams.
type Fats struct {
	Saturated   float64 `json:"saturated" bson:"saturated"`
	Unsaturated float64 `json:"unsaturated" bson:"unsaturated"`
}

// NutritionalValue is the average nutrition of one unit of an ingredient.
type NutritionalValue struct {
	Calories      float64 `json:"calories" bson:"calories"`
	Carbohydrates float64 `json:"carbohydrates" bson:"carbohydrates"`
	Proteins      float64 `json:"proteins" bson:"proteins"`
	Fats          Fats    `json:"fats" bson:"fats"`
}

// Add returns the sum of v and o.
func (v NutritionalValue) Add(o NutritionalValue) NutritionalValue {
	return NutritionalValue{
		Calories:      v.Calories + o.Calories,
		Carbohydrates: v.Carbohydrates + o.Carbohydrates,
		Proteins:      v.Proteins + o.Proteins,
		Fats: Fats{
			Saturated:   v.Fats.Saturated + o.Fats.Saturated,
			Unsaturated: v.Fats.Unsaturated + o.Fats.Unsaturated,
		},
	}
}

// Scale returns v multiplied by factor.
func (v NutritionalValue) Scale(factor float64) NutritionalValue {
	return NutritionalValue{
		Calories:      v.Calories * factor,
		Carbohydrates: v.Carbohydrates * factor,
		Proteins:      v.Proteins * factor,
		Fats: Fats{
			Saturated:   v.Fats.Saturated * factor,
			Unsaturated: v.Fats.Unsaturated * factor,
		},
	}
}

// Ingredient is an entry of the shared ingredient catalog.
type Ingredient struct {
	ID               string           `json:"id" bson:"_id"`
	Name             string           `json:"name" bson:"name"`
	DateAdded        time.Time        `json:"dateAdded" bson:"dateAdded"`
	NutritionalValue NutritionalValue `json:"nutritionalValue" bson:"nutritionalValue"`
}

// MealIngredient references a catalog ingredient with a quantity.
type MealIngredient struct {
	IngredientID string  `json:"ingredient" bson:"ingredient"`
	Quantity     float64 `json:"quantity" bson:"quantity"`
}

// Meal is a logged meal owned by a user.
type Meal struct {
	ID          string           `json:"id" bson:"_id"`
	UserID      string           `json:"userId" bson:"userId"`
	Name        string           `json:"name" bson:"name"`
	Description string           `json:"description,omitempty" bson:"description,omitempty"`
	DateAdded   time.Time        `json:"dateAdded" bson:"dateAdded"`
	Type        MealType         `json:"mealType" bson:"mealType"`
	Ingredients []MealIngredient `json:"ingredients" bson:"ingredients"`
}

func (m *Meal) DocumentID() string      { return m.ID }
func (m *Meal) SetDocumentID(id string) { m.ID = id }
func (m *Meal) OwnerID() string         { return m.UserID }

func (m *Meal) StampCreated(now time.Time) {
	if m.DateAdded.IsZero() {
		m.DateAdded = now
	}
}

// MealIngredientInput is one client-supplied ingredient line.
type MealIngredientInput struct {
	Ingredient string `json:"ingredient"`
	Quantity   Number `json:"quantity"`
}

// MealInput carries client-supplied meal fields. A nil Ingredients slice
// means the list was not supplied.
type MealInput struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	DateAdded   string                `json:"dateAdded"`
	MealType    string                `json:"mealType"`
	Ingredients []MealIngredientInput `json:"ingredients"`
}

// Normalize lower-cases the meal type.
func (in MealInput) Normalize() MealInput {
	in.MealType = strings.ToLower(strings.TrimSpace(in.MealType))
	return in
}

// IngredientIDs returns the distinct ingredient references of in.
func (in MealInput) IngredientIDs() []string {
	seen := make(map[string]struct{}, len(in.Ingredients))
	ids := make([]string, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if _, ok := seen[line.Ingredient]; ok {
			continue
		}
		seen[line.Ingredient] = struct{}{}
		ids = append(ids, line.Ingredient)
	}
	return ids
}

// MealInputFrom renders a stored meal as input fields.
func MealInputFrom(m *Meal) MealInput {
	lines := make([]MealIngredientInput, 0, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		lines = append(lines, MealIngredientInput{Ingredient: ing.IngredientID, Quantity: NumberOf(ing.Quantity)})
	}
	return MealInput{
		Name:        m.Name,
		Description: m.Description,
		DateAdded:   FormatDate(&m.DateAdded),
		MealType:    string(m.Type),
		Ingredients: lines,
	}
}

// Overlay returns in with every supplied field of patch applied.
func (in MealInput) Overlay(patch MealInput) MealInput {
	if patch.Name != "" {
		in.Name = patch.Name
	}
	if patch.Description != "" {
		in.Description = patch.Description
	}
	if patch.DateAdded != "" {
		in.DateAdded = patch.DateAdded
	}
	if patch.MealType != "" {
		in.MealType = patch.MealType
	}
	if patch.Ingredients != nil {
		in.Ingredients = patch.Ingredients
	}
	return in
}

// Apply copies every supplied field of in onto m. in must already be
// validated and normalized.
func (in MealInput) Apply(m *Meal) {
	if in.Name != "" {
		m.Name = in.Name
	}
	if in.Description != "" {
		m.Description = in.Description
	}
	if d, err := ParseDate(in.DateAdded); err == nil {
		m.DateAdded = d
	}
	if in.MealType != "" {
		m.Type = MealType(in.MealType)
	}
	if in.Ingredients != nil {
		m.Ingredients = make([]MealIngredient, 0, len(in.Ingredients))
		for _, line := range in.Ingredients {
			q, _ := line.Quantity.Float()
			m.Ingredients = append(m.Ingredients, MealIngredient{IngredientID: line.Ingredient, Quantity: q})
		}
	}
}

// FatsInput carries client-supplied fat values.
type FatsInput struct {
	Saturated   Number `json:"saturated"`
	Unsaturated Number `json:"unsaturated"`
}

// NutritionalValueInput carries client-supplied nutrition values.
type NutritionalValueInput struct {
	Calories      Number    `json:"calories"`
	Carbohydrates Number    `json:"carbohydrates"`
	Proteins      Number    `json:"proteins"`
	Fats          FatsInput `json:"fats"`
}

// IngredientInput carries client-supplied ingredient fields.
type IngredientInput struct {
	Name             string                `json:"name"`
	DateAdded        string                `json:"dateAdded"`
	NutritionalValue NutritionalValueInput `json:"nutritionalValue"`
}

// Ingredient builds a catalog entry from validated input.
func (in IngredientInput) Ingredient() *Ingredient {
	value := func(n Number) float64 {
		f, _ := n.Float()
		return f
	}
	ing := &Ingredient{
		Name: in.Name,
		NutritionalValue: NutritionalValue{
			Calories:      value(in.NutritionalValue.Calories),
			Carbohydrates: value(in.NutritionalValue.Carbohydrates),
			Proteins:      value(in.NutritionalValue.Proteins),
			Fats: Fats{
				Saturated:   value(in.NutritionalValue.Fats.Saturated),
				Unsaturated: value(in.NutritionalValue.Fats.Unsaturated),
			},
		},
	}
	if d, err := ParseDate(in.DateAdded); err == nil {
		ing.DateAdded = d
	}
	return ing
}
