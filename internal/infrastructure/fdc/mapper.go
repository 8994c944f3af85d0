package fdc

import (
	"github.com/smartshelf/backend/internal/domain"
)

// FDC nutrient IDs for key macronutrients
const (
	NutrientIDProtein  = 1003 // Protein (g)
	NutrientIDTotalFat = 1004 // Total Fat (g)
	NutrientIDCarbs    = 1005 // Carbohydrates (g)
	NutrientIDEnergy   = 1008 // Calories (kcal)
)

// MapFact converts an FDC food into a NutritionFact keyed by the given
// ingredient name.
func MapFact(name string, food *domain.FDCFood) *domain.NutritionFact {
	fact := &domain.NutritionFact{Name: name}

	for _, nutrient := range food.Nutrients {
		switch nutrient.NutrientID {
		case NutrientIDProtein:
			fact.Protein = nutrient.Value
		case NutrientIDTotalFat:
			fact.Fat = nutrient.Value
		case NutrientIDCarbs:
			fact.Carbs = nutrient.Value
		case NutrientIDEnergy:
			fact.Calories = nutrient.Value
		}
	}

	return fact
}

// FindNutrientValue finds a specific nutrient value by ID
func FindNutrientValue(nutrients []domain.FDCNutrient, nutrientID int) float64 {
	for _, nutrient := range nutrients {
		if nutrient.NutrientID == nutrientID {
			return nutrient.Value
		}
	}
	return 0.0
}
