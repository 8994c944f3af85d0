package domain

// NutritionFact holds the macronutrients for one ingredient name,
// resolved from the FoodData Central API and cached once found.
type NutritionFact struct {
	ID       int64   `json:"nutritionId"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// FDCFood represents a food item from the FoodData Central search API
type FDCFood struct {
	FdcID       int           `json:"fdcId"`
	Description string        `json:"description"`
	DataType    string        `json:"dataType"`
	Nutrients   []FDCNutrient `json:"foodNutrients"`
}

// FDCNutrient represents a single nutrient entry on an FDC food
type FDCNutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

// FDCSearchResponse represents the response from the FDC search API
type FDCSearchResponse struct {
	Foods     []FDCFood `json:"foods"`
	TotalHits int       `json:"totalHits"`
}
