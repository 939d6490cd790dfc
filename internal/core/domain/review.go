package domain

type Review struct {
	Date     string   `json:"date"`
	MealType MealType `json:"meal_type"`
	Rating   int      `json:"rating"`
	Comment  string   `json:"comment"`
}
