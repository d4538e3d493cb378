package meal

import "strings"

// MealName identifies a meal on the menu. Two non-removed meals may not
// share a name.
type MealName struct {
	value string
}

func NewMealName(value string) (MealName, error) {
	if strings.TrimSpace(value) == "" {
		return MealName{}, NewEmptyNameError()
	}
	return MealName{value: value}, nil
}

func (n MealName) Value() string { return n.value }

func (n MealName) Equals(other MealName) bool { return n.value == other.value }

// MealDescription is free text shown on the menu next to the meal.
type MealDescription struct {
	value string
}

func NewMealDescription(value string) (MealDescription, error) {
	if strings.TrimSpace(value) == "" {
		return MealDescription{}, NewEmptyDescriptionError()
	}
	return MealDescription{value: value}, nil
}

func (d MealDescription) Value() string { return d.value }
