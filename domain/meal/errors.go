package meal

import (
	"errors"
	"fmt"

	"mealshop/domain/shared"
)

var (
	ErrMealNotFound     = errors.New("meal not found")
	ErrMealAlreadyExist = errors.New("meal with this name already exists")
	ErrEmptyName        = errors.New("meal name cannot be empty")
	ErrEmptyDescription = errors.New("meal description cannot be empty")
)

func NewMealNotFoundError(id shared.MealID) error {
	return shared.NewDomainError(ErrMealNotFound, "meal", "",
		fmt.Sprintf("meal %s not found", id))
}

func NewMealNotFoundByNameError(name MealName) error {
	return shared.NewDomainError(ErrMealNotFound, "meal", "name",
		fmt.Sprintf("no meal named %q", name.Value()))
}

func NewMealAlreadyExistError(name MealName) error {
	return shared.NewDomainError(ErrMealAlreadyExist, "meal", "name",
		fmt.Sprintf("meal named %q already exists", name.Value()))
}

func NewEmptyNameError() error {
	return shared.NewDomainError(ErrEmptyName, "meal", "name",
		"meal name cannot be empty")
}

func NewEmptyDescriptionError() error {
	return shared.NewDomainError(ErrEmptyDescription, "meal", "description",
		"meal description cannot be empty")
}
