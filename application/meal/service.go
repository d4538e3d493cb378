// Package meal contains the menu use cases: adding, repricing and
// removing meals, and reading the menu.
package meal

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mealshop/domain/meal"
	"mealshop/domain/shared"
)

// AddMealCommand is the input of AddMealToMenu. PriceAmount is in minor
// currency units.
type AddMealCommand struct {
	Name        string
	Description string
	PriceAmount int64
}

// MealDTO is the read model of one menu position.
type MealDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceAmount int64  `json:"price_amount"`
	Price       string `json:"price"`
}

func toMealDTO(m *meal.Meal) MealDTO {
	return MealDTO{
		ID:          m.ID().Int64(),
		Name:        m.Name().Value(),
		Description: m.Description().Value(),
		PriceAmount: m.Price().Amount(),
		Price:       m.Price().String(),
	}
}

// Service orchestrates the meal aggregate.
type Service struct {
	meals  meal.MealRepository
	uow    shared.UnitOfWork
	logger *zap.Logger
}

func NewService(meals meal.MealRepository, uow shared.UnitOfWork, logger *zap.Logger) *Service {
	return &Service{meals: meals, uow: uow, logger: logger}
}

// AddMealToMenu creates a meal after checking that no other non-removed
// meal holds the name. A name freed by a removal can be taken again.
func (s *Service) AddMealToMenu(ctx context.Context, cmd AddMealCommand) (MealDTO, error) {
	name, err := meal.NewMealName(cmd.Name)
	if err != nil {
		return MealDTO{}, err
	}
	description, err := meal.NewMealDescription(cmd.Description)
	if err != nil {
		return MealDTO{}, err
	}
	price, err := shared.NewPrice(cmd.PriceAmount)
	if err != nil {
		return MealDTO{}, err
	}

	var dto MealDTO
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.meals.FindByName(ctx, name)
		if err != nil && !errors.Is(err, meal.ErrMealNotFound) {
			return err
		}
		if existing != nil {
			return meal.NewMealAlreadyExistError(name)
		}

		id, err := s.meals.NextIdentity(ctx)
		if err != nil {
			return err
		}

		m := meal.NewMeal(id, name, description, price)
		s.uow.RegisterNew(ctx, m)
		if err := s.meals.Save(ctx, m); err != nil {
			return err
		}

		dto = toMealDTO(m)
		return nil
	})
	if err != nil {
		return MealDTO{}, err
	}

	s.logger.Info("meal added to menu",
		zap.Int64("meal_id", dto.ID),
		zap.String("name", dto.Name))
	return dto, nil
}

// RemoveMealFromMenu soft-removes a meal. Removing a meal that is already
// removed succeeds without effect.
func (s *Service) RemoveMealFromMenu(ctx context.Context, rawID string) error {
	id, err := shared.ParseMealID(rawID)
	if err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.meals.FindByID(ctx, id)
		if err != nil {
			return err
		}

		m.Remove()
		if !m.HasPendingEvents() {
			return nil
		}

		s.uow.RegisterDirty(ctx, m)
		return s.meals.Save(ctx, m)
	})
	if err != nil {
		return err
	}

	s.logger.Info("meal removed from menu", zap.String("meal_id", rawID))
	return nil
}

// ChangeMealPrice updates the menu price of a meal.
func (s *Service) ChangeMealPrice(ctx context.Context, rawID string, amount int64) error {
	id, err := shared.ParseMealID(rawID)
	if err != nil {
		return err
	}
	price, err := shared.NewPrice(amount)
	if err != nil {
		return err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.meals.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := m.ChangePrice(price); err != nil {
			return err
		}
		if !m.HasPendingEvents() {
			return nil
		}

		s.uow.RegisterDirty(ctx, m)
		return s.meals.Save(ctx, m)
	})
	if err != nil {
		return err
	}

	s.logger.Info("meal repriced",
		zap.String("meal_id", rawID),
		zap.Int64("price_amount", amount))
	return nil
}

// GetMeal returns one meal by id, removed or not.
func (s *Service) GetMeal(ctx context.Context, rawID string) (MealDTO, error) {
	id, err := shared.ParseMealID(rawID)
	if err != nil {
		return MealDTO{}, err
	}
	m, err := s.meals.FindByID(ctx, id)
	if err != nil {
		return MealDTO{}, err
	}
	return toMealDTO(m), nil
}

// GetMenu returns every non-removed meal.
func (s *Service) GetMenu(ctx context.Context) ([]MealDTO, error) {
	meals, err := s.meals.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]MealDTO, 0, len(meals))
	for _, m := range meals {
		dtos = append(dtos, toMealDTO(m))
	}
	return dtos, nil
}
