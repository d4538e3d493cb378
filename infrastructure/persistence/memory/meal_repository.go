package memory

import (
	"context"
	"sort"
	"sync"

	"mealshop/domain/meal"
	"mealshop/domain/shared"
)

// MealRepository stores meals as reconstruction snapshots so callers never
// share aggregate instances.
type MealRepository struct {
	mu    sync.RWMutex
	ids   *IDGenerator
	meals map[int64]meal.ReconstructionDTO
}

func NewMealRepository(ids *IDGenerator) *MealRepository {
	return &MealRepository{ids: ids, meals: make(map[int64]meal.ReconstructionDTO)}
}

func (r *MealRepository) NextIdentity(ctx context.Context) (shared.MealID, error) {
	raw, err := r.ids.NextID(ctx)
	if err != nil {
		return shared.MealID{}, err
	}
	return shared.NewMealID(raw)
}

func mealToDTO(m *meal.Meal) meal.ReconstructionDTO {
	return meal.ReconstructionDTO{
		ID:          m.ID().Int64(),
		Name:        m.Name().Value(),
		Description: m.Description().Value(),
		PriceAmount: m.Price().Amount(),
		Removed:     m.IsRemoved(),
		Version:     m.Version().Int64(),
	}
}

// expectedVersion is the stored version a save must find. An aggregate
// with pending events had its version bumped in memory already, so the
// row must still hold the previous one.
func expectedVersion(version shared.Version, pendingEvents bool) int64 {
	if pendingEvents {
		return version.Previous().Int64()
	}
	return version.Int64()
}

func (r *MealRepository) Save(_ context.Context, m *meal.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.meals[m.ID().Int64()]
	if m.IsNew() {
		if exists {
			return shared.NewConflictError("meal", "meal id already taken")
		}
		r.meals[m.ID().Int64()] = mealToDTO(m)
		m.ClearNew()
		return nil
	}

	if !exists {
		return meal.NewMealNotFoundError(m.ID())
	}
	if stored.Version != expectedVersion(m.Version(), m.HasPendingEvents()) {
		return shared.ErrConcurrentModification
	}
	r.meals[m.ID().Int64()] = mealToDTO(m)
	return nil
}

func (r *MealRepository) FindByID(_ context.Context, id shared.MealID) (*meal.Meal, error) {
	r.mu.RLock()
	dto, ok := r.meals[id.Int64()]
	r.mu.RUnlock()
	if !ok {
		return nil, meal.NewMealNotFoundError(id)
	}
	return meal.RebuildMeal(dto)
}

func (r *MealRepository) FindByName(_ context.Context, name meal.MealName) (*meal.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.meals {
		if !dto.Removed && dto.Name == name.Value() {
			return meal.RebuildMeal(dto)
		}
	}
	return nil, meal.NewMealNotFoundByNameError(name)
}

func (r *MealRepository) FindAll(_ context.Context) ([]*meal.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos := make([]meal.ReconstructionDTO, 0, len(r.meals))
	for _, dto := range r.meals {
		if !dto.Removed {
			dtos = append(dtos, dto)
		}
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].ID < dtos[j].ID })

	meals := make([]*meal.Meal, 0, len(dtos))
	for _, dto := range dtos {
		m, err := meal.RebuildMeal(dto)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, nil
}

var _ meal.MealRepository = (*MealRepository)(nil)
