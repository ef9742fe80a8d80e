package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/campusfoods/internal/domain"
)

// foodRepository is the read-only view of a foods data store that
// FoodsService requires. Both store.FoodStore and store.SnapshotStore satisfy it.
type foodRepository interface {
	AllItems(ctx context.Context) ([]domain.FoodItem, error)
	ItemsForOutlet(ctx context.Context, outletID int64) ([]domain.FoodItem, error)
}

// FoodsService pages through the foods menu, optionally scoped to one outlet.
type FoodsService struct {
	store  foodRepository
	logger *slog.Logger
}

func NewFoodsService(store foodRepository, logger *slog.Logger) *FoodsService {
	return &FoodsService{
		store:  store,
		logger: logger,
	}
}

// GetAllFoodsMenuData returns page number page (zero-based) of the foods
// served by every outlet. A size of 0 returns everything as a single page.
func (s *FoodsService) GetAllFoodsMenuData(ctx context.Context, page, size int) (*domain.FoodsList, error) {
	if err := validatePaging(page, size); err != nil {
		return nil, err
	}

	items, err := s.store.AllItems(ctx)
	if err != nil {
		return nil, err
	}

	list := paginate(items, page, size)
	s.logger.Debug("listed foods", "page", page, "size", size, "returned", len(list.Items), "total", list.TotalElements)
	return list, nil
}

// GetOutletFoodsMenuData is GetAllFoodsMenuData restricted to one outlet. An
// outlet with no foods, including one that does not exist, yields an empty
// page rather than an error.
func (s *FoodsService) GetOutletFoodsMenuData(ctx context.Context, outletID int64, page, size int) (*domain.FoodsList, error) {
	if err := validatePaging(page, size); err != nil {
		return nil, err
	}

	items, err := s.store.ItemsForOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}

	list := paginate(items, page, size)
	s.logger.Debug("listed outlet foods", "outlet_id", outletID, "page", page, "size", size, "returned", len(list.Items), "total", list.TotalElements)
	return list, nil
}

func validatePaging(page, size int) error {
	if page < 0 {
		return fmt.Errorf("%w: page must not be negative, got %d", domain.ErrInvalidArgument, page)
	}
	if size < 0 {
		return fmt.Errorf("%w: size must not be negative, got %d", domain.ErrInvalidArgument, size)
	}
	return nil
}

// paginate cuts items into windows of size and returns window number page.
// size 0 means unpaged: one page holding every item. Pages past the end are
// empty but still carry the totals. The returned items never alias the input.
func paginate(items []domain.FoodItem, page, size int) *domain.FoodsList {
	total := len(items)
	list := &domain.FoodsList{
		Items:         []domain.FoodItem{},
		Page:          page,
		Size:          size,
		TotalElements: total,
	}

	if size == 0 {
		list.TotalPages = 1
		if page == 0 {
			list.Items = append(make([]domain.FoodItem, 0, total), items...)
		}
		return list
	}

	list.TotalPages = total / size
	if total%size != 0 {
		list.TotalPages++
	}
	if page >= list.TotalPages {
		return list
	}

	// page < TotalPages, so start < total and start+n cannot overflow.
	start := page * size
	n := min(size, total-start)
	list.Items = append(make([]domain.FoodItem, 0, n), items[start:start+n]...)
	return list
}
