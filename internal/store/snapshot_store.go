package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/vbonduro/campusfoods/internal/domain"
)

// itemSource is anything that can produce the full ordered item set, normally
// a *FoodStore.
type itemSource interface {
	AllItems(ctx context.Context) ([]domain.FoodItem, error)
}

type snapshot struct {
	items    []domain.FoodItem
	byOutlet map[int64][]domain.FoodItem
}

func newSnapshot(items []domain.FoodItem) *snapshot {
	sorted := make([]domain.FoodItem, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, func(a, b domain.FoodItem) int { return cmp.Compare(a.ID, b.ID) })

	byOutlet := make(map[int64][]domain.FoodItem)
	for _, item := range sorted {
		byOutlet[item.OutletID] = append(byOutlet[item.OutletID], item)
	}
	return &snapshot{items: sorted, byOutlet: byOutlet}
}

// SnapshotStore serves food items from an immutable in-memory snapshot.
// Reload swaps in a whole new snapshot, so a query always sees one consistent
// version of the data. Returned slices are shared and must not be modified.
type SnapshotStore struct {
	current atomic.Pointer[snapshot]
}

func NewSnapshotStore(items []domain.FoodItem) *SnapshotStore {
	s := &SnapshotStore{}
	s.current.Store(newSnapshot(items))
	return s
}

func (s *SnapshotStore) AllItems(_ context.Context) ([]domain.FoodItem, error) {
	return s.current.Load().items, nil
}

func (s *SnapshotStore) ItemsForOutlet(_ context.Context, outletID int64) ([]domain.FoodItem, error) {
	items := s.current.Load().byOutlet[outletID]
	if items == nil {
		return []domain.FoodItem{}, nil
	}
	return items, nil
}

// Len reports the number of items in the current snapshot.
func (s *SnapshotStore) Len() int {
	return len(s.current.Load().items)
}

// Reload replaces the snapshot with the contents of src. On error the previous
// snapshot is kept.
func (s *SnapshotStore) Reload(ctx context.Context, src itemSource) error {
	items, err := src.AllItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload foods: %w", err)
	}
	s.current.Store(newSnapshot(items))
	return nil
}
