package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/campusfoods/internal/domain"
)

const foodColumns = `id, name, description, price, outlet_id, image_key`

// FoodStore reads food items from the sqlite foods table.
type FoodStore struct {
	db *sql.DB
}

func NewFoodStore(db *sql.DB) *FoodStore {
	return &FoodStore{db: db}
}

// AllItems returns every food item ordered by id.
func (s *FoodStore) AllItems(ctx context.Context) ([]domain.FoodItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+foodColumns+` FROM foods ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list foods: %w", domain.ErrUnavailable, err)
	}
	return scanFoods(rows)
}

// ItemsForOutlet returns the items served by outletID ordered by id. An
// unknown outlet yields an empty slice.
func (s *FoodStore) ItemsForOutlet(ctx context.Context, outletID int64) ([]domain.FoodItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+foodColumns+` FROM foods
		WHERE outlet_id = ? ORDER BY id ASC
	`, outletID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list foods for outlet %d: %w", domain.ErrUnavailable, outletID, err)
	}
	return scanFoods(rows)
}

func (s *FoodStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: failed to count foods: %w", domain.ErrUnavailable, err)
	}
	return n, nil
}

// Insert stores items in a single transaction. It is used at data-load time
// only; nothing in the query path writes.
func (s *FoodStore) Insert(ctx context.Context, items []domain.FoodItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO foods (`+foodColumns+`) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.ID, item.Name, item.Description, item.Price.String(), item.OutletID, item.ImageKey); err != nil {
			return fmt.Errorf("failed to insert food %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit foods: %w", err)
	}
	return nil
}

func scanFoods(rows *sql.Rows) ([]domain.FoodItem, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	items := []domain.FoodItem{}
	for rows.Next() {
		var item domain.FoodItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.OutletID, &item.ImageKey); err != nil {
			return nil, fmt.Errorf("%w: failed to scan food: %w", domain.ErrUnavailable, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating foods: %w", domain.ErrUnavailable, err)
	}

	return items, nil
}
