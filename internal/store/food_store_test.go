package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/campusfoods/internal/db"
	"github.com/vbonduro/campusfoods/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenInMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func food(id, outletID int64, name, price string) domain.FoodItem {
	return domain.FoodItem{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		OutletID: outletID,
	}
}

func ids(items []domain.FoodItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestFoodStoreAllItems(t *testing.T) {
	store := NewFoodStore(openTestDB(t))
	ctx := context.Background()

	// Inserted out of order; reads come back by id.
	require.NoError(t, store.Insert(ctx, []domain.FoodItem{
		food(3, 2, "Falafel Wrap", "5.75"),
		food(1, 1, "Tomato Soup", "3.20"),
		food(2, 1, "Cheese Toastie", "4.10"),
	}))

	items, err := store.AllItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(items))
	assert.Equal(t, "Tomato Soup", items[0].Name)
	assert.True(t, decimal.RequireFromString("3.20").Equal(items[0].Price))
}

func TestFoodStoreAllItems_Empty(t *testing.T) {
	store := NewFoodStore(openTestDB(t))

	items, err := store.AllItems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFoodStoreItemsForOutlet(t *testing.T) {
	store := NewFoodStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, []domain.FoodItem{
		food(1, 1, "Tomato Soup", "3.20"),
		food(2, 2, "Falafel Wrap", "5.75"),
		food(3, 1, "Cheese Toastie", "4.10"),
	}))

	items, err := store.ItemsForOutlet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(items))
	for _, item := range items {
		assert.Equal(t, int64(1), item.OutletID)
	}
}

func TestFoodStoreItemsForOutlet_Unknown(t *testing.T) {
	store := NewFoodStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, []domain.FoodItem{food(1, 1, "Tomato Soup", "3.20")}))

	items, err := store.ItemsForOutlet(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFoodStoreInsertKeepsDisplayFields(t *testing.T) {
	store := NewFoodStore(openTestDB(t))
	ctx := context.Background()

	item := food(7, 4, "Veggie Curry", "6.00")
	item.Description = "Chickpea and spinach curry with rice"
	item.ImageKey = "veggie-curry.jpg"
	require.NoError(t, store.Insert(ctx, []domain.FoodItem{item}))

	items, err := store.AllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.Description, items[0].Description)
	assert.Equal(t, item.ImageKey, items[0].ImageKey)
}

func TestFoodStoreInsert_DuplicateIDRollsBack(t *testing.T) {
	store := NewFoodStore(openTestDB(t))
	ctx := context.Background()

	err := store.Insert(ctx, []domain.FoodItem{
		food(1, 1, "Tomato Soup", "3.20"),
		food(1, 1, "Tomato Soup Again", "3.20"),
	})
	assert.Error(t, err)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "a failed load must not leave partial data behind")
}

func TestFoodStoreCount(t *testing.T) {
	store := NewFoodStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, []domain.FoodItem{
		food(1, 1, "Tomato Soup", "3.20"),
		food(2, 2, "Falafel Wrap", "5.75"),
	}))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFoodStoreAllItems_QueryFailureIsUnavailable(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	mock.ExpectQuery("SELECT (.+) FROM foods").WillReturnError(errors.New("disk I/O error"))

	_, err = NewFoodStore(d).AllItems(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodStoreItemsForOutlet_QueryFailureIsUnavailable(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	mock.ExpectQuery("SELECT (.+) FROM foods").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrConnDone)

	_, err = NewFoodStore(d).ItemsForOutlet(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodStoreAllItems_RowErrorIsUnavailable(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "outlet_id", "image_key"}).
		AddRow(int64(1), "Tomato Soup", "", "3.20", int64(1), "").
		RowError(0, errors.New("connection reset"))
	mock.ExpectQuery("SELECT (.+) FROM foods").WillReturnRows(rows)

	_, err = NewFoodStore(d).AllItems(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestFoodStoreCount_FailureIsUnavailable(t *testing.T) {
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("database is locked"))

	_, err = NewFoodStore(d).Count(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
