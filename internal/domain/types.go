package domain

import "github.com/shopspring/decimal"

// FoodItem is a single menu entry served by an outlet. Items are created at
// data-load time and never mutated afterwards.
type FoodItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	OutletID    int64           `json:"outletId"`
	ImageKey    string          `json:"imageKey,omitempty"`
}

// FoodsList is one page of a foods listing plus the metadata needed to walk
// the remaining pages.
type FoodsList struct {
	Items         []FoodItem `json:"items"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalElements int        `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}
