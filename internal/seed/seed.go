// Package seed reads food menus from YAML files into domain.FoodItem values.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/vbonduro/campusfoods/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed foods.yaml
var defaultMenu []byte

type menuFile struct {
	Foods []menuEntry `yaml:"foods"`
}

type menuEntry struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	OutletID    int64  `yaml:"outlet_id"`
	Image       string `yaml:"image"`
}

// Default returns the menu compiled into the binary.
func Default() ([]domain.FoodItem, error) {
	return Load(bytes.NewReader(defaultMenu))
}

func LoadFile(path string) ([]domain.FoodItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load parses and validates a YAML menu. Entries keep their file order.
func Load(r io.Reader) ([]domain.FoodItem, error) {
	var menu menuFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&menu); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.FoodItem{}, nil
		}
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	items := make([]domain.FoodItem, 0, len(menu.Foods))
	seen := make(map[int64]bool, len(menu.Foods))
	for i, e := range menu.Foods {
		if e.ID <= 0 {
			return nil, fmt.Errorf("food #%d: id must be positive", i+1)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("food %d: duplicate id", e.ID)
		}
		seen[e.ID] = true
		if e.Name == "" {
			return nil, fmt.Errorf("food %d: name is required", e.ID)
		}
		if e.OutletID <= 0 {
			return nil, fmt.Errorf("food %d: outlet_id must be positive", e.ID)
		}
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("food %d: invalid price %q: %w", e.ID, e.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("food %d: price must not be negative", e.ID)
		}

		items = append(items, domain.FoodItem{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Price:       price,
			OutletID:    e.OutletID,
			ImageKey:    e.Image,
		})
	}
	return items, nil
}
