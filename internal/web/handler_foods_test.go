package web

import (
	"net/http/httptest"
	"testing"
)

func TestPagingParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		defaultSize int
		wantPage    int
		wantSize    int
		wantErr     bool
	}{
		{"defaults all outlets", "", 10, 0, 10, false},
		{"defaults single outlet", "", 0, 0, 0, false},
		{"explicit", "page=3&size=25", 10, 3, 25, false},
		{"explicit zero size", "size=0", 10, 0, 0, false},
		{"empty value uses default", "page=&size=", 10, 0, 10, false},
		{"negative page", "page=-1", 10, 0, 0, true},
		{"negative size", "size=-1", 10, 0, 0, true},
		{"non numeric", "size=ten", 10, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/foods/v1?"+tt.query, nil)
			page, size, err := pagingParams(r, tt.defaultSize)
			if (err != nil) != tt.wantErr {
				t.Fatalf("pagingParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if page != tt.wantPage || size != tt.wantSize {
				t.Errorf("pagingParams() = (%d, %d), want (%d, %d)", page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}
