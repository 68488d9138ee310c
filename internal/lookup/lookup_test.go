package lookup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"caltrack/internal/lookup"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnergyKcal(t *testing.T) {
	tests := []struct {
		name    string
		food    lookup.Food
		want    int
		wantErr error
	}{
		{
			name: "stable nutrient number",
			food: lookup.Food{Nutrients: []lookup.Nutrient{
				{Number: 1003, Name: "Protein", Amount: 12},
				{Number: 1008, Name: "Energy", Amount: 247.6},
			}},
			want: 248,
		},
		{
			name: "name fallback",
			food: lookup.Food{Nutrients: []lookup.Nutrient{
				{Number: 9999, Name: "ENERGY", Amount: 95},
			}},
			want: 95,
		},
		{
			name: "number wins over name",
			food: lookup.Food{Nutrients: []lookup.Nutrient{
				{Number: 9999, Name: "Energy", Amount: 50},
				{Number: 1008, Name: "Energy (Atwater)", Amount: 120},
			}},
			want: 120,
		},
		{
			name:    "no energy nutrient",
			food:    lookup.Food{Nutrients: []lookup.Nutrient{{Number: 1003, Name: "Protein", Amount: 12}}},
			wantErr: lookup.ErrNoEnergyValue,
		},
		{
			name:    "zero energy is unusable",
			food:    lookup.Food{Nutrients: []lookup.Nutrient{{Number: 1008, Name: "Energy", Amount: 0}}},
			wantErr: lookup.ErrNoEnergyValue,
		},
		{
			name:    "no nutrients at all",
			food:    lookup.Food{},
			wantErr: lookup.ErrNoEnergyValue,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lookup.EnergyKcal(tc.food)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("EnergyKcal = %v; want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnergyKcal: %v", err)
			}
			if got != tc.want {
				t.Errorf("EnergyKcal = %d; want %d", got, tc.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/foods/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "banana" {
			t.Errorf("query = %q; want banana", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q; want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"foods": [
				{
					"description": "Banana, raw",
					"foodNutrients": [
						{"nutrientId": 1008, "nutrientName": "Energy", "unitName": "KCAL", "value": 89},
						{"nutrientId": 1003, "nutrientName": "Protein", "unitName": "G", "value": 1.1}
					]
				},
				{
					"description": "Banana chips",
					"foodNutrients": []
				}
			]
		}`))
	}))
	defer srv.Close()

	c := lookup.New(srv.URL, "test-key", discardLogger())
	foods, err := c.Search(context.Background(), "banana")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(foods) != 2 {
		t.Fatalf("expected 2 foods, got %d", len(foods))
	}
	if foods[0].Description != "Banana, raw" {
		t.Errorf("description = %q", foods[0].Description)
	}

	kcal, err := lookup.EnergyKcal(foods[0])
	if err != nil {
		t.Fatalf("EnergyKcal: %v", err)
	}
	if kcal != 89 {
		t.Errorf("kcal = %d; want 89", kcal)
	}
	if _, err := lookup.EnergyKcal(foods[1]); !errors.Is(err, lookup.ErrNoEnergyValue) {
		t.Errorf("expected ErrNoEnergyValue for chips, got %v", err)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := lookup.New(srv.URL, "bad-key", discardLogger())
	if _, err := c.Search(context.Background(), "banana"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
