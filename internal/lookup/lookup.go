// Package lookup queries an external nutrition database for foods and the
// caloric energy needed to turn a search result into a calorie entry.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// energyNutrientNumber is the stable nutrient code for Energy (kcal) in
// FoodData-Central-compatible APIs.
const energyNutrientNumber = 1008

// ErrNoEnergyValue indicates a candidate without a usable energy amount.
// Such a candidate cannot become a calorie entry.
var ErrNoEnergyValue = errors.New("food has no energy value")

// Nutrient is one nutrient amount reported for a food.
type Nutrient struct {
	Number int     `json:"nutrientId"`
	Name   string  `json:"nutrientName"`
	Unit   string  `json:"unitName"`
	Amount float64 `json:"value"`
}

// Food is a candidate returned by Search.
type Food struct {
	Description string     `json:"description"`
	Nutrients   []Nutrient `json:"foodNutrients"`
}

// EnergyKcal extracts the caloric energy of a food. The stable nutrient
// number wins; a case-insensitive name match on "energy" is the fallback.
func EnergyKcal(f Food) (int, error) {
	for _, n := range f.Nutrients {
		if n.Number == energyNutrientNumber {
			return kcal(n)
		}
	}
	for _, n := range f.Nutrients {
		if strings.EqualFold(n.Name, "energy") {
			return kcal(n)
		}
	}
	return 0, ErrNoEnergyValue
}

func kcal(n Nutrient) (int, error) {
	v := int(math.Round(n.Amount))
	if v <= 0 {
		return 0, ErrNoEnergyValue
	}
	return v, nil
}

// Client calls a FoodData-Central-compatible food search endpoint.
type Client struct {
	base   string
	apiKey string
	http   *http.Client
	log    *slog.Logger
}

// New creates a Client for the given API base URL and key.
func New(baseURL, apiKey string, log *slog.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Search returns candidate foods for a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]Food, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("api_key", c.apiKey)
	u := c.base + "/v1/foods/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("lookup request rejected", "status", resp.StatusCode, "query", query)
		return nil, fmt.Errorf("lookup: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Foods []Food `json:"foods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("lookup: decode response: %w", err)
	}
	return body.Foods, nil
}
