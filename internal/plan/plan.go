package plan

import "cartpilot/internal/intent"

// Store is a single stop in a plan's route.
type Store struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DistanceMinutes float64 `json:"distance_minutes"`
}

// Item is a shopping-list item assigned to a store within a plan.
type Item struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	StoreID  string  `json:"store_id"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// StorePlan is one candidate assignment of the shopping list to stores,
// produced by the planning backend.
type StorePlan struct {
	Label          string   `json:"label"`
	Stores         []Store  `json:"stores"`
	NumberOfStores int      `json:"number_of_stores"`
	TotalPrice     float64  `json:"total_price"`
	TravelMinutes  float64  `json:"travel_minutes"`
	Items          []Item   `json:"items"`
	Discounts      []string `json:"discounts,omitempty"`
}

// Response is a full plan-build result. It is replaced wholesale on every
// plan build, never merged with a previous one.
type Response struct {
	UserID          string               `json:"user_id"`
	Items           []intent.Intent      `json:"items"`
	Plans           map[string]StorePlan `json:"plans"`
	RecommendedPlan string               `json:"recommended_plan,omitempty"`
	Explanation     string               `json:"explanation,omitempty"`
}
