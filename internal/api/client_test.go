package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/chat/assistant", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "u1", req["user_id"])
		assert.Equal(t, "2 lbs chicken", req["message"])

		json.NewEncoder(w).Encode(map[string]any{
			"reply": "Added chicken to your list.",
			"items": []map[string]any{
				{"id": "i1", "raw_text": "2 lbs chicken", "quantity": 2, "status": "pending"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	reply, err := client.SendChat(context.Background(), "u1", "2 lbs chicken")

	require.NoError(t, err)
	assert.Equal(t, "Added chicken to your list.", reply.Reply)
	require.Len(t, reply.Items, 1)
	assert.Equal(t, "i1", reply.Items[0].ID)
}

func TestFetchWatchlist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GET", r.Method)
		require.Equal(t, "/watchlist/user/u1", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"item_id": "i1", "raw_text": "milk", "last_price": 3.5, "previous_price": 5.0},
			{"item_id": "i2", "raw_text": "eggs"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	items, err := client.FetchWatchlist(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].LastPrice)
	assert.InDelta(t, 3.5, *items[0].LastPrice, 1e-9)
	assert.Nil(t, items[1].LastPrice, "missing price stays nil, never zero")
}

func TestToggleWatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/watchlist/toggle", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "i1", req["item_id"])
		assert.Nil(t, req["current_price"], "unknown price is sent as null")

		json.NewEncoder(w).Encode(map[string]bool{"watched": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	watched, err := client.ToggleWatch(context.Background(), "u1", "i1", nil)

	require.NoError(t, err)
	assert.True(t, watched)
}

func TestBuildPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/plans/build", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cheapest", req["preference"])
		_, hasOrigin := req["origin"]
		assert.False(t, hasOrigin, "blank origin is omitted")

		json.NewEncoder(w).Encode(map[string]any{
			"user_id": "u1",
			"plans": map[string]any{
				"one_stop": map[string]any{"label": "One stop", "total_price": 42.10, "number_of_stores": 1},
			},
			"recommended_plan": "one_stop",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	resp, err := client.BuildPlans(context.Background(), "u1", "cheapest", "", "")

	require.NoError(t, err)
	assert.Equal(t, "one_stop", resp.RecommendedPlan)
	require.Contains(t, resp.Plans, "one_stop")
	assert.InDelta(t, 42.10, resp.Plans["one_stop"].TotalPrice, 1e-9)
}

func TestCreateCheckoutSessionURLKeyFallback(t *testing.T) {
	cases := []struct {
		name string
		body map[string]string
	}{
		{"checkout_url key", map[string]string{"checkout_url": "https://pay.example/s1"}},
		{"legacy url key", map[string]string{"url": "https://pay.example/s1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tc.body)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "", nil)
			url, err := client.CreateCheckoutSession(context.Background(), "u1", "premium")

			require.NoError(t, err)
			assert.Equal(t, "https://pay.example/s1", url)
		})
	}
}

func TestCreateCheckoutSessionNoURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	_, err := client.CreateCheckoutSession(context.Background(), "u1", "premium")

	assert.Error(t, err)
}

func TestNonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"no items to plan"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	_, err := client.BuildPlans(context.Background(), "u1", "cheapest", "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=422")
	assert.Contains(t, err.Error(), "no items to plan")
}

func TestAuthorizationHeaderSentWhenTokenSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok123", nil)
	_, err := client.FetchWatchlist(context.Background(), "u1")
	require.NoError(t, err)
}
