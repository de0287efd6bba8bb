package server

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

type racer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Points int    `json:"points"`
}

func racers() []racer {
	return []racer{
		{ID: 1, Name: "Alice", Team: "Red", Points: 40},
		{ID: 2, Name: "Bob", Team: "Blue", Points: 75},
		{ID: 3, Name: "Carla", Team: "Red", Points: 12},
		{ID: 4, Name: "Dev", Team: "Green", Points: 75},
		{ID: 5, Name: "Eve", Team: "Blue", Points: 3},
	}
}

func ids(page []racer) []int {
	out := make([]int, 0, len(page))
	for _, r := range page {
		out = append(out, r.ID)
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantIDs  []int
		wantPage int
		wantLast int
		wantFrom int
		wantTo   int
	}{
		{name: "defaults", query: "", wantIDs: []int{1, 2, 3, 4, 5}, wantPage: 1, wantLast: 1, wantFrom: 1, wantTo: 5},
		{name: "second page", query: "per_page=2&page=2", wantIDs: []int{3, 4}, wantPage: 2, wantLast: 3, wantFrom: 3, wantTo: 4},
		{name: "page past the end is clamped", query: "per_page=2&page=9", wantIDs: []int{5}, wantPage: 3, wantLast: 3, wantFrom: 5, wantTo: 5},
		{name: "filter", query: "team=Red", wantIDs: []int{1, 3}, wantPage: 1, wantLast: 1, wantFrom: 1, wantTo: 2},
		{name: "numeric filter", query: "points=75", wantIDs: []int{2, 4}, wantPage: 1, wantLast: 1, wantFrom: 1, wantTo: 2},
		{name: "unknown filter is ignored", query: "colour=pink", wantIDs: []int{1, 2, 3, 4, 5}, wantPage: 1, wantLast: 1, wantFrom: 1, wantTo: 5},
		{name: "search", query: "search=AR", wantIDs: []int{3}, wantPage: 1, wantLast: 1, wantFrom: 1, wantTo: 1},
		{name: "sort ascending is stable", query: "sort=points", wantIDs: []int{5, 3, 1, 2, 4}, wantPage: 1, wantLast: 1, wantFrom: 1, wantTo: 5},
		{name: "sort descending", query: "sort=-name", wantIDs: []int{5, 4, 3, 2, 1}, wantPage: 1, wantLast: 1, wantFrom: 1, wantTo: 5},
		{name: "no match", query: "team=Yellow", wantIDs: []int{}, wantPage: 1, wantLast: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			page := paginate(racers(), q, "/api/racers")
			require.True(t, page.Success)
			require.Equal(t, tt.wantIDs, ids(page.Data))
			require.Equal(t, tt.wantPage, page.Meta.CurrentPage)
			require.Equal(t, tt.wantLast, page.Meta.LastPage)
			require.Equal(t, tt.wantFrom, page.Meta.From)
			require.Equal(t, tt.wantTo, page.Meta.To)
			require.Equal(t, "/api/racers", page.Meta.Path)
		})
	}
}

func TestPaginate_PerPageBounds(t *testing.T) {
	items := make([]racer, 150)
	for i := range items {
		items[i] = racer{ID: i + 1}
	}

	page := paginate(items, url.Values{"per_page": {"500"}}, "")
	require.Len(t, page.Data, maxPerPage)
	require.Equal(t, 2, page.Meta.LastPage)

	page = paginate(items, url.Values{"per_page": {"nope"}}, "")
	require.Len(t, page.Data, defaultPerPage)
	require.Equal(t, 150, page.Meta.Total)
}
