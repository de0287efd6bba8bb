package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/transport"
	"github.com/jrsteele09/go-league-admin/transport/transportfake"
	"github.com/stretchr/testify/require"
)

func envelope(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

func page(data any, current, last int) map[string]any {
	return map[string]any{
		"success": true,
		"data":    data,
		"meta":    map[string]any{"current_page": current, "last_page": last, "per_page": 1, "total": last},
	}
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	fake := transportfake.New().
		Respond(http.MethodGet, "/tracks", page([]item{{ID: 1, Name: "Monza"}}, 1, 1)).
		Respond(http.MethodGet, "/tracks/1", envelope(item{ID: 1, Name: "Monza"})).
		Respond(http.MethodPost, "/tracks", envelope(item{ID: 2, Name: "Imola"})).
		Respond(http.MethodPut, "/tracks/2", envelope(item{ID: 2, Name: "Imola GP"})).
		Respond(http.MethodDelete, "/tracks/2", map[string]any{"success": true, "message": "Deleted"})
	tracks := api.NewCollection[item](fake, "tracks/")

	list, err := tracks.List(ctx, api.ListParams{Search: "mon"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.Equal(t, "mon", fake.LastCall().Query.Get("search"))

	got, err := tracks.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Monza", got.Name)

	created, err := tracks.Create(ctx, item{Name: "Imola"})
	require.NoError(t, err)
	require.Equal(t, 2, created.ID)
	require.JSONEq(t, `{"id":0,"name":"Imola"}`, string(fake.LastCall().Body))

	updated, err := tracks.Update(ctx, 2, map[string]string{"name": "Imola GP"})
	require.NoError(t, err)
	require.Equal(t, "Imola GP", updated.Name)

	require.NoError(t, tracks.Delete(ctx, 2))

	var methods []string
	for _, c := range fake.Calls() {
		methods = append(methods, c.Method+" "+c.Path)
	}
	require.Equal(t, []string{"GET /tracks", "GET /tracks/1", "POST /tracks", "PUT /tracks/2", "DELETE /tracks/2"}, methods)
}

func TestCollection_ErrorsAreNormalized(t *testing.T) {
	ctx := context.Background()
	fake := transportfake.New().
		FailStatus(http.MethodPost, "/tracks", http.StatusUnprocessableEntity, map[string]any{
			"message": "The name field is required.",
			"errors":  map[string][]string{"name": {"The name field is required."}},
		})
	tracks := api.NewCollection[item](fake, "/tracks")

	_, err := tracks.Create(ctx, item{})
	var validationErr *api.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, "The name field is required.", validationErr.First("name"))

	_, err = tracks.Get(ctx, 99)
	var appErr *api.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = tracks.List(cancelled, api.ListParams{})
	require.True(t, transport.IsCancelled(err))
}

func TestCollection_All(t *testing.T) {
	fake := transportfake.New().
		Respond(http.MethodGet, "/tracks", page([]item{{ID: 1}}, 1, 3)).
		Respond(http.MethodGet, "/tracks", page([]item{{ID: 2}}, 2, 3)).
		Respond(http.MethodGet, "/tracks", page([]item{{ID: 3}}, 3, 3))
	tracks := api.NewCollection[item](fake, "/tracks")

	all, err := tracks.All(context.Background(), api.ListParams{PerPage: 1})
	require.NoError(t, err)
	require.Equal(t, []item{{ID: 1}, {ID: 2}, {ID: 3}}, all)

	calls := fake.Calls()
	require.Len(t, calls, 3)
	require.Equal(t, "1", calls[0].Query.Get("page"))
	require.Equal(t, "3", calls[2].Query.Get("page"))
}

func TestCollection_Path(t *testing.T) {
	leagues := api.NewCollection[item](transportfake.New(), "/leagues")
	require.Equal(t, "/leagues", leagues.Path())
	require.Equal(t, "/leagues/4/drivers", leagues.Path(4, "drivers"))
}
