package leagues_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/drivers"
	"github.com/jrsteele09/go-league-admin/internal/utils"
	"github.com/jrsteele09/go-league-admin/leagues"
	"github.com/jrsteele09/go-league-admin/transport/transportfake"
	"github.com/stretchr/testify/require"
)

func TestService_CRUD(t *testing.T) {
	gt := leagues.League{ID: 3, Name: "GT Masters", Slug: "gt-masters", Platforms: []string{"acc"}, Visibility: leagues.VisibilityPublic, IsActive: true}
	fake := transportfake.New().
		Respond(http.MethodGet, "/leagues", map[string]any{"success": true, "data": []leagues.League{gt}, "meta": api.Meta{CurrentPage: 1, LastPage: 2, Total: 2, PerPage: 1}}).
		Respond(http.MethodGet, "/leagues/3", api.Envelope[leagues.League]{Success: true, Data: gt}).
		Respond(http.MethodPost, "/leagues", api.Envelope[leagues.League]{Success: true, Data: gt}).
		Respond(http.MethodPut, "/leagues/3", api.Envelope[leagues.League]{Success: true, Data: gt}).
		Respond(http.MethodDelete, "/leagues/3", map[string]any{"success": true})
	svc := leagues.New(fake)
	ctx := context.Background()

	page, err := svc.List(ctx, api.ListParams{PerPage: 1})
	require.NoError(t, err)
	require.True(t, page.Meta.HasMore())
	if diff := cmp.Diff([]leagues.League{gt}, page.Data); diff != "" {
		t.Fatalf("leagues mismatch (-want +got):\n%s", diff)
	}

	got, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "gt-masters", got.Slug)

	_, err = svc.Create(ctx, leagues.Input{Name: "GT Masters", Platforms: []string{"acc"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"GT Masters","platforms":["acc"]}`, string(fake.LastCall().Body))

	_, err = svc.Update(ctx, 3, leagues.Input{IsActive: utils.Ptr(false)})
	require.NoError(t, err)
	require.JSONEq(t, `{"is_active":false}`, string(fake.LastCall().Body))

	require.NoError(t, svc.Delete(ctx, 3))
}

func TestService_Drivers(t *testing.T) {
	fake := transportfake.New().
		Respond(http.MethodGet, "/leagues/3/drivers", map[string]any{
			"success": true,
			"data":    []drivers.Driver{{ID: 1, FirstName: "Ayrton", LastName: "Senna"}},
			"meta":    api.Meta{CurrentPage: 1, LastPage: 1, Total: 1},
		}).
		Respond(http.MethodPost, "/leagues/3/drivers", map[string]any{"success": true}).
		Respond(http.MethodDelete, "/leagues/3/drivers/1", map[string]any{"success": true})
	svc := leagues.New(fake)
	ctx := context.Background()

	page, err := svc.Drivers(ctx, 3, api.ListParams{Sort: "last_name"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, "Ayrton Senna", page.Data[0].FullName())
	require.Equal(t, "last_name", fake.LastCall().Query.Get("sort"))

	require.NoError(t, svc.AddDriver(ctx, 3, leagues.Membership{DriverID: 1, TeamName: "McLaren"}))
	require.JSONEq(t, `{"driver_id":1,"team_name":"McLaren"}`, string(fake.LastCall().Body))

	require.NoError(t, svc.RemoveDriver(ctx, 3, 1))
	require.Equal(t, "DELETE", fake.LastCall().Method)
}

func TestService_DriversOfUnknownLeague(t *testing.T) {
	svc := leagues.New(transportfake.New())
	_, err := svc.Drivers(context.Background(), 99, api.ListParams{})
	require.EqualError(t, err, "Not Found (status 404)")
}
