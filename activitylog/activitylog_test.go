package activitylog_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-league-admin/activitylog"
	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/internal/utils"
	"github.com/jrsteele09/go-league-admin/transport/transportfake"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	entry := activitylog.Activity{ID: 11, LogName: "drivers", Description: "Driver deleted", Event: "deleted", SubjectType: "driver", SubjectID: utils.Ptr(42)}
	fake := transportfake.New().
		Respond(http.MethodGet, "/activity-logs", map[string]any{"success": true, "data": []activitylog.Activity{entry}, "meta": api.Meta{CurrentPage: 1, LastPage: 1}}).
		Respond(http.MethodGet, "/activity-logs/11", api.Envelope[activitylog.Activity]{Success: true, Data: entry})
	svc := activitylog.New(fake)
	ctx := context.Background()

	page, err := svc.List(ctx, activitylog.Filter{ListParams: api.ListParams{Page: 2}, Event: "deleted", CauserID: 1})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	q := fake.LastCall().Query
	require.Equal(t, "2", q.Get("page"))
	require.Equal(t, "deleted", q.Get("event"))
	require.Equal(t, "1", q.Get("causer_id"))
	require.False(t, q.Has("log_name"))

	got, err := svc.Get(ctx, 11)
	require.NoError(t, err)
	require.Equal(t, 42, *got.SubjectID)
}
