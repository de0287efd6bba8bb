package queuestats_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/queuestats"
	"github.com/jrsteele09/go-league-admin/transport/transportfake"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	stats := queuestats.Stats{Pending: 3, Failed: 1, Processed: 120, Queues: []queuestats.Queue{{Name: "default", Pending: 2}, {Name: "mail", Pending: 1}}}
	job := queuestats.FailedJob{ID: 1, UUID: "6d3c", Connection: "database", Queue: "mail", Job: "SendInvite", Exception: "SMTP timeout"}

	fake := transportfake.New().
		Respond(http.MethodGet, "/queue/stats", api.Envelope[queuestats.Stats]{Success: true, Data: stats}).
		Respond(http.MethodGet, "/queue/failed", map[string]any{"success": true, "data": []queuestats.FailedJob{job}, "meta": api.Meta{CurrentPage: 1, LastPage: 1}}).
		Respond(http.MethodPost, "/queue/failed/6d3c/retry", map[string]any{"success": true}).
		Respond(http.MethodDelete, "/queue/failed", map[string]any{"success": true})
	svc := queuestats.New(fake)
	ctx := context.Background()

	got, err := svc.Stats(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(stats, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	require.False(t, got.Healthy())

	failed, err := svc.FailedJobs(ctx, api.ListParams{PerPage: 50})
	require.NoError(t, err)
	require.Equal(t, "SMTP timeout", failed.Data[0].Exception)
	require.Equal(t, "50", fake.LastCall().Query.Get("per_page"))

	require.NoError(t, svc.RetryJob(ctx, "6d3c"))
	require.NoError(t, svc.FlushFailed(ctx))
}

func TestService_RetryUnknownJob(t *testing.T) {
	svc := queuestats.New(transportfake.New())
	err := svc.RetryJob(context.Background(), "missing")
	require.EqualError(t, err, "Not Found (status 404)")
}
