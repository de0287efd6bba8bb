package notifications_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-league-admin/api"
	"github.com/jrsteele09/go-league-admin/notifications"
	"github.com/jrsteele09/go-league-admin/transport/transportfake"
	"github.com/stretchr/testify/require"
)

const notificationID = "3f8e4c1a-4c6e-4a43-9b55-7e0e1f1b2c3d"

func TestService(t *testing.T) {
	fake := transportfake.New().
		Respond(http.MethodGet, "/notifications", map[string]any{
			"success": true,
			"data":    []notifications.Notification{{ID: notificationID, Type: "contact.received", Title: "New contact message"}},
			"meta":    api.Meta{CurrentPage: 1, LastPage: 1, Total: 1},
		}).
		Respond(http.MethodGet, "/notifications/unread-count", map[string]any{"success": true, "data": map[string]int{"count": 4}}).
		Respond(http.MethodPost, "/notifications/"+notificationID+"/read", map[string]any{"success": true}).
		Respond(http.MethodPost, "/notifications/read-all", map[string]any{"success": true}).
		Respond(http.MethodDelete, "/notifications/"+notificationID, map[string]any{"success": true})
	svc := notifications.New(fake)
	ctx := context.Background()

	page, err := svc.List(ctx, api.ListParams{})
	require.NoError(t, err)
	require.False(t, page.Data[0].IsRead())

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	require.NoError(t, svc.MarkRead(ctx, notificationID))
	require.NoError(t, svc.MarkAllRead(ctx))
	require.NoError(t, svc.Delete(ctx, notificationID))

	require.Len(t, fake.Calls(), 5)
}

func TestService_UnreadCountFailure(t *testing.T) {
	fake := transportfake.New().FailStatus(http.MethodGet, "/notifications/unread-count", http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
	svc := notifications.New(fake)

	count, err := svc.UnreadCount(context.Background())
	require.Zero(t, count)
	require.EqualError(t, err, "Unauthenticated. (status 401)")
}
