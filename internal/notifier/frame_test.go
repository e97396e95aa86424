package notifier

import (
	"encoding/json"
	"testing"

	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		frame, err := ParseFrame([]byte(`{"notificationId":"n-1","user_id":"u-1","type":"info","name":"Adjuster","message":"File updated"}`))
		require.NoError(t, err)
		require.Equal(t, "n-1", frame.Notification.ID)
		require.Equal(t, "u-1", frame.Notification.UserID)
		require.Equal(t, domain.NotificationTypeInfo, frame.Notification.Type)
		require.Equal(t, "Adjuster", frame.Notification.Name)
	})

	t.Run("double encoded", func(t *testing.T) {
		inner := `{"id":"n-2","type":"success","message":"Saved"}`
		body, err := json.Marshal(inner)
		require.NoError(t, err)

		frame, err := ParseFrame(body)
		require.NoError(t, err)
		require.Equal(t, "n-2", frame.Notification.ID)
		require.Equal(t, domain.NotificationTypeSuccess, frame.Notification.Type)
	})

	t.Run("notificationId wins over id", func(t *testing.T) {
		frame, err := ParseFrame([]byte(`{"notificationId":"a","id":"b"}`))
		require.NoError(t, err)
		require.Equal(t, "a", frame.Notification.ID)
	})

	t.Run("numeric id normalized", func(t *testing.T) {
		frame, err := ParseFrame([]byte(`{"id":107,"type":"info"}`))
		require.NoError(t, err)
		require.Equal(t, "107", frame.Notification.ID)
	})

	t.Run("unknown type falls back to default", func(t *testing.T) {
		frame, err := ParseFrame([]byte(`{"id":"n-3","type":"warning"}`))
		require.NoError(t, err)
		require.Equal(t, domain.NotificationTypeDefault, frame.Notification.Type)
	})

	t.Run("event tag", func(t *testing.T) {
		frame, err := ParseFrame([]byte(`{"id":"n-4","event":"MessageSent"}`))
		require.NoError(t, err)
		require.Equal(t, EventMessageSent, frame.Event)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseFrame([]byte(`{"id":`))
		require.Error(t, err)
	})

	t.Run("double encoded garbage", func(t *testing.T) {
		_, err := ParseFrame([]byte(`"not json at all"`))
		require.Error(t, err)
	})

	t.Run("non-object", func(t *testing.T) {
		_, err := ParseFrame([]byte(`[1,2,3]`))
		require.ErrorIs(t, err, errNotAnObject)
	})
}

func TestSeenSetEviction(t *testing.T) {
	set := newSeenSet(2)
	set.Add("a")
	set.Add("b")
	set.Add("c")
	require.False(t, set.Contains("a"))
	require.True(t, set.Contains("b"))
	require.True(t, set.Contains("c"))
}
