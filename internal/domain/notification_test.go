package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidNotificationType(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		valid := []string{
			NotificationTypeAction,
			NotificationTypeSuccess,
			NotificationTypeInfo,
			NotificationTypeDefault,
		}
		for _, v := range valid {
			require.True(t, IsValidNotificationType(v), "expected valid type: %s", v)
		}
	})

	t.Run("invalid types", func(t *testing.T) {
		invalid := []string{"", "warning", "actionx", "Success"}
		for _, v := range invalid {
			require.False(t, IsValidNotificationType(v), "expected invalid type: %s", v)
		}
	})
}

func TestNormalizeNotificationType(t *testing.T) {
	require.Equal(t, NotificationTypeAction, NormalizeNotificationType("action"))
	require.Equal(t, NotificationTypeDefault, NormalizeNotificationType(""))
	require.Equal(t, NotificationTypeDefault, NormalizeNotificationType("warning"))
}

func TestIsValidResponseAction(t *testing.T) {
	require.True(t, IsValidResponseAction(ResponseActionAccept))
	require.True(t, IsValidResponseAction(ResponseActionReject))
	require.False(t, IsValidResponseAction(""))
	require.False(t, IsValidResponseAction("dismiss"))
}
