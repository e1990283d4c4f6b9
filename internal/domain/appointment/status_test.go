package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(true))
	assert.Equal(t, StatusConfirmed, InitialStatus(false))
}

func TestLifecycleHappyPath(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(from)}
		require.NoError(t, Cancel(ap, now), "cancel from %s", from)
		assert.Equal(t, string(StatusCanceled), ap.Status)
	}
}

func TestTerminalStatusesAreImmutable(t *testing.T) {
	now := time.Now()

	for _, terminal := range []Status{StatusCompleted, StatusCanceled} {
		ap := &models.Appointment{Status: string(terminal)}

		for name, action := range map[string]func(*models.Appointment, time.Time) error{
			"confirm":  Confirm,
			"complete": Complete,
			"cancel":   Cancel,
		} {
			err := action(ap, now)
			require.Error(t, err, "%s out of %s must be rejected", name, terminal)
			assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"))
			assert.Equal(t, string(terminal), ap.Status, "status must not move")
		}
	}
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	err := Complete(ap, time.Now())
	require.Error(t, err)
	assert.Equal(t, string(StatusPending), ap.Status)
}
