package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/notify"
)

func TestCancelConfirmedAppointment(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "confirmed")
	uc := NewCancelAppointment(repo, noCache(), nil, notify.Noop{})

	ap, err := uc.Execute(context.Background(), 1, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, "canceled", ap.Status)
	assert.NotNil(t, ap.CanceledAt)
	assert.Equal(t, "canceled", repo.appointments[1].Status)
}

func TestCancelPendingAppointment(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "pending")
	uc := NewCancelAppointment(repo, noCache(), nil, notify.Noop{})

	ap, err := uc.Execute(context.Background(), 1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "canceled", ap.Status)
}

func TestCancelTerminalStatusRejected(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewCancelAppointment(repo, noCache(), nil, notify.Noop{})

	for _, status := range []string{"completed", "canceled"} {
		seedAppointment(repo, 1, status)

		_, err := uc.Execute(context.Background(), 1, 2, 1)
		assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"), status)
		assert.Equal(t, status, repo.appointments[1].Status)
	}
}

func TestCompleteConfirmedAppointment(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "confirmed")
	uc := NewCompleteAppointment(repo, nil)

	ap, err := uc.Execute(context.Background(), 1, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, "completed", ap.Status)
	assert.NotNil(t, ap.CompletedAt)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewCompleteAppointment(repo, nil)

	for _, status := range []string{"pending", "completed", "canceled"} {
		seedAppointment(repo, 1, status)

		_, err := uc.Execute(context.Background(), 1, 2, 1)
		assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"), status)
	}
}

func TestDeletePendingAppointment(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "pending")
	uc := NewDeleteAppointment(repo, noCache(), nil)

	err := uc.Execute(context.Background(), 1, 2, 1)
	require.NoError(t, err)

	assert.NotContains(t, repo.appointments, uint(1))
	assert.Contains(t, repo.deleted, uint(1))
}

func TestDeleteOnlyPending(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewDeleteAppointment(repo, noCache(), nil)

	for _, status := range []string{"confirmed", "completed", "canceled"} {
		seedAppointment(repo, 1, status)

		err := uc.Execute(context.Background(), 1, 2, 1)
		assert.True(t, httperr.IsBusiness(err, "only_pending_deletable"), status)
		assert.Contains(t, repo.appointments, uint(1))
	}
}

func TestDeleteUnknownAppointment(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewDeleteAppointment(repo, noCache(), nil)

	err := uc.Execute(context.Background(), 1, 2, 404)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
