package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingTransitions(t *testing.T) {
	t.Run("accept moves draft to accepted", func(t *testing.T) {
		b := &Booking{Status: StatusDraft}
		require.NoError(t, b.Accept())
		assert.Equal(t, StatusAccepted, b.Status)
	})

	t.Run("repeated accept fails the guard", func(t *testing.T) {
		b := &Booking{Status: StatusDraft}
		require.NoError(t, b.Accept())

		err := b.Accept()
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, StatusAccepted, b.Status)
	})

	t.Run("decline moves draft to declined", func(t *testing.T) {
		b := &Booking{Status: StatusDraft}
		require.NoError(t, b.Decline())
		assert.Equal(t, StatusDeclined, b.Status)
	})

	t.Run("terminal statuses reject accept and decline", func(t *testing.T) {
		for _, status := range []Status{StatusAccepted, StatusDeclined, StatusCancelled} {
			b := &Booking{Status: status}
			assert.ErrorIs(t, b.Accept(), ErrInvalidState)

			b = &Booking{Status: status}
			assert.ErrorIs(t, b.Decline(), ErrInvalidState)
		}
	})

	t.Run("cancel allowed from draft and declined", func(t *testing.T) {
		b := &Booking{Status: StatusDraft}
		require.NoError(t, b.Cancel())
		assert.Equal(t, StatusCancelled, b.Status)

		b = &Booking{Status: StatusDeclined}
		require.NoError(t, b.Cancel())
		assert.Equal(t, StatusCancelled, b.Status)
	})

	t.Run("cancel rejected for accepted and cancelled", func(t *testing.T) {
		b := &Booking{Status: StatusAccepted}
		assert.ErrorIs(t, b.Cancel(), ErrInvalidState)

		b = &Booking{Status: StatusCancelled}
		assert.ErrorIs(t, b.Cancel(), ErrInvalidState)
	})
}
