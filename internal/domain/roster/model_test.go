package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Veterinarian ")
	require.NoError(t, err)
	assert.Equal(t, RoleVeterinarian, r)

	r, err = ParseRole("owner")
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, r)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseAppointmentStatus(t *testing.T) {
	cases := map[string]AppointmentStatus{
		"Programada":  StatusScheduled,
		"confirmed":   StatusConfirmed,
		"PENDIENTE":   StatusPending,
		" completada": StatusCompleted,
		"Canceled":    StatusCancelled,
		"No Asistió":  StatusNoShow,
		"no_show":     StatusNoShow,
	}
	for label, want := range cases {
		got, err := ParseAppointmentStatus(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
	}

	_, err := ParseAppointmentStatus("reprogramada")
	assert.Error(t, err)
}
