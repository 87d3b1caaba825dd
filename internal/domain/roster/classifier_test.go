package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func appt(id string, offset time.Duration, st AppointmentStatus) AppointmentRecord {
	return AppointmentRecord{ID: id, Time: refNow.Add(offset), Status: st}
}

const day = 24 * time.Hour

func TestClassify_IgnoresCancelled(t *testing.T) {
	next, last := Classify([]AppointmentRecord{
		appt("future", 3*day, StatusConfirmed),
		appt("cancelled", -5*day, StatusCancelled),
		appt("done", -10*day, StatusCompleted),
	}, refNow)

	require.NotNil(t, next)
	require.NotNil(t, last)
	assert.Equal(t, "future", next.ID)
	assert.Equal(t, "done", last.ID)
}

func TestClassify_Empty(t *testing.T) {
	next, last := Classify(nil, refNow)
	assert.Nil(t, next)
	assert.Nil(t, last)
}

func TestClassify_NextIsEarliestUpcoming(t *testing.T) {
	next, _ := Classify([]AppointmentRecord{
		appt("late", 20*day, StatusScheduled),
		appt("soon-noshow", 1*day, StatusNoShow),
		appt("soon-completed", 2*day, StatusCompleted),
		appt("soon", 5*day, StatusPending),
	}, refNow)

	require.NotNil(t, next)
	assert.Equal(t, "soon", next.ID)
}

func TestClassify_LastIsLatestCompleted(t *testing.T) {
	_, last := Classify([]AppointmentRecord{
		appt("old", -90*day, StatusCompleted),
		appt("overdue-pending", -1*day, StatusPending),
		appt("recent", -30*day, StatusCompleted),
		appt("noshow", -2*day, StatusNoShow),
	}, refNow)

	require.NotNil(t, last)
	assert.Equal(t, "recent", last.ID, "past non-completed appointments are not history")
}

func TestClassify_NowBoundary(t *testing.T) {
	next, last := Classify([]AppointmentRecord{
		appt("now-completed", 0, StatusCompleted),
		appt("now-scheduled", 0, StatusScheduled),
	}, refNow)

	assert.Nil(t, next, "an appointment at exactly now is not upcoming")
	require.NotNil(t, last)
	assert.Equal(t, "now-completed", last.ID)
}

func TestClassify_TiesBrokenByID(t *testing.T) {
	in := []AppointmentRecord{
		appt("b", 2*day, StatusScheduled),
		appt("a", 2*day, StatusConfirmed),
		appt("y", -2*day, StatusCompleted),
		appt("z", -2*day, StatusCompleted),
	}

	next, last := Classify(in, refNow)
	require.NotNil(t, next)
	require.NotNil(t, last)
	assert.Equal(t, "a", next.ID)
	assert.Equal(t, "z", last.ID)

	// mismo resultado con otro orden de entrada
	rev := []AppointmentRecord{in[3], in[2], in[1], in[0]}
	next2, last2 := Classify(rev, refNow)
	assert.Equal(t, next.ID, next2.ID)
	assert.Equal(t, last.ID, last2.ID)
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	in := []AppointmentRecord{
		appt("2", 2*day, StatusScheduled),
		appt("1", 1*day, StatusScheduled),
	}
	Classify(in, refNow)
	assert.Equal(t, "2", in[0].ID)
}
