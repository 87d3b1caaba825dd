package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAgeLabel(t *testing.T) {
	now := time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		birth *time.Time
		want  string
	}{
		{"unknown", nil, "Desconocida"},
		{"zero value", &time.Time{}, "Desconocida"},
		{"exactly one year", date(2024, 12, 15), "1 años"},
		{"eleven months", date(2025, 1, 15), "11 meses"},
		{"ten days", date(2025, 12, 5), "Menos de 1 mes"},
		{"several years", date(2019, 3, 1), "6 años"},
		{"one month", date(2025, 11, 30), "1 meses"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AgeLabel(tc.birth, now))
		})
	}
}

func TestAgeLabel_CalendarYearApproximation(t *testing.T) {
	// 10 días de vida, pero cruzan el año: la resta de años calendario gana.
	now := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "1 años", AgeLabel(date(2024, 12, 24), now))

	// los meses no son resto de los años: dic -> ene del año siguiente ya es "1 años"
	now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "1 años", AgeLabel(date(2024, 9, 1), now))
}

func TestAgeLabel_FutureBirthDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Menos de 1 mes", AgeLabel(date(2025, 8, 1), now))
}
