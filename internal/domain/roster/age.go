package roster

import (
	"fmt"
	"time"
)

const (
	AgeUnknown       = "Desconocida"
	AgeUnderOneMonth = "Menos de 1 mes"
)

// AgeLabel calcula la edad por resta de años calendario (no 365 días):
// si la resta da >= 1 gana años, aunque el último año esté incompleto.
// Los meses se restan aparte, no como resto de los años.
func AgeLabel(birth *time.Time, now time.Time) string {
	if birth == nil || birth.IsZero() {
		return AgeUnknown
	}

	years := now.Year() - birth.Year()
	if years > 0 {
		return fmt.Sprintf("%d años", years)
	}

	months := int(now.Month()) - int(birth.Month())
	if months > 0 {
		return fmt.Sprintf("%d meses", months)
	}
	return AgeUnderOneMonth
}
