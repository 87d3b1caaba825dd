package roster

import (
	"strings"
	"time"
)

const (
	DefaultOwnerPhone     = "N/A"
	DefaultBreed          = "Raza no definida"
	NeverVisited          = "Nunca"
	NoUpcomingAppointment = "No programada"

	// DateLayout es dd/mm/aaaa.
	DateLayout = "02/01/2006"
)

// Assemble mapea un PetRecord a su fila de roster. No hace I/O.
func Assemble(p PetRecord, now time.Time) RosterEntry {
	next, last := Classify(p.Appointments, now)

	e := RosterEntry{
		PetID:                p.ID,
		PetName:              p.Name,
		OwnerID:              p.Owner.ID,
		OwnerName:            p.Owner.Name,
		OwnerPhone:           orDefault(p.Owner.Phone, DefaultOwnerPhone),
		SpeciesName:          p.Species.Name,
		Breed:                orDefault(p.Breed, DefaultBreed),
		AgeLabel:             AgeLabel(p.BirthDate, now),
		LastVisitLabel:       NeverVisited,
		NextAppointmentLabel: NoUpcomingAppointment,
		Status:               p.Status,
	}

	if last != nil {
		e.LastVisitLabel = formatDate(last.Time, now)
	}
	if next != nil {
		e.NextAppointmentLabel = formatDate(next.Time, now)
	}
	return e
}

// formatDate usa la zona horaria de now para que la fecha coincida con el reloj de referencia.
func formatDate(t, now time.Time) string {
	return t.In(now.Location()).Format(DateLayout)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
