package rest

import (
	"fmt"
	"strings"
	"time"

	"pet-clinic-roster/internal/domain/roster"
)

// Filas tal cual las devuelve el backend con select anidado. Los punteros
// distinguen "ausente" de "vacío".
type petRow struct {
	ID           *string          `json:"id"`
	Name         *string          `json:"name"`
	Breed        *string          `json:"breed"`
	BirthDate    *string          `json:"birth_date"`
	Status       *string          `json:"status"`
	Owner        *ownerRow        `json:"owner"`
	Species      *speciesRow      `json:"species"`
	Appointments []appointmentRow `json:"appointments"`
}

type ownerRow struct {
	ID       *string `json:"id"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type speciesRow struct {
	Name *string `json:"name"`
}

type appointmentRow struct {
	ID              *string    `json:"id"`
	AppointmentTime *string    `json:"appointment_time"`
	Status          *statusRow `json:"status"`
}

type statusRow struct {
	Name *string `json:"name"`
}

type ownerIDRow struct {
	ID *string `json:"id"`
}

// ShapeError indica que la respuesta no respeta el contrato esperado.
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("rest: unexpected response shape at %s: %s", e.Path, e.Reason)
}

// decodePets convierte filas a PetRecord. Falta de id/nombre no es error aquí:
// el resolver descarta esos registros. Una cita sin hora o con estado
// desconocido sí es error (rompe el contrato).
func decodePets(rows []petRow) ([]roster.PetRecord, error) {
	out := make([]roster.PetRecord, 0, len(rows))
	for i, r := range rows {
		p, err := decodePet(r, fmt.Sprintf("pets[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func decodePet(r petRow, path string) (roster.PetRecord, error) {
	p := roster.PetRecord{
		ID:     str(r.ID),
		Name:   str(r.Name),
		Breed:  str(r.Breed),
		Status: str(r.Status),
	}

	if r.BirthDate != nil {
		// fechas malformadas => edad desconocida
		if t, ok := parseDate(*r.BirthDate); ok {
			p.BirthDate = &t
		}
	}

	if r.Owner != nil {
		p.Owner = roster.OwnerRef{
			ID:    str(r.Owner.ID),
			Name:  str(r.Owner.FullName),
			Phone: str(r.Owner.Phone),
		}
	}
	if r.Species != nil {
		p.Species = roster.SpeciesRef{Name: str(r.Species.Name)}
	}

	for j, a := range r.Appointments {
		apath := fmt.Sprintf("%s.appointments[%d]", path, j)

		if a.AppointmentTime == nil {
			return roster.PetRecord{}, &ShapeError{Path: apath, Reason: "missing appointment_time"}
		}
		at, err := time.Parse(time.RFC3339, strings.TrimSpace(*a.AppointmentTime))
		if err != nil {
			return roster.PetRecord{}, &ShapeError{Path: apath, Reason: "appointment_time is not RFC3339"}
		}
		if a.Status == nil || a.Status.Name == nil {
			return roster.PetRecord{}, &ShapeError{Path: apath, Reason: "missing status"}
		}
		st, err := roster.ParseAppointmentStatus(*a.Status.Name)
		if err != nil {
			return roster.PetRecord{}, &ShapeError{Path: apath, Reason: err.Error()}
		}

		p.Appointments = append(p.Appointments, roster.AppointmentRecord{
			ID:     str(a.ID),
			Time:   at,
			Status: st,
		})
	}
	return p, nil
}

func decodeOwnerIDs(rows []ownerIDRow) ([]string, error) {
	out := make([]string, 0, len(rows))
	for i, r := range rows {
		id := str(r.ID)
		if id == "" {
			return nil, &ShapeError{Path: fmt.Sprintf("owners[%d]", i), Reason: "missing id"}
		}
		out = append(out, id)
	}
	return out, nil
}

// parseDate acepta DATE (YYYY-MM-DD) o timestamp RFC3339.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
